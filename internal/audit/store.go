// internal/audit/store.go
//
// Audit log of game sessions, backed by SQLite.
//
// Store is a game.Observer: during play it only writes, and a failed write
// is logged and dropped so the game never waits on or fails because of the
// log. Nothing here is read back to resume a session; the read methods feed
// the inspector.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessr/internal/game"
)

const (
	// Fixed width so the stored text sorts in time order.
	timeLayout   = "2006-01-02T15:04:05.000000000Z07:00"
	writeTimeout = 2 * time.Second
)

// Store reads and writes the audit tables.
type Store struct{ db *sql.DB }

// Open opens the database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// StepRecorded implements game.Observer.
func (s *Store) StepRecorded(rec game.StepRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.InsertStep(ctx, rec); err != nil {
		log.Warn().Err(err).Str("session", rec.SessionID).Int("seq", rec.Seq).Msg("audit: insert step")
	}
}

// RoundFinished implements game.Observer.
func (s *Store) RoundFinished(r game.RoundResult) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.InsertRound(ctx, r); err != nil {
		log.Warn().Err(err).Str("session", r.SessionID).Msg("audit: insert round")
	}
}

// InsertStep stores a step record, creating its session row on first use.
// A record already stored is ignored.
func (s *Store) InsertStep(ctx context.Context, rec game.StepRecord) error {
	if err := s.ensureSession(ctx, rec.SessionID, rec.At); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO steps (session_id, seq, step, next, game, action, at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Seq, string(rec.Step), string(rec.Next), string(rec.Game), rec.Action, formatTime(rec.At),
	)
	return err
}

// InsertRound stores a finished round.
func (s *Store) InsertRound(ctx context.Context, r game.RoundResult) error {
	if err := s.ensureSession(ctx, r.SessionID, r.At); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO rounds (session_id, game, outcome, guess, secret, questions, retries, at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, string(r.Game), string(r.Outcome), r.Guess, r.Secret, r.Questions, r.Retries, formatTime(r.At),
	)
	return err
}

func (s *Store) ensureSession(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, started_at) VALUES (?, ?)`,
		id, formatTime(at),
	)
	return err
}

// Session summarizes one audited session.
type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Steps     int       `json:"steps"`
	Rounds    int       `json:"rounds"`
}

// Sessions lists the most recent sessions first. Default limit is 20.
func (s *Store) Sessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT s.id, s.started_at,
               (SELECT COUNT(1) FROM steps  WHERE session_id = s.id),
               (SELECT COUNT(1) FROM rounds WHERE session_id = s.id)
        FROM sessions s
        ORDER BY s.started_at DESC, s.id
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0, limit)
	for rows.Next() {
		var (
			row     Session
			started string
		)
		if err := rows.Scan(&row.ID, &started, &row.Steps, &row.Rounds); err != nil {
			return nil, err
		}
		if row.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Steps returns a session's step records in execution order.
func (s *Store) Steps(ctx context.Context, sessionID string) ([]game.StepRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT seq, step, next, game, action, at
        FROM steps
        WHERE session_id=?
        ORDER BY seq ASC`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.StepRecord
	for rows.Next() {
		var (
			rec              game.StepRecord
			step, next, kind string
			at               string
		)
		if err := rows.Scan(&rec.Seq, &step, &next, &kind, &rec.Action, &at); err != nil {
			return nil, err
		}
		rec.SessionID = sessionID
		rec.Step, rec.Next, rec.Game = game.Step(step), game.Step(next), game.Kind(kind)
		if rec.At, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Rounds lists finished rounds, most recent first. Default limit is 20.
func (s *Store) Rounds(ctx context.Context, limit int) ([]game.RoundResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT session_id, game, outcome, guess, secret, questions, retries, at
        FROM rounds
        ORDER BY at DESC, id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]game.RoundResult, 0, limit)
	for rows.Next() {
		var (
			r                      game.RoundResult
			kind, outcome, atValue string
		)
		if err := rows.Scan(&r.SessionID, &kind, &outcome, &r.Guess, &r.Secret, &r.Questions, &r.Retries, &atValue); err != nil {
			return nil, err
		}
		r.Game, r.Outcome = game.Kind(kind), game.Outcome(outcome)
		if r.At, err = parseTime(atValue); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

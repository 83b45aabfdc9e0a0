package main

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessr/internal/audit"
	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/httpserver"
	"github.com/robalobadob/guessr/internal/metrics"
	"github.com/robalobadob/guessr/internal/oracle"
	"github.com/robalobadob/guessr/internal/words"
)

// session is one controller with everything wired around it.
type session struct {
	table    *words.Table
	ctrl     *game.Controller
	tracker  *game.Tracker
	registry *prometheus.Registry
	audit    *audit.Store // nil when auditing is off
	rounds   *roundCollector
}

// loadTable reads the configured word/clue table.
func (a *app) loadTable() (*words.Table, error) {
	return words.Load(a.cfg.WordsFile)
}

// newSession builds a controller for p with every game, a tracker, metrics,
// and the audit log when one is configured. Free-guess secrets are drawn
// from guessSeed, or from the session id when it is empty.
func (a *app) newSession(tbl *words.Table, p game.Presenter, guessSeed string) (*session, error) {
	st, err := game.NewState(a.cfg.Game())
	if err != nil {
		return nil, err
	}

	s := &session{
		table:    tbl,
		tracker:  game.NewTracker(),
		registry: prometheus.NewRegistry(),
		rounds:   &roundCollector{},
	}
	opts := []game.Option{
		game.WithStrategies(game.NewNumeric(), game.NewWord(tbl), game.NewGuess(guessSeed, oracle.Pick)),
		game.WithTracker(s.tracker),
		game.WithObserver(metrics.New(s.registry)),
		game.WithObserver(s.rounds),
	}
	if a.cfg.AuditDB != "" {
		if s.audit, err = audit.Open(a.cfg.AuditDB); err != nil {
			return nil, err
		}
		opts = append(opts, game.WithObserver(s.audit))
		log.Info().Str("path", a.cfg.AuditDB).Msg("audit log enabled")
	}
	s.ctrl = game.NewController(st, p, opts...)
	return s, nil
}

// inspector serves this session read-only.
func (s *session) inspector() *httpserver.Server {
	opts := []httpserver.Option{
		httpserver.WithTracker(s.tracker),
		httpserver.WithTable(s.table),
		httpserver.WithMetrics(s.registry),
	}
	if s.audit != nil {
		opts = append(opts, httpserver.WithAudit(s.audit))
	}
	return httpserver.New(opts...)
}

func (s *session) Close() error {
	if s.audit == nil {
		return nil
	}
	return s.audit.Close()
}

// roundCollector keeps finished rounds for the end-of-session summary.
type roundCollector struct {
	results []game.RoundResult
}

func (*roundCollector) StepRecorded(game.StepRecord) {}

func (c *roundCollector) RoundFinished(r game.RoundResult) {
	c.results = append(c.results, r)
}

// errNoAudit is returned by commands that need an audit database.
var errNoAudit = errors.New("no audit database: set GUESSR_AUDIT_DB or --audit-db")

package game

import (
	"iter"
	"time"

	"github.com/robalobadob/guessr/internal/store"
)

// StepRecord is one tracker entry. Values are never modified once appended.
type StepRecord struct {
	Seq       int       `json:"seq"`
	SessionID string    `json:"sessionId"`
	Step      Step      `json:"step"` // the step that ran
	Next      Step      `json:"next"` // routing target it left behind
	Game      Kind      `json:"game"`
	Action    string    `json:"action"`
	At        time.Time `json:"at"`
}

// ActionLabel is the human-readable action for the active game.
func ActionLabel(k Kind) string {
	if k == KindNone || k == "" {
		return "Menu"
	}
	return "Game: " + string(k)
}

// Tracker is the append-only execution log. Recording never fails and never
// blocks on anything but the log's own lock.
type Tracker struct {
	log *store.Log[StepRecord]
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{log: store.NewLog[StepRecord]()}
}

// Record appends the record for step having just run against s.
func (t *Tracker) Record(step Step, s *State) StepRecord {
	rec := StepRecord{
		Seq:       t.log.Len() + 1,
		SessionID: s.SessionID,
		Step:      step,
		Next:      s.Target,
		Game:      s.Game,
		Action:    ActionLabel(s.Game),
		At:        time.Now().UTC(),
	}
	t.log.Append(rec)
	return rec
}

// Steps yields every record in insertion order. Each range over the
// returned sequence starts again from the first record.
func (t *Tracker) Steps() iter.Seq[StepRecord] { return t.log.All() }

// Len returns the number of records.
func (t *Tracker) Len() int { return t.log.Len() }

// Observer receives controller events. Implementations must not block the
// game; failures are theirs to log.
type Observer interface {
	StepRecorded(rec StepRecord)
	RoundFinished(r RoundResult)
}

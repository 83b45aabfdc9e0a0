// internal/game/state.go
//
// Session State: the single mutable record threaded through every turn.
//
// Ownership:
//   - Created by NewState and owned by one Controller for a play-through.
//   - Target is written only by the step that is running and read only by
//     the router.
//   - Round-scoped sub-state (bounds, candidates, clue index, pending
//     prompt/answer) is re-initialized at the start of every round and
//     cleared when the round ends. Counters and History span the session.

package game

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidConfig is returned by NewState for an unusable numeric range.
var ErrInvalidConfig = errors.New("game: invalid config")

// Config is the per-session configuration.
type Config struct {
	Min int // numeric range lower bound (inclusive)
	Max int // numeric range upper bound (inclusive)
}

// DefaultConfig is the 1..50 range.
func DefaultConfig() Config { return Config{Min: 1, Max: 50} }

// Validate checks Min <= Max and that the range size Max-Min+1 fits in an int.
func (c Config) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("%w: numeric range %d..%d is empty", ErrInvalidConfig, c.Min, c.Max)
	}
	if (c.Min < 0 && c.Max > math.MaxInt+c.Min) || c.Max-c.Min == math.MaxInt {
		return fmt.Errorf("%w: numeric range %d..%d is too large", ErrInvalidConfig, c.Min, c.Max)
	}
	return nil
}

// Size is the number of values in the range.
func (c Config) Size() int { return c.Max - c.Min + 1 }

// NumericRound is the binary-search belief state. Lower <= Upper while a
// round is active.
type NumericRound struct {
	Lower int
	Upper int
	Asked int // questions answered this round
}

// GuessRound is the free-guess state: the player guesses, the engine holds
// the secret and narrows the hint range after every miss.
type GuessRound struct {
	Secret int
	Lower  int // hint range, always contains Secret
	Upper  int
	Last   int // most recent guess, valid once Tries > 0
	Tries  int
}

// WordRound is the elimination belief state.
type WordRound struct {
	Candidates []string // subset of the word list, in list order
	Secret     string   // only used for the reveal on a lost round
	ClueIndex  int      // next clue to ask; never decreases except on reset
	Asked      int      // clues answered this round, across resets
	Retries    int      // full resets this round
	Guess      string   // candidate being proposed
	BestEffort bool     // Guess was picked because the clues ran out
	Outcome    Outcome
}

// State is the session state.
type State struct {
	SessionID string
	Game      Kind
	Target    Step

	Numeric NumericRound
	Word    WordRound
	Guess   GuessRound

	// Pending question built by a propose/ask step and the answer collected
	// by the matching await step.
	Prompt *Prompt
	Answer string

	NumericRounds int
	WordRounds    int
	GuessRounds   int
	History       []Kind

	cfg       Config
	lastRound *RoundResult
}

// NewState starts a session: counters zero, routing target menu.
func NewState(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		SessionID: uuid.NewString(),
		Game:      KindNone,
		Target:    StepMenu,
		cfg:       cfg,
	}
	s.clearRound()
	return s, nil
}

// Config returns the configuration the session was created with.
func (s *State) Config() Config { return s.cfg }

// Finished reports whether the routing target is terminal.
func (s *State) Finished() bool { return s.Target.Terminal() }

// ResetRound discards round-scoped state and re-enters the active game's
// first step, or the menu when no game is active.
func (s *State) ResetRound() {
	s.clearRound()
	switch s.Game {
	case KindNumeric:
		s.Target = StepNumericBegin
	case KindWord:
		s.Target = StepWordBegin
	case KindGuess:
		s.Target = StepGuessBegin
	default:
		s.Game = KindNone
		s.Target = StepMenu
	}
}

// Restart discards round-scoped state and returns to the menu. Round
// counters and History are kept; use NewState for a clean session.
func (s *State) Restart() {
	s.clearRound()
	s.Game = KindNone
	s.Target = StepMenu
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Word.Candidates = slices.Clone(s.Word.Candidates)
	c.History = slices.Clone(s.History)
	if s.Prompt != nil {
		p := *s.Prompt
		p.Allowed = slices.Clone(s.Prompt.Allowed)
		c.Prompt = &p
	}
	if s.lastRound != nil {
		r := *s.lastRound
		c.lastRound = &r
	}
	return &c
}

// clearRound resets every round-scoped field. Bounds go back to the full
// configured range.
func (s *State) clearRound() {
	s.Numeric = NumericRound{Lower: s.cfg.Min, Upper: s.cfg.Max}
	s.Word = WordRound{}
	s.Guess = GuessRound{Lower: s.cfg.Min, Upper: s.cfg.Max}
	s.Prompt = nil
	s.Answer = ""
}

// finishRound books a round result and, when the round completed, bumps the
// per-game counter and appends to History. Exactly once per round.
func (s *State) finishRound(r RoundResult) {
	r.SessionID = s.SessionID
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}
	if r.Outcome.Completed() {
		switch r.Game {
		case KindNumeric:
			s.NumericRounds++
		case KindWord:
			s.WordRounds++
		case KindGuess:
			s.GuessRounds++
		}
		s.History = append(s.History, r.Game)
	}
	s.lastRound = &r
	s.clearRound()
	s.Game = KindNone
	s.Target = StepMenu
}

// takeRound returns and clears the result of the round that just ended.
func (s *State) takeRound() *RoundResult {
	r := s.lastRound
	s.lastRound = nil
	return r
}

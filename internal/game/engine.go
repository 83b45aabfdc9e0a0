// internal/game/engine.go
//
// Game Session Controller.
//
// Responsibilities:
//   - Drive the loop: router → step → tracker, until a step suspends for
//     input or the routing target is terminal.
//   - Dispatch each step to the menu or to the strategy that owns it.
//   - Notify observers (audit log, metrics) of steps and finished rounds.
//   - Offer restart (counters kept) and new session (counters zeroed).
//
// The controller is single-threaded: one step runs at a time, and the only
// suspension point is a step returning NeedInput.

package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

// Controller owns one Session State and drives it turn by turn.
type Controller struct {
	state      *State
	presenter  Presenter
	strategies map[Kind]Strategy
	order      []Kind // menu order
	tracker    *Tracker
	observers  []Observer
}

// Option configures a Controller.
type Option func(*Controller)

// WithTracker records into t instead of a private tracker.
func WithTracker(t *Tracker) Option {
	return func(c *Controller) { c.tracker = t }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithStrategies registers strategies; the menu lists them in this order.
func WithStrategies(ss ...Strategy) Option {
	return func(c *Controller) {
		for _, st := range ss {
			if _, dup := c.strategies[st.Kind()]; !dup {
				c.order = append(c.order, st.Kind())
			}
			c.strategies[st.Kind()] = st
		}
	}
}

// NewController wires a controller around s.
func NewController(s *State, p Presenter, opts ...Option) *Controller {
	c := &Controller{
		state:      s,
		presenter:  p,
		strategies: make(map[Kind]Strategy),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracker == nil {
		c.tracker = NewTracker()
	}
	return c
}

// State returns the session state. Callers must not mutate it while the
// controller is running.
func (c *Controller) State() *State { return c.state }

// Tracker returns the execution log.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Games lists the registered games in menu order.
func (c *Controller) Games() []Kind { return slices.Clone(c.order) }

// Finished reports whether the session reached its terminal step.
func (c *Controller) Finished() bool { return c.state.Finished() }

// Turn runs steps until one needs input (done == false) or the session is
// over (done == true). A step that needs input leaves the state and the
// tracker untouched, so calling Turn again simply asks again.
//
// An unknown routing target is returned as an error wrapping ErrUnknownStep
// and must be treated as fatal.
func (c *Controller) Turn(ctx context.Context) (done bool, err error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		step, err := NextStep(c.state)
		if err != nil {
			return false, err
		}
		if step.Terminal() {
			return true, nil
		}

		st, err := c.exec(ctx, step)
		if err != nil {
			return false, fmt.Errorf("%s: %w", step, err)
		}
		if st == NeedInput {
			log.Debug().Str("session", c.state.SessionID).Stringer("step", step).Msg("awaiting input")
			return false, nil
		}
		c.record(step)
	}
}

// Run repeats Turn until the session is over. It is meant for presenters
// that block until the player answers; with a presenter that can report
// "no answer yet" forever, drive Turn directly.
func (c *Controller) Run(ctx context.Context) error {
	for {
		done, err := c.Turn(ctx)
		if err != nil || done {
			return err
		}
	}
}

// Restart wipes round-scoped state and returns to the menu. Counters and
// history survive.
func (c *Controller) Restart() {
	c.state.Restart()
	log.Info().Str("session", c.state.SessionID).Msg("session restarted")
}

// RestartRound abandons the current round and re-enters its first step.
func (c *Controller) RestartRound() {
	c.state.ResetRound()
	log.Info().Str("session", c.state.SessionID).Stringer("target", c.state.Target).Msg("round restarted")
}

// NewSession replaces the state with a fresh one: new session id, counters
// and history zeroed. The tracker keeps earlier sessions' records.
func (c *Controller) NewSession() error {
	s, err := NewState(c.state.Config())
	if err != nil {
		return err
	}
	c.state = s
	log.Info().Str("session", s.SessionID).Msg("new session")
	return nil
}

func (c *Controller) exec(ctx context.Context, step Step) (Status, error) {
	if step == StepMenu {
		return c.menu(ctx)
	}
	st, ok := c.strategies[step.Game()]
	if !ok {
		return NeedInput, fmt.Errorf("%w: %q", ErrNoStrategy, step)
	}
	return st.Exec(ctx, step, c.state, c.presenter)
}

// menu lets the player pick a game or quit.
func (c *Controller) menu(ctx context.Context) (Status, error) {
	allowed := make([]string, 0, len(c.order)+1)
	for _, k := range c.order {
		allowed = append(allowed, string(k))
	}
	allowed = append(allowed, MenuQuit)

	choice, st, err := ask(ctx, c.presenter, Prompt{Kind: PromptMenu, Text: "Choose a game", Allowed: allowed})
	if st != Advance || err != nil {
		return st, err
	}
	if choice == MenuQuit {
		c.state.Game = KindNone
		c.state.Target = StepEnd
		return Advance, nil
	}
	strat := c.strategies[Kind(choice)]
	c.state.Game = strat.Kind()
	c.state.Target = strat.Begin()
	return Advance, nil
}

func (c *Controller) record(step Step) {
	rec := c.tracker.Record(step, c.state)
	log.Debug().
		Str("session", rec.SessionID).
		Int("seq", rec.Seq).
		Stringer("step", rec.Step).
		Stringer("next", rec.Next).
		Str("action", rec.Action).
		Msg("step")
	for _, o := range c.observers {
		o.StepRecorded(rec)
	}
	if r := c.state.takeRound(); r != nil {
		log.Info().
			Str("session", r.SessionID).
			Str("game", string(r.Game)).
			Str("outcome", string(r.Outcome)).
			Str("guess", r.Guess).
			Int("questions", r.Questions).
			Msg("round finished")
		for _, o := range c.observers {
			o.RoundFinished(*r)
		}
	}
}

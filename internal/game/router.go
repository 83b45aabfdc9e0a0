package game

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnknownStep means the routing target names no step. It is a fault
	// in the state-machine definition, never a player error.
	ErrUnknownStep = errors.New("game: unknown step")
	// ErrNoStrategy means a step belongs to a game with no registered strategy.
	ErrNoStrategy = errors.New("game: no strategy for step")
)

// NextStep returns the step the routing target names. It returns StepEnd
// once the session is over and fails on anything it does not recognize,
// so an incomplete strategy cannot quietly end a round.
func NextStep(s *State) (Step, error) {
	if !s.Target.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, s.Target)
	}
	return s.Target, nil
}

// Strategy is a guessing algorithm driven step by step by the controller.
//
// Exec runs one of the strategy's own steps against s. It returns Advance
// after setting s.Target, or NeedInput without touching s when the player
// has not answered yet.
type Strategy interface {
	Kind() Kind
	Begin() Step
	Exec(ctx context.Context, step Step, s *State, p Presenter) (Status, error)
}

// internal/game/numeric.go
//
// Numeric range guesser: binary search over [Min, Max].
//
// Steps:
//   begin_round      → reset bounds to the full range
//   propose_midpoint → build "is your number greater than mid?"
//   await_answer     → suspension point until the player says yes/no
//   apply_answer     → yes: lower = mid+1, no: upper = mid
//   conclude         → announce lower (== upper) and return to the menu
//
// With mid = floor((lower+upper)/2) every answer at least halves the range,
// so a round asks at most ceil(log2(Max-Min+1)) questions.

package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Midpoint returns floor((lo+hi)/2) without overflowing, for any lo <= hi.
func Midpoint(lo, hi int) int {
	return (lo & hi) + (lo^hi)>>1
}

// Narrow applies one answer to "is it greater than Midpoint(lo, hi)?".
func Narrow(lo, hi int, greater bool) (int, int) {
	mid := Midpoint(lo, hi)
	if greater {
		return mid + 1, hi
	}
	return lo, mid
}

// Numeric is the binary-search Strategy.
type Numeric struct{}

// NewNumeric returns the numeric strategy.
func NewNumeric() *Numeric { return &Numeric{} }

func (*Numeric) Kind() Kind  { return KindNumeric }
func (*Numeric) Begin() Step { return StepNumericBegin }

// Exec implements Strategy.
func (n *Numeric) Exec(ctx context.Context, step Step, s *State, p Presenter) (Status, error) {
	switch step {
	case StepNumericBegin:
		n.begin(s)
	case StepNumericPropose:
		n.propose(s)
	case StepNumericAwait:
		return n.await(ctx, s, p)
	case StepNumericApply:
		n.apply(s)
	case StepNumericConclude:
		n.conclude(ctx, s, p)
	default:
		return NeedInput, fmt.Errorf("%w: %q is not a numeric step", ErrUnknownStep, step)
	}
	return Advance, nil
}

func (*Numeric) begin(s *State) {
	s.clearRound()
	s.Game = KindNumeric
	if s.Numeric.Lower == s.Numeric.Upper {
		s.Target = StepNumericConclude
		return
	}
	s.Target = StepNumericPropose
}

func (*Numeric) propose(s *State) {
	mid := Midpoint(s.Numeric.Lower, s.Numeric.Upper)
	s.Prompt = &Prompt{
		Kind:    PromptGreater,
		Text:    fmt.Sprintf("Is your number greater than %d?", mid),
		Allowed: yesNo(),
		Mid:     mid,
	}
	s.Target = StepNumericAwait
}

func (*Numeric) await(ctx context.Context, s *State, p Presenter) (Status, error) {
	if s.Prompt == nil {
		s.Target = StepNumericPropose
		return Advance, nil
	}
	ans, st, err := ask(ctx, p, *s.Prompt)
	if st != Advance || err != nil {
		return st, err
	}
	s.Answer = ans
	s.Target = StepNumericApply
	return Advance, nil
}

func (*Numeric) apply(s *State) {
	lo, hi := Narrow(s.Numeric.Lower, s.Numeric.Upper, s.Answer == Yes)
	s.Numeric.Lower, s.Numeric.Upper = lo, hi
	s.Numeric.Asked++
	s.Prompt = nil
	s.Answer = ""

	switch {
	case lo > hi:
		log.Warn().Str("session", s.SessionID).Int("lower", lo).Int("upper", hi).Msg("numeric bounds crossed")
		s.Target = StepNumericConclude
	case lo == hi:
		s.Target = StepNumericConclude
	default:
		s.Target = StepNumericPropose
	}
}

func (*Numeric) conclude(ctx context.Context, s *State, p Presenter) {
	r := RoundResult{Game: KindNumeric, Questions: s.Numeric.Asked}
	if s.Numeric.Lower > s.Numeric.Upper {
		r.Outcome = OutcomeAborted
		p.Notify(ctx, Notice{Level: LevelWarning, Text: "Your answers contradict each other, so no number fits. Let's call this round off."})
	} else {
		r.Outcome = OutcomeGuessed
		r.Guess = fmt.Sprint(s.Numeric.Lower)
		p.Notify(ctx, Notice{Level: LevelSuccess, Text: fmt.Sprintf("Your number is %d! I guessed it in %d questions.", s.Numeric.Lower, s.Numeric.Asked)})
	}
	s.finishRound(r)
}

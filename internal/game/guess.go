// internal/game/guess.go
//
// Free-guess game: the roles of the numeric game reversed. The engine
// picks a secret in [Min, Max] and the player types guesses until one hits.
//
// Steps:
//   begin_round → pick the secret, hint range = full range
//   await_guess → suspension point until the player types a number in range
//   check       → hit: conclude; miss: say higher/lower, narrow the hint range
//   conclude    → announce the win and return to the menu

package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// SecretFunc returns an index in [0, n) for a round, derived from seed.
type SecretFunc func(seed string, round, n int) int

// Guess is the free-guess Strategy.
type Guess struct {
	seed string
	pick SecretFunc
}

// NewGuess returns the free-guess strategy. Secrets come from pick keyed by
// seed and the round number; an empty seed uses the session id, so every
// session gets its own secrets.
func NewGuess(seed string, pick SecretFunc) *Guess {
	return &Guess{seed: seed, pick: pick}
}

func (*Guess) Kind() Kind  { return KindGuess }
func (*Guess) Begin() Step { return StepGuessBegin }

// Exec implements Strategy.
func (g *Guess) Exec(ctx context.Context, step Step, s *State, p Presenter) (Status, error) {
	switch step {
	case StepGuessBegin:
		g.begin(ctx, s, p)
	case StepGuessAwait:
		return g.await(ctx, s, p)
	case StepGuessCheck:
		g.check(ctx, s, p)
	case StepGuessConclude:
		g.conclude(ctx, s, p)
	default:
		return NeedInput, fmt.Errorf("%w: %q is not a guess step", ErrUnknownStep, step)
	}
	return Advance, nil
}

func (g *Guess) begin(ctx context.Context, s *State, p Presenter) {
	s.clearRound()
	s.Game = KindGuess

	seed := g.seed
	if seed == "" {
		seed = s.SessionID
	}
	cfg := s.Config()
	s.Guess.Secret = cfg.Min + g.pick(seed, s.GuessRounds, cfg.Size())
	log.Debug().Str("session", s.SessionID).Int("round", s.GuessRounds+1).Msg("guess secret picked")

	p.Notify(ctx, Notice{Level: LevelInfo, Text: fmt.Sprintf("I'm thinking of a number between %d and %d.", cfg.Min, cfg.Max)})
	s.Target = StepGuessAwait
}

func (*Guess) await(ctx context.Context, s *State, p Presenter) (Status, error) {
	raw, ok, err := p.PresentText(ctx, Prompt{
		Kind:  PromptGuess,
		Text:  fmt.Sprintf("Guess a number between %d and %d:", s.Guess.Lower, s.Guess.Upper),
		Lower: s.Guess.Lower,
		Upper: s.Guess.Upper,
	})
	if err != nil || !ok {
		return NeedInput, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NeedInput, nil
	}

	cfg := s.Config()
	n, err := strconv.Atoi(raw)
	if err != nil || n < cfg.Min || n > cfg.Max {
		p.Notify(ctx, Notice{Level: LevelWarning, Text: fmt.Sprintf("Please enter a whole number from %d to %d.", cfg.Min, cfg.Max)})
		return NeedInput, nil
	}
	s.Guess.Last = n
	s.Guess.Tries++
	s.Target = StepGuessCheck
	return Advance, nil
}

func (*Guess) check(ctx context.Context, s *State, p Presenter) {
	g := &s.Guess
	switch {
	case g.Last == g.Secret:
		s.Target = StepGuessConclude
		return
	case g.Last < g.Secret:
		g.Lower = max(g.Lower, g.Last+1)
		p.Notify(ctx, Notice{Level: LevelWarning, Text: fmt.Sprintf("Incorrect. It's higher than %d, try again!", g.Last)})
	default:
		g.Upper = min(g.Upper, g.Last-1)
		p.Notify(ctx, Notice{Level: LevelWarning, Text: fmt.Sprintf("Incorrect. It's lower than %d, try again!", g.Last)})
	}
	s.Target = StepGuessAwait
}

func (*Guess) conclude(ctx context.Context, s *State, p Presenter) {
	secret := strconv.Itoa(s.Guess.Secret)
	tries := s.Guess.Tries
	word := "guesses"
	if tries == 1 {
		word = "guess"
	}
	p.Notify(ctx, Notice{Level: LevelSuccess, Text: fmt.Sprintf("Correct! You win! The number was %s and you needed %d %s.", secret, tries, word)})
	s.finishRound(RoundResult{
		Game:      KindGuess,
		Outcome:   OutcomeWon,
		Guess:     secret,
		Secret:    secret,
		Questions: tries,
	})
}

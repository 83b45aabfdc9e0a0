// internal/game/word.go
//
// Word elimination guesser.
//
// Steps:
//   begin_round       → collect the player's secret (only used for the reveal),
//                       start from the full word list and the first clue
//   ask_clue          → build the question for the clue at ClueIndex
//   await_answer      → suspension point until the player says yes/no
//   filter_candidates → keep words whose predicate agrees with the answer
//   propose_final     → offer a guess and wait for confirmation
//   conclude          → announce the result and return to the menu
//
// Branch policy after filtering:
//   one candidate left          → propose it; "no" resets and retries
//   no candidate left           → reset to the full list and the first clue
//   clues exhausted, several    → propose the first one as a best effort;
//                                 "no" ends the round and reveals the secret
//   otherwise                   → next clue
//
// The secret is never consulted while guessing.

package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessr/internal/words"
)

// Word is the candidate-elimination Strategy over a words.Table.
type Word struct {
	table *words.Table
}

// NewWord returns the word strategy for table.
func NewWord(table *words.Table) *Word { return &Word{table: table} }

func (*Word) Kind() Kind  { return KindWord }
func (*Word) Begin() Step { return StepWordBegin }

// Table returns the word/clue table the strategy guesses from.
func (w *Word) Table() *words.Table { return w.table }

// Exec implements Strategy.
func (w *Word) Exec(ctx context.Context, step Step, s *State, p Presenter) (Status, error) {
	switch step {
	case StepWordBegin:
		return w.begin(ctx, s, p)
	case StepWordAsk:
		w.askClue(s)
	case StepWordAwait:
		return w.await(ctx, s, p)
	case StepWordFilter:
		w.filter(ctx, s, p)
	case StepWordPropose:
		return w.proposeFinal(ctx, s, p)
	case StepWordConclude:
		w.conclude(ctx, s, p)
	default:
		return NeedInput, fmt.Errorf("%w: %q is not a word step", ErrUnknownStep, step)
	}
	return Advance, nil
}

func (w *Word) begin(ctx context.Context, s *State, p Presenter) (Status, error) {
	list := w.table.All()
	text, ok, err := p.PresentText(ctx, Prompt{
		Kind:    PromptSecret,
		Text:    "Think of a word from this list and enter it (I won't peek): " + strings.Join(list, ", "),
		Allowed: list,
	})
	if err != nil || !ok {
		return NeedInput, err
	}
	secret := words.Normalize(text)
	if secret == "" {
		return NeedInput, nil
	}
	if !w.table.Contains(secret) {
		p.Notify(ctx, Notice{Level: LevelWarning, Text: fmt.Sprintf("%q is not in the list. Pick one of: %s", secret, strings.Join(list, ", "))})
		return NeedInput, nil
	}

	s.clearRound()
	s.Game = KindWord
	s.Word.Candidates = list
	s.Word.Secret = secret
	s.Target = StepWordAsk
	return Advance, nil
}

func (w *Word) askClue(s *State) {
	clue, ok := w.table.Clue(s.Word.ClueIndex)
	if !ok {
		w.branch(s)
		return
	}
	s.Prompt = &Prompt{
		Kind:    PromptClue,
		Text:    clue.Question,
		Allowed: yesNo(),
		Clue:    &clue,
	}
	s.Target = StepWordAwait
}

func (*Word) await(ctx context.Context, s *State, p Presenter) (Status, error) {
	if s.Prompt == nil {
		s.Target = StepWordAsk
		return Advance, nil
	}
	ans, st, err := ask(ctx, p, *s.Prompt)
	if st != Advance || err != nil {
		return st, err
	}
	s.Answer = ans
	s.Target = StepWordFilter
	return Advance, nil
}

func (w *Word) filter(ctx context.Context, s *State, p Presenter) {
	var clue words.Clue
	if s.Prompt != nil && s.Prompt.Clue != nil {
		clue = *s.Prompt.Clue
	} else if c, ok := w.table.Clue(s.Word.ClueIndex); ok {
		clue = c
	} else {
		w.branch(s)
		return
	}

	kept, err := words.Filter(s.Word.Candidates, clue, s.Answer == Yes)
	if err != nil {
		log.Warn().Err(err).Str("session", s.SessionID).Str("clue", clue.Question).Msg("predicate evaluation failed; dropping words")
		p.Notify(ctx, Notice{Level: LevelWarning, Text: fmt.Sprintf("I could not check %q for some words, so I dropped them.", clue.Question)})
	}
	s.Word.Candidates = kept
	s.Word.ClueIndex++
	s.Word.Asked++
	s.Prompt = nil
	s.Answer = ""

	if len(kept) == 0 {
		p.Notify(ctx, Notice{Level: LevelWarning, Text: "No word in my list fits those answers. Let's start over from the first clue."})
	}
	w.branch(s)
}

// branch applies the policy that follows a filtered clue.
func (w *Word) branch(s *State) {
	switch n := len(s.Word.Candidates); {
	case n == 1:
		s.Word.Guess = s.Word.Candidates[0]
		s.Word.BestEffort = false
		s.Target = StepWordPropose
	case n == 0:
		w.retry(s)
	case s.Word.ClueIndex >= len(w.table.Clues):
		s.Word.Guess = s.Word.Candidates[0]
		s.Word.BestEffort = true
		s.Target = StepWordPropose
	default:
		s.Target = StepWordAsk
	}
}

// retry restarts the round's search from the full list and the first clue.
func (w *Word) retry(s *State) {
	s.Word.Candidates = w.table.All()
	s.Word.ClueIndex = 0
	s.Word.Retries++
	s.Word.Guess = ""
	s.Word.BestEffort = false
	s.Target = StepWordAsk
}

func (w *Word) proposeFinal(ctx context.Context, s *State, p Presenter) (Status, error) {
	guess := s.Word.Guess
	ans, st, err := ask(ctx, p, Prompt{
		Kind:    PromptConfirm,
		Text:    fmt.Sprintf("My guess is %q. Am I right?", guess),
		Allowed: yesNo(),
		Guess:   guess,
	})
	if st != Advance || err != nil {
		return st, err
	}

	switch {
	case ans == Yes:
		s.Word.Outcome = OutcomeWon
		s.Target = StepWordConclude
	case s.Word.BestEffort:
		s.Word.Outcome = OutcomeLost
		s.Target = StepWordConclude
	default:
		p.Notify(ctx, Notice{Level: LevelInfo, Text: "Oops! Let me try again."})
		w.retry(s)
	}
	return Advance, nil
}

func (*Word) conclude(ctx context.Context, s *State, p Presenter) {
	r := RoundResult{
		Game:      KindWord,
		Outcome:   s.Word.Outcome,
		Guess:     s.Word.Guess,
		Secret:    s.Word.Secret,
		Questions: s.Word.Asked,
		Retries:   s.Word.Retries,
	}
	if r.Outcome == OutcomeWon {
		p.Notify(ctx, Notice{Level: LevelSuccess, Text: fmt.Sprintf("Yay! I guessed your word: %s.", r.Guess)})
	} else {
		r.Outcome = OutcomeLost
		p.Notify(ctx, Notice{Level: LevelWarning, Text: fmt.Sprintf("I give up. Your word was %q.", r.Secret)})
	}
	s.finishRound(r)
}

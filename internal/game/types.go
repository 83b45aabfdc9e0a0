// internal/game/types.go
//
// Core type definitions for the guessing state machine.
// Defines:
//   - Kind: which strategy owns the turn (none/numeric/word/guess).
//   - Step: the routing target, an enum of every step plus the terminal sentinel.
//   - Status: what a step did (advanced, or suspended waiting for input).
//   - Prompt/Notice/Presenter: the contract with the presentation layer.
//   - Outcome/RoundResult: how a round ended.

package game

import (
	"context"
	"strings"
	"time"

	"github.com/robalobadob/guessr/internal/words"
)

// Kind identifies the game that currently owns the turn.
type Kind string

const (
	KindNone    Kind = "none"
	KindNumeric Kind = "numeric"
	KindWord    Kind = "word"
	KindGuess   Kind = "guess"
)

// Step names the next step to run. The zero value is not a valid step.
type Step string

const (
	StepMenu Step = "menu"

	StepNumericBegin    Step = "numeric.begin_round"
	StepNumericPropose  Step = "numeric.propose_midpoint"
	StepNumericAwait    Step = "numeric.await_answer"
	StepNumericApply    Step = "numeric.apply_answer"
	StepNumericConclude Step = "numeric.conclude"

	StepWordBegin    Step = "word.begin_round"
	StepWordAsk      Step = "word.ask_clue"
	StepWordAwait    Step = "word.await_answer"
	StepWordFilter   Step = "word.filter_candidates"
	StepWordPropose  Step = "word.propose_final"
	StepWordConclude Step = "word.conclude"

	StepGuessBegin    Step = "guess.begin_round"
	StepGuessAwait    Step = "guess.await_guess"
	StepGuessCheck    Step = "guess.check"
	StepGuessConclude Step = "guess.conclude"

	StepEnd Step = "__end__"
)

// Valid reports whether s is a known step or the terminal sentinel.
func (s Step) Valid() bool {
	switch s {
	case StepMenu,
		StepNumericBegin, StepNumericPropose, StepNumericAwait, StepNumericApply, StepNumericConclude,
		StepWordBegin, StepWordAsk, StepWordAwait, StepWordFilter, StepWordPropose, StepWordConclude,
		StepGuessBegin, StepGuessAwait, StepGuessCheck, StepGuessConclude,
		StepEnd:
		return true
	default:
		return false
	}
}

// Terminal reports whether s ends the session.
func (s Step) Terminal() bool { return s == StepEnd }

// Game returns the strategy that owns s; KindNone for the menu and the end.
func (s Step) Game() Kind {
	switch s {
	case StepNumericBegin, StepNumericPropose, StepNumericAwait, StepNumericApply, StepNumericConclude:
		return KindNumeric
	case StepWordBegin, StepWordAsk, StepWordAwait, StepWordFilter, StepWordPropose, StepWordConclude:
		return KindWord
	case StepGuessBegin, StepGuessAwait, StepGuessCheck, StepGuessConclude:
		return KindGuess
	default:
		return KindNone
	}
}

func (s Step) String() string { return string(s) }

// AllSteps lists every step, terminal sentinel last.
func AllSteps() []Step {
	return []Step{
		StepMenu,
		StepNumericBegin, StepNumericPropose, StepNumericAwait, StepNumericApply, StepNumericConclude,
		StepWordBegin, StepWordAsk, StepWordAwait, StepWordFilter, StepWordPropose, StepWordConclude,
		StepGuessBegin, StepGuessAwait, StepGuessCheck, StepGuessConclude,
		StepEnd,
	}
}

// Status is what a step reports back to the controller.
type Status int

const (
	// Advance means the step ran and set the next routing target.
	Advance Status = iota
	// NeedInput means no answer was available; state is untouched and the
	// same step runs again on the next turn.
	NeedInput
)

func (s Status) String() string {
	if s == NeedInput {
		return "need_input"
	}
	return "advance"
}

// Answers to yes/no prompts.
const (
	Yes = "yes"
	No  = "no"
)

// MenuQuit is the menu choice that ends the session.
const MenuQuit = "quit"

// PromptKind tells a presenter what is being asked, so machine players can
// answer without parsing Text.
type PromptKind string

const (
	PromptMenu    PromptKind = "menu"
	PromptGreater PromptKind = "greater_than"
	PromptClue    PromptKind = "clue"
	PromptConfirm PromptKind = "confirm"
	PromptSecret  PromptKind = "secret_word"
	PromptGuess   PromptKind = "free_guess"
)

// Prompt is one question for the presentation layer.
type Prompt struct {
	Kind    PromptKind
	Text    string
	Allowed []string // legal responses; for PromptSecret, the word list

	Mid   int         // PromptGreater: "is it greater than Mid?"
	Clue  *words.Clue // PromptClue
	Guess string      // PromptConfirm

	// PromptGuess: the secret is known to lie in [Lower, Upper].
	Lower int
	Upper int
}

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
)

// Notice is a one-way message for the player.
type Notice struct {
	Level Level
	Text  string
}

// Presenter is the presentation collaborator. It shows a prompt and returns
// exactly one legal response, or ok == false when the player has not
// answered yet. A non-nil error (player quit, input closed) ends the session.
type Presenter interface {
	Present(ctx context.Context, p Prompt) (answer string, ok bool, err error)
	PresentText(ctx context.Context, p Prompt) (text string, ok bool, err error)
	Notify(ctx context.Context, n Notice)
}

// Outcome is how a round ended.
type Outcome string

const (
	OutcomeGuessed Outcome = "guessed" // numeric: converged and announced
	OutcomeWon     Outcome = "won"     // word: guess confirmed; guess: player hit the secret
	OutcomeLost    Outcome = "lost"    // word: best-effort guess rejected, secret revealed
	OutcomeAborted Outcome = "aborted" // numeric: inconsistent answers, no guess
)

// Completed reports whether the outcome counts as a played round.
func (o Outcome) Completed() bool { return o != OutcomeAborted }

// RoundResult summarizes a finished round for observers.
type RoundResult struct {
	SessionID string    `json:"sessionId"`
	Game      Kind      `json:"game"`
	Outcome   Outcome   `json:"outcome"`
	Guess     string    `json:"guess,omitempty"`
	Secret    string    `json:"secret,omitempty"`
	Questions int       `json:"questions"`
	Retries   int       `json:"retries"`
	At        time.Time `json:"at"`
}

// match normalizes raw and returns the allowed response it names.
func match(allowed []string, raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if a == raw {
			return a, true
		}
	}
	return "", false
}

// ask presents p and validates the response. It reports NeedInput when the
// player has not answered or answered with something not in p.Allowed.
func ask(ctx context.Context, pr Presenter, p Prompt) (string, Status, error) {
	raw, ok, err := pr.Present(ctx, p)
	if err != nil {
		return "", NeedInput, err
	}
	if !ok {
		return "", NeedInput, nil
	}
	ans, ok := match(p.Allowed, raw)
	if !ok {
		pr.Notify(ctx, Notice{Level: LevelWarning, Text: "Please answer one of: " + strings.Join(p.Allowed, ", ")})
		return "", NeedInput, nil
	}
	return ans, Advance, nil
}

func yesNo() []string { return []string{Yes, No} }

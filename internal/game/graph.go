package game

import (
	"fmt"
	"io"
)

// Edge is one possible transition of the state machine.
type Edge struct {
	From  Step   `json:"from"`
	To    Step   `json:"to"`
	Label string `json:"label,omitempty"`
}

// Transitions lists every transition a step can make, including a step
// staying put while it waits for input. It is a read-only description for
// diagrams; the engine does not consult it.
func Transitions() []Edge {
	return []Edge{
		{StepMenu, StepMenu, "no answer"},
		{StepMenu, StepNumericBegin, "numeric"},
		{StepMenu, StepWordBegin, "word"},
		{StepMenu, StepGuessBegin, "guess"},
		{StepMenu, StepEnd, "quit"},

		{StepNumericBegin, StepNumericPropose, ""},
		{StepNumericBegin, StepNumericConclude, "single value"},
		{StepNumericPropose, StepNumericAwait, ""},
		{StepNumericAwait, StepNumericAwait, "no answer"},
		{StepNumericAwait, StepNumericApply, "yes/no"},
		{StepNumericApply, StepNumericPropose, "lower < upper"},
		{StepNumericApply, StepNumericConclude, "lower >= upper"},
		{StepNumericConclude, StepMenu, ""},

		{StepWordBegin, StepWordBegin, "no secret"},
		{StepWordBegin, StepWordAsk, ""},
		{StepWordAsk, StepWordAwait, ""},
		{StepWordAsk, StepWordPropose, "clues exhausted"},
		{StepWordAwait, StepWordAwait, "no answer"},
		{StepWordAwait, StepWordFilter, "yes/no"},
		{StepWordFilter, StepWordAsk, "several left / none left: reset"},
		{StepWordFilter, StepWordPropose, "one left / clues exhausted"},
		{StepWordPropose, StepWordPropose, "no answer"},
		{StepWordPropose, StepWordConclude, "yes / best-effort no"},
		{StepWordPropose, StepWordAsk, "no: reset"},
		{StepWordConclude, StepMenu, ""},

		{StepGuessBegin, StepGuessAwait, ""},
		{StepGuessAwait, StepGuessAwait, "no answer / not a number"},
		{StepGuessAwait, StepGuessCheck, "number"},
		{StepGuessCheck, StepGuessAwait, "miss"},
		{StepGuessCheck, StepGuessConclude, "hit"},
		{StepGuessConclude, StepMenu, ""},
	}
}

// WriteDOT renders Transitions as a Graphviz digraph.
func WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph guessr {\n  rankdir=LR;"); err != nil {
		return err
	}
	for _, s := range AllSteps() {
		shape := "box"
		if s.Terminal() {
			shape = "doublecircle"
		}
		if _, err := fmt.Fprintf(w, "  %q [shape=%s];\n", s, shape); err != nil {
			return err
		}
	}
	for _, e := range Transitions() {
		var err error
		if e.Label == "" {
			_, err = fmt.Fprintf(w, "  %q -> %q;\n", e.From, e.To)
		} else {
			_, err = fmt.Fprintf(w, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

package words

import (
	"errors"
	"fmt"
)

// PredicateError reports a clue that could not be evaluated for one word.
type PredicateError struct {
	Word     string
	Question string
	Err      error
}

func (e *PredicateError) Error() string {
	return fmt.Sprintf("clue %q on %q: %v", e.Question, e.Word, e.Err)
}

func (e *PredicateError) Unwrap() error { return e.Err }

// Filter keeps the candidates consistent with answering c with yes (true)
// or no (false). Order is preserved.
//
// A word whose predicate fails (error or panic) is dropped and reported in
// the returned error; the remaining words are still filtered, so the kept
// slice is valid even when err != nil.
func Filter(candidates []string, c Clue, yes bool) ([]string, error) {
	kept := make([]string, 0, len(candidates))
	var errs []error
	for _, w := range candidates {
		holds, err := eval(c, w)
		if err != nil {
			errs = append(errs, &PredicateError{Word: w, Question: c.Question, Err: err})
			continue
		}
		if holds == yes {
			kept = append(kept, w)
		}
	}
	return kept, errors.Join(errs...)
}

// eval runs the predicate, turning a panic into an error.
func eval(c Clue, w string) (holds bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predicate panic: %v", r)
		}
	}()
	return c.Predicate.Eval(w)
}

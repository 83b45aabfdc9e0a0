package present

import (
	"context"
	"sync"

	"github.com/robalobadob/guessr/internal/game"
)

// Script is a presenter fed from a queue of answers. When the queue is
// empty it reports that the player has not answered yet, which suspends the
// controller until more answers are pushed. It keeps every prompt and
// notice it was given, for replays and tests.
type Script struct {
	mu      sync.Mutex
	answers []string
	prompts []game.Prompt
	notices []game.Notice
}

// NewScript returns a Script that will give answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: append([]string(nil), answers...)}
}

// Push queues more answers.
func (s *Script) Push(answers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answers...)
}

// Pending returns the number of answers not yet consumed.
func (s *Script) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Present implements game.Presenter.
func (s *Script) Present(_ context.Context, p game.Prompt) (string, bool, error) {
	return s.next(p)
}

// PresentText implements game.Presenter.
func (s *Script) PresentText(_ context.Context, p game.Prompt) (string, bool, error) {
	return s.next(p)
}

// Notify implements game.Presenter.
func (s *Script) Notify(_ context.Context, n game.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

// Prompts returns the prompts shown so far, including unanswered ones.
func (s *Script) Prompts() []game.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.Prompt(nil), s.prompts...)
}

// Notices returns the notices shown so far.
func (s *Script) Notices() []game.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game.Notice(nil), s.notices...)
}

func (s *Script) next(p game.Prompt) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p)
	if len(s.answers) == 0 {
		return "", false, nil
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, true, nil
}

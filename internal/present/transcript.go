package present

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/robalobadob/guessr/internal/game"
)

// Transcript wraps a presenter and writes every answered prompt and every
// notice to out, in the order they happen. Unanswered prompts are not
// written, so a suspended turn does not repeat lines.
type Transcript struct {
	next game.Presenter
	mu   sync.Mutex
	out  io.Writer
}

// NewTranscript decorates next.
func NewTranscript(next game.Presenter, out io.Writer) *Transcript {
	return &Transcript{next: next, out: out}
}

// Present implements game.Presenter.
func (t *Transcript) Present(ctx context.Context, p game.Prompt) (string, bool, error) {
	ans, ok, err := t.next.Present(ctx, p)
	if ok && err == nil {
		t.write(p, ans)
	}
	return ans, ok, err
}

// PresentText implements game.Presenter.
func (t *Transcript) PresentText(ctx context.Context, p game.Prompt) (string, bool, error) {
	ans, ok, err := t.next.PresentText(ctx, p)
	if ok && err == nil {
		t.write(p, ans)
	}
	return ans, ok, err
}

// Notify implements game.Presenter.
func (t *Transcript) Notify(ctx context.Context, n game.Notice) {
	t.next.Notify(ctx, n)
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, RenderNotice(n))
}

func (t *Transcript) write(p game.Prompt, ans string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	text := p.Text
	if p.Kind == game.PromptSecret {
		text = "Secret word"
	}
	fmt.Fprintf(t.out, "%s %s\n  %s %s\n", Styles.Title.Render("?"), text, Styles.Muted.Render(">"), ans)
}

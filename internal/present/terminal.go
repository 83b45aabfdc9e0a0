// internal/present/terminal.go
//
// Interactive terminal presenter.
//
// Behavior:
//   - On a TTY, yes/no and menu prompts are huh select fields over the
//     allowed answers and free-text prompts are huh input fields.
//   - Otherwise (a pipe or a file) every prompt reads one plain line. The
//     raw line is returned for the game to validate; a blank line is no
//     answer yet; end of input is io.EOF.
//   - Ctrl+C surfaces as huh.ErrUserAborted; see IsAbort.

package present

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/guessr/internal/game"
)

// Terminal presents prompts on the controlling terminal, or reads answers
// line by line when input is not one.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewTerminal reads answers from in and writes prompts and notices to out.
// Forms are used only when in is a terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		fd := f.Fd()
		t.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return t
}

// Present implements game.Presenter.
func (t *Terminal) Present(ctx context.Context, p game.Prompt) (string, bool, error) {
	if !t.tty {
		return t.readLine(ctx, p.Text, "["+strings.Join(p.Allowed, "/")+"]")
	}
	var choice string
	field := huh.NewSelect[string]().
		Title(p.Text).
		Options(huh.NewOptions(p.Allowed...)...).
		Value(&choice)
	if err := t.run(ctx, field); err != nil {
		return "", false, err
	}
	return choice, choice != "", nil
}

// PresentText implements game.Presenter.
func (t *Terminal) PresentText(ctx context.Context, p game.Prompt) (string, bool, error) {
	if !t.tty {
		return t.readLine(ctx, p.Text, "")
	}
	var text string
	field := huh.NewInput().
		Title(p.Text).
		Value(&text)
	if err := t.run(ctx, field); err != nil {
		return "", false, err
	}
	text = strings.TrimSpace(text)
	return text, text != "", nil
}

// Notify implements game.Presenter.
func (t *Terminal) Notify(_ context.Context, n game.Notice) {
	fmt.Fprintln(t.out, RenderNotice(n))
}

// readLine shows the prompt and reads one line. A final line without a
// newline still counts; io.EOF is returned only once nothing is left.
func (t *Terminal) readLine(ctx context.Context, text, hint string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	prompt := Styles.Title.Render(text)
	if hint != "" {
		prompt += " " + Styles.Muted.Render(hint)
	}
	fmt.Fprintln(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false, err
	}
	line = strings.TrimSpace(line)
	return line, line != "", nil
}

func (t *Terminal) run(ctx context.Context, field huh.Field) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("present: terminal form failed: %v", r)
		}
	}()
	return huh.NewForm(huh.NewGroup(field)).
		WithOutput(t.out).
		RunWithContext(ctx)
}

// IsAbort reports whether err means the player left rather than a failure.
func IsAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled)
}

package present

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessr/internal/game"
)

func TestTerminalReadsLinesUntilEOF(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("numeric\n\n  Maybe \nyes"), &out)
	p := game.Prompt{Kind: game.PromptMenu, Text: "Choose a game", Allowed: []string{"numeric", "word", "quit"}}

	steps := []struct {
		answer string
		ok     bool
	}{
		{"numeric", true},
		{"", false},     // blank line: no answer yet
		{"Maybe", true}, // raw; the game rejects it
		{"yes", true},   // last line without a newline
	}
	for _, want := range steps {
		a, ok, err := term.Present(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, want.answer, a)
		assert.Equal(t, want.ok, ok)
	}

	a, ok, err := term.Present(ctx, p)
	require.ErrorIs(t, err, io.EOF)
	assert.True(t, IsAbort(err))
	assert.False(t, ok)
	assert.Empty(t, a)

	assert.Contains(t, out.String(), "Choose a game")
	assert.Contains(t, out.String(), "[numeric/word/quit]")
}

func TestTerminalPresentText(t *testing.T) {
	term := NewTerminal(strings.NewReader("  Tiger \n"), io.Discard)

	a, ok, err := term.PresentText(context.Background(), game.Prompt{Kind: game.PromptSecret, Text: "Secret word"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Tiger", a)

	_, ok, err = term.PresentText(context.Background(), game.Prompt{Kind: game.PromptSecret, Text: "Secret word"})
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, ok)
}

func TestTerminalHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term := NewTerminal(strings.NewReader("numeric\n"), io.Discard)

	_, ok, err := term.Present(ctx, game.Prompt{Kind: game.PromptMenu, Allowed: []string{"numeric"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

// Input that runs out mid-round ends the session without inventing answers.
func TestTerminalEndOfInputStopsController(t *testing.T) {
	for name, input := range map[string]string{
		"after menu":     "numeric\n",
		"after bad line": "numeric\nmaybe\n",
		"after blanks":   "numeric\n\n\nyes\n",
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			st, err := game.NewState(game.DefaultConfig())
			require.NoError(t, err)
			c := game.NewController(st, NewTerminal(strings.NewReader(input), &out), game.WithStrategies(game.NewNumeric()))

			err = c.Run(context.Background())
			require.Error(t, err)
			assert.True(t, IsAbort(err))
			assert.False(t, c.Finished())
			assert.Zero(t, c.State().NumericRounds)
			assert.NotContains(t, out.String(), "Your number is")
		})
	}
}

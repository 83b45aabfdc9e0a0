package game_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessr/internal/game"
)

func TestTransitionsReferenceValidSteps(t *testing.T) {
	for _, e := range game.Transitions() {
		assert.True(t, e.From.Valid(), "from %q", e.From)
		assert.True(t, e.To.Valid(), "to %q", e.To)
		assert.False(t, e.From.Terminal(), "edge out of the terminal step")
		if g := e.From.Game(); g != game.KindNone && e.To != game.StepMenu {
			assert.Equal(t, g, e.To.Game(), "%s -> %s leaves its game", e.From, e.To)
		}
	}
}

func TestEveryStepReachableFromMenu(t *testing.T) {
	next := map[game.Step][]game.Step{}
	for _, e := range game.Transitions() {
		next[e.From] = append(next[e.From], e.To)
	}
	seen := map[game.Step]bool{game.StepMenu: true}
	queue := []game.Step{game.StepMenu}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, n := range next[s] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	for _, s := range game.AllSteps() {
		assert.True(t, seen[s], "%s unreachable", s)
	}
}

func TestStepClassification(t *testing.T) {
	assert.False(t, game.Step("").Valid())
	assert.False(t, game.Step("word.guess").Valid())
	assert.True(t, game.StepEnd.Valid())
	assert.True(t, game.StepEnd.Terminal())
	assert.False(t, game.StepMenu.Terminal())
	assert.Equal(t, game.KindNone, game.StepMenu.Game())
	assert.Equal(t, game.KindNumeric, game.StepNumericApply.Game())
	assert.Equal(t, game.KindWord, game.StepWordFilter.Game())
	assert.Equal(t, game.KindGuess, game.StepGuessCheck.Game())
	assert.True(t, game.StepGuessAwait.Valid())
	assert.Equal(t, "Menu", game.ActionLabel(game.KindNone))
	assert.Equal(t, "Game: word", game.ActionLabel(game.KindWord))
}

func TestWriteDOT(t *testing.T) {
	var b strings.Builder
	require.NoError(t, game.WriteDOT(&b))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "digraph guessr {"))
	assert.Contains(t, out, `"__end__" [shape=doublecircle];`)
	assert.Contains(t, out, `"menu" -> "numeric.begin_round" [label="numeric"];`)
	assert.Contains(t, out, `"numeric.begin_round" -> "numeric.propose_midpoint";`)
	assert.Contains(t, out, `"guess.check" -> "guess.await_guess" [label="miss"];`)
	assert.Equal(t, len(game.Transitions()), strings.Count(out, "->"))
}

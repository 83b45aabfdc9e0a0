package game_test

import (
	"context"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/present"
)

// fixedSecret picks value-Min for every round, so the secret is value.
func fixedSecret(t *testing.T, cfg game.Config, value int) game.SecretFunc {
	return func(seed string, round, n int) int {
		assert.NotEmpty(t, seed)
		assert.Equal(t, cfg.Size(), n)
		return value - cfg.Min
	}
}

func newGuessScripted(t *testing.T, cfg game.Config, secret int, answers ...string) (*game.Controller, *present.Script, *roundLog) {
	t.Helper()
	s, err := game.NewState(cfg)
	require.NoError(t, err)
	sc := present.NewScript(answers...)
	rl := &roundLog{}
	c := game.NewController(s, sc,
		game.WithStrategies(game.NewGuess("", fixedSecret(t, cfg, secret))),
		game.WithObserver(rl),
	)
	return c, sc, rl
}

func TestGuessCorrectFirstTryEndsRound(t *testing.T) {
	cfg := game.Config{Min: 1, Max: 10}
	c, sc, rl := newGuessScripted(t, cfg, 5, "guess", "5", "quit")

	assert.True(t, turn(t, c))

	require.Len(t, rl.rounds, 1)
	r := rl.rounds[0]
	assert.Equal(t, game.KindGuess, r.Game)
	assert.Equal(t, game.OutcomeWon, r.Outcome)
	assert.Equal(t, "5", r.Guess)
	assert.Equal(t, "5", r.Secret)
	assert.Equal(t, 1, r.Questions)
	assert.Equal(t, 1, c.State().GuessRounds)
	assert.Equal(t, []game.Kind{game.KindGuess}, c.State().History)

	notices := sc.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, "I'm thinking of a number between 1 and 10.", notices[0].Text)
	assert.Contains(t, notices[len(notices)-1].Text, "Correct! You win!")
}

func TestGuessWrongGuessLoopsWithHints(t *testing.T) {
	cfg := game.Config{Min: 1, Max: 10}
	c, sc, rl := newGuessScripted(t, cfg, 7, "guess", "3", "9", "8", "7")

	// Every miss goes back to await_guess; only the hit ends the round.
	assert.False(t, turn(t, c))

	var hints []string
	var ranges [][2]int
	for _, p := range sc.Prompts() {
		if p.Kind == game.PromptGuess {
			ranges = append(ranges, [2]int{p.Lower, p.Upper})
		}
	}
	for _, n := range sc.Notices() {
		if n.Level == game.LevelWarning {
			hints = append(hints, n.Text)
		}
	}
	assert.Equal(t, []string{
		"Incorrect. It's higher than 3, try again!",
		"Incorrect. It's lower than 9, try again!",
		"Incorrect. It's lower than 8, try again!",
	}, hints)
	assert.Equal(t, [][2]int{{1, 10}, {4, 10}, {4, 8}, {4, 7}}, ranges)

	require.Len(t, rl.rounds, 1)
	assert.Equal(t, "7", rl.rounds[0].Guess)
	assert.Equal(t, 4, rl.rounds[0].Questions)
	assert.Equal(t, game.StepMenu, c.State().Target)
}

func TestGuessBlankInputIsNoAnswer(t *testing.T) {
	cfg := game.Config{Min: 1, Max: 10}
	c, sc, rl := newGuessScripted(t, cfg, 2, "guess", "  ")

	assert.False(t, turn(t, c))
	before := c.State().Clone()
	steps := c.Tracker().Len()

	// Nothing queued: the same prompt is asked again and nothing moves.
	assert.False(t, turn(t, c))
	assert.Equal(t, game.StepGuessAwait, c.State().Target)
	assert.Equal(t, before.Guess, c.State().Guess)
	assert.Equal(t, steps, c.Tracker().Len())
	assert.Empty(t, rl.rounds)

	sc.Push("2")
	assert.False(t, turn(t, c))
	require.Len(t, rl.rounds, 1)
	assert.Equal(t, 1, rl.rounds[0].Questions)
}

func TestGuessRejectsNonNumbersAndOutOfRange(t *testing.T) {
	cfg := game.Config{Min: 1, Max: 10}
	c, sc, rl := newGuessScripted(t, cfg, 4, "guess", "four", "11", "0", " 4 ")

	assert.False(t, turn(t, c))
	assert.Equal(t, 0, c.State().Guess.Tries)
	assert.False(t, turn(t, c))
	assert.False(t, turn(t, c))
	assert.False(t, turn(t, c))

	require.Len(t, rl.rounds, 1)
	assert.Equal(t, 1, rl.rounds[0].Questions, "rejected input is not a guess")
	var warnings int
	for _, n := range sc.Notices() {
		if n.Text == "Please enter a whole number from 1 to 10." {
			warnings++
		}
	}
	assert.Equal(t, 3, warnings)
}

func TestGuessSecretDependsOnRound(t *testing.T) {
	cfg := game.Config{Min: 1, Max: 10}
	var rounds []int
	pick := func(seed string, round, n int) int {
		assert.Equal(t, "fixed", seed)
		rounds = append(rounds, round)
		return round % n
	}
	s, err := game.NewState(cfg)
	require.NoError(t, err)
	// Secrets are 1 then 2; the player finds each on the first try.
	sc := present.NewScript("guess", "1", "guess", "2", "quit")
	rl := &roundLog{}
	c := game.NewController(s, sc, game.WithStrategies(game.NewGuess("fixed", pick)), game.WithObserver(rl))

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []int{0, 1}, rounds)
	require.Len(t, rl.rounds, 2)
	for i, r := range rl.rounds {
		assert.Equal(t, strconv.Itoa(i+1), r.Secret)
		assert.Equal(t, 1, r.Questions)
	}
	assert.Equal(t, 2, c.State().GuessRounds)
}

func TestGuessExecRejectsForeignStep(t *testing.T) {
	s, err := game.NewState(game.DefaultConfig())
	require.NoError(t, err)
	g := game.NewGuess("", func(string, int, int) int { return 0 })
	_, err = g.Exec(context.Background(), game.StepNumericApply, s, present.NewScript())
	assert.ErrorIs(t, err, game.ErrUnknownStep)
}

func TestGuessTransitionsAreDeclared(t *testing.T) {
	declared := game.Transitions()
	c, _, _ := newGuessScripted(t, game.Config{Min: 1, Max: 10}, 6, "guess", "2", "x", "6", "quit")
	require.NoError(t, c.Run(context.Background()))
	assert.True(t, c.Finished())

	for rec := range c.Tracker().Steps() {
		ok := slices.ContainsFunc(declared, func(e game.Edge) bool { return e.From == rec.Step && e.To == rec.Next })
		assert.True(t, ok, "undeclared transition %s -> %s", rec.Step, rec.Next)
	}
}

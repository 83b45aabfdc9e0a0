package metrics_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/metrics"
	"github.com/robalobadob/guessr/internal/present"
	"github.com/robalobadob/guessr/internal/words"
)

func newTestMetrics(t *testing.T) (*metrics.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return metrics.New(reg), reg
}

func TestRoundFinished(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RoundFinished(game.RoundResult{Game: game.KindWord, Outcome: game.OutcomeWon, Questions: 4, Retries: 2})
	m.RoundFinished(game.RoundResult{Game: game.KindNumeric, Outcome: game.OutcomeAborted, Questions: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsTotal.WithLabelValues("word", "won")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsTotal.WithLabelValues("numeric", "aborted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoundRetriesTotal.WithLabelValues("word")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RoundQuestions))
}

func TestObservesControllerSession(t *testing.T) {
	m, reg := newTestMetrics(t)
	tbl, err := words.Default()
	require.NoError(t, err)
	s, err := game.NewState(game.Config{Min: 1, Max: 2})
	require.NoError(t, err)
	sc := present.NewScript("numeric", "yes", "quit")
	c := game.NewController(s, sc, game.WithStrategies(game.NewNumeric(), game.NewWord(tbl)), game.WithObserver(m))

	done, err := c.Turn(context.Background())
	require.NoError(t, err)
	require.True(t, done)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StepsTotal.WithLabelValues("menu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StepsTotal.WithLabelValues("numeric.apply_answer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsTotal.WithLabelValues("numeric", "guessed")))

	expected := `
# HELP guessr_rounds_total Total finished rounds by game and outcome
# TYPE guessr_rounds_total counter
guessr_rounds_total{game="numeric",outcome="guessed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "guessr_rounds_total"))
}

func TestObservesFreeGuessRound(t *testing.T) {
	m, _ := newTestMetrics(t)
	s, err := game.NewState(game.Config{Min: 1, Max: 10})
	require.NoError(t, err)
	pickThree := func(string, int, int) int { return 2 }
	sc := present.NewScript("guess", "8", "3", "quit")
	c := game.NewController(s, sc, game.WithStrategies(game.NewGuess("seed", pickThree)), game.WithObserver(m))

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundsTotal.WithLabelValues("guess", "won")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StepsTotal.WithLabelValues("guess.check")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RoundQuestions))
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}

// Package metrics exports Prometheus metrics for game sessions.
//
// Metrics is a game.Observer: attach it to a Controller with
// game.WithObserver and expose its registry through the inspector's
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/guessr/internal/game"
)

const namespace = "guessr"

// Metrics holds the collectors for one registry.
type Metrics struct {
	// StepsTotal counts executed steps. Labels: step.
	StepsTotal *prometheus.CounterVec

	// RoundsTotal counts finished rounds. Labels: game, outcome.
	RoundsTotal *prometheus.CounterVec

	// RoundQuestions observes questions asked per finished round. Labels: game.
	RoundQuestions *prometheus.HistogramVec

	// RoundRetriesTotal counts full resets inside rounds. Labels: game.
	RoundRetriesTotal *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StepsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Total executed steps by step name",
		}, []string{"step"}),
		RoundsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Total finished rounds by game and outcome",
		}, []string{"game", "outcome"}),
		RoundQuestions: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_questions",
			Help:      "Questions asked, or guesses taken, per finished round",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		}, []string{"game"}),
		RoundRetriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "round_retries_total",
			Help:      "Total candidate-set resets by game",
		}, []string{"game"}),
	}
}

// StepRecorded implements game.Observer.
func (m *Metrics) StepRecorded(rec game.StepRecord) {
	m.StepsTotal.WithLabelValues(string(rec.Step)).Inc()
}

// RoundFinished implements game.Observer.
func (m *Metrics) RoundFinished(r game.RoundResult) {
	g := string(r.Game)
	m.RoundsTotal.WithLabelValues(g, string(r.Outcome)).Inc()
	m.RoundQuestions.WithLabelValues(g).Observe(float64(r.Questions))
	if r.Retries > 0 {
		m.RoundRetriesTotal.WithLabelValues(g).Add(float64(r.Retries))
	}
}

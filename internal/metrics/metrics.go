// Package metrics exposes benchmark results as Prometheus metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"crosswarped.com/wordle"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the per-game counters.
//
// Metrics:
//   - wordle_games_total{outcome} - games played, outcome is "won" or "lost"
//   - wordle_game_tries - histogram of guesses per game
//   - wordle_guesses_total{source} - guesses by how they were chosen
//   - wordle_oracle_calls_total - oracle calls, failed ones included
//   - wordle_invalid_replies_total - oracle replies rejected by validation
//   - wordle_oracle_failures_total - oracle calls that errored or timed out
//   - wordle_game_duration_seconds - histogram of game latency
type Metrics struct {
	GamesTotal          *prometheus.CounterVec
	Tries               prometheus.Histogram
	GuessesTotal        *prometheus.CounterVec
	OracleCallsTotal    prometheus.Counter
	InvalidRepliesTotal prometheus.Counter
	OracleFailuresTotal prometheus.Counter
	GameDuration        prometheus.Histogram
}

// Default returns metrics registered once with the default registerer.
func Default() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = New(prometheus.DefaultRegisterer)
	})
	return globalMetrics
}

// New registers a fresh set of metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GamesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_total",
				Help: "Total number of games played",
			},
			[]string{"outcome"},
		),
		Tries: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordle_game_tries",
			Help:    "Number of guesses per game",
			Buckets: prometheus.LinearBuckets(1, 1, wordle.DefaultMaxTries),
		}),
		GuessesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_guesses_total",
				Help: "Total number of guesses by source",
			},
			[]string{"source"},
		),
		OracleCallsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_oracle_calls_total",
			Help: "Total number of oracle calls",
		}),
		InvalidRepliesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_invalid_replies_total",
			Help: "Total number of oracle replies rejected by validation",
		}),
		OracleFailuresTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "wordle_oracle_failures_total",
			Help: "Total number of failed or timed out oracle calls",
		}),
		GameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordle_game_duration_seconds",
			Help:    "Duration of a game in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}

// ObserveGame records a finished game.
func (m *Metrics) ObserveGame(res wordle.Result) {
	outcome := "lost"
	if res.Won {
		outcome = "won"
	}
	m.GamesTotal.WithLabelValues(outcome).Inc()
	m.Tries.Observe(float64(res.Tries))
	for _, a := range res.Attempts {
		m.GuessesTotal.WithLabelValues(a.Source.String()).Inc()
	}
	m.OracleCallsTotal.Add(float64(res.OracleCalls))
	m.InvalidRepliesTotal.Add(float64(res.InvalidReplies))
	m.OracleFailuresTotal.Add(float64(res.Failures))
	m.GameDuration.Observe(res.Latency.Seconds())
}

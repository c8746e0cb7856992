package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"crosswarped.com/wordle"
)

func TestObserveGame(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveGame(wordle.Result{
		Won:   true,
		Tries: 3,
		Attempts: []wordle.GuessAttempt{
			{Source: wordle.SourceOpener},
			{Source: wordle.SourceOracle, OracleCalls: 2, InvalidReplies: 1},
			{Source: wordle.SourceSoleCandidate},
		},
		OracleCalls:    2,
		InvalidReplies: 1,
		Latency:        120 * time.Millisecond,
	})
	m.ObserveGame(wordle.Result{
		Tries:       6,
		Attempts:    []wordle.GuessAttempt{{Source: wordle.SourceFallback}},
		OracleCalls: 3,
		Failures:    3,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues("won")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues("lost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuessesTotal.WithLabelValues("oracle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GuessesTotal.WithLabelValues("fallback")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.OracleCallsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidRepliesTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OracleFailuresTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Tries, "wordle_game_tries"))
}

func TestDefault_RegistersOnce(t *testing.T) {
	assert.Same(t, Default(), Default())
}

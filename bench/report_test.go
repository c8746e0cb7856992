package bench

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	for _, tc := range []struct {
		r        Ratio
		wantJSON string
		wantStr  string
	}{
		{Ratio(math.Inf(1)), "null", "∞"},
		{Ratio(math.NaN()), "null", "NaN"},
		{Ratio(2.5), "2.5", "2.50"},
		{Ratio(0), "0", "0.00"},
	} {
		data, err := json.Marshal(tc.r)
		require.NoError(t, err)
		assert.Equal(t, tc.wantJSON, string(data))
		assert.Equal(t, tc.wantStr, tc.r.String())
	}
}

func TestReport_Print(t *testing.T) {
	r := &Report{
		RunID: "run-1",
		Model: "llama3.2:3b",
		Games: []GameReport{
			{Won: true, Tries: 3, Guesses: []string{"salet", "trial", "tidal"}, OracleCalls: 2, GoodGuesses: 3, BadGuesses: 1},
			{Error: "boom"},
		},
	}
	r.Summary = Summarize(r.Games)

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "Model:           llama3.2:3b")
	assert.Contains(t, out, "Win Rate:        50.0% (1/2)")
	assert.Contains(t, out, "Good/Bad Ratio:  3.00")
	assert.Contains(t, out, "Errors:          1")
}

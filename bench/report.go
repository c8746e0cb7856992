package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"crosswarped.com/wordle"
)

// GameReport is the outcome of one benchmark game.
type GameReport struct {
	ID      string   `json:"id"`
	Index   int      `json:"index"`
	Secret  string   `json:"secret"`
	Won     bool     `json:"won"`
	Tries   int      `json:"tries"`
	Guesses []string `json:"guesses"`
	Rows    []string `json:"rows"`
	Sources []string `json:"sources"`

	OracleCalls    int `json:"oracle_calls"`
	InvalidReplies int `json:"invalid_replies"`
	Failures       int `json:"failures"`
	Fallbacks      int `json:"fallbacks"`
	// GoodGuesses counts guesses chosen without falling back; BadGuesses counts rejected or failed
	// oracle calls.
	GoodGuesses int `json:"good_guesses"`
	BadGuesses  int `json:"bad_guesses"`

	Completion          float64 `json:"completion"`
	LatencySeconds      float64 `json:"latency_seconds"`
	GuessLatencySeconds float64 `json:"guess_latency_seconds"`

	Error string `json:"error,omitempty"`
}

func newGameReport(id string, index int, res wordle.Result) GameReport {
	gr := GameReport{
		ID:             id,
		Index:          index,
		Secret:         res.Secret.String(),
		Won:            res.Won,
		Tries:          len(res.History),
		OracleCalls:    res.OracleCalls,
		InvalidReplies: res.InvalidReplies,
		Failures:       res.Failures,
		Fallbacks:      res.Fallbacks,
		BadGuesses:     res.InvalidReplies + res.Failures,
		Completion:     res.Completion(),
		LatencySeconds: res.Latency.Seconds(),
	}

	var guessLatency time.Duration
	for i, t := range res.History {
		a := res.Attempts[i]
		gr.Guesses = append(gr.Guesses, t.Guess.String())
		gr.Rows = append(gr.Rows, t.Pattern.Emoji())
		gr.Sources = append(gr.Sources, a.Source.String())
		if a.Valid {
			gr.GoodGuesses++
		}
		guessLatency += a.Latency
	}
	if n := len(res.History); n > 0 {
		gr.GuessLatencySeconds = guessLatency.Seconds() / float64(n)
	}
	return gr
}

// Ratio is a float that encodes +Inf as JSON null.
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(r), 0) || math.IsNaN(float64(r)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

func (r Ratio) String() string {
	if math.IsInf(float64(r), 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", float64(r))
}

// Summary aggregates a run.
type Summary struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Errors int `json:"errors"`

	WinRate                float64 `json:"win_rate"`
	AvgTries               float64 `json:"avg_tries"`
	AvgLatencySeconds      float64 `json:"avg_latency_seconds"`
	AvgGuessLatencySeconds float64 `json:"avg_guess_latency_seconds"`
	AvgCompletion          float64 `json:"avg_completion"`

	TotalOracleCalls int `json:"total_oracle_calls"`
	TotalGoodGuesses int `json:"total_good_guesses"`
	TotalBadGuesses  int `json:"total_bad_guesses"`
	// GoodBadRatio is +Inf, serialized as null, when there were no bad guesses.
	GoodBadRatio           Ratio   `json:"good_bad_ratio"`
	AvgOracleCallsPerGuess float64 `json:"avg_oracle_calls_per_guess"`
}

// Summarize aggregates games. Averages over zero games are zero.
func Summarize(games []GameReport) Summary {
	var s Summary
	var tries, guesses int
	var latency, guessLatency, completion float64
	for _, g := range games {
		s.Games++
		if g.Won {
			s.Wins++
		}
		if g.Error != "" {
			s.Errors++
		}
		tries += g.Tries
		guesses += len(g.Guesses)
		latency += g.LatencySeconds
		guessLatency += g.GuessLatencySeconds
		completion += g.Completion
		s.TotalOracleCalls += g.OracleCalls
		s.TotalGoodGuesses += g.GoodGuesses
		s.TotalBadGuesses += g.BadGuesses
	}

	if s.Games > 0 {
		n := float64(s.Games)
		s.WinRate = float64(s.Wins) / n
		s.AvgTries = float64(tries) / n
		s.AvgLatencySeconds = latency / n
		s.AvgGuessLatencySeconds = guessLatency / n
		s.AvgCompletion = completion / n
	}
	if s.TotalBadGuesses > 0 {
		s.GoodBadRatio = Ratio(float64(s.TotalGoodGuesses) / float64(s.TotalBadGuesses))
	} else {
		s.GoodBadRatio = Ratio(math.Inf(1))
	}
	if s.TotalGoodGuesses > 0 {
		s.AvgOracleCallsPerGuess = float64(s.TotalOracleCalls) / float64(s.TotalGoodGuesses)
	}
	return s
}

// Report is the result of a Runner.Run.
type Report struct {
	RunID     string       `json:"run_id"`
	Model     string       `json:"model"`
	Seed      uint64       `json:"seed"`
	StartedAt time.Time    `json:"started_at"`
	Games     []GameReport `json:"games"`
	Summary   Summary      `json:"summary"`
}

// Print writes a human readable summary.
func (r *Report) Print(w io.Writer) {
	s := r.Summary
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, "  WORDLE BENCHMARK RESULTS")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "  Run:             %s\n", r.RunID)
	fmt.Fprintf(w, "  Model:           %s\n", r.Model)
	fmt.Fprintf(w, "  Games:           %d\n", s.Games)
	fmt.Fprintf(w, "  Win Rate:        %.1f%% (%d/%d)\n", 100*s.WinRate, s.Wins, s.Games)
	fmt.Fprintf(w, "  Average Tries:   %.2f\n", s.AvgTries)
	fmt.Fprintf(w, "  Average Latency: %.2fs\n", s.AvgLatencySeconds)
	fmt.Fprintf(w, "  Guess Latency:   %.2fs\n", s.AvgGuessLatencySeconds)
	fmt.Fprintf(w, "  Oracle Calls:    %d\n", s.TotalOracleCalls)
	fmt.Fprintf(w, "  Good Guesses:    %d\n", s.TotalGoodGuesses)
	fmt.Fprintf(w, "  Bad Guesses:     %d\n", s.TotalBadGuesses)
	fmt.Fprintf(w, "  Good/Bad Ratio:  %s\n", s.GoodBadRatio)
	fmt.Fprintf(w, "  Calls/Guess:     %.2f\n", s.AvgOracleCallsPerGuess)
	fmt.Fprintf(w, "  Completion:      %.2f\n", s.AvgCompletion)
	if s.Errors > 0 {
		fmt.Fprintf(w, "  Errors:          %d\n", s.Errors)
	}
	fmt.Fprintln(w, "==================================================")
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal/config"
	"crosswarped.com/wordle/pkg/primitives"
)

func testServer(t *testing.T) *server {
	t.Helper()
	solver, err := wordle.CreateSolver(primitives.MustWordList("tidal", "trail", "trial", "tolls"), nil, wordle.SolverParams{})
	require.NoError(t, err)
	return &server{solver: solver, logger: zaptest.NewLogger(t)}
}

func post(t *testing.T, s *server, body string) (*httptest.ResponseRecorder, SolveResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.solve(rec, httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body)))
	var resp SolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestSolve(t *testing.T) {
	rec, resp := post(t, testServer(t), `{"secret": "TRIAL"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, resp.Success)
	assert.True(t, resp.Won)
	assert.Equal(t, 3, resp.Tries)
	assert.Equal(t, []string{"salet", "tidal", "trial"}, resp.Guesses)
	assert.Equal(t, []string{"opener", "fallback", "sole_candidate"}, resp.Sources)
	assert.Equal(t, "🟩🟩🟩🟩🟩", resp.Rows[2])
	assert.Empty(t, resp.Error)
}

func TestSolve_Overrides(t *testing.T) {
	_, resp := post(t, testServer(t), `{"secret": "trial", "opener": "Trial"}`)
	assert.True(t, resp.Won)
	assert.Equal(t, []string{"trial"}, resp.Guesses)

	_, resp = post(t, testServer(t), `{"secret": "trial", "maxTries": 1}`)
	assert.True(t, resp.Success)
	assert.False(t, resp.Won)
	assert.Equal(t, 1, resp.Tries)
}

func TestSolve_Errors(t *testing.T) {
	s := testServer(t)

	for _, tc := range []struct {
		name, body, want string
	}{
		{"missing secret", `{}`, "secret must not be empty"},
		{"bad secret", `{"secret": "tri"}`, "invalid word"},
		{"bad opener", `{"secret": "trial", "opener": "x"}`, "opener"},
		{"too many tries", `{"secret": "trial", "maxTries": 11}`, "maxTries"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := post(t, s, tc.body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tc.want)
		})
	}

	rec, resp := post(t, s, `{"secret": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "Invalid JSON")
}

func TestSolve_Methods(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.solve(rec, httptest.NewRequest(http.MethodOptions, "/solve", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = httptest.NewRecorder()
	s.solve(rec, httptest.NewRequest(http.MethodGet, "/solve", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method GET not allowed")
}

func TestNewServer(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Oracle.Platform = "none"
	cfg.Words.Excluded = []string{"salet"}

	s, err := newServer(t.Context(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, s.solver.Words().Contains(primitives.MustParseWord("salet")))
	assert.True(t, s.solver.Words().Contains(primitives.MustParseWord("trial")))
}

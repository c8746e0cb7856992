package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal"
	"crosswarped.com/wordle/internal/config"
	"crosswarped.com/wordle/internal/logging"
	"crosswarped.com/wordle/oracle"
)

type SolveRequest struct {
	Secret   string `json:"secret"`
	Opener   string `json:"opener"`
	MaxTries int    `json:"maxTries"`
}

type SolveResponse struct {
	Success     bool     `json:"success"`
	Won         bool     `json:"won"`
	Tries       int      `json:"tries"`
	Guesses     []string `json:"guesses"`
	Rows        []string `json:"rows"`
	Sources     []string `json:"sources"`
	OracleCalls int      `json:"oracleCalls"`
	Error       string   `json:"error,omitempty"`
}

type server struct {
	solver *wordle.Solver
	logger *zap.Logger
}

func (s *server) execute(ctx context.Context, req SolveRequest) (wordle.Result, error) {
	if req.Secret == "" {
		return wordle.Result{}, fmt.Errorf("secret must not be empty")
	}
	if req.MaxTries < 0 || req.MaxTries > 10 {
		return wordle.Result{}, fmt.Errorf("maxTries must be between 1 and 10")
	}

	solver := s.solver
	if req.Opener != "" || req.MaxTries != 0 {
		params := solver.Params()
		if req.Opener != "" {
			params.Opener = strings.ToLower(strings.TrimSpace(req.Opener))
		}
		if req.MaxTries != 0 {
			params.MaxTries = req.MaxTries
		}
		var err error
		if solver, err = solver.WithParams(params); err != nil {
			return wordle.Result{}, err
		}
	}

	game, err := wordle.NewGame(strings.ToLower(strings.TrimSpace(req.Secret)), solver.Params().MaxTries)
	if err != nil {
		return wordle.Result{}, err
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		s.logger.Info("setting timeout", zap.Duration("timeout", timeout))
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return solver.Play(ctx, game)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (s *server) solve(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	// CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("error parsing JSON body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	res, err := s.execute(r.Context(), req)

	response := SolveResponse{
		Success:     err == nil,
		Won:         res.Won,
		Tries:       res.Tries,
		OracleCalls: res.OracleCalls,
	}
	for i, t := range res.History {
		response.Guesses = append(response.Guesses, t.Guess.String())
		response.Rows = append(response.Rows, t.Pattern.Emoji())
		response.Sources = append(response.Sources, res.Attempts[i].Source.String())
	}
	if err != nil {
		response.Error = err.Error()
		s.logger.Warn("solve failed", zap.String("secret", req.Secret), zap.Error(err))
	} else {
		s.logger.Info("solved",
			zap.String("secret", req.Secret),
			zap.Bool("won", res.Won),
			zap.Int("tries", res.Tries),
			zap.Int("oracle_calls", res.OracleCalls),
		)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("error marshaling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func newServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server, error) {
	words := internal.DefaultWords()
	if cfg.Words.BigQueryQuery != "" {
		var err error
		if words, err = internal.LoadFromBigQuery(ctx, cfg.Words.BigQueryProject, cfg.Words.BigQueryQuery); err != nil {
			return nil, fmt.Errorf("LoadFromBigQuery: %w", err)
		}
	}
	wl, err := internal.PrepareWords(internal.WordListParams{Words: words, ExcludedWords: cfg.Words.Excluded})
	if err != nil {
		return nil, err
	}
	logger.Info("loaded words", zap.Int("words", wl.Len()))

	o, err := oracle.FromConfig(cfg.OracleConfig(), logger)
	if err != nil {
		return nil, err
	}
	solver, err := wordle.CreateSolver(wl, o, cfg.SolverParams(), wordle.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &server{solver: solver, logger: logger}, nil
}

func main() {
	cfg, err := config.Load(os.Getenv("WORDLE_CONFIG"))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Format: "json"})
	if err != nil {
		log.Fatalf("logging.New: %v\n", err)
	}
	defer logger.Sync()

	s, err := newServer(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("newServer", zap.Error(err))
	}
	funcframework.RegisterHTTPFunction("/solve", s.solve)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}

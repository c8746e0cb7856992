// Package bench plays many games with one solver and aggregates the results.
package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal/metrics"
	"crosswarped.com/wordle/pkg/primitives"
)

var tracer = otel.Tracer("crosswarped.com/wordle/bench")

// Runner plays a batch of games. Games are independent and may run in parallel; they share only
// the read-only Solver.
type Runner struct {
	solver      *wordle.Solver
	games       int
	parallelism int
	seed        uint64
	secrets     []primitives.Word
	model       string
	logger      *zap.Logger
	metrics     *metrics.Metrics
	sinks       []Sink
}

type Option func(*Runner)

func WithGames(n int) Option {
	return func(r *Runner) {
		r.games = n
	}
}

func WithParallelism(n int) Option {
	return func(r *Runner) {
		r.parallelism = n
	}
}

// WithSeed makes secret selection reproducible.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithSecrets plays exactly these secrets instead of random ones.
func WithSecrets(secrets ...primitives.Word) Option {
	return func(r *Runner) {
		r.secrets = secrets
	}
}

// WithModel labels the report.
func WithModel(model string) Option {
	return func(r *Runner) {
		r.model = model
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func WithSinks(sinks ...Sink) Option {
	return func(r *Runner) {
		r.sinks = append(r.sinks, sinks...)
	}
}

func NewRunner(solver *wordle.Solver, opts ...Option) *Runner {
	r := &Runner{
		solver:      solver,
		games:       20,
		parallelism: 1,
		seed:        uint64(time.Now().UnixNano()),
		model:       "none",
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) pickSecrets() []primitives.Word {
	if len(r.secrets) > 0 {
		return r.secrets
	}
	words := r.solver.Words()
	rng := rand.New(rand.NewPCG(r.seed, r.seed>>32|r.seed<<32))
	secrets := make([]primitives.Word, r.games)
	for i := range secrets {
		secrets[i] = words.At(rng.IntN(words.Len()))
	}
	return secrets
}

// Run plays every game, then writes the report to each sink. A failed game is recorded in its
// GameReport and does not stop the run; cancelling ctx does.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ctx, span := tracer.Start(ctx, "bench.Run")
	defer span.End()

	secrets := r.pickSecrets()
	report := &Report{
		RunID:     uuid.NewString(),
		Model:     r.model,
		Seed:      r.seed,
		StartedAt: time.Now().UTC(),
		Games:     make([]GameReport, len(secrets)),
	}
	span.SetAttributes(
		attribute.String("bench.run_id", report.RunID),
		attribute.String("llm.model", r.model),
		attribute.Int("bench.games", len(secrets)),
	)
	logger := r.logger.With(zap.String("run_id", report.RunID))
	logger.Info("benchmark started",
		zap.String("model", r.model),
		zap.Int("games", len(secrets)),
		zap.Int("parallelism", r.parallelism),
		zap.Uint64("seed", r.seed),
	)

	var (
		mu      sync.Mutex
		rolling rollingAverages
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.parallelism, 1))
	for i, secret := range secrets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gr := r.playOne(gctx, i, secret, logger)
			report.Games[i] = gr

			mu.Lock()
			defer mu.Unlock()
			rolling.add(gr)
			logger.Info("rolling averages",
				zap.Int("played", rolling.games),
				zap.Float64("win_rate", rolling.winRate()),
				zap.Float64("avg_tries", rolling.avgTries()),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Summary = Summarize(report.Games)
	span.SetAttributes(
		attribute.Float64("bench.win_rate", report.Summary.WinRate),
		attribute.Float64("bench.avg_tries", report.Summary.AvgTries),
	)
	logger.Info("benchmark finished",
		zap.Float64("win_rate", report.Summary.WinRate),
		zap.Float64("avg_tries", report.Summary.AvgTries),
		zap.Int("oracle_calls", report.Summary.TotalOracleCalls),
		zap.Stringer("good_bad_ratio", report.Summary.GoodBadRatio),
	)

	for _, s := range r.sinks {
		if err := s.Write(ctx, report); err != nil {
			return report, fmt.Errorf("write results: %w", err)
		}
	}
	return report, nil
}

func (r *Runner) playOne(ctx context.Context, index int, secret primitives.Word, logger *zap.Logger) GameReport {
	id := uuid.NewString()
	ctx, span := tracer.Start(ctx, "bench.Game")
	defer span.End()
	span.SetAttributes(attribute.String("game.id", id), attribute.Int("game.index", index))

	game, err := wordle.NewGame(secret.String(), r.solver.Params().MaxTries)
	if err != nil {
		return GameReport{ID: id, Index: index, Secret: secret.String(), Error: err.Error()}
	}

	res, err := r.solver.Play(ctx, game)
	gr := newGameReport(id, index, res)
	if err != nil {
		gr.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("game failed", zap.String("game_id", id), zap.Stringer("secret", secret), zap.Error(err))
		return gr
	}

	span.SetAttributes(
		attribute.Bool("game.won", res.Won),
		attribute.Int("game.tries", res.Tries),
		attribute.Int("game.oracle_calls", res.OracleCalls),
	)
	if r.metrics != nil {
		r.metrics.ObserveGame(res)
	}
	logger.Info("game finished",
		zap.String("game_id", id),
		zap.Int("index", index),
		zap.Stringer("secret", secret),
		zap.Bool("won", res.Won),
		zap.Int("tries", res.Tries),
		zap.Strings("rows", gr.Rows),
	)
	return gr
}

type rollingAverages struct {
	games, wins, tries int
}

func (a *rollingAverages) add(g GameReport) {
	a.games++
	a.tries += g.Tries
	if g.Won {
		a.wins++
	}
}

func (a *rollingAverages) winRate() float64 {
	return float64(a.wins) / float64(a.games)
}

func (a *rollingAverages) avgTries() float64 {
	return float64(a.tries) / float64(a.games)
}

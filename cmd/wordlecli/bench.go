package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crosswarped.com/wordle/bench"
	"crosswarped.com/wordle/internal/metrics"
	"crosswarped.com/wordle/oracle"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		games       int
		parallelism int
		seed        uint64
		resultsFile string
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play many games and report win rate, tries and oracle accounting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("games") {
				cfg.Bench.Games = games
			}
			if flags.Changed("parallelism") {
				cfg.Bench.Parallelism = parallelism
			}
			if flags.Changed("seed") {
				cfg.Bench.Seed = seed
			}
			if resultsFile != "" {
				cfg.Bench.ResultsFile = resultsFile
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			solver, err := a.newSolver(ctx)
			if err != nil {
				return err
			}

			model := cfg.Oracle.Model
			if cfg.Oracle.Platform == string(oracle.PlatformNone) {
				model = string(oracle.PlatformNone)
			}
			opts := []bench.Option{
				bench.WithGames(cfg.Bench.Games),
				bench.WithParallelism(cfg.Bench.Parallelism),
				bench.WithModel(model),
				bench.WithLogger(a.logger),
				bench.WithMetrics(metrics.Default()),
			}
			if cfg.Bench.Seed != 0 {
				opts = append(opts, bench.WithSeed(cfg.Bench.Seed))
			}
			if cfg.Bench.ResultsFile != "" {
				opts = append(opts, bench.WithSinks(bench.JSONFileSink{Path: cfg.Bench.ResultsFile}))
			}
			if cfg.Bench.BigQueryTable != "" {
				sink, err := bench.NewBigQuerySink(ctx, cfg.Bench.BigQueryProject, cfg.Bench.BigQueryDataset, cfg.Bench.BigQueryTable)
				if err != nil {
					return err
				}
				defer sink.Close()
				opts = append(opts, bench.WithSinks(sink))
			}

			if cfg.Metrics.Addr != "" {
				srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error("metrics server stopped", zap.Error(err))
					}
				}()
				defer srv.Close()
				a.logger.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
			}

			report, err := bench.NewRunner(solver, opts...).Run(ctx)
			if report != nil {
				report.Print(cmd.OutOrStdout())
			}
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&games, "games", 20, "Number of games to play")
	f.IntVar(&parallelism, "parallelism", 1, "Games played at once")
	f.Uint64Var(&seed, "seed", 0, "Seed for secret selection; 0 picks one from the clock")
	f.StringVar(&resultsFile, "results-file", "", "Write the JSON report to this file")
	f.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	return cmd
}

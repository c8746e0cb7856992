package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/internal"
	"crosswarped.com/wordle/internal/config"
	"crosswarped.com/wordle/internal/logging"
	"crosswarped.com/wordle/oracle"
	"crosswarped.com/wordle/pkg/primitives"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds the persistent flags and what is built from them before a subcommand runs.
type app struct {
	configFile        string
	wordsFile         string
	platform          string
	model             string
	logLevel          string
	profile           bool
	profileFile       string
	memoryProfileFile string

	cfg    *config.Config
	logger *zap.Logger

	cpuProfile *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wordlecli",
		Short:         "Play and benchmark the Wordle solver",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "YAML config file")
	f.StringVar(&a.wordsFile, "words", "", "The file to load words from, one per line in rank order")
	f.StringVar(&a.platform, "platform", "", "Oracle platform: ollama, openai, groq, openrouter or none")
	f.StringVar(&a.model, "model", "", "Oracle model")
	f.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	f.BoolVar(&a.profile, "profile", false, "Profile the solver")
	f.StringVar(&a.profileFile, "profile-file", "cpu.pprof", "The file to write the CPU profile to")
	f.StringVar(&a.memoryProfileFile, "memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	root.AddCommand(
		newPlayCmd(a),
		newBenchCmd(a),
		newFeedbackCmd(),
		newCandidatesCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.platform != "" {
		cfg.Oracle.Platform = a.platform
	}
	if a.model != "" {
		cfg.Oracle.Model = a.model
	}
	if a.wordsFile != "" {
		cfg.Words.File = a.wordsFile
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger, err = logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return err
	}

	if a.profile {
		f, err := os.Create(a.profileFile)
		if err != nil {
			return fmt.Errorf("creating profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		a.cpuProfile = f
	}
	return nil
}

func (a *app) teardown() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.cpuProfile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	a.cpuProfile.Close()

	mf, err := os.Create(a.memoryProfileFile)
	if err != nil {
		return fmt.Errorf("creating memory profile file: %w", err)
	}
	defer mf.Close()
	return pprof.WriteHeapProfile(mf)
}

// loadWords picks the word source: a BigQuery query, then a file, then the embedded list.
func (a *app) loadWords(ctx context.Context) (*primitives.WordList, error) {
	var (
		words []string
		err   error
	)
	switch {
	case a.cfg.Words.BigQueryQuery != "":
		a.logger.Info("loading words from BigQuery", zap.String("project", a.cfg.Words.BigQueryProject))
		words, err = internal.LoadFromBigQuery(ctx, a.cfg.Words.BigQueryProject, a.cfg.Words.BigQueryQuery)
	case a.cfg.Words.File != "":
		a.logger.Info("loading words from file", zap.String("path", a.cfg.Words.File))
		words, err = internal.LoadFromFile(ctx, a.cfg.Words.File)
	default:
		words = internal.DefaultWords()
	}
	if err != nil {
		return nil, err
	}

	wl, err := internal.PrepareWords(internal.WordListParams{Words: words, ExcludedWords: a.cfg.Words.Excluded})
	if err != nil {
		return nil, err
	}
	a.logger.Info("words loaded", zap.Int("words", wl.Len()), zap.Int("excluded", len(a.cfg.Words.Excluded)))
	return wl, nil
}

func (a *app) newSolver(ctx context.Context) (*wordle.Solver, error) {
	words, err := a.loadWords(ctx)
	if err != nil {
		return nil, err
	}
	o, err := oracle.FromConfig(a.cfg.OracleConfig(), a.logger)
	if err != nil {
		return nil, err
	}
	return wordle.CreateSolver(words, o, a.cfg.SolverParams(), wordle.WithLogger(a.logger))
}

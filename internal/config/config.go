// Package config loads the solver, oracle and benchmark settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"crosswarped.com/wordle"
	"crosswarped.com/wordle/oracle"
)

type Config struct {
	Oracle  OracleConfig  `koanf:"oracle"`
	Solver  SolverConfig  `koanf:"solver"`
	Words   WordsConfig   `koanf:"words"`
	Bench   BenchConfig   `koanf:"bench"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type OracleConfig struct {
	Platform      string        `koanf:"platform"`
	Model         string        `koanf:"model"`
	BaseURL       string        `koanf:"base_url"`
	APIKey        Secret        `koanf:"api_key"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`
	Temperature   float64       `koanf:"temperature"`
	MaxTokens     int           `koanf:"max_tokens"`
}

type SolverConfig struct {
	Opener              string `koanf:"opener"`
	MaxAttempts         int    `koanf:"max_attempts"`
	MaxTries            int    `koanf:"max_tries"`
	PromptFullListLimit int    `koanf:"prompt_full_list_limit"`
	PromptTopN          int    `koanf:"prompt_top_n"`
}

// WordsConfig picks the word source: BigQuery when a query is set, else File, else the embedded
// list.
type WordsConfig struct {
	File            string   `koanf:"file"`
	Excluded        []string `koanf:"excluded"`
	BigQueryProject string   `koanf:"bigquery_project"`
	BigQueryQuery   string   `koanf:"bigquery_query"`
}

type BenchConfig struct {
	Games       int    `koanf:"games"`
	Parallelism int    `koanf:"parallelism"`
	Seed        uint64 `koanf:"seed"`
	ResultsFile string `koanf:"results_file"`

	BigQueryProject string `koanf:"bigquery_project"`
	BigQueryDataset string `koanf:"bigquery_dataset"`
	BigQueryTable   string `koanf:"bigquery_table"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// Secret is a string that is redacted when printed.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

func (s Secret) GoString() string {
	return "Secret([REDACTED])"
}

func (s Secret) Value() string {
	return string(s)
}

func applyDefaults(cfg *Config) {
	if cfg.Oracle.Platform == "" {
		cfg.Oracle.Platform = string(oracle.PlatformOllama)
	}
	if cfg.Oracle.Model == "" && cfg.Oracle.Platform == string(oracle.PlatformOllama) {
		cfg.Oracle.Model = "llama3.2:3b"
	}
	if cfg.Oracle.Timeout == 0 {
		cfg.Oracle.Timeout = 30 * time.Second
	}
	// Hosted APIs get one call per second unless configured otherwise.
	if cfg.Oracle.RatePerSecond == 0 && cfg.Oracle.Platform != string(oracle.PlatformOllama) {
		cfg.Oracle.RatePerSecond = 1
	}

	d := wordle.DefaultSolverParams()
	if cfg.Solver.Opener == "" {
		cfg.Solver.Opener = d.Opener
	}
	if cfg.Solver.MaxAttempts == 0 {
		cfg.Solver.MaxAttempts = d.MaxAttempts
	}
	if cfg.Solver.MaxTries == 0 {
		cfg.Solver.MaxTries = d.MaxTries
	}
	if cfg.Solver.PromptFullListLimit == 0 {
		cfg.Solver.PromptFullListLimit = d.PromptFullListLimit
	}
	if cfg.Solver.PromptTopN == 0 {
		cfg.Solver.PromptTopN = d.PromptTopN
	}

	if cfg.Bench.Games == 0 {
		cfg.Bench.Games = 20
	}
	if cfg.Bench.Parallelism == 0 {
		cfg.Bench.Parallelism = 1
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch oracle.Platform(c.Oracle.Platform) {
	case oracle.PlatformOllama, oracle.PlatformNone:
	case oracle.PlatformOpenAI, oracle.PlatformGroq, oracle.PlatformOpenRouter:
		if c.Oracle.APIKey == "" {
			return fmt.Errorf("oracle.api_key required for platform %q", c.Oracle.Platform)
		}
	default:
		return fmt.Errorf("unknown oracle.platform %q", c.Oracle.Platform)
	}
	if c.Oracle.Platform != string(oracle.PlatformNone) && c.Oracle.Model == "" {
		return errors.New("oracle.model required")
	}
	if c.Oracle.Timeout < 0 {
		return errors.New("oracle.timeout must not be negative")
	}

	if c.Solver.MaxAttempts < 1 {
		return fmt.Errorf("invalid solver.max_attempts: %d (must be at least 1)", c.Solver.MaxAttempts)
	}
	if c.Solver.MaxTries < 1 {
		return fmt.Errorf("invalid solver.max_tries: %d (must be at least 1)", c.Solver.MaxTries)
	}
	if c.Solver.PromptTopN > c.Solver.PromptFullListLimit {
		return fmt.Errorf("solver.prompt_top_n (%d) exceeds solver.prompt_full_list_limit (%d)",
			c.Solver.PromptTopN, c.Solver.PromptFullListLimit)
	}

	if c.Words.BigQueryQuery != "" && c.Words.BigQueryProject == "" {
		return errors.New("words.bigquery_project required with words.bigquery_query")
	}

	if c.Bench.Games < 1 {
		return fmt.Errorf("invalid bench.games: %d (must be at least 1)", c.Bench.Games)
	}
	if c.Bench.Parallelism < 1 {
		return fmt.Errorf("invalid bench.parallelism: %d (must be at least 1)", c.Bench.Parallelism)
	}
	if c.Bench.BigQueryTable != "" && (c.Bench.BigQueryProject == "" || c.Bench.BigQueryDataset == "") {
		return errors.New("bench.bigquery_project and bench.bigquery_dataset required with bench.bigquery_table")
	}
	return nil
}

// SolverParams converts the solver section, with the oracle timeout.
func (c *Config) SolverParams() wordle.SolverParams {
	return wordle.SolverParams{
		Opener:              c.Solver.Opener,
		MaxAttempts:         c.Solver.MaxAttempts,
		MaxTries:            c.Solver.MaxTries,
		PromptFullListLimit: c.Solver.PromptFullListLimit,
		PromptTopN:          c.Solver.PromptTopN,
		OracleTimeout:       c.Oracle.Timeout,
	}
}

func (c *Config) OracleConfig() oracle.Config {
	return oracle.Config{
		Platform:      oracle.Platform(c.Oracle.Platform),
		Model:         c.Oracle.Model,
		BaseURL:       c.Oracle.BaseURL,
		APIKey:        c.Oracle.APIKey.Value(),
		Temperature:   c.Oracle.Temperature,
		MaxTokens:     c.Oracle.MaxTokens,
		RatePerSecond: c.Oracle.RatePerSecond,
		Burst:         c.Oracle.Burst,
	}
}

// Package oracle connects the solver to language models.
//
// Every backend is wrapped in a Client that rate limits calls, traces them and reports transport
// failures as *wordle.OracleUnavailableError, which the solver retries within its attempt budget.
package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"crosswarped.com/wordle"
)

var tracer = otel.Tracer("crosswarped.com/wordle/oracle")

type Platform string

const (
	PlatformOllama     Platform = "ollama"
	PlatformOpenAI     Platform = "openai"
	PlatformGroq       Platform = "groq"
	PlatformOpenRouter Platform = "openrouter"
	// PlatformNone disables the oracle; the solver then always takes the top candidate.
	PlatformNone Platform = "none"
)

var defaultBaseURLs = map[Platform]string{
	PlatformOllama:     "http://localhost:11434",
	PlatformOpenAI:     "https://api.openai.com/v1",
	PlatformGroq:       "https://api.groq.com/openai/v1",
	PlatformOpenRouter: "https://openrouter.ai/api/v1",
}

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 20
)

// Config selects and configures a backend.
type Config struct {
	Platform Platform
	Model    string
	// BaseURL overrides the platform's default endpoint.
	BaseURL string
	APIKey  string `json:"-"`

	Temperature float64
	MaxTokens   int

	// RatePerSecond limits calls; zero means unlimited.
	RatePerSecond float64
	Burst         int
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	return defaultBaseURLs[c.Platform]
}

func (c Config) temperature() float64 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return defaultTemperature
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

// backend sends one prompt and returns the raw completion.
type backend interface {
	complete(ctx context.Context, prompt string) (string, error)
}

// Client implements wordle.Oracle on top of a model backend.
type Client struct {
	backend  backend
	platform Platform
	model    string
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// FromConfig returns the oracle for cfg, or a nil Oracle for PlatformNone.
func FromConfig(cfg Config, logger *zap.Logger) (wordle.Oracle, error) {
	if cfg.Platform == PlatformNone {
		return nil, nil
	}
	c, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a Client for cfg.Platform.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("oracle: model required for platform %q", cfg.Platform)
	}

	var (
		b   backend
		err error
	)
	switch cfg.Platform {
	case PlatformOllama:
		b, err = newOllama(cfg)
	case PlatformOpenAI, PlatformGroq, PlatformOpenRouter:
		b, err = newOpenAI(cfg)
	default:
		return nil, fmt.Errorf("oracle: unknown platform %q", cfg.Platform)
	}
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1))
	}

	logger.Info("oracle configured",
		zap.String("platform", string(cfg.Platform)),
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.baseURL()),
		zap.Float64("rate_per_second", cfg.RatePerSecond),
	)
	return &Client{
		backend:  b,
		platform: cfg.Platform,
		model:    cfg.Model,
		limiter:  limiter,
		logger:   logger.With(zap.String("model", cfg.Model)),
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

// Ask implements wordle.Oracle.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "oracle.Ask")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.platform", string(c.platform)),
		attribute.String("llm.model", c.model),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return "", &wordle.OracleUnavailableError{Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	start := time.Now()
	reply, err := c.backend.complete(ctx, prompt)
	latency := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("oracle call failed", zap.Duration("latency", latency), zap.Error(err))
		return "", &wordle.OracleUnavailableError{Err: err}
	}

	span.SetAttributes(attribute.String("llm.reply", reply))
	c.logger.Debug("oracle replied", zap.String("reply", reply), zap.Duration("latency", latency))
	return reply, nil
}

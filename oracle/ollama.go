package oracle

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// ollamaBackend runs prompts against a local Ollama server.
type ollamaBackend struct {
	llm         *ollama.LLM
	temperature float64
	maxTokens   int
}

func newOllama(cfg Config) (*ollamaBackend, error) {
	llm, err := ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(cfg.baseURL()),
	)
	if err != nil {
		return nil, fmt.Errorf("ollama.New: %w", err)
	}
	return &ollamaBackend{
		llm:         llm,
		temperature: cfg.temperature(),
		maxTokens:   cfg.maxTokens(),
	}, nil
}

func (b *ollamaBackend) complete(ctx context.Context, prompt string) (string, error) {
	reply, err := llms.GenerateFromSinglePrompt(ctx, b.llm, prompt,
		llms.WithTemperature(b.temperature),
		llms.WithMaxTokens(b.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return reply, nil
}

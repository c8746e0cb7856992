package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// openAIBackend talks to any OpenAI compatible chat completions API.
type openAIBackend struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func newOpenAI(cfg Config) (*openAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("oracle: api key required for platform %q", cfg.Platform)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = cfg.baseURL()
	return &openAIBackend{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: float32(cfg.temperature()),
		maxTokens:   cfg.maxTokens(),
	}, nil
}

func (b *openAIBackend) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: b.temperature,
		MaxTokens:   b.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

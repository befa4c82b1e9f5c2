package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"

	"designmentor.app/analysis-engine/core/config"
)

// OpenRouterClient talks to OpenRouter, which exposes the OpenAI
// chat-completions wire format, via the go-openai client with a custom base
// URL.
type OpenRouterClient struct {
	client *openai.Client
	model  string
}

var _ Generator = &OpenRouterClient{}

// NewGenerator returns the configured generator, or nil when no API key is
// set. A nil generator is the normal rule-only mode, not an error.
func NewGenerator(cfg config.LLMConfig) Generator {
	if !cfg.Configured() {
		slog.Info("generator not configured, running in rule-only mode")
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	slog.Info("initializing OpenRouter generator", "model", cfg.Model, "base_url", cfg.BaseURL)
	return &OpenRouterClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenRouter: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenRouter returned no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("OpenRouter returned empty content")
	}

	slog.DebugContext(ctx, "received generator response", "finish_reason", resp.Choices[0].FinishReason)
	return content, nil
}

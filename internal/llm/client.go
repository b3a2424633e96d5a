// Package llm adapts an OpenAI-compatible chat endpoint to the hint
// formatter's Completer interface. The call is bounded by a short timeout
// and degrades to an error the formatter turns into its fallback text.
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a SQL tutor. You give short conceptual hints and never reveal queries, code, or the correct answer."

// Config controls the chat client.
type Config struct {
	// APIKey authenticates against the endpoint
	APIKey string

	// BaseURL overrides the endpoint, e.g. for a local or proxied model
	BaseURL string

	// Model is the chat model name
	Model string

	// Timeout bounds one completion call
	Timeout time.Duration
}

// Defaults for unset config fields.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 10 * time.Second
)

// Client calls a chat-completion endpoint. It satisfies hint.Completer.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New creates a client. An empty API key is allowed for endpoints that do
// not authenticate (e.g. local models behind BaseURL).
func New(cfg Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends the prompt and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

package llm

import (
	"context"
	"errors"
	"strings"
)

// Completer is the narrow text-generation capability the agent depends on:
// one system instruction, one user turn, one text answer.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleterOption tunes a ChatCompleter.
type CompleterOption func(*ChatCompleter)

// WithModel selects a model alias instead of the client default.
func WithModel(model string) CompleterOption {
	return func(c *ChatCompleter) {
		c.model = strings.TrimSpace(model)
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t *float64) CompleterOption {
	return func(c *ChatCompleter) {
		c.temperature = t
	}
}

// WithJSONMode asks the endpoint to constrain output to a JSON object.
func WithJSONMode(enabled bool) CompleterOption {
	return func(c *ChatCompleter) {
		c.jsonMode = enabled
	}
}

// ChatCompleter adapts an LLMClient to Completer.
type ChatCompleter struct {
	client      LLMClient
	model       string
	temperature *float64
	jsonMode    bool
}

// NewCompleter wraps client.
func NewCompleter(client LLMClient, opts ...CompleterOption) *ChatCompleter {
	c := &ChatCompleter{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends a system + user exchange and returns the first choice's text.
func (c *ChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("llm: completer has no client")
	}
	req := &ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
	}
	if c.jsonMode {
		req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}
	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("llm: empty completion")
	}
	return resp.Text(), nil
}

// CompleterFunc lets a plain function act as a Completer.
type CompleterFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}

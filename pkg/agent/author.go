package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"draftdesk/pkg/llm"
	"draftdesk/pkg/prompt"
)

// Author writes LinkedIn post bodies with a fixed writer persona.
type Author struct {
	completer llm.Completer
	system    *prompt.Template
	user      *prompt.Template
	tone      string
}

// AuthorOption customises an Author.
type AuthorOption func(*authorOptions)

type authorOptions struct {
	systemPath string
	userPath   string
	tone       string
}

// WithSystemTemplate replaces the built-in persona prompt.
func WithSystemTemplate(path string) AuthorOption {
	return func(o *authorOptions) { o.systemPath = strings.TrimSpace(path) }
}

// WithUserTemplate replaces the built-in request prompt.
func WithUserTemplate(path string) AuthorOption {
	return func(o *authorOptions) { o.userPath = strings.TrimSpace(path) }
}

// WithTone sets the tone line of the request prompt.
func WithTone(tone string) AuthorOption {
	return func(o *authorOptions) {
		if t := strings.TrimSpace(tone); t != "" {
			o.tone = t
		}
	}
}

// NewAuthor binds the persona prompts to completer.
func NewAuthor(completer llm.Completer, opts ...AuthorOption) (*Author, error) {
	if completer == nil {
		return nil, errors.New("agent: author requires a completer")
	}
	o := authorOptions{tone: defaultTone}
	for _, opt := range opts {
		opt(&o)
	}
	system, err := loadTemplate(o.systemPath, authorSystemPromptName)
	if err != nil {
		return nil, fmt.Errorf("agent: author system prompt: %w", err)
	}
	user, err := loadTemplate(o.userPath, authorUserPromptName)
	if err != nil {
		return nil, fmt.Errorf("agent: author user prompt: %w", err)
	}
	return &Author{completer: completer, system: system, user: user, tone: o.tone}, nil
}

// Prompts renders the system and user turns for a draft.
func (a *Author) Prompts(title, description string) (string, string, error) {
	data := authorPromptData{Title: title, Description: description, Tone: a.tone}
	system, err := a.system.Render(data)
	if err != nil {
		return "", "", fmt.Errorf("agent: author system prompt: %w", err)
	}
	user, err := a.user.Render(data)
	if err != nil {
		return "", "", fmt.Errorf("agent: author user prompt: %w", err)
	}
	return strings.TrimSpace(system), strings.TrimSpace(user), nil
}

// Write generates the post text, trimmed of surrounding whitespace.
func (a *Author) Write(ctx context.Context, title, description string) (string, error) {
	system, user, err := a.Prompts(title, description)
	if err != nil {
		return "", err
	}
	content, err := a.completer.Complete(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("agent: author: %w", err)
	}
	return strings.TrimSpace(content), nil
}

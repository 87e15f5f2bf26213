package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"draftdesk/pkg/executor"
	"draftdesk/pkg/llm"
)

// Resolver turns a free-text command into a Decision with one model call.
type Resolver struct {
	completer llm.Completer
	system    string
	digest    string
}

// ResolverOption customises a Resolver.
type ResolverOption func(*resolverOptions)

type resolverOptions struct {
	templatePath string
}

// WithPromptTemplate replaces the built-in instruction with a template file.
func WithPromptTemplate(path string) ResolverOption {
	return func(o *resolverOptions) {
		o.templatePath = strings.TrimSpace(path)
	}
}

// NewResolver renders the resolver instruction once and binds it to completer.
func NewResolver(completer llm.Completer, opts ...ResolverOption) (*Resolver, error) {
	if completer == nil {
		return nil, errors.New("agent: resolver requires a completer")
	}
	var o resolverOptions
	for _, opt := range opts {
		opt(&o)
	}
	tpl, err := loadTemplate(o.templatePath, resolverPromptName)
	if err != nil {
		return nil, fmt.Errorf("agent: resolver prompt: %w", err)
	}
	system, err := tpl.Render(defaultResolverPromptData())
	if err != nil {
		return nil, fmt.Errorf("agent: resolver prompt: %w", err)
	}
	return &Resolver{completer: completer, system: strings.TrimSpace(system), digest: tpl.Digest()}, nil
}

// Prompt returns the rendered system instruction.
func (r *Resolver) Prompt() string { return r.system }

// PromptDigest identifies the template the instruction was rendered from.
func (r *Resolver) PromptDigest() string { return r.digest }

// Resolve asks the model which action fits utterance. Output that is not a
// JSON object yields a none decision carrying the raw text; only a failed
// model call is returned as an error.
func (r *Resolver) Resolve(ctx context.Context, utterance string) (executor.Decision, error) {
	raw, err := r.completer.Complete(ctx, r.system, utterance)
	if err != nil {
		return executor.Decision{Action: executor.ActionNone}, fmt.Errorf("agent: resolve: %w", err)
	}
	return ParseDecision(raw), nil
}

// ParseDecision decodes the model's reply. Missing keys take their defaults,
// non-string argument values are kept as their JSON text and nulls are
// dropped.
func ParseDecision(raw string) executor.Decision {
	if !json.Valid([]byte(raw)) {
		return invalidDecision(raw)
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return invalidDecision(raw)
	}

	d := executor.Decision{
		Action:  executor.NormalizeAction(stringify(fields["tool"])),
		Args:    map[string]string{},
		Message: stringify(fields["message"]),
	}
	if args, ok := fields["args"].(map[string]any); ok {
		for k, v := range args {
			if v == nil {
				continue
			}
			d.Args[k] = stringify(v)
		}
	}
	return d
}

func invalidDecision(raw string) executor.Decision {
	return executor.Decision{
		Action:  executor.ActionNone,
		Args:    map[string]string{},
		Message: "(Agent output not valid JSON) Raw content: " + raw,
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return fmt.Sprint(val)
		}
		return strings.TrimSpace(buf.String())
	}
}

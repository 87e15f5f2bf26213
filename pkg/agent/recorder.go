package agent

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/pkg/llm"
)

// Model call stages.
const (
	StageResolve = "resolve"
	StageAuthor  = "author"
)

// Exchange is one prompt/response pair sent to the model.
type Exchange struct {
	SessionID    string
	Stage        string
	Model        string
	SystemPrompt string
	UserPrompt   string
	Response     string
	Error        string
	Duration     time.Duration
	Timestamp    time.Time
}

// ExchangeRecorder stores model exchanges for debugging and prompt tuning.
type ExchangeRecorder interface {
	RecordExchange(ctx context.Context, ex Exchange) error
}

type sessionKey struct{}

// ContextWithSession tags ctx with the session a model call belongs to.
func ContextWithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionFromContext returns the session id set by ContextWithSession.
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

type recordingCompleter struct {
	inner    llm.Completer
	stage    string
	model    string
	recorder ExchangeRecorder
	now      func() time.Time
}

// withRecorder wraps inner so every call is reported to recorder. A nil
// recorder returns inner unchanged.
func withRecorder(inner llm.Completer, recorder ExchangeRecorder, stage, model string) llm.Completer {
	if recorder == nil {
		return inner
	}
	return &recordingCompleter{inner: inner, stage: stage, model: model, recorder: recorder, now: time.Now}
}

func (r *recordingCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	start := r.now()
	out, err := r.inner.Complete(ctx, systemPrompt, userPrompt)
	ex := Exchange{
		SessionID:    SessionFromContext(ctx),
		Stage:        r.stage,
		Model:        r.model,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Response:     out,
		Duration:     r.now().Sub(start),
		Timestamp:    start,
	}
	if err != nil {
		ex.Error = err.Error()
	}
	if recErr := r.recorder.RecordExchange(ctx, ex); recErr != nil {
		logx.WithContext(ctx).Errorf("agent: record %s exchange: %v", r.stage, recErr)
	}
	return out, err
}

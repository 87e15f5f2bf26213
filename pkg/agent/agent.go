package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/pkg/drafts"
	"draftdesk/pkg/executor"
	"draftdesk/pkg/journal"
	"draftdesk/pkg/llm"
	"draftdesk/pkg/opener"
	"draftdesk/pkg/session"
)

// Reply is the outcome of one command.
type Reply struct {
	SessionID string
	Log       []string
}

// Journal receives one record per handled command.
type Journal interface {
	WriteCommand(rec *journal.CommandRecord) (string, error)
}

// Observer sees each log line as soon as it is produced.
type Observer func(sessionID, line string)

// Agent runs the shared command cycle: resolve, execute, remember.
type Agent struct {
	resolver *Resolver
	exec     *executor.Executor
	sessions session.Store
	journal  Journal
	observer Observer
	now      func() time.Time
}

// Option customises an Agent.
type Option func(*Agent)

// WithJournal writes a record per command.
func WithJournal(j Journal) Option {
	return func(a *Agent) { a.journal = j }
}

// WithObserver streams log lines while a command runs.
func WithObserver(o Observer) Option {
	return func(a *Agent) { a.observer = o }
}

// New assembles an Agent from its parts.
func New(resolver *Resolver, exec *executor.Executor, sessions session.Store, opts ...Option) (*Agent, error) {
	if resolver == nil {
		return nil, errors.New("agent: resolver is required")
	}
	if exec == nil {
		return nil, errors.New("agent: executor is required")
	}
	if sessions == nil {
		return nil, errors.New("agent: session store is required")
	}
	a := &Agent{resolver: resolver, exec: exec, sessions: sessions, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Build wires an Agent from configuration: one client shared by the
// resolver and author completers, the drafts store and the executor.
// recorder may be nil; otherwise it sees every model call. A journal is
// opened when cfg.JournalDir is set, and a WithJournal option overrides it.
func Build(cfg *Config, client llm.LLMClient, sessions session.Store, open opener.Opener, recorder ExchangeRecorder, opts ...Option) (*Agent, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if client == nil {
		return nil, errors.New("agent: llm client is required")
	}

	resolveCompleter := llm.NewCompleter(client,
		llm.WithModel(cfg.Resolver.Model),
		llm.WithJSONMode(cfg.Resolver.JSONModeEnabled()),
	)
	resolver, err := NewResolver(
		withRecorder(resolveCompleter, recorder, StageResolve, modelName(client, cfg.Resolver.Model)),
		WithPromptTemplate(cfg.Resolver.PromptTemplate),
	)
	if err != nil {
		return nil, err
	}

	authorCompleter := llm.NewCompleter(client,
		llm.WithModel(cfg.Author.Model),
		llm.WithTemperature(cfg.Author.Temperature),
	)
	author, err := NewAuthor(
		withRecorder(authorCompleter, recorder, StageAuthor, modelName(client, cfg.Author.Model)),
		WithSystemTemplate(cfg.Author.SystemTemplate),
		WithUserTemplate(cfg.Author.UserTemplate),
		WithTone(cfg.Author.Tone),
	)
	if err != nil {
		return nil, err
	}

	store := drafts.NewStore(cfg.DraftsDir, drafts.WithFallbackName(cfg.FallbackName))
	if err := store.EnsureRoot(); err != nil {
		return nil, err
	}
	exec, err := executor.New(store, open, author)
	if err != nil {
		return nil, err
	}

	if cfg.JournalDir != "" {
		w, err := journal.NewWriter(cfg.JournalDir)
		if err != nil {
			return nil, err
		}
		opts = append([]Option{WithJournal(w)}, opts...)
	}
	return New(resolver, exec, sessions, opts...)
}

func modelName(client llm.LLMClient, alias string) string {
	cfg := client.GetConfig()
	if cfg == nil {
		return alias
	}
	id, _ := cfg.ResolveModel(alias)
	return id
}

// Drafts exposes the drafts store behind the executor.
func (a *Agent) Drafts() *drafts.Store { return a.exec.Store() }

// Handle runs one command for sessionID. An empty id starts a new session;
// the id used is always returned in the reply. The error is non-nil only
// when a model call failed, in which case the reply holds the lines
// produced before the failure.
func (a *Agent) Handle(ctx context.Context, sessionID, command string) (Reply, error) {
	command = strings.TrimSpace(command)
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = session.NewID()
	}
	reply := Reply{SessionID: sessionID}
	if command == "" {
		a.emit(&reply, "Agent: Please type a command.")
		return reply, nil
	}

	start := a.now()
	rec := &journal.CommandRecord{
		Timestamp:    start,
		SessionID:    sessionID,
		Command:      command,
		PromptDigest: a.resolver.PromptDigest(),
	}
	err := a.run(ContextWithSession(ctx, sessionID), sessionID, command, &reply, rec)
	rec.Log = reply.Log
	rec.DurationMS = a.now().Sub(start).Milliseconds()
	rec.Success = err == nil
	if err != nil {
		rec.ErrorMessage = err.Error()
	}
	a.writeJournal(ctx, rec)
	return reply, err
}

func (a *Agent) run(ctx context.Context, sessionID, command string, reply *Reply, rec *journal.CommandRecord) error {
	state, err := session.Load(ctx, a.sessions, sessionID)
	if err != nil {
		return fmt.Errorf("agent: load session: %w", err)
	}

	a.emit(reply, "Agent: Thinking which tool to use...")
	decision, err := a.resolver.Resolve(ctx, command)
	if err != nil {
		return err
	}
	rec.Tool, rec.Args, rec.Message = decision.Action, decision.Args, decision.Message
	if decision.Message != "" {
		a.emit(reply, "Agent: "+decision.Message)
	}

	lines, execErr := a.exec.Execute(ctx, decision, command, state)
	for _, line := range lines {
		a.emit(reply, line)
	}
	if execErr != nil {
		return execErr
	}

	if err := a.sessions.Save(ctx, state); err != nil {
		logx.WithContext(ctx).Errorf("agent: save session %s: %v", state.ID, err)
		a.emit(reply, fmt.Sprintf("Agent: Failed to remember this session: %v", err))
	}
	return nil
}

func (a *Agent) emit(reply *Reply, line string) {
	reply.Log = append(reply.Log, line)
	if a.observer != nil {
		a.observer(reply.SessionID, line)
	}
}

func (a *Agent) writeJournal(ctx context.Context, rec *journal.CommandRecord) {
	if a.journal == nil {
		return
	}
	if _, err := a.journal.WriteCommand(rec); err != nil {
		logx.WithContext(ctx).Errorf("agent: journal command: %v", err)
	}
}

package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftdesk/pkg/journal"
	"draftdesk/pkg/llm"
	"draftdesk/pkg/opener"
	"draftdesk/pkg/session"
)

// scriptedClient answers resolver calls and author calls from separate queues.
type scriptedClient struct {
	mu       sync.Mutex
	resolves []string
	authors  []string
	requests []*llm.ChatRequest
	err      error
}

func (c *scriptedClient) Chat(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	var out string
	if strings.HasPrefix(req.Messages[0].Content, "You are a LinkedIn Draft Agent") {
		out, c.resolves = c.resolves[0], c.resolves[1:]
	} else {
		out, c.authors = c.authors[0], c.authors[1:]
	}
	return &llm.ChatResponse{Choices: []llm.Choice{{Message: llm.Message{Role: llm.RoleAssistant, Content: out}}}}, nil
}

func (c *scriptedClient) GetConfig() *llm.Config { return &llm.Config{DefaultModel: "llama3.2"} }
func (c *scriptedClient) Close() error           { return nil }

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

type memRecorder struct {
	exchanges []Exchange
}

func (m *memRecorder) RecordExchange(_ context.Context, ex Exchange) error {
	m.exchanges = append(m.exchanges, ex)
	return nil
}

type harness struct {
	agent  *Agent
	client *scriptedClient
	opened []string
	dir    string
}

func newHarness(t *testing.T, rec ExchangeRecorder, opts ...Option) *harness {
	t.Helper()
	h := &harness{client: &scriptedClient{}, dir: filepath.Join(t.TempDir(), "drafts")}
	cfg := DefaultConfig()
	cfg.DraftsDir = h.dir
	sessions, err := session.NewMemoryStore(16)
	require.NoError(t, err)
	open := opener.Func(func(_ context.Context, path string) error {
		h.opened = append(h.opened, path)
		return nil
	})
	h.agent, err = Build(cfg, h.client, sessions, open, rec, opts...)
	require.NoError(t, err)
	return h
}

func TestHandleListDraftsEmpty(t *testing.T) {
	h := newHarness(t, nil)
	h.client.resolves = []string{`{"tool":"list_files","args":{},"message":"Here are all your saved LinkedIn drafts."}`}

	reply, err := h.agent.Handle(context.Background(), "", "List my drafts")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, []string{
		"Agent: Thinking which tool to use...",
		"Agent: Here are all your saved LinkedIn drafts.",
		"Agent: No drafts found yet.",
	}, reply.Log)
	assert.Equal(t, 1, h.client.calls())

	req := h.client.requests[0]
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	assert.Equal(t, "List my drafts", req.Messages[1].Content)
}

func TestHandleCreateThenOpenLast(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.client.resolves = []string{
		`{"tool":"create_post_file","args":{"title":"Agentic AI Demo","topic_description":"Workshop for students"},"message":"I'll create a new LinkedIn draft."}`,
		`{"tool":"open_file","args":{"filename":"last"},"message":""}`,
		`{"tool":"open_file","args":{"filename":"last"}}`,
	}
	h.client.authors = []string{"  Hook.\n\nBody.\n\n#ai #agents #students #workshop\n"}

	reply, err := h.agent.Handle(ctx, "alice", "Write a post about my agentic AI workshop")
	require.NoError(t, err)
	assert.Equal(t, "alice", reply.SessionID)
	require.Len(t, reply.Log, 5)
	assert.Equal(t, "Agent: I'll create a new LinkedIn draft.", reply.Log[1])
	assert.Equal(t, "Agent: Generating LinkedIn post content...", reply.Log[2])
	require.True(t, strings.HasPrefix(reply.Log[3], "Agent: Draft created at: "))
	assert.Equal(t, "Agent: You can now ask me to open the last draft.", reply.Log[4])
	assert.Equal(t, 2, h.client.calls())

	path := strings.TrimPrefix(reply.Log[3], "Agent: Draft created at: ")
	assert.Equal(t, h.dir, filepath.Dir(path))
	assert.Regexp(t, `^Agentic_AI_Demo_\d{8}-\d{6}\.txt$`, filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hook.\n\nBody.\n\n#ai #agents #students #workshop", string(data))

	authorReq := h.client.requests[1]
	assert.Nil(t, authorReq.ResponseFormat)
	assert.Contains(t, authorReq.Messages[1].Content, "Topic description: Workshop for students")

	reply, err = h.agent.Handle(ctx, "alice", "open the last draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent: Thinking which tool to use...", "Agent: Opened last draft: " + path}, reply.Log)
	assert.Equal(t, []string{path}, h.opened)

	reply, err = h.agent.Handle(ctx, "bob", "open the last draft")
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent: Thinking which tool to use...", "Agent: I don't have a 'last' draft remembered yet."}, reply.Log)
	assert.Len(t, h.opened, 1)
}

func TestHandleCreateListCloseOpen(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.client.resolves = []string{
		`{"tool":"create_draft","args":{"title":"Alpha Post","topic_description":"first"},"message":""}`,
		`{"tool":"create_draft","args":{"title":"Beta Post","topic_description":"second"},"message":""}`,
		`{"tool":"list_files","args":{},"message":""}`,
		`{"tool":"close_file","args":{"filename":"last"},"message":""}`,
		`{"tool":"open_file","args":{"filename":"last"},"message":""}`,
	}
	h.client.authors = []string{"Alpha body #a #b #c #d", "Beta body #a #b #c #d"}

	var created []string
	for _, command := range []string{"write the alpha post", "write the beta post"} {
		reply, err := h.agent.Handle(ctx, "dana", command)
		require.NoError(t, err)
		require.Len(t, reply.Log, 4)
		require.True(t, strings.HasPrefix(reply.Log[2], "Agent: Draft created at: "))
		created = append(created, filepath.Base(strings.TrimPrefix(reply.Log[2], "Agent: Draft created at: ")))
	}
	assert.Regexp(t, `^Alpha_Post_\d{8}-\d{6}\.txt$`, created[0])
	assert.Regexp(t, `^Beta_Post_\d{8}-\d{6}\.txt$`, created[1])

	reply, err := h.agent.Handle(ctx, "dana", "list my drafts")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Agent: Thinking which tool to use...",
		"Agent: Here are your drafts:",
		"  - " + created[0],
		"  - " + created[1],
	}, reply.Log)

	reply, err = h.agent.Handle(ctx, "dana", "close the last draft")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Agent: Thinking which tool to use...",
		"Agent: I'll forget the last opened draft. Please close the editor window manually.",
	}, reply.Log)

	reply, err = h.agent.Handle(ctx, "dana", "open the last draft")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Agent: Thinking which tool to use...",
		"Agent: I don't have a 'last' draft remembered yet.",
	}, reply.Log)
	assert.Empty(t, h.opened)
}

func TestHandleInvalidJSON(t *testing.T) {
	h := newHarness(t, nil)
	h.client.resolves = []string{"I think you want to list files."}

	reply, err := h.agent.Handle(context.Background(), "s", "show me")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Agent: Thinking which tool to use...",
		"Agent: (Agent output not valid JSON) Raw content: I think you want to list files.",
	}, reply.Log)

	names, err := h.agent.Drafts().List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestHandleUnknownTool(t *testing.T) {
	h := newHarness(t, nil)
	h.client.resolves = []string{`{"tool":"delete_all","args":{},"message":""}`}

	reply, err := h.agent.Handle(context.Background(), "s", "delete everything")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Agent: Thinking which tool to use...",
		"Agent: I don't recognize the tool 'delete_all'. Doing nothing.",
	}, reply.Log)
}

func TestHandleEmptyCommand(t *testing.T) {
	h := newHarness(t, nil)

	reply, err := h.agent.Handle(context.Background(), "s", "   ")
	require.NoError(t, err)
	assert.Equal(t, "s", reply.SessionID)
	assert.Equal(t, []string{"Agent: Please type a command."}, reply.Log)
	assert.Zero(t, h.client.calls())
}

func TestHandleModelFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.client.err = errors.New("connection refused")

	reply, err := h.agent.Handle(context.Background(), "s", "list drafts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, []string{"Agent: Thinking which tool to use..."}, reply.Log)
	assert.Equal(t, 1, h.client.calls(), "no retry after a failed call")
}

func TestHandleJournalRecorderObserver(t *testing.T) {
	journalDir := filepath.Join(t.TempDir(), "journal")
	w, err := journal.NewWriter(journalDir)
	require.NoError(t, err)
	rec := &memRecorder{}
	var streamed []string

	h := newHarness(t, rec,
		WithJournal(w),
		WithObserver(func(_ string, line string) { streamed = append(streamed, line) }),
	)
	h.client.resolves = []string{`{"tool":"close_file","args":{"filename":"last"},"message":"Closing."}`}

	reply, err := h.agent.Handle(context.Background(), "carol", "close it")
	require.NoError(t, err)
	assert.Equal(t, reply.Log, streamed)

	require.Len(t, rec.exchanges, 1)
	ex := rec.exchanges[0]
	assert.Equal(t, "carol", ex.SessionID)
	assert.Equal(t, StageResolve, ex.Stage)
	assert.Equal(t, "llama3.2", ex.Model)
	assert.Equal(t, "close it", ex.UserPrompt)
	assert.Contains(t, ex.Response, "close_file")

	entries, err := os.ReadDir(journalDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "command_"))
}

func TestNewRequiresParts(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.Error(t, err)
	_, err = Build(nil, nil, nil, nil, nil)
	assert.Error(t, err)
}

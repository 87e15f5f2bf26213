package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"draftdesk/pkg/drafts"
	"draftdesk/pkg/opener"
	"draftdesk/pkg/session"
)

type mockAuthor struct {
	mock.Mock
}

func (m *mockAuthor) Write(ctx context.Context, title, description string) (string, error) {
	args := m.Called(ctx, title, description)
	return args.String(0), args.Error(1)
}

type recordingOpener struct {
	opened []string
	err    error
}

func (r *recordingOpener) Open(_ context.Context, path string) error {
	if r.err != nil {
		return r.err
	}
	r.opened = append(r.opened, path)
	return nil
}

type fixture struct {
	exec   *Executor
	root   string
	author *mockAuthor
	opener *recordingOpener
	state  *session.State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "drafts")
	at := time.Date(2025, 3, 4, 10, 11, 12, 0, time.Local)
	store := drafts.NewStore(root, drafts.WithClock(func() time.Time { return at }))
	author := &mockAuthor{}
	rec := &recordingOpener{}
	exec, err := New(store, rec, author)
	require.NoError(t, err)
	return &fixture{exec: exec, root: root, author: author, opener: rec, state: &session.State{ID: "s"}}
}

func (f *fixture) writeDraft(t *testing.T, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(f.root, 0o755))
	path := filepath.Join(f.root, name)
	require.NoError(t, os.WriteFile(path, []byte("body"), 0o644))
	return path
}

func TestNewRequiresCollaborators(t *testing.T) {
	store := drafts.NewStore(t.TempDir())
	_, err := New(nil, &recordingOpener{}, &mockAuthor{})
	assert.Error(t, err)
	_, err = New(store, nil, &mockAuthor{})
	assert.Error(t, err)
	_, err = New(store, &recordingOpener{}, nil)
	assert.Error(t, err)
}

func TestCreateDraft(t *testing.T) {
	f := newFixture(t)
	f.author.On("Write", mock.Anything, "Agentic AI Demo", "workshop announcement").
		Return("Hook\n\nBody\n\n#ai #agents #demo #workshop", nil).Once()

	lines, err := f.exec.Execute(context.Background(), Decision{
		Action: ActionCreateDraft,
		Args:   map[string]string{ArgTitle: "Agentic AI Demo", ArgTopicDescription: "workshop announcement"},
	}, "write a post", f.state)
	require.NoError(t, err)

	want := filepath.Join(f.root, "Agentic_AI_Demo_20250304-101112.txt")
	assert.Equal(t, []string{
		"Agent: Generating LinkedIn post content...",
		"Agent: Draft created at: " + want,
		"Agent: You can now ask me to open the last draft.",
	}, lines)
	assert.Equal(t, want, f.state.LastDraft)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "Hook\n\nBody\n\n#ai #agents #demo #workshop", string(data))
	f.author.AssertExpectations(t)
}

func TestCreateDraftDefaults(t *testing.T) {
	f := newFixture(t)
	f.author.On("Write", mock.Anything, DefaultTitle, "draft something about Go").Return("post", nil).Once()

	_, err := f.exec.Execute(context.Background(), Decision{Action: ActionCreatePostFile}, "draft something about Go", f.state)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "LinkedIn_Post_20250304-101112.txt"), f.state.LastDraft)
	f.author.AssertExpectations(t)
}

func TestCreateDraftAuthorFailure(t *testing.T) {
	f := newFixture(t)
	f.author.On("Write", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("model offline")).Once()

	lines, err := f.exec.Execute(context.Background(), Decision{Action: ActionCreateDraft}, "x", f.state)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model offline")
	assert.Equal(t, []string{"Agent: Generating LinkedIn post content..."}, lines)
	assert.Empty(t, f.state.LastDraft)
}

func TestOpenLast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	open := Decision{Action: ActionOpenFile, Args: map[string]string{ArgFilename: LastFile}}

	lines, err := f.exec.Execute(ctx, open, "open it", f.state)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent: I don't have a 'last' draft remembered yet."}, lines)

	f.state.LastDraft = filepath.Join(f.root, "gone.txt")
	lines, _ = f.exec.Execute(ctx, open, "open it", f.state)
	assert.Equal(t, []string{"Agent: I don't have a 'last' draft remembered yet."}, lines)
	assert.Empty(t, f.opener.opened)

	path := f.writeDraft(t, "kept.txt")
	f.state.LastDraft = path
	lines, _ = f.exec.Execute(ctx, Decision{Action: ActionOpenFile}, "open it", f.state)
	assert.Equal(t, []string{"Agent: Opened last draft: " + path}, lines)
	assert.Equal(t, []string{path}, f.opener.opened)
}

func TestOpenExplicit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	path := f.writeDraft(t, "post.txt")

	lines, err := f.exec.Execute(ctx, Decision{Action: ActionOpenFile, Args: map[string]string{ArgFilename: "post.txt"}}, "", f.state)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent: Opened draft: " + path}, lines)
	assert.Equal(t, path, f.state.LastDraft)

	for _, name := range []string{"missing.txt", "../post.txt", ""} {
		lines, _ = f.exec.Execute(ctx, Decision{Action: ActionOpenFile, Args: map[string]string{ArgFilename: name}}, "", f.state)
		assert.Equal(t, []string{"Agent: File '" + name + "' not found in drafts folder."}, lines)
	}
	assert.Equal(t, path, f.state.LastDraft)
	assert.Len(t, f.opener.opened, 1)
}

func TestOpenFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	f.opener.err = errors.New("no launcher")
	f.writeDraft(t, "post.txt")

	lines, err := f.exec.Execute(context.Background(), Decision{Action: ActionOpenFile, Args: map[string]string{ArgFilename: "post.txt"}}, "", f.state)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Agent: Failed to open")
	assert.Contains(t, lines[0], "no launcher")
	assert.Empty(t, f.state.LastDraft)
}

func TestListFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lines, err := f.exec.Execute(ctx, Decision{Action: ActionListFiles}, "", f.state)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent: No drafts found yet."}, lines)

	f.writeDraft(t, "b.txt")
	f.writeDraft(t, "a.txt")
	f.writeDraft(t, "c.md")
	lines, _ = f.exec.Execute(ctx, Decision{Action: ActionListFiles}, "", f.state)
	assert.Equal(t, []string{"Agent: Here are your drafts:", "  - a.txt", "  - b.txt"}, lines)
}

func TestCloseFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.state.LastDraft = "drafts/x.txt"

	lines, _ := f.exec.Execute(ctx, Decision{Action: ActionCloseFile, Args: map[string]string{ArgFilename: "other.txt"}}, "", f.state)
	assert.Equal(t, []string{"Agent: I can't force-close the editor. Please close any open windows manually."}, lines)
	assert.Equal(t, "drafts/x.txt", f.state.LastDraft)

	lines, _ = f.exec.Execute(ctx, Decision{Action: ActionCloseFile}, "", f.state)
	assert.Equal(t, []string{"Agent: I'll forget the last opened draft. Please close the editor window manually."}, lines)
	assert.Empty(t, f.state.LastDraft)

	lines, _ = f.exec.Execute(ctx, Decision{Action: ActionCloseFile}, "", f.state)
	assert.Equal(t, []string{"Agent: I can't force-close the editor. Please close any open windows manually."}, lines)
}

func TestNoneAndUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lines, err := f.exec.Execute(ctx, Decision{Action: ActionNone}, "", f.state)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = f.exec.Execute(ctx, Decision{Action: "delete_everything"}, "", f.state)
	require.NoError(t, err)
	assert.Equal(t, []string{"Agent: I don't recognize the tool 'delete_everything'. Doing nothing."}, lines)

	_, err = f.exec.Execute(ctx, Decision{Action: ActionNone}, "", nil)
	assert.Error(t, err)
}

func TestOpenerFuncSatisfiesInterface(t *testing.T) {
	f := newFixture(t)
	var got string
	exec, err := New(f.exec.Store(), opener.Func(func(_ context.Context, path string) error {
		got = path
		return nil
	}), f.author)
	require.NoError(t, err)

	path := f.writeDraft(t, "post.txt")
	_, err = exec.Execute(context.Background(), Decision{Action: ActionOpenFile, Args: map[string]string{ArgFilename: "post.txt"}}, "", f.state)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/pkg/drafts"
	"draftdesk/pkg/opener"
	"draftdesk/pkg/session"
)

// Author writes the body of a new draft.
type Author interface {
	Write(ctx context.Context, title, description string) (string, error)
}

// Executor performs resolved decisions against the drafts folder.
type Executor struct {
	store  *drafts.Store
	opener opener.Opener
	author Author
}

// New constructs an Executor. All collaborators are required.
func New(store *drafts.Store, open opener.Opener, author Author) (*Executor, error) {
	if store == nil {
		return nil, errors.New("executor: draft store is required")
	}
	if open == nil {
		return nil, errors.New("executor: opener is required")
	}
	if author == nil {
		return nil, errors.New("executor: author is required")
	}
	return &Executor{store: store, opener: open, author: author}, nil
}

// Store exposes the drafts store.
func (e *Executor) Store() *drafts.Store { return e.store }

// Execute applies d and returns the log lines describing what happened.
// utterance is the user's raw command, used as the default topic for new
// drafts. state is updated in place. Only an authoring failure is returned
// as an error; filesystem and opener failures are reported in the log.
func (e *Executor) Execute(ctx context.Context, d Decision, utterance string, state *session.State) ([]string, error) {
	if state == nil {
		return nil, errors.New("executor: session state is required")
	}
	switch d.Action {
	case ActionCreateDraft, ActionCreatePostFile:
		return e.createDraft(ctx, d, utterance, state)
	case ActionOpenFile:
		return e.openFile(ctx, d, state), nil
	case ActionListFiles:
		return e.listFiles(ctx), nil
	case ActionCloseFile:
		return closeFile(d, state), nil
	case ActionNone:
		return nil, nil
	default:
		logx.WithContext(ctx).Infof("executor: unrecognised action %q", d.Action)
		return []string{fmt.Sprintf("Agent: I don't recognize the tool '%s'. Doing nothing.", d.Action)}, nil
	}
}

func (e *Executor) createDraft(ctx context.Context, d Decision, utterance string, state *session.State) ([]string, error) {
	title := d.Arg(ArgTitle, DefaultTitle)
	description := d.Arg(ArgTopicDescription, utterance)

	lines := []string{"Agent: Generating LinkedIn post content..."}
	content, err := e.author.Write(ctx, title, description)
	if err != nil {
		return lines, fmt.Errorf("executor: write draft: %w", err)
	}

	path, err := e.store.Create(title, content)
	if err != nil {
		logx.WithContext(ctx).Errorf("executor: save draft %q: %v", title, err)
		return append(lines, fmt.Sprintf("Agent: Failed to save draft: %v", err)), nil
	}
	state.LastDraft = path
	return append(lines,
		"Agent: Draft created at: "+path,
		"Agent: You can now ask me to open the last draft.",
	), nil
}

func (e *Executor) openFile(ctx context.Context, d Decision, state *session.State) []string {
	filename := d.Arg(ArgFilename, LastFile)
	if filename == LastFile {
		if state.LastDraft == "" || !drafts.Exists(state.LastDraft) {
			return []string{"Agent: I don't have a 'last' draft remembered yet."}
		}
		if err := e.opener.Open(ctx, state.LastDraft); err != nil {
			return []string{e.openFailed(ctx, state.LastDraft, err)}
		}
		return []string{"Agent: Opened last draft: " + state.LastDraft}
	}

	path, err := e.store.Lookup(filename)
	if err != nil {
		if !errors.Is(err, drafts.ErrNotFound) {
			logx.WithContext(ctx).Errorf("executor: lookup %q: %v", filename, err)
		}
		return []string{fmt.Sprintf("Agent: File '%s' not found in drafts folder.", filename)}
	}
	if err := e.opener.Open(ctx, path); err != nil {
		return []string{e.openFailed(ctx, path, err)}
	}
	state.LastDraft = path
	return []string{"Agent: Opened draft: " + path}
}

func (e *Executor) openFailed(ctx context.Context, path string, err error) string {
	logx.WithContext(ctx).Errorf("executor: open %s: %v", path, err)
	return fmt.Sprintf("Agent: Failed to open %s: %v", path, err)
}

func (e *Executor) listFiles(ctx context.Context) []string {
	names, err := e.store.List()
	if err != nil {
		logx.WithContext(ctx).Errorf("executor: list drafts: %v", err)
		return []string{fmt.Sprintf("Agent: Failed to list drafts: %v", err)}
	}
	if len(names) == 0 {
		return []string{"Agent: No drafts found yet."}
	}
	lines := make([]string, 0, len(names)+1)
	lines = append(lines, "Agent: Here are your drafts:")
	for _, name := range names {
		lines = append(lines, "  - "+name)
	}
	return lines
}

func closeFile(d Decision, state *session.State) []string {
	if d.Arg(ArgFilename, LastFile) == LastFile && state.LastDraft != "" {
		state.LastDraft = ""
		return []string{"Agent: I'll forget the last opened draft. Please close the editor window manually."}
	}
	return []string{"Agent: I can't force-close the editor. Please close any open windows manually."}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"draftdesk/pkg/session"
)

func runChat(cmd *cobra.Command, opts *options) error {
	setupLogging(opts)
	out := printer{out: cmd.OutOrStdout()}
	a, closeFn, err := buildAgent(opts, func(_ string, line string) { out.line(line) })
	if err != nil {
		return err
	}
	defer closeFn()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          youColor.Sprint("You: "),
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           readline.NewCancelableStdin(os.Stdin),
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return repl(ctx, a, rl, out, session.NewID())
}

func runOnce(cmd *cobra.Command, opts *options, command string) error {
	setupLogging(opts)
	out := printer{out: cmd.OutOrStdout()}
	a, closeFn, err := buildAgent(opts, func(_ string, line string) { out.line(line) })
	if err != nil {
		return err
	}
	defer closeFn()

	if _, err := a.Handle(cmd.Context(), "", command); err != nil {
		out.err(err)
		return reportedError{err}
	}
	return nil
}

func runDrafts(cmd *cobra.Command, opts *options) error {
	setupLogging(opts)
	out := printer{out: cmd.OutOrStdout()}
	a, closeFn, err := buildAgent(opts, nil)
	if err != nil {
		return err
	}
	defer closeFn()

	names, err := a.Drafts().List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		out.line("Agent: No drafts found yet.")
		return nil
	}
	out.line("Agent: Here are your drafts:")
	for _, name := range names {
		out.line("  - " + name)
	}
	return nil
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".draftctl_history")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	agentpkg "draftdesk/pkg/agent"
)

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
}

func banner(w io.Writer) {
	fmt.Fprintln(w, "🔹 Local LinkedIn Draft Agent")
	fmt.Fprintln(w, "Type a command, or 'exit' to quit.")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  - Create a LinkedIn post announcing my Agentic AI workshop for college students.")
	fmt.Fprintln(w, "  - Open the last LinkedIn draft.")
	fmt.Fprintln(w, "  - List all my drafts.")
	fmt.Fprintln(w, "  - Close the last draft.")
	fmt.Fprintln(w)
}

// repl reads commands until exit, quit or end of input. Every command runs
// in the same session; a failed command is reported and the loop continues.
func repl(ctx context.Context, a *agentpkg.Agent, in lineReader, out printer, sessionID string) error {
	banner(out.out)
	for {
		input, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if input == "" {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		command := strings.TrimSpace(input)
		switch strings.ToLower(command) {
		case "exit", "quit":
			out.line("Agent: Goodbye!")
			return nil
		}

		if _, err := a.Handle(ctx, sessionID, command); err != nil {
			out.err(err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	out.line("Agent: Goodbye!")
	return nil
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/internal/config"
	agentpkg "draftdesk/pkg/agent"
	llmpkg "draftdesk/pkg/llm"
	"draftdesk/pkg/opener"
	"draftdesk/pkg/session"
)

var (
	youColor   = color.New(color.FgCyan, color.Bold)
	agentColor = color.New(color.FgGreen)
	itemColor  = color.New(color.FgHiBlack)
	errColor   = color.New(color.FgRed)
)

// printer writes agent lines with a colour per line kind.
type printer struct {
	out io.Writer
}

func (p printer) line(s string) {
	switch {
	case strings.HasPrefix(s, "  - "):
		itemColor.Fprintln(p.out, s)
	case strings.HasPrefix(s, "Agent: Error:"):
		errColor.Fprintln(p.out, s)
	default:
		agentColor.Fprintln(p.out, s)
	}
}

func (p printer) err(err error) {
	errColor.Fprintf(p.out, "Agent: Error: %v\n", err)
}

// buildAgent wires the command-line agent. Replaced in tests.
var buildAgent = func(opts *options, observer agentpkg.Observer) (*agentpkg.Agent, func(), error) {
	llmCfg, err := config.LoadLLM(opts.llmConfig)
	if err != nil {
		return nil, nil, err
	}
	agentCfg, err := config.LoadAgent(opts.agentConfig)
	if err != nil {
		return nil, nil, err
	}
	client, err := llmpkg.NewClient(llmCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("llm client: %w", err)
	}
	sessions, err := session.NewMemoryStore(1)
	if err != nil {
		return nil, nil, err
	}
	a, err := agentpkg.Build(agentCfg, client, sessions, opener.NewSystem(), nil, agentpkg.WithObserver(observer))
	if err != nil {
		return nil, nil, err
	}
	return a, func() { _ = client.Close() }, nil
}

func setupLogging(opts *options) {
	logx.MustSetup(logx.LogConf{Mode: "console", Encoding: "plain", Level: opts.logLevel})
	logx.DisableStat()
	if opts.noColor {
		color.NoColor = true
	}
}

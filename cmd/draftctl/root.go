package main

import (
	"strings"

	"github.com/spf13/cobra"
)

type options struct {
	llmConfig   string
	agentConfig string
	logLevel    string
	noColor     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "draftctl",
		Short: "Local LinkedIn draft agent",
		Long: `draftctl turns plain-language commands into LinkedIn post drafts on disk.

Examples:
  draftctl                                  # interactive chat
  draftctl run list all my drafts           # single command
  draftctl drafts                           # list drafts without calling the model`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.llmConfig, "llm-config", "", "LLM config file (default etc/llm.yaml when present)")
	flags.StringVar(&opts.agentConfig, "agent-config", "", "agent config file (default etc/agent.yaml when present)")
	flags.StringVar(&opts.logLevel, "log-level", "error", "log level: debug|info|error|severe")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start an interactive session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runChat(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "run <command...>",
			Short: "Run a single command and exit",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOnce(cmd, opts, strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:   "drafts",
			Short: "List saved drafts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDrafts(cmd, opts)
			},
		},
	)
	return root
}

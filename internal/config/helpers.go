package config

import (
	"fmt"

	"draftdesk/pkg/agent"
	"draftdesk/pkg/confkit"
	"draftdesk/pkg/llm"
)

// Default section locations relative to the project root.
const (
	DefaultMainFile  = "etc/draftdesk.yaml"
	DefaultLLMFile   = "etc/llm.yaml"
	DefaultAgentFile = "etc/agent.yaml"
)

// LoadLLM loads the LLM section from path, or from etc/llm.yaml when path is
// empty. A missing default file yields the built-in defaults.
func LoadLLM(path string) (*llm.Config, error) {
	if path == "" {
		path = confkit.DefaultPath(DefaultLLMFile)
		if !fileExists(path) {
			return llm.DefaultConfig(), nil
		}
	}
	cfg, err := llm.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load llm config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadAgent loads the agent section from path, or from etc/agent.yaml when
// path is empty. A missing default file yields the built-in defaults.
func LoadAgent(path string) (*agent.Config, error) {
	if path == "" {
		path = confkit.DefaultPath(DefaultAgentFile)
		if !fileExists(path) {
			return agent.DefaultConfig(), nil
		}
	}
	cfg, err := agent.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load agent config %s: %w", path, err)
	}
	return cfg, nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"draftdesk/internal/config"
	"draftdesk/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	llmCfg := cfg.LLMConfig()
	agentCfg := cfg.AgentConfig()
	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Listen: %s:%d", cfg.Host, cfg.Port),
		fmt.Sprintf("Request timeout: %s", cfg.RequestTimeout()),
		fmt.Sprintf("Sessions: %s (capacity %d, ttl %ds)", cfg.Sessions.Store, cfg.Sessions.Capacity, cfg.Sessions.TTL),
		fmt.Sprintf("Postgres: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		sectionLine("LLM config", cfg.LLM),
		sectionLine("Agent config", cfg.Agent),
		fmt.Sprintf("LLM endpoint: %s (model %s)", llmCfg.BaseURL, llmCfg.DefaultModel),
		fmt.Sprintf("Drafts folder: %s", agentCfg.DraftsDir),
		fmt.Sprintf("Journal: %s", valueOr(agentCfg.JournalDir, "disabled")),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: defaults", name)
	}
}

package agent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"draftdesk/pkg/confkit"
	"draftdesk/pkg/drafts"
)

const defaultTone = "professional, enthusiastic, concise"

// Config controls the command cycle: where drafts live, which models are
// asked, and which prompt files override the built-in ones.
type Config struct {
	DraftsDir    string         `yaml:"drafts_dir"`
	FallbackName string         `yaml:"fallback_name"`
	JournalDir   string         `yaml:"journal_dir"`
	Resolver     ResolverConfig `yaml:"resolver"`
	Author       AuthorConfig   `yaml:"author"`
}

// ResolverConfig tunes the action-selection call.
type ResolverConfig struct {
	Model          string `yaml:"model"`
	JSONMode       *bool  `yaml:"json_mode"`
	PromptTemplate string `yaml:"prompt_template"`
}

// AuthorConfig tunes the content-writing call.
type AuthorConfig struct {
	Model          string   `yaml:"model"`
	Temperature    *float64 `yaml:"temperature,omitempty"`
	Tone           string   `yaml:"tone"`
	SystemTemplate string   `yaml:"system_template"`
	UserTemplate   string   `yaml:"user_template"`
}

// LoadConfig reads configuration from disk. Relative template paths are
// resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open agent config: %w", err)
	}
	defer file.Close()
	cfg, err := LoadConfigFromReader(file)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(confkit.BaseDir(path))
	return cfg, nil
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read agent config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal agent config: %w", err)
	}
	cfg.expandFields()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the settings used when no agent file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) expandFields() {
	c.DraftsDir = strings.TrimSpace(os.ExpandEnv(c.DraftsDir))
	c.JournalDir = strings.TrimSpace(os.ExpandEnv(c.JournalDir))
	c.FallbackName = strings.TrimSpace(c.FallbackName)
	c.Resolver.Model = strings.TrimSpace(c.Resolver.Model)
	c.Resolver.PromptTemplate = strings.TrimSpace(os.ExpandEnv(c.Resolver.PromptTemplate))
	c.Author.Model = strings.TrimSpace(c.Author.Model)
	c.Author.Tone = strings.TrimSpace(c.Author.Tone)
	c.Author.SystemTemplate = strings.TrimSpace(os.ExpandEnv(c.Author.SystemTemplate))
	c.Author.UserTemplate = strings.TrimSpace(os.ExpandEnv(c.Author.UserTemplate))
}

func (c *Config) applyDefaults() {
	if c.DraftsDir == "" {
		c.DraftsDir = drafts.DefaultRoot
	}
	if c.FallbackName == "" {
		c.FallbackName = drafts.DefaultFallbackName
	}
	if c.Resolver.JSONMode == nil {
		enabled := true
		c.Resolver.JSONMode = &enabled
	}
	if c.Author.Tone == "" {
		c.Author.Tone = defaultTone
	}
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Resolver.PromptTemplate, &c.Author.SystemTemplate, &c.Author.UserTemplate} {
		if *p != "" {
			*p = confkit.ResolvePath(base, *p)
		}
	}
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if c.DraftsDir == "" {
		return errors.New("agent config: drafts_dir is required")
	}
	if drafts.Sanitize(c.FallbackName) != c.FallbackName {
		return fmt.Errorf("agent config: fallback_name %q must contain only letters, digits, '-' and '_'", c.FallbackName)
	}
	if t := c.Author.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("agent config: author temperature must be between 0 and 2, got %v", *t)
	}
	return nil
}

// JSONModeEnabled reports whether the resolver asks for JSON-constrained output.
func (c ResolverConfig) JSONModeEnabled() bool {
	return c.JSONMode == nil || *c.JSONMode
}

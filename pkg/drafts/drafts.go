package drafts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultRoot is the drafts directory used when none is configured.
	DefaultRoot = "drafts"
	// DefaultFallbackName replaces titles that sanitise to nothing.
	DefaultFallbackName = "linkedin_post"
	// Extension is the suffix of every draft file.
	Extension = ".txt"
	// TimestampLayout renders the creation time at second resolution.
	TimestampLayout = "20060102-150405"
)

// ErrNotFound reports a draft that is not present under the root.
var ErrNotFound = errors.New("drafts: not found")

// Store keeps drafts as flat text files under a single root directory.
type Store struct {
	root         string
	fallbackName string
	now          func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now, used for deterministic filenames in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFallbackName sets the base name used when a title sanitises to nothing.
func WithFallbackName(name string) Option {
	return func(s *Store) {
		if name = strings.TrimSpace(name); name != "" {
			s.fallbackName = name
		}
	}
}

// NewStore returns a store rooted at root. The directory is created lazily.
func NewStore(root string, opts ...Option) *Store {
	if strings.TrimSpace(root) == "" {
		root = DefaultRoot
	}
	s := &Store{
		root:         root,
		fallbackName: DefaultFallbackName,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the drafts directory.
func (s *Store) Root() string { return s.root }

// EnsureRoot creates the drafts directory when absent.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("drafts: create root %s: %w", s.root, err)
	}
	return nil
}

// Create writes content to a new file named after title and the current
// time, and returns its path.
func (s *Store) Create(title, content string) (string, error) {
	if err := s.EnsureRoot(); err != nil {
		return "", err
	}
	path := filepath.Join(s.root, s.FileName(title, s.now()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("drafts: write %s: %w", path, err)
	}
	return path, nil
}

// FileName composes {sanitized_title}_{YYYYMMDD-HHMMSS}.txt.
func (s *Store) FileName(title string, at time.Time) string {
	base := Sanitize(title)
	if base == "" {
		base = s.fallbackName
	}
	return base + "_" + at.Format(TimestampLayout) + Extension
}

// Sanitize keeps ASCII letters, digits, '-', '_' and spaces, trims the
// result and turns the remaining spaces into underscores. It returns "" when
// nothing survives.
func Sanitize(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// Lookup resolves name relative to the root and reports ErrNotFound when the
// file is absent or name would leave the flat root.
func (s *Store) Lookup(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	path := filepath.Join(s.root, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return "", fmt.Errorf("drafts: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %q is a directory", ErrNotFound, name)
	}
	return path, nil
}

// List returns the names of the .txt files directly under the root, sorted.
// The root is created when absent.
func (s *Store) List() ([]string, error) {
	if err := s.EnsureRoot(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("drafts: read %s: %w", s.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

package opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener hands a file to the host's default application.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Starter launches a process without waiting for it to exit.
type Starter func(name string, args ...string) error

// Command returns the launcher invocation for a platform, keyed by GOOS values.
func Command(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// System opens files with the platform default-opener command.
type System struct {
	goos  string
	start Starter
}

// Option customises System.
type Option func(*System)

// WithPlatform overrides runtime.GOOS.
func WithPlatform(goos string) Option {
	return func(s *System) {
		if goos != "" {
			s.goos = goos
		}
	}
}

// WithStarter replaces the process starter.
func WithStarter(start Starter) Option {
	return func(s *System) {
		if start != nil {
			s.start = start
		}
	}
}

// NewSystem returns an opener for the current platform.
func NewSystem(opts ...Option) *System {
	s := &System{goos: runtime.GOOS, start: startDetached}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open launches the default application for path. It returns once the
// launcher has started.
func (s *System) Open(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("opener: empty path")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args := Command(s.goos, path)
	if err := s.start(name, args...); err != nil {
		return fmt.Errorf("opener: %s %s: %w", name, path, err)
	}
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the launcher so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Func adapts a function to Opener.
type Func func(ctx context.Context, path string) error

// Open calls f.
func (f Func) Open(ctx context.Context, path string) error { return f(ctx, path) }

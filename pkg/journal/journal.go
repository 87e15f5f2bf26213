package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CommandRecord captures one command cycle for audit and prompt tuning.
type CommandRecord struct {
	Timestamp    time.Time         `json:"timestamp"`
	Sequence     int               `json:"sequence"`
	SessionID    string            `json:"session_id"`
	Command      string            `json:"command"`
	PromptDigest string            `json:"prompt_digest,omitempty"`
	Tool         string            `json:"tool,omitempty"`
	Args         map[string]string `json:"args,omitempty"`
	Message      string            `json:"message,omitempty"`
	Log          []string          `json:"log"`
	DurationMS   int64             `json:"duration_ms"`
	Success      bool              `json:"success"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// Writer persists command records to a directory as one JSON file each.
type Writer struct {
	dir   string
	mu    sync.Mutex
	seq   int
	nowFn func() time.Time
}

// NewWriter creates dir if needed and returns a writer for it.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, errors.New("journal: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: create %s: %w", dir, err)
	}
	return &Writer{dir: dir, nowFn: time.Now}, nil
}

// Dir returns the journal directory.
func (w *Writer) Dir() string { return w.dir }

// WriteCommand writes rec to a timestamped, sequence-numbered JSON file and
// returns its path.
func (w *Writer) WriteCommand(rec *CommandRecord) (string, error) {
	if rec == nil {
		return "", errors.New("journal: nil record")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	rec.Sequence = w.seq
	name := fmt.Sprintf("command_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
	path := filepath.Join(w.dir, name)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("journal: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("journal: write %s: %w", path, err)
	}
	return path, nil
}

package confkit

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectRoot walks upwards from the working directory until it finds a
// directory containing go.mod or .git. Falls back to the working directory.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	dir := wd
	for i := 0; i < 8; i++ {
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return wd, nil
}

// ProjectPath joins the project root with rel.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// DefaultPath returns rel when it exists relative to the working directory,
// otherwise the same path under the project root. Used for default config
// locations so binaries work from both the repo root and subdirectories.
func DefaultPath(rel string) string {
	if fileExists(rel) {
		return rel
	}
	p, err := ProjectPath(rel)
	if err != nil {
		return rel
	}
	return p
}

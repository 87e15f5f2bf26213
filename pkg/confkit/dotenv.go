package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenvOnce loads environment variables from a .env file. The first call
// wins; later calls are no-ops. Existing variables are kept unless
// DOTENV_OVERLOAD=1. NO_DOTENV=1 disables loading, ENV_FILE names an explicit
// file. Otherwise .env is looked up from the working directory upwards until a
// go.mod or .git marks the project root.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}

	overload := os.Getenv("DOTENV_OVERLOAD") == "1"
	load := func(paths ...string) {
		if overload {
			_ = godotenv.Overload(paths...)
		} else {
			_ = godotenv.Load(paths...)
		}
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		load(envFile)
		return
	}

	dir, err := os.Getwd()
	if err != nil {
		load(".env")
		return
	}
	for i := 0; i < 8; i++ {
		if fileExists(filepath.Join(dir, ".env")) {
			load(filepath.Join(dir, ".env"))
		}
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envSearchDepth limits how many parent directories are searched for a
// .env file.
const envSearchDepth = 3

// LoadDotEnv loads environment variables from the nearest .env file, looking
// in the working directory and up to three parent directories. Variables
// already present in the environment are not overwritten. Returns true if a
// file was found and loaded.
func LoadDotEnv() bool {
	dir, err := os.Getwd()
	if err != nil {
		return false
	}

	for i := 0; i <= envSearchDepth; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path) == nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return false
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotEnvPaths returns the .env files read at startup: the working directory
// first, then ~/.deadline.
func DotEnvPaths() []string {
	paths := []string{".env"}
	if dir := Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	return paths
}

// LoadDotEnv copies KEY=value pairs from the files into the environment.
// Variables that are already set keep their value and missing files are
// skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

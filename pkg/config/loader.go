package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// SecretsFile is read from the config directory before env overrides apply.
const SecretsFile = "secrets.env"

// LoadSecrets loads secrets.env from configDir into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadSecrets(configDir string) error {
	path := filepath.Join(configDir, SecretsFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", SecretsFile, err)
	}
	return nil
}

// GetEnv returns the environment variable or defaultValue when unset.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetConfigPath returns CONFIG_PATH, defaulting to config.yaml.
func GetConfigPath() string {
	return GetEnv("CONFIG_PATH", "config.yaml")
}

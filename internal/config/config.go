// Package config loads the service configuration from the environment,
// optionally seeded from an env file in the user's config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	AppName     = "maisoku"
	EnvFileName = "config.env"
)

// Config holds everything the service needs at startup.
type Config struct {
	// GeminiAPIKey authenticates against the Gemini API. When empty the
	// service still starts, but every convert refuses with a
	// configuration-missing failure.
	GeminiAPIKey string
	// GeminiModel overrides the default extraction model.
	GeminiModel string
	// ListenAddr is the HTTP listen address.
	ListenAddr string
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// FromEnv reads the configuration from environment variables, applying
// defaults for everything but the API key.
func FromEnv() Config {
	cfg := Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("MAISOKU_MODEL"),
		ListenAddr:   os.Getenv("MAISOKU_LISTEN"),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return cfg
}

// MissingKeys lists required configuration keys that are not set.
func (c Config) MissingKeys() []string {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	return missing
}

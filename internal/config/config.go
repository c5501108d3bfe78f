// Package config loads the application configuration from config.json,
// an optional .env file and the process environment, in increasing priority.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Config represents the application configuration.
type Config struct {
	GeminiAPIKey  string   `json:"gemini_api_key"`
	GeminiModel   string   `json:"gemini_model"`
	DatabaseURL   string   `json:"DATABASE_URL"`
	Store         string   `json:"store"`
	SQLitePath    string   `json:"sqlite_path"`
	LocalLLMURL   string   `json:"local_llm_url"`
	LocalLLMModel string   `json:"local_llm_model"`
	Addr          string   `json:"addr"`
	AllowOrigins  []string `json:"allow_origins"`
	LogLevel      string   `json:"log_level"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		GeminiModel:   "gemini-1.5-flash",
		Store:         StoreSQLite,
		SQLitePath:    "mise.db",
		LocalLLMURL:   "http://localhost:1234/v1/chat/completions",
		LocalLLMModel: "gemma-3-12b-it:2",
		Addr:          "127.0.0.1:8080",
		AllowOrigins:  []string{"http://localhost:8081"},
		LogLevel:      "info",
	}
}

// Load reads path (missing file is fine), then .env, then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Store, "MISE_STORE")
	setString(&c.SQLitePath, "MISE_SQLITE_PATH")
	setString(&c.LocalLLMURL, "LOCAL_LLM_URL")
	setString(&c.LocalLLMModel, "LOCAL_LLM_MODEL")
	setString(&c.Addr, "MISE_ADDR")
	setString(&c.LogLevel, "MISE_LOG_LEVEL")
	if v := os.Getenv("MISE_ALLOW_ORIGIN"); v != "" {
		c.AllowOrigins = strings.Split(v, ",")
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the selected store has what it needs.
func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("sqlite_path is required for the sqlite store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

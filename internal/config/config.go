// Package config provides configuration management for the interview
// server.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// placeholderKey is the template value shipped in example env files; it is
// treated the same as no key at all.
const placeholderKey = "your_openai_api_key_here"

// Config holds all configuration for the interview server.
type Config struct {
	// ServerAddr is the address the HTTP server listens on (e.g., ":8080").
	ServerAddr string

	// OpenAIAPIKey enables the AI collaborator. Empty (or the placeholder
	// value) runs the engine entirely on fallback generation.
	OpenAIAPIKey string

	// OpenAIModel is the chat model for generation calls.
	OpenAIModel string

	// WhisperModel is the audio transcription model.
	WhisperModel string

	// CompanyName appears in greetings.
	CompanyName string

	// RolesDir is an optional directory of YAML role files overlaying the
	// built-in role catalog. Empty disables the overlay.
	RolesDir string

	// Workers caps concurrently running pipeline chains.
	Workers int

	// SessionTTL evicts sessions older than this. 0 disables eviction
	// (sessions live for the process lifetime).
	SessionTTL time.Duration
}

// Load creates a Config from the config file and environment variables.
// Values are resolved in order: environment variable > config file > default.
func Load() (*Config, error) {
	// Load config file (~/.interviewd/config.env) into the environment.
	// Existing env vars take precedence (loadConfigFile only sets unset vars).
	loadConfigFile()

	return &Config{
		ServerAddr:   envOr("INTERVIEWD_ADDR", ":8080"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOr("OPENAI_MODEL", "gpt-3.5-turbo"),
		WhisperModel: envOr("WHISPER_MODEL", "whisper-1"),
		CompanyName:  envOr("COMPANY_NAME", "TechCorp"),
		RolesDir:     os.Getenv("INTERVIEWD_ROLES_DIR"),
		Workers:      envOrInt("INTERVIEWD_WORKERS", 8),
		SessionTTL:   envOrDuration("INTERVIEWD_SESSION_TTL", 0),
	}, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session TTL cannot be negative, got %v", c.SessionTTL)
	}
	return nil
}

// CollaboratorEnabled reports whether generative-AI calls are configured.
func (c *Config) CollaboratorEnabled() bool {
	return c.OpenAIAPIKey != "" && c.OpenAIAPIKey != placeholderKey
}

// loadConfigFile reads ~/.interviewd/config.env and sets any values that are
// not already present in the environment. This ensures env vars always win.
func loadConfigFile() {
	path := filepath.Join(defaultDataDir(), "config.env")
	f, err := os.Open(path)
	if err != nil {
		return // file doesn't exist or can't be read — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".interviewd"
	}
	return filepath.Join(home, ".interviewd")
}

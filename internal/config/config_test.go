package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME at an empty temp dir and clears the env vars Load
// reads, so tests never see the developer's real config.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"INTERVIEWD_ADDR", "OPENAI_API_KEY", "OPENAI_MODEL", "WHISPER_MODEL",
		"COMPANY_NAME", "INTERVIEWD_ROLES_DIR", "INTERVIEWD_WORKERS", "INTERVIEWD_SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" || cfg.WhisperModel != "whisper-1" {
		t.Errorf("models = %q / %q", cfg.OpenAIModel, cfg.WhisperModel)
	}
	if cfg.CompanyName != "TechCorp" {
		t.Errorf("CompanyName = %q", cfg.CompanyName)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.SessionTTL != 0 {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.CollaboratorEnabled() {
		t.Error("collaborator should be disabled without an API key")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("INTERVIEWD_ADDR", ":9999")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("COMPANY_NAME", "Acme")
	t.Setenv("INTERVIEWD_WORKERS", "2")
	t.Setenv("INTERVIEWD_SESSION_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr != ":9999" || cfg.CompanyName != "Acme" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if !cfg.CollaboratorEnabled() {
		t.Error("collaborator should be enabled with an API key")
	}
}

func TestLoad_InvalidNumericValuesFallBack(t *testing.T) {
	isolate(t)
	t.Setenv("INTERVIEWD_WORKERS", "many")
	t.Setenv("INTERVIEWD_SESSION_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 || cfg.SessionTTL != 0 {
		t.Errorf("Workers = %d, SessionTTL = %v, want defaults", cfg.Workers, cfg.SessionTTL)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{ServerAddr: ":8080", Workers: 8}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	invalid := []*Config{
		{Workers: 8},
		{ServerAddr: ":8080", Workers: 0},
		{ServerAddr: ":8080", Workers: 8, SessionTTL: -time.Minute},
	}
	for i, cfg := range invalid {
		if err := cfg.Validate(); err == nil {
			t.Errorf("config %d should be rejected: %+v", i, cfg)
		}
	}
}

func TestCollaboratorEnabled_PlaceholderKey(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "your_openai_api_key_here"}
	if cfg.CollaboratorEnabled() {
		t.Error("the placeholder key must not enable the collaborator")
	}
}

func TestLoad_ConfigFileFallback(t *testing.T) {
	isolate(t)

	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".interviewd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "# interviewd config\nCOMPANY_NAME=FileCorp\nINTERVIEWD_ADDR=:7001\n"
	if err := os.WriteFile(filepath.Join(dir, "config.env"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// An explicit env var still wins over the file.
	t.Setenv("INTERVIEWD_ADDR", ":7002")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CompanyName != "FileCorp" {
		t.Errorf("CompanyName = %q, want the config file value", cfg.CompanyName)
	}
	if cfg.ServerAddr != ":7002" {
		t.Errorf("ServerAddr = %q, env var should win over the file", cfg.ServerAddr)
	}
}

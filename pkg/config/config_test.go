package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Fatalf("Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Server.MaxContentLength != 16777216 {
		t.Fatalf("MaxContentLength = %d", cfg.Server.MaxContentLength)
	}
	if cfg.RateLimit.Requests != 5 || cfg.RateLimit.Window != 300*time.Second {
		t.Fatalf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.AI.Provider != config.ProviderGemini || len(cfg.AI.Models) == 0 {
		t.Fatalf("ai = %+v", cfg.AI)
	}
}

func TestLoadMissingKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODELS", "a, b ,,c")
	t.Setenv("RATE_LIMIT_WINDOW", "60")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := strings.Join(cfg.AI.Models, "|"); got != "a|b|c" {
		t.Fatalf("Models = %q", got)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Fatalf("Window = %v", cfg.RateLimit.Window)
	}
}

func TestUnknownStorageMode(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("STORAGE_MODE", "ftp")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unknown storage mode")
	}
}

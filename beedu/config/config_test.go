package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "JWT_SECRET", "TOKEN_TTL", "DATABASE_URL", "DB_HOST", "OPENAI_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Addr != ":8000" {
		t.Errorf("expected default addr :8000, got %q", cfg.Addr)
	}
	if cfg.JWTSecret != DefaultJWTSecret {
		t.Errorf("expected default jwt secret, got %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("expected default openai base url, got %q", cfg.OpenAIBaseURL)
	}
	if cfg.DatabaseConfigured() {
		t.Error("expected DatabaseConfigured false with no connection info")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DATABASE_URL", "postgres://u:p@h:5432/db")

	cfg := LoadConfig()
	if cfg.Addr != ":9090" {
		t.Errorf("expected overridden addr, got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h token ttl, got %v", cfg.TokenTTL)
	}
	if !cfg.DatabaseConfigured() {
		t.Error("expected DatabaseConfigured true with DATABASE_URL set")
	}
}

func TestTokenTTLBadValueFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := LoadConfig()
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected fallback ttl for a bad value, got %v", cfg.TokenTTL)
	}
}

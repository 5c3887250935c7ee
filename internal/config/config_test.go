package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 10*time.Second)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "http://localhost:3000")
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.RateLimitMutation != 30 {
		t.Errorf("RateLimitMutation = %d, want %d", cfg.RateLimitMutation, 30)
	}
	if cfg.RateLimitCleanupInterval != 5*time.Minute {
		t.Errorf("RateLimitCleanupInterval = %v, want %v", cfg.RateLimitCleanupInterval, 5*time.Minute)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://app.example.com")
	t.Setenv("RATE_LIMIT_GENERAL", "240")
	t.Setenv("RATE_LIMIT_MUTATION", "60")
	t.Setenv("RATE_LIMIT_CLEANUP_INTERVAL", "10m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 30*time.Second)
	}
	if cfg.CORSAllowedOrigin != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "https://app.example.com")
	}
	if cfg.RateLimitGeneral != 240 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 240)
	}
	if cfg.RateLimitMutation != 60 {
		t.Errorf("RateLimitMutation = %d, want %d", cfg.RateLimitMutation, 60)
	}
	if cfg.RateLimitCleanupInterval != 10*time.Minute {
		t.Errorf("RateLimitCleanupInterval = %v, want %v", cfg.RateLimitCleanupInterval, 10*time.Minute)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_GENERAL", "not-a-number")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "verbose")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want default %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default %v", cfg.ShutdownTimeout, 10*time.Second)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want default %v", cfg.LogLevel, slog.LevelInfo)
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if cfg.LogLevel != tt.want {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.want)
			}
		})
	}
}

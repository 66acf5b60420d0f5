// ABOUTME: Tests for configuration loading
// ABOUTME: Covers YAML parsing, env expansion, durations, and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  path: "/tmp/econexion.db"
auth:
  jwt_secret: "super-secret"
  token_ttl: "12h"
logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("HTTPAddr: got %q", cfg.Server.HTTPAddr)
	}
	if cfg.Database.Path != "/tmp/econexion.db" {
		t.Errorf("Database.Path: got %q", cfg.Database.Path)
	}
	if cfg.Auth.JWTSecret != "super-secret" {
		t.Errorf("JWTSecret: got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL: got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q", cfg.Logging.Level)
	}
}

func TestLoad_DefaultTokenTTL(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  path: "/tmp/econexion.db"
auth:
  jwt_secret: "super-secret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL: got %v, want %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("ECONEXION_TEST_SECRET", "from-env")

	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  path: "/tmp/econexion.db"
auth:
  jwt_secret: "${ECONEXION_TEST_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("JWTSecret: got %q, want %q", cfg.Auth.JWTSecret, "from-env")
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no http_addr", "database:\n  path: \"/tmp/db\"\nauth:\n  jwt_secret: \"s\"\n"},
		{"no database path", "server:\n  http_addr: \":8080\"\nauth:\n  jwt_secret: \"s\"\n"},
		{"no jwt secret", "server:\n  http_addr: \":8080\"\ndatabase:\n  path: \"/tmp/db\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoad_BadTokenTTL(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":8080"
database:
  path: "/tmp/db"
auth:
  jwt_secret: "s"
  token_ttl: "not-a-duration"
`)

	if _, err := Load(path); err == nil {
		t.Error("expected duration parse error, got nil")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

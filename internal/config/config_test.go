package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weightgoal.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.SessionTTL.Duration != 24*time.Hour {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
addr = ":9090"
log_level = "debug"
timezone = "Europe/Berlin"
session_ttl = "12h"

[oidc]
issuer = "https://id.example.com"
client_id = "weightgoal"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected cfg: %+v", cfg)
	}
	if cfg.SessionTTL.Duration != 12*time.Hour {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
	if !cfg.OIDC.Enabled() {
		t.Error("oidc should be enabled")
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("Location = %v, %v", loc, err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, `addr = ":9090"`)
	t.Setenv("ADDR", ":7070")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if !cfg.LogJSON {
		t.Error("log_json should be set from env")
	}
	if cfg.SessionTTL.Duration != 30*time.Minute {
		t.Errorf("session ttl = %v", cfg.SessionTTL)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad toml", body: `addr = `},
		{name: "bad duration", body: `session_ttl = "forever"`},
		{name: "bad timezone", body: `timezone = "Mars/Olympus"`},
		{name: "bad bool env", body: ``, env: map[string]string{"LOG_JSON": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

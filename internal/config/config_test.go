package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("ADMIN_API_BASE_URL", "")
	t.Setenv("VERSION", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Notifications.Capacity != 20 || cfg.Calendar.HoverAutoClose != 3*time.Second {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if cfg.Backend.BaseURL != "" || cfg.Version != "dev" {
		t.Errorf("Unexpected backend/version: %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	data := `
listen: ":9000"
timezone: Asia/Kolkata
notifications:
  capacity: 5
  ttl: 10s
calendar:
  hover_auto_close: 1500ms
  badge_limit: 5
  sync_interval: 30s
backend:
  base_url: https://file.example/api/
  timeout: 20s
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADMIN_API_BASE_URL", "")
	t.Setenv("ADMIN_API_TOKEN", "env-token")
	t.Setenv("VERSION", "1.2.3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Listen != ":9000" || cfg.Notifications.Capacity != 5 || cfg.Notifications.TTL != 10*time.Second {
		t.Errorf("Unexpected file values: %+v", cfg)
	}
	if cfg.Calendar.HoverAutoClose != 1500*time.Millisecond || cfg.Calendar.BadgeLimit != 5 {
		t.Errorf("Unexpected calendar config: %+v", cfg.Calendar)
	}
	if cfg.Calendar.SyncInterval != 15*time.Minute {
		t.Errorf("Expected sub-minute sync interval to fall back, got %s", cfg.Calendar.SyncInterval)
	}
	if cfg.Backend.BaseURL != "https://file.example/api" || cfg.Backend.Token != "env-token" {
		t.Errorf("Unexpected backend config: %+v", cfg.Backend)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Expected VERSION override, got %s", cfg.Version)
	}

	t.Setenv("ADMIN_API_BASE_URL", "https://env.example")
	cfg, _ = Load(path)
	if cfg.Backend.BaseURL != "https://env.example" {
		t.Errorf("Expected environment to win, got %s", cfg.Backend.BaseURL)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("notifications: [1, 2"), 0o600)

	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Tables.PageSize = 25

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Tables.PageSize != 25 || loaded.Notifications.TTL != 4*time.Second {
		t.Errorf("Unexpected reloaded config: %+v", loaded)
	}
}

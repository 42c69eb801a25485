package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected DataDir=%s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected level=info, got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("ROLLCALL_DATA_DIR", "")
	t.Setenv("ROLLCALL_LOG_LEVEL", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rollcall.yaml")

	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/rollcall"
	cfg.Bucket.Name = "school-attendance-exports"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "/var/lib/rollcall" {
		t.Errorf("expected DataDir=/var/lib/rollcall, got %s", loaded.DataDir)
	}
	if loaded.Bucket.Name != "school-attendance-exports" {
		t.Errorf("expected bucket name round-trip, got %s", loaded.Bucket.Name)
	}
}

func TestConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ROLLCALL_DATA_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load of a missing file should not fail: %v", err)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected defaults, got DataDir=%s", cfg.DataDir)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ROLLCALL_DATA_DIR", "/tmp/ledger")
	t.Setenv("ROLLCALL_BUCKET", "env-bucket")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/ledger" {
		t.Errorf("expected env DataDir, got %s", cfg.DataDir)
	}
	if cfg.Bucket.Name != "env-bucket" {
		t.Errorf("expected env bucket, got %s", cfg.Bucket.Name)
	}
	if cfg.Bucket.Project != "env-project" {
		t.Errorf("expected env project, got %s", cfg.Bucket.Project)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid logging level")
	}

	cfg = DefaultConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty data_dir")
	}
}

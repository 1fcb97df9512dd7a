package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/todolist/internal/seed"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.SeedEnabled || cfg.SeedURL != seed.DefaultURL {
		t.Fatalf("unexpected seed defaults: %+v", cfg)
	}
	if cfg.SeedTimeout != 30*time.Second {
		t.Fatalf("unexpected seed timeout: %v", cfg.SeedTimeout)
	}
	if cfg.LogConsole {
		t.Fatal("console logging must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TODOLIST_DB_PATH", "/tmp/todolist-test.db")
	t.Setenv("TODOLIST_SEED_ENABLED", "off")
	t.Setenv("TODOLIST_SEED_TIMEOUT", "5")
	t.Setenv("TODOLIST_LOG_LEVEL", "debug")
	t.Setenv("TODOLIST_LOG_CONSOLE", "yes")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.DBPath != "/tmp/todolist-test.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if cfg.SeedEnabled {
		t.Fatal("expected seeding disabled")
	}
	if cfg.SeedTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.SeedTimeout)
	}
	if cfg.LogLevel != "DEBUG" || !cfg.LogConsole {
		t.Fatalf("unexpected logging config: %+v", cfg)
	}
}

func TestApplyEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TODOLIST_SEED_ENABLED", "maybe")
	t.Setenv("TODOLIST_SEED_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if !cfg.SeedEnabled {
		t.Fatal("invalid bool must keep default")
	}
	if cfg.SeedTimeout != seed.DefaultTimeout {
		t.Fatalf("invalid duration must keep default, got %v", cfg.SeedTimeout)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SeedURL != seed.DefaultURL {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.DBPath = ":memory:"
	cfg.SeedURL = "http://localhost:9999/todos"
	cfg.SeedTimeout = 2 * time.Second
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DBPath != ":memory:" || got.SeedURL != "http://localhost:9999/todos" || got.SeedTimeout != 2*time.Second {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("seed_timeout: 10s\nlog_level: WARN\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SeedTimeout != 10*time.Second || cfg.LogLevel != "WARN" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if !cfg.SeedEnabled || cfg.SeedURL != seed.DefaultURL {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("seed_enabled: [not, a, bool"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty db path")
	}
	cfg = DefaultConfig()
	cfg.SeedURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty seed url")
	}
	cfg.SeedEnabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("seed url not needed when seeding is off: %v", err)
	}
}

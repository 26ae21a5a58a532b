package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BRAGI_DB_DSN", "file::memory:?cache=shared")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBBackend != DatabaseSQLite {
		t.Errorf("default backend = %s, want sqlite", cfg.DBBackend)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.TickInterval != 5*time.Second {
		t.Errorf("default tick = %v, want 5s", cfg.TickInterval)
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("BRAGI_DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Error("Load() without DSN should fail")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("BRAGI_DB_DSN", "dsn")
	t.Setenv("BRAGI_DB_BACKEND", "oracle")

	if _, err := Load(); err == nil {
		t.Error("Load() with unknown backend should fail")
	}
}

func TestLoadClampsTickInterval(t *testing.T) {
	t.Setenv("BRAGI_DB_DSN", "dsn")
	t.Setenv("BRAGI_TICK_SECONDS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("tick interval = %v, want clamp to 1s", cfg.TickInterval)
	}
}

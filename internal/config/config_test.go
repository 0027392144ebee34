package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_ID", "42")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdminID != 42 || cfg.RunMode != RunModeWebhook || cfg.HTTPPort != 8080 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.StoreDriver != "sqlite3" || cfg.StoreTimeout != 10*time.Second || cfg.StateTTL != 30*time.Minute {
		t.Errorf("store defaults = %+v", cfg)
	}
	if len(cfg.Moderators) != 0 {
		t.Errorf("moderators = %v", cfg.Moderators)
	}
}

func TestLoadRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_ID", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without BOT_TOKEN and ADMIN_ID")
	}
}

func TestLoadModerators(t *testing.T) {
	setBaseEnv(t)
	path := filepath.Join(t.TempDir(), "moderators.yaml")
	if err := os.WriteFile(path, []byte("moderators:\n  - Anna\n  - Oleg\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MODERATORS", "Ivan, Anna ,")
	t.Setenv("MODERATORS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Ivan", "Anna", "Oleg"}
	if !reflect.DeepEqual(cfg.Moderators, want) {
		t.Errorf("moderators = %v, want %v", cfg.Moderators, want)
	}
}

func TestLoadModeratorsFileMissing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MODERATORS_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing moderators file")
	}
}

func TestNormalizeRunMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", RunModeWebhook, false},
		{"Webhook", RunModeWebhook, false},
		{"polling", RunModePolling, false},
		{"longpoll", RunModePolling, false},
		{"carrier-pigeon", "", true},
	}
	for _, tt := range tests {
		cfg := &Config{BotToken: "t", AdminID: 1, RunMode: tt.in, HTTPPort: 8080, StoreDSN: "x.db"}
		err := Normalize(cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("Normalize(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && cfg.RunMode != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, cfg.RunMode, tt.want)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	if got := (&Config{LogLevel: "debug"}).SlogLevel(); got != slog.LevelDebug {
		t.Errorf("debug -> %v", got)
	}
	if got := (&Config{LogLevel: "bogus"}).SlogLevel(); got != slog.LevelInfo {
		t.Errorf("bogus -> %v", got)
	}
}

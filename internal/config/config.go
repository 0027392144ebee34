package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// RunModeWebhook receives updates through the HTTP endpoint
	RunModeWebhook = "webhook"
	// RunModePolling receives updates with getUpdates
	RunModePolling = "polling"
)

type Config struct {
	// Telegram
	BotToken      string `envconfig:"BOT_TOKEN" required:"true"`
	AdminID       int64  `envconfig:"ADMIN_ID" required:"true"`
	RunMode       string `envconfig:"RUN_MODE" default:"webhook"`
	WebhookURL    string `envconfig:"WEBHOOK_URL"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
	HTTPPort      int    `envconfig:"HTTP_PORT" default:"8080"`

	// Record store: SheetDB when SHEETDB_API is set, SQL otherwise
	SheetDBAPI   string        `envconfig:"SHEETDB_API"`
	StoreDriver  string        `envconfig:"RECORD_STORE_DRIVER" default:"sqlite3"`
	StoreDSN     string        `envconfig:"RECORD_STORE_DSN" default:"./submissions.db"`
	StoreToken   string        `envconfig:"RECORD_STORE_TOKEN"`
	StoreTimeout time.Duration `envconfig:"RECORD_STORE_TIMEOUT" default:"10s"`

	// Workflow
	Moderators     []string      `envconfig:"MODERATORS"`
	ModeratorsFile string        `envconfig:"MODERATORS_FILE"`
	StateTTL       time.Duration `envconfig:"STATE_TTL" default:"30m"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// moderatorsFile is the YAML layout of MODERATORS_FILE
type moderatorsFile struct {
	Moderators []string `yaml:"moderators"`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.ModeratorsFile != "" {
		names, err := loadModerators(cfg.ModeratorsFile)
		if err != nil {
			return nil, err
		}
		cfg.Moderators = append(cfg.Moderators, names...)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the configuration and cleans up list values
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if strings.TrimSpace(cfg.BotToken) == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.AdminID == 0 {
		return fmt.Errorf("ADMIN_ID is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.RunMode))
	switch rm {
	case "", RunModeWebhook:
		rm = RunModeWebhook
		if cfg.HTTPPort <= 0 {
			return fmt.Errorf("HTTP_PORT must be > 0 in webhook mode")
		}
	case RunModePolling, "longpoll":
		rm = RunModePolling
	default:
		return fmt.Errorf("invalid RUN_MODE %q; allowed: webhook, polling", cfg.RunMode)
	}
	cfg.RunMode = rm

	if cfg.SheetDBAPI == "" && strings.TrimSpace(cfg.StoreDSN) == "" {
		return fmt.Errorf("RECORD_STORE_DSN is required when SHEETDB_API is not set")
	}
	cfg.SheetDBAPI = strings.TrimSuffix(cfg.SheetDBAPI, "/")

	seen := make(map[string]bool, len(cfg.Moderators))
	mods := cfg.Moderators[:0]
	for _, m := range cfg.Moderators {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		mods = append(mods, m)
	}
	cfg.Moderators = mods

	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func loadModerators(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read moderators file: %w", err)
	}

	var f moderatorsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse moderators file: %w", err)
	}
	return f.Moderators, nil
}

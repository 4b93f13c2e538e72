package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("a missing config file must not be fatal: %v", err)
	}
	if len(cfg.Market.Tickers) == 0 {
		t.Error("expected default tickers")
	}
	if cfg.Market.ATRMultiplier != 2.5 {
		t.Errorf("expected default ATR multiplier 2.5, got %.2f", cfg.Market.ATRMultiplier)
	}
	if cfg.Market.HistoryDays != 180 {
		t.Errorf("expected default history 180, got %d", cfg.Market.HistoryDays)
	}
	if cfg.Snapshot.Backend != "file" {
		t.Errorf("expected default snapshot backend file, got %q", cfg.Snapshot.Backend)
	}
	if cfg.Schedule.RefreshCron == "" || cfg.Schedule.ScanCron == "" || cfg.Schedule.CaptureCron == "" {
		t.Error("expected default cron expressions")
	}
}

func TestLoad_YAMLValues(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: tok
  chat_id: "123"
market:
  tickers: [TSLA, NVDA]
  atr_multiplier: 3.0
snapshot:
  backend: badger
  path: data/snaps
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.BotToken != "tok" || cfg.Telegram.ChatID != "123" {
		t.Errorf("unexpected telegram config: %+v", cfg.Telegram)
	}
	if len(cfg.Market.Tickers) != 2 || cfg.Market.Tickers[0] != "TSLA" {
		t.Errorf("unexpected tickers: %v", cfg.Market.Tickers)
	}
	if cfg.Market.ATRMultiplier != 3.0 {
		t.Errorf("expected atr 3.0, got %.2f", cfg.Market.ATRMultiplier)
	}
	if cfg.Snapshot.Backend != "badger" || cfg.Snapshot.Path != "data/snaps" {
		t.Errorf("unexpected snapshot config: %+v", cfg.Snapshot)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: from-file
market:
  tickers: [TSLA]
  atr_multiplier: 3.0
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("TICKERS", "nvda, amd ,")
	t.Setenv("ATR_MULTIPLIER", "2.0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("env must override file, got %q", cfg.Telegram.BotToken)
	}
	want := []string{"NVDA", "AMD"}
	if len(cfg.Market.Tickers) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Market.Tickers)
	}
	for i, ticker := range want {
		if cfg.Market.Tickers[i] != ticker {
			t.Errorf("ticker %d: expected %s, got %s", i, ticker, cfg.Market.Tickers[i])
		}
	}
	if cfg.Market.ATRMultiplier != 2.0 {
		t.Errorf("expected atr 2.0 from env, got %.2f", cfg.Market.ATRMultiplier)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Telegram.BotToken = "tok"
		cfg.Telegram.ChatID = "123"
		cfg.Market.Tickers = []string{"TSLA"}
		cfg.Market.ATRMultiplier = 2.5
		cfg.Snapshot.Backend = "file"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing chat id", func(c *Config) { c.Telegram.ChatID = "" }},
		{"no tickers", func(c *Config) { c.Market.Tickers = nil }},
		{"atr below range", func(c *Config) { c.Market.ATRMultiplier = 1.0 }},
		{"atr above range", func(c *Config) { c.Market.ATRMultiplier = 5.0 }},
		{"bad backend", func(c *Config) { c.Snapshot.Backend = "redis" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

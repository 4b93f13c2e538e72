package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Market struct {
		Tickers       []string `yaml:"tickers"`
		ATRMultiplier float64  `yaml:"atr_multiplier"`
		HistoryDays   int      `yaml:"history_days"`
	} `yaml:"market"`
	Cache struct {
		BarsTTLSeconds    int `yaml:"bars_ttl_seconds"`
		OptionsTTLSeconds int `yaml:"options_ttl_seconds"`
	} `yaml:"cache"`
	Snapshot struct {
		Backend string `yaml:"backend"` // "file" or "badger"
		Path    string `yaml:"path"`
	} `yaml:"snapshot"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		ScanCron    string `yaml:"scan_cron"`
		CaptureCron string `yaml:"capture_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Market.Tickers = splitTickers(v)
	}
	if v := os.Getenv("ATR_MULTIPLIER"); v != "" {
		var mult float64
		if _, err := fmt.Sscanf(v, "%f", &mult); err == nil {
			cfg.Market.ATRMultiplier = mult
		}
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Market.Tickers) == 0 {
		cfg.Market.Tickers = []string{"TSLA", "NVDA", "AVGO", "MU", "ORCL", "AMD", "PLTR"}
	}
	if cfg.Market.ATRMultiplier == 0 {
		cfg.Market.ATRMultiplier = 2.5
	}
	if cfg.Market.HistoryDays == 0 {
		cfg.Market.HistoryDays = 180
	}
	if cfg.Cache.BarsTTLSeconds == 0 {
		cfg.Cache.BarsTTLSeconds = 60
	}
	if cfg.Cache.OptionsTTLSeconds == 0 {
		cfg.Cache.OptionsTTLSeconds = 300
	}
	if cfg.Snapshot.Backend == "" {
		cfg.Snapshot.Backend = "file"
	}
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = "data/snapshots.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/alphatrader.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		// every 10 minutes during US trading hours (server assumed ET)
		cfg.Schedule.RefreshCron = "0 */10 9-16 * * 1-5"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 45 9 * * 1-5"
	}
	if cfg.Schedule.CaptureCron == "" {
		// last five minutes before the close
		cfg.Schedule.CaptureCron = "0 55 15 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Market.Tickers) == 0 {
		return fmt.Errorf("market.tickers must not be empty")
	}
	if c.Market.ATRMultiplier < 1.5 || c.Market.ATRMultiplier > 4.0 {
		return fmt.Errorf("market.atr_multiplier must be within [1.5, 4.0], got %.2f", c.Market.ATRMultiplier)
	}
	if c.Snapshot.Backend != "file" && c.Snapshot.Backend != "badger" {
		return fmt.Errorf("snapshot.backend must be \"file\" or \"badger\", got %q", c.Snapshot.Backend)
	}
	return nil
}

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

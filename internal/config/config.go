package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Port              string `yaml:"port"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

type Yahoo struct {
	BaseURL    string `yaml:"base_url"`
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type Watch struct {
	Enabled bool     `yaml:"enabled"`
	Cron    string   `yaml:"cron"`
	Symbols []string `yaml:"symbols"`
}

type Recorder struct {
	// SQLitePath enables the SQLite recorder when set.
	SQLitePath string `yaml:"sqlite_path"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	Yahoo    Yahoo    `yaml:"yahoo"`
	Watch    Watch    `yaml:"watch"`
	Recorder Recorder `yaml:"recorder"`
	Log      Log      `yaml:"log"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15},
		Yahoo: Yahoo{
			BaseURL:    "https://query1.finance.yahoo.com",
			TimeoutSec: 10,
		},
		Watch: Watch{
			Enabled: false,
			Cron:    "0 */5 * * * 1-5",
		},
		Log: Log{Level: "info", Format: "json"},
	}
}

// Load reads YAML config from path. If path is empty, config.yaml in the
// working directory is used when present; a missing file yields defaults.
// A .env file in the working directory is loaded into the environment
// without overriding variables already set, then environment variables
// override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("env: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields the binaries depend on.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.RequestTimeoutSec <= 0 {
		return errors.New("server.request_timeout_sec must be positive")
	}
	if c.Yahoo.BaseURL == "" {
		return errors.New("yahoo.base_url is required")
	}
	if c.Yahoo.TimeoutSec < 0 {
		return errors.New("yahoo.timeout_sec must not be negative")
	}
	if c.Watch.Enabled {
		if len(c.Watch.Symbols) == 0 {
			return errors.New("watch.symbols is required when watch.enabled is true")
		}
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.Watch.Cron); err != nil {
			return fmt.Errorf("watch.cron: %w", err)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		x, err := strconv.Atoi(v)
		if err != nil || x <= 0 {
			return fmt.Errorf("REQUEST_TIMEOUT_SEC must be a positive integer, got %q", v)
		}
		cfg.Server.RequestTimeoutSec = x
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("YAHOO_USER_AGENT"); v != "" {
		cfg.Yahoo.UserAgent = v
	}
	if v := os.Getenv("YAHOO_TIMEOUT_SEC"); v != "" {
		x, err := strconv.Atoi(v)
		if err != nil || x < 0 {
			return fmt.Errorf("YAHOO_TIMEOUT_SEC must be a non-negative integer, got %q", v)
		}
		cfg.Yahoo.TimeoutSec = x
	}
	if v := os.Getenv("WATCH_ENABLED"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y":
			cfg.Watch.Enabled = true
		case "0", "false", "no", "n":
			cfg.Watch.Enabled = false
		default:
			return fmt.Errorf("WATCH_ENABLED must be a boolean, got %q", v)
		}
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Watch.Symbols = SplitCSV(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Recorder.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// SplitCSV splits s on commas, trimming space and dropping empty parts.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

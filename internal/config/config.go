package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Predict struct {
		AllowedLengths []int         `yaml:"allowed_lengths" default:"[2,3,6]"`
		DefaultLength  int           `yaml:"default_length" default:"6"`
		Delay          time.Duration `yaml:"delay"`
	} `yaml:"predict"`
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Database struct {
		SQLitePath    string `yaml:"sqlite_path" default:"data/multiplier_sentinel.db"`
		RetentionDays int    `yaml:"retention_days" default:"30"`
	} `yaml:"database"`
	Schedule struct {
		SummaryCron string `yaml:"summary_cron" default:"0 0 9 * * *"`
		PruneCron   string `yaml:"prune_cron" default:"0 30 3 * * *"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		APIURL   string `yaml:"api_url" default:"https://api.telegram.org"`
	} `yaml:"telegram"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load starts from struct defaults, reads the YAML file, then applies .env and environment
// variable overrides. A missing file is not an error. Keys set explicitly to zero values are kept.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("ALLOWED_LENGTHS"); v != "" {
		lengths, err := parseLengths(v)
		if err != nil {
			return fmt.Errorf("ALLOWED_LENGTHS: %w", err)
		}
		cfg.Predict.AllowedLengths = lengths
	}
	if v := os.Getenv("DEFAULT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DEFAULT_LENGTH: %w", err)
		}
		cfg.Predict.DefaultLength = n
	}
	if v := os.Getenv("PREDICT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PREDICT_DELAY: %w", err)
		}
		cfg.Predict.Delay = d
	}
	return nil
}

func parseLengths(v string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Validate checks that all settings are usable together.
func (c *Config) Validate() error {
	if len(c.Predict.AllowedLengths) == 0 {
		return fmt.Errorf("predict.allowed_lengths cannot be empty")
	}
	for _, n := range c.Predict.AllowedLengths {
		if n < 2 {
			return fmt.Errorf("predict.allowed_lengths: %d is below the minimum of 2", n)
		}
	}
	if !slices.Contains(c.Predict.AllowedLengths, c.Predict.DefaultLength) {
		return fmt.Errorf("predict.default_length %d is not in allowed_lengths %v", c.Predict.DefaultLength, c.Predict.AllowedLengths)
	}
	if c.Predict.Delay < 0 {
		return fmt.Errorf("predict.delay must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.RetentionDays < 0 {
		return fmt.Errorf("database.retention_days must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether chat notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

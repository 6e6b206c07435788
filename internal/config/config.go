package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		Environment    string   `yaml:"environment"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Predictor struct {
		Endpoint string        `yaml:"endpoint"`
		APIKey   string        `yaml:"api_key"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"predictor"`
	Auth struct {
		StoreFile  string        `yaml:"store_file"`
		SessionTTL time.Duration `yaml:"session_ttl"`
	} `yaml:"auth"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Watchlist struct {
		Symbols []string `yaml:"symbols"`
		Months  int      `yaml:"months"`
	} `yaml:"watchlist"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
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

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("PREDICTOR_URL"); v != "" {
		cfg.Predictor.Endpoint = v
	}
	if v := os.Getenv("PREDICTOR_API_KEY"); v != "" {
		cfg.Predictor.APIKey = v
	}
	if v := os.Getenv("PREDICTOR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PREDICTOR_TIMEOUT: %w", err)
		}
		cfg.Predictor.Timeout = d
	}
	if v := os.Getenv("AUTH_STORE_FILE"); v != "" {
		cfg.Auth.StoreFile = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.Auth.SessionTTL = d
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		cfg.Schedule.DigestCron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Symbols = splitList(v)
	}
	if v := os.Getenv("WATCHLIST_MONTHS"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WATCHLIST_MONTHS: %w", err)
		}
		cfg.Watchlist.Months = m
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "development"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Predictor.Timeout == 0 {
		cfg.Predictor.Timeout = 10 * time.Second
	}
	if cfg.Auth.StoreFile == "" {
		cfg.Auth.StoreFile = "data/users.json"
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = 24 * time.Hour
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stock_prophet.db"
	}
	if cfg.Watchlist.Months == 0 {
		cfg.Watchlist.Months = 6
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks field ranges and combinations.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server.port must be numeric, got %q", c.Server.Port)
	}
	if c.Predictor.Timeout < 0 {
		return errors.New("predictor.timeout must not be negative")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return errors.New("telegram.chat_id is required when telegram.bot_token is set")
	}
	if c.Watchlist.Months < 1 || c.Watchlist.Months > 12 {
		return fmt.Errorf("watchlist.months must be between 1 and 12, got %d", c.Watchlist.Months)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string  `yaml:"token"`
	Mode     string  `yaml:"mode"` // polling | webhook (future)
	Username string  `yaml:"username"`
	Workers  int     `yaml:"workers"` // polling workers
	AdminIDs []int64 `yaml:"admin_ids"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty disables the lookup cache
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LookupConfig struct {
	// APITemplate is the provider URL with a {num} placeholder.
	APITemplate string        `yaml:"api_template"`
	Timeout     time.Duration `yaml:"timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

type CreditsConfig struct {
	DailyFree  int64 `yaml:"daily_free"`
	LookupCost int64 `yaml:"lookup_cost"`
}

type WebConfig struct {
	Port       int           `yaml:"port"`
	AdminKey   string        `yaml:"admin_key"`
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Credits  CreditsConfig  `yaml:"credits"`
	Web      WebConfig      `yaml:"web"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(configPath string, dev bool) (*Config, error) {
	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment overrides for secrets, so a .env file is enough in dev.
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("API_TEMPLATE"); v != "" {
		cfg.Lookup.APITemplate = v
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Credits.DailyFree <= 0 {
		cfg.Credits.DailyFree = 30
	}
	if cfg.Credits.LookupCost <= 0 {
		cfg.Credits.LookupCost = 1
	}
	if cfg.Lookup.Timeout <= 0 {
		cfg.Lookup.Timeout = 15 * time.Second
	}
	if cfg.Lookup.CacheTTL <= 0 {
		cfg.Lookup.CacheTTL = time.Hour
	}
	if cfg.Web.SessionTTL <= 0 {
		cfg.Web.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Lookup.APITemplate == "" {
		return nil, errors.New("lookup.api_template is required")
	}
	if !strings.Contains(cfg.Lookup.APITemplate, "{num}") {
		return nil, errors.New("lookup.api_template must contain a {num} placeholder")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

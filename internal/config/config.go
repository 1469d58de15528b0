package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"faylbot/internal/models"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Exports    ExportsConfig    `yaml:"exports"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	API        APIConfig        `yaml:"api"`
	Backup     BackupConfig     `yaml:"backup"`
	Bot        BotConfig        `yaml:"bot"`
	Admins     []int64          `yaml:"admins"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"` // "json" or "console"
	Output   string `yaml:"output"` // "stdout" or "file"
	FilePath string `yaml:"file_path"`
}

type ExportsConfig struct {
	Path string `yaml:"path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

type APIConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	AuthKey   string `yaml:"auth_key"`
	RateLimit int    `yaml:"rate_limit"` // requests per second per client
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	IntervalHours int    `yaml:"interval_hours"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type BotConfig struct {
	PaginationSize    int             `yaml:"pagination_size"`
	RateLimitMessages int             `yaml:"rate_limit_messages"`
	RateLimitWindow   int             `yaml:"rate_limit_window"` // seconds
	StateTTL          int             `yaml:"state_ttl"`         // seconds
	Broadcast         BroadcastConfig `yaml:"broadcast"`
}

type BroadcastConfig struct {
	Concurrency  int `yaml:"concurrency"`
	BatchSize    int `yaml:"batch_size"`
	BatchPauseMS int `yaml:"batch_pause_ms"`
	SendDelayMS  int `yaml:"send_delay_ms"`
}

// Load reads the YAML config at path, expanding ${ENV_VAR} references after
// loading .env if present. Env vars BOT_TOKEN, ADMIN_IDS and DB_PATH override
// their YAML counterparts.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		c.Telegram.BotToken = token
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if ids := os.Getenv("ADMIN_IDS"); ids != "" {
		if parsed, err := ParseAdminIDs(ids); err == nil {
			c.Admins = parsed
		}
	}
}

// ParseAdminIDs parses a comma-separated list of numeric Telegram ids.
func ParseAdminIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "faylbot"
	}
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Database.Path == "" {
		c.Database.Path = "faylbot.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = 10
	}
	if c.Backup.IntervalHours == 0 {
		c.Backup.IntervalHours = 24
	}
	if c.Backup.RetentionDays == 0 {
		c.Backup.RetentionDays = 7
	}
	if c.Backup.StoragePath == "" {
		c.Backup.StoragePath = "backups"
	}
	if c.Bot.PaginationSize == 0 {
		c.Bot.PaginationSize = models.DefaultPaginationSize
	}
	if c.Bot.RateLimitMessages == 0 {
		c.Bot.RateLimitMessages = models.RateLimitMessages
	}
	if c.Bot.RateLimitWindow == 0 {
		c.Bot.RateLimitWindow = models.RateLimitWindow
	}
	if c.Bot.StateTTL == 0 {
		c.Bot.StateTTL = models.DefaultStateTTL
	}
	if c.Bot.Broadcast.Concurrency == 0 {
		c.Bot.Broadcast.Concurrency = models.BroadcastConcurrency
	}
	if c.Bot.Broadcast.BatchSize == 0 {
		c.Bot.Broadcast.BatchSize = models.BroadcastBatchSize
	}
	if c.Bot.Broadcast.BatchPauseMS == 0 {
		c.Bot.Broadcast.BatchPauseMS = models.BroadcastBatchPauseMS
	}
	if c.Bot.Broadcast.SendDelayMS == 0 {
		c.Bot.Broadcast.SendDelayMS = models.BroadcastSendDelayMS
	}
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if len(c.Admins) == 0 {
		return fmt.Errorf("at least one admin id is required")
	}
	if c.API.Enabled && c.API.AuthKey == "" {
		return fmt.Errorf("api.auth_key is required when api.enabled is true")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// IsAdmin reports whether the given Telegram id is in the admin list.
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.Admins {
		if id == telegramID {
			return true
		}
	}
	return false
}

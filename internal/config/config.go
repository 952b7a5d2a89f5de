// Package config loads service settings from a .env file, an optional YAML
// file and environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Card sources.
const (
	CardSourceLocal  = "local"
	CardSourceRemote = "remote"
)

// DatabaseConfig holds the catalogue database settings.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"` // postgres or sqlite
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SQLitePath string `yaml:"sqlite_path"`
}

// DSN returns the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Config is the complete service configuration.
type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	Database DatabaseConfig `yaml:"database"`

	CardSource string `yaml:"card_source"`
	BIBaseURL  string `yaml:"bi_base_url"`
	BIAPIKey   string `yaml:"bi_api_key"`

	RedisAddr       string        `yaml:"redis_addr"`
	RedisPassword   string        `yaml:"redis_password"`
	RedisDB         int           `yaml:"redis_db"`
	DatasetCacheTTL time.Duration `yaml:"dataset_cache_ttl"`

	NatsURL string `yaml:"nats_url"`

	QueryTimeout         time.Duration `yaml:"query_timeout"`
	SessionIdleTTL       time.Duration `yaml:"session_idle_ttl"`
	SessionSweepSchedule string        `yaml:"session_sweep_schedule"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:    "8080",
		GinMode: "debug",
		Database: DatabaseConfig{
			Driver:     "sqlite",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "visualizer",
			SSLMode:    "disable",
			SQLitePath: "visualizer.db",
		},
		CardSource:           CardSourceLocal,
		DatasetCacheTTL:      10 * time.Minute,
		QueryTimeout:         30 * time.Second,
		SessionIdleTTL:       2 * time.Hour,
		SessionSweepSchedule: "@every 5m",
	}
}

// Load builds the configuration. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := Default()
	if path := os.Getenv("VISUALIZER_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	log.Printf("Loaded configuration file %s", path)
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)

	cfg.CardSource = getEnv("CARD_SOURCE", cfg.CardSource)
	cfg.BIBaseURL = getEnv("BI_BASE_URL", cfg.BIBaseURL)
	cfg.BIAPIKey = getEnv("BI_API_KEY", cfg.BIAPIKey)

	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.NatsURL = getEnv("NATS_URL", cfg.NatsURL)
	cfg.SessionSweepSchedule = getEnv("SESSION_SWEEP_SCHEDULE", cfg.SessionSweepSchedule)

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", cfg.RedisDB); err != nil {
		return err
	}
	if cfg.DatasetCacheTTL, err = getEnvDuration("DATASET_CACHE_TTL", cfg.DatasetCacheTTL); err != nil {
		return err
	}
	if cfg.QueryTimeout, err = getEnvDuration("QUERY_TIMEOUT", cfg.QueryTimeout); err != nil {
		return err
	}
	if cfg.SessionIdleTTL, err = getEnvDuration("SESSION_IDLE_TTL", cfg.SessionIdleTTL); err != nil {
		return err
	}
	return nil
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	switch c.CardSource {
	case CardSourceLocal:
	case CardSourceRemote:
		if c.BIBaseURL == "" {
			return fmt.Errorf("BI_BASE_URL is required when CARD_SOURCE is %q", CardSourceRemote)
		}
	default:
		return fmt.Errorf("unknown CARD_SOURCE %q, expected %q or %q", c.CardSource, CardSourceLocal, CardSourceRemote)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q, expected postgres or sqlite", c.Database.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

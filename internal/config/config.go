// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCacheRebuildCron = "*/10 * * * *"
	DefaultCacheTTL         = 24 * time.Hour
	DefaultShutdownTimeout  = 10 * time.Second
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type CacheConfig struct {
	// RedisAddr enables the Redis box-score mirror when set.
	RedisAddr     string        `yaml:"redis_addr"`
	RedisDB       int           `yaml:"redis_db"`
	RedisPassword string        `yaml:"-"` // Loaded from environment
	TTL           time.Duration `yaml:"ttl"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Recorder struct {
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"recorder"`

	Cache CacheConfig `yaml:"cache"`

	Scheduler struct {
		CacheRebuildCron string `yaml:"cache_rebuild_cron"`
	} `yaml:"scheduler"`
}

// envOverrides are read with the HANDBALL_ prefix, e.g. HANDBALL_PORT.
type envOverrides struct {
	Environment   string `envconfig:"ENVIRONMENT"`
	Port          int    `envconfig:"PORT"`
	DatabaseFile  string `envconfig:"DATABASE_FILE"`
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	var env envOverrides
	if err := envconfig.Process("handball", &env); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills in defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Recorder.ShutdownTimeout <= 0 {
		c.Recorder.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Scheduler.CacheRebuildCron == "" {
		c.Scheduler.CacheRebuildCron = DefaultCacheRebuildCron
	}
}

func (c *Config) applyEnv(env envOverrides) {
	if env.Environment != "" {
		c.App.Environment = env.Environment
	}
	if env.Port != 0 {
		c.App.Port = env.Port
	}
	if env.DatabaseFile != "" {
		c.Database.Filename = env.DatabaseFile
	}
	if env.RedisAddr != "" {
		c.Cache.RedisAddr = env.RedisAddr
	}
	c.Cache.RedisPassword = env.RedisPassword
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Cache.RedisDB < 0 {
		return fmt.Errorf("cache redis_db must not be negative")
	}
	if _, err := cron.ParseStandard(c.Scheduler.CacheRebuildCron); err != nil {
		return fmt.Errorf("invalid scheduler cache_rebuild_cron %q: %w", c.Scheduler.CacheRebuildCron, err)
	}

	return nil
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "" || c.App.Environment == "development"
}

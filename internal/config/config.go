package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is assembled from defaults, an optional YAML file and the environment, in
// that order of precedence (environment wins).
type Config struct {
	Env      string         `yaml:"env"`
	Port     string         `yaml:"port"`
	LogLevel string         `yaml:"log_level"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	API      APIConfig      `yaml:"api"`
	Outbox   OutboxConfig   `yaml:"outbox"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // mysql, postgres or sqlite
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr          string `yaml:"addr"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	ChannelPrefix string `yaml:"channel_prefix"`
}

type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"`
	Issuer          string        `yaml:"issuer"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	PasswordScheme  string        `yaml:"password_scheme"`
}

type APIConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type OutboxConfig struct {
	BatchSize int           `yaml:"batch_size"`
	Interval  time.Duration `yaml:"interval"`
}

func Default() *Config {
	return &Config{
		Env:      "development",
		Port:     "8080",
		LogLevel: "info",
		Database: DatabaseConfig{Driver: "mysql"},
		Redis:    RedisConfig{ChannelPrefix: "bbs:events:"},
		Auth: AuthConfig{
			Issuer:          "bbs",
			AccessTokenTTL:  15 * 24 * time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
			PasswordScheme:  "sha256",
		},
		API:    APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
		Outbox: OutboxConfig{BatchSize: 100, Interval: time.Second},
	}
}

// Load reads .env (if any), then the YAML file at path (if path is set), then the
// environment.
func Load(path string) (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.Port, "APP_PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Redis.ChannelPrefix, "REDIS_CHANNEL_PREFIX")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.Issuer, "JWT_ISSUER")
	setString(&c.Auth.PasswordScheme, "PASSWORD_SCHEME")

	for _, f := range []struct {
		key string
		dst *int
	}{
		{"REDIS_DB", &c.Redis.DB},
		{"DEFAULT_PAGE_SIZE", &c.API.DefaultPageSize},
		{"MAX_PAGE_SIZE", &c.API.MaxPageSize},
		{"BATCH_SIZE", &c.Outbox.BatchSize},
	} {
		if err := setInt(f.dst, f.key); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		key string
		dst *time.Duration
	}{
		{"ACCESS_TOKEN_TTL", &c.Auth.AccessTokenTTL},
		{"REFRESH_TOKEN_TTL", &c.Auth.RefreshTokenTTL},
		{"OUTBOX_INTERVAL", &c.Outbox.Interval},
	} {
		if err := setDuration(f.dst, f.key); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DB_DSN is not set"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}
	if c.API.DefaultPageSize <= 0 || c.API.MaxPageSize < c.API.DefaultPageSize {
		errs = append(errs, errors.New("page sizes must satisfy 0 < DEFAULT_PAGE_SIZE <= MAX_PAGE_SIZE"))
	}
	if c.Outbox.BatchSize <= 0 {
		c.Outbox.BatchSize = 100
	}
	if c.Outbox.Interval <= 0 {
		c.Outbox.Interval = time.Second
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// setDuration accepts Go durations ("36h") or a bare number of seconds.
func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

// Package config handles application configuration loading from environment
// variables via cleanenv. It provides a centralized Config struct used
// across the application.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration values loaded from the
// environment, with an optional YAML file layered underneath.
type Config struct {
	Env  string `yaml:"env" env:"APP_ENV" env-default:"development"`
	Host string `yaml:"host" env:"APP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"APP_PORT" env-default:"8080"`

	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	Auth     AuthConfig     `yaml:"auth"`
	Sync     SyncConfig     `yaml:"sync"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig lists the admin dashboard origins allowed to make
// credentialed requests to the admin API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`
}

// PostgresConfig holds the PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"craftpress"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"changeme"`
	Name     string `yaml:"name" env:"POSTGRES_DB" env-default:"craftpress"`
}

// RedisConfig holds the Redis connection settings (page cache + token
// revocation list).
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
}

// S3Config holds the S3-compatible object storage settings. Works with
// Cloudflare R2, CEPH, Hetzner, and MinIO; all use path-style addressing.
type S3Config struct {
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region    string `yaml:"region" env:"S3_REGION" env-default:"auto"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"S3_BUCKET" env-default:"craftpress-media"`
	PublicURL string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

// AuthConfig holds JWT session settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// SyncConfig holds media reconciliation settings.
type SyncConfig struct {
	Interval time.Duration `yaml:"interval" env:"MEDIA_SYNC_INTERVAL" env-default:"5m"`
}

// Load reads configuration from CONFIG_PATH (if set) overlaid with
// environment variables. Returns an error if critical values keep their
// development defaults in production mode.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if cfg.Env == "production" {
		if cfg.Postgres.Password == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.Auth.JWTSecret == "dev-secret-change-me" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RedisAddr returns the Redis address (host:port).
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// PasswordMode returns the password policy mode implied by the environment.
func (c *Config) PasswordMode() string {
	if c.Env == "production" {
		return "production"
	}
	return "local"
}

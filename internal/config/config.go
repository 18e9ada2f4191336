package config

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store backends selectable with STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Store string `env:"STORE" envDefault:"postgres"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"conduit"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	ServerPort        string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxRequestBodyKiB int64         `env:"MAX_REQUEST_BODY_KIB" envDefault:"1024"`

	JWTSecret         string `env:"JWT_SECRET,required"`
	AccessTokenMaxAge int    `env:"ACCESS_TOKEN_MAX_AGE" envDefault:"86400"`
	AuthScheme        string `env:"AUTH_SCHEME" envDefault:"Token"`

	SlugMaxLength int      `env:"SLUG_MAX_LENGTH" envDefault:"200"`
	SlugStopWords []string `env:"SLUG_STOP_WORDS" envDefault:"a,an,the" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Optional: tag cache and event stream
	RedisURL string `env:"REDIS_URL"`

	// Optional: avatar uploads
	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicURL       string `env:"R2_PUBLIC_URL"`
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("unknown STORE %q (want %q or %q)", cfg.Store, StorePostgres, StoreMemory)
	}
	if cfg.AccessTokenMaxAge <= 0 {
		cfg.AccessTokenMaxAge = 86400
	}

	return &cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a postgres URL built from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// MediaEnabled reports whether every R2 setting needed for avatar uploads is present.
func (c *Config) MediaEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicURL != ""
}

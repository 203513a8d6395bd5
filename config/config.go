package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"5000"`
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	DBUrl       string `envconfig:"DATABASE_URL"`
	ClientURL   string `envconfig:"CLIENT_URL" default:"http://localhost:3000"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"job-board-api"`

	// Session
	SessionTTLMinutes int    `envconfig:"SESSION_TTL_MINUTES" default:"60"`
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME" default:"job_board_sid"`

	// Bearer token issued at login
	JWTSecretKey     string `envconfig:"JWT_SECRET_KEY"`
	JWTExpireMinutes int    `envconfig:"JWT_EXPIRE_MINUTES" default:"60"`

	// Redis session store; in-memory sessions when empty
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// Resume storage
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"local"`
	UploadDir     string `envconfig:"UPLOAD_DIR" default:"uploads/cvs"`
	MaxUploadMB   int64  `envconfig:"MAX_UPLOAD_MB" default:"5"`
	S3            S3Config

	// Domain events; disabled when RabbitURL is empty
	RabbitURL      string `envconfig:"RABBIT_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"jobboard.events"`

	// Tracing; disabled when empty
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// S3Config is read from S3_* variables (S3_BUCKET, S3_REGION, ...).
type S3Config struct {
	Bucket          string `envconfig:"BUCKET"`
	Region          string `envconfig:"REGION" default:"us-east-1"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	Endpoint        string `envconfig:"ENDPOINT"`
	Prefix          string `envconfig:"PREFIX" default:"cvs"`
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored when the file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.ClientURL = strings.TrimRight(cfg.ClientURL, "/")

	switch cfg.StorageDriver {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be local or s3, got %q", cfg.StorageDriver)
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecretKey == "" {
		log.Println("WARNING: JWT_SECRET_KEY is missing. Login will fail until it is set.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Sessions will be kept in memory.")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpireMinutes) * time.Minute
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

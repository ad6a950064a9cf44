// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetEnv() string
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketEventBanners() string
	GetMinioBucketLeadExports() string
	IsMinIOEnabled() bool
}

// QueueConfig provides settings for the asynq print-job queue.
type QueueConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetWorkerConcurrency() int
	GetTicketSpoolDir() string
}

// EventPolicyConfig provides domain policy knobs for event creation.
type EventPolicyConfig interface {
	GetEventMinDuration() time.Duration
}

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env         string
	HTTPAddr    string
	DatabaseURL string

	CORSAllowAll bool
	CORSOrigins  []string

	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOUseSSL       bool
	MinIOMaxFileSize  int64
	BucketEventBanner string
	BucketLeadExports string

	RedisURL          string
	RedisTLSInsecure  bool
	AsynqQueueName    string
	WorkerConcurrency int
	TicketSpoolDir    string

	EventMinDuration time.Duration
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	minDurationMinutes, err := strconv.Atoi(getEnv("EVENT_MIN_DURATION_MINUTES", "60"))
	if err != nil || minDurationMinutes <= 0 {
		return nil, fmt.Errorf("EVENT_MIN_DURATION_MINUTES must be a positive integer")
	}

	maxFileSize, err := strconv.ParseInt(getEnv("MINIO_MAX_FILE_SIZE", "10485760"), 10, 64)
	if err != nil || maxFileSize <= 0 {
		return nil, fmt.Errorf("MINIO_MAX_FILE_SIZE must be a positive integer")
	}

	concurrency, err := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "5"))
	if err != nil || concurrency <= 0 {
		return nil, fmt.Errorf("WORKER_CONCURRENCY must be a positive integer")
	}

	cfg := &Config{
		Env:          getEnv("APP_ENV", "development"),
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		CORSAllowAll: corsAllowAll,
		CORSOrigins:  corsOrigins,

		MinIOEndpoint:     getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:    getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:       strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:  maxFileSize,
		BucketEventBanner: getEnv("MINIO_BUCKET_EVENT_BANNERS", "event-banners"),
		BucketLeadExports: getEnv("MINIO_BUCKET_LEAD_EXPORTS", "lead-exports"),

		RedisURL:          getEnv("REDIS_URL", ""),
		RedisTLSInsecure:  strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:    getEnv("ASYNQ_QUEUE_NAME", "tickets"),
		WorkerConcurrency: concurrency,
		TicketSpoolDir:    getEnv("TICKET_SPOOL_DIR", "./spool"),

		EventMinDuration: time.Duration(minDurationMinutes) * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) GetEnv() string           { return c.Env }
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

func (c *Config) GetMinIOEndpoint() string           { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string          { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string          { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool               { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64         { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketEventBanners() string { return c.BucketEventBanner }
func (c *Config) GetMinioBucketLeadExports() string  { return c.BucketLeadExports }

// IsMinIOEnabled reports whether all required MinIO settings are present.
func (c *Config) IsMinIOEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetWorkerConcurrency() int { return c.WorkerConcurrency }
func (c *Config) GetTicketSpoolDir() string { return c.TicketSpoolDir }

func (c *Config) GetEventMinDuration() time.Duration { return c.EventMinDuration }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

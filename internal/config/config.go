// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Store backends.
const (
	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StoreBigQuery = "bigquery"
)

type Config struct {
	// HTTP Server
	Port     string
	LogLevel string

	// Assessment store
	StoreBackend    string
	SQLiteDBPath    string
	GCPProjectID    string
	BigQueryDataset string

	// Statement archive
	GCSBucket       string
	CredentialsFile string

	// External services; empty keys disable the features that need them.
	GoogleAPIKey     string
	GeminiModel      string
	YouTubeAPIKey    string
	NotionToken      string
	NotionDatabaseID string
	ExternalTimeout  time.Duration

	// Limits
	CacheMaxItems  int
	MaxUploadBytes int64

	// Background jobs
	JobWorkers int
	JobBuffer  int
}

// Load reads the configuration, first loading a .env file if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend:    getEnv("STORE_BACKEND", StoreNone),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/finai.db"),
		GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
		BigQueryDataset: getEnv("BIGQUERY_DATASET", "finai"),

		GCSBucket:       getEnv("GCS_BUCKET", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		ExternalTimeout:  getEnvDuration("EXTERNAL_TIMEOUT", 30*time.Second),

		CacheMaxItems:  getEnvInt("CACHE_MAX_ITEMS", 1000),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		JobWorkers: getEnvInt("JOB_WORKERS", 4),
		JobBuffer:  getEnvInt("JOB_BUFFER", 100),
	}
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	switch c.StoreBackend {
	case StoreNone:
	case StoreSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
			}
		}
	case StoreBigQuery:
		if c.GCPProjectID == "" {
			errors = append(errors, "GCP project ID is required when using bigquery backend")
		}
		if c.BigQueryDataset == "" {
			errors = append(errors, "BigQuery dataset is required when using bigquery backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [%s %s %s]",
			c.StoreBackend, StoreNone, StoreSQLite, StoreBigQuery))
	}

	if (c.NotionToken == "") != (c.NotionDatabaseID == "") {
		errors = append(errors, "NOTION_TOKEN and NOTION_DATABASE_ID must be set together")
	}

	if c.ExternalTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid external timeout %v: must be at least 1 second", c.ExternalTimeout))
	}
	if c.CacheMaxItems < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheMaxItems))
	}
	if c.MaxUploadBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1024 bytes", c.MaxUploadBytes))
	}

	if c.JobWorkers < 1 || c.JobWorkers > 64 {
		errors = append(errors, fmt.Sprintf("invalid job workers %d: must be between 1 and 64", c.JobWorkers))
	}
	if c.JobBuffer < 1 {
		errors = append(errors, fmt.Sprintf("invalid job buffer %d: must be at least 1", c.JobBuffer))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AIEnabled reports whether Gemini-backed features can run.
func (c *Config) AIEnabled() bool { return c.GoogleAPIKey != "" }

// NotionEnabled reports whether assessments can be exported to Notion.
func (c *Config) NotionEnabled() bool { return c.NotionToken != "" && c.NotionDatabaseID != "" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Package config loads and validates the process configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config aggregates every tunable the process reads at startup. It is
// immutable once loaded.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Admin  AdminConfig  `mapstructure:"admin"`
	DB     DBConfig     `mapstructure:"database"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
}

// ServerConfig drives the connection lifecycle engine.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Workers         int           `mapstructure:"workers"`
	QueueCapacity   int           `mapstructure:"queue_capacity"`
	ResourcesDir    string        `mapstructure:"resources_dir"`
	UploadsSubdir   string        `mapstructure:"uploads_subdir"`
	DefaultDocument string        `mapstructure:"default_document"`
	Name            string        `mapstructure:"name"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	MaxRequests     int           `mapstructure:"max_requests"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// SlogLevel maps the configured level string onto slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AdminConfig controls the observability sidecar endpoint.
type AdminConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// DBConfig controls the optional access-log database.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig controls the in-memory file cache.
type CacheConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	TTL           time.Duration `mapstructure:"ttl"`
	MaxEntryBytes int           `mapstructure:"max_entry_bytes"`
}

// JobsConfig controls the background maintenance jobs.
type JobsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	UploadRetention    time.Duration `mapstructure:"upload_retention"`
	AccessLogRetention time.Duration `mapstructure:"access_log_retention"`
	StatsInterval      string        `mapstructure:"stats_interval"`
}

// Validate rejects configurations the engine cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a positive integer below 65536, got %d", c.Server.Port)
	}
	if c.Server.Workers <= 0 {
		return fmt.Errorf("server.workers must be a positive integer, got %d", c.Server.Workers)
	}
	if c.Server.ResourcesDir == "" {
		return fmt.Errorf("server.resources_dir is required")
	}
	return nil
}

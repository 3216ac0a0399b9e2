package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.Workers)
	assert.Equal(t, 40, cfg.Server.QueueCapacity)
	assert.Equal(t, "resources", cfg.Server.ResourcesDir)
	assert.Equal(t, "uploads", cfg.Server.UploadsSubdir)
	assert.Equal(t, "index.html", cfg.Server.DefaultDocument)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 100, cfg.Server.MaxRequests)
	assert.Equal(t, 8192, cfg.Server.MaxHeaderBytes)
	assert.Equal(t, int64(1048576), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Admin.Enabled)
	assert.True(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Jobs.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTPSERVER_SERVER_PORT", "9191")
	t.Setenv("HTTPSERVER_SERVER_WORKERS", "3")
	t.Setenv("HTTPSERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Server.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := Config{Server: ServerConfig{Port: 8080, Workers: 4, ResourcesDir: "resources"}}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"no workers", func(c *Config) { c.Server.Workers = 0 }},
		{"missing resources dir", func(c *Config) { c.Server.ResourcesDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel(), "level %q", tt.level)
	}
}

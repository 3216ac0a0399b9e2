package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from defaults, an optional httpserver.yaml and
// HTTPSERVER_* environment variables, in ascending precedence.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("httpserver")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/httpserver/")

	v.SetEnvPrefix("HTTPSERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing file is fine; defaults and env cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.workers", 10)
	v.SetDefault("server.queue_capacity", 40)
	v.SetDefault("server.resources_dir", "resources")
	v.SetDefault("server.uploads_subdir", "uploads")
	v.SetDefault("server.default_document", "index.html")
	v.SetDefault("server.name", "Multi-threaded HTTP Server")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.max_requests", 100)
	v.SetDefault("server.max_header_bytes", 8192)
	v.SetDefault("server.max_body_bytes", 1048576)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("admin.enabled", false)
	v.SetDefault("admin.addr", "127.0.0.1:9090")

	v.SetDefault("database.path", "")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "1m")
	v.SetDefault("cache.max_entry_bytes", 1048576)

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.upload_retention", "168h")
	v.SetDefault("jobs.access_log_retention", "72h")
	v.SetDefault("jobs.stats_interval", "@every 1m")
}

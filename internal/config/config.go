// Package config resolves settings from flags, config files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-rent-must-flow/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the resolved application settings.
type Config struct {
	Logging   LoggingConfig
	Export    ExportConfig
	Server    ServerConfig
	Dashboard DashboardConfig
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// DashboardConfig controls console and terminal dashboards.
type DashboardConfig struct {
	TopN int
}

// ExportConfig controls where CSV exports are written.
type ExportConfig struct {
	Dir string
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("dashboard.top_n", 10)
	v.SetDefault("export.dir", ".")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Dashboard: DashboardConfig{
			TopN: v.GetInt("dashboard.top_n"),
		},
		Export: ExportConfig{
			Dir: ExpandPath(v.GetString("export.dir")),
		},
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			MaxUploadBytes:  v.GetInt64("server.max_upload_bytes"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	if c.Dashboard.TopN <= 0 {
		return fmt.Errorf("%w: dashboard.top_n must be positive", common.ErrInvalidConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr", common.ErrMissingConfig)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: server.max_upload_bytes must be positive", common.ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server timeouts cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

// LoadDotEnv loads environment variables from the given .env files
// (default ".env"). Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(ExpandPath(path)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("No .env file found, using process environment", "path", path)
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ExpandPath expands a leading ~ and any $VAR references in path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

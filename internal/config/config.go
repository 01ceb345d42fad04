// Package config handles server configuration from the environment using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	str2duration "github.com/xhit/go-str2duration/v2"
)

const defaultRenderTimeout = 30 * time.Second

// Config is the process-wide, operator-controlled configuration. It is
// resolved once at startup and read-only afterwards; requests can never
// change it.
type Config struct {
	// OutputDir is the only directory save_to_disk may ever write to.
	// Empty means persistence is disabled and saves degrade to
	// preview-only.
	OutputDir string

	LogLevel   string
	LogColored bool
	LogJSON    bool

	// RenderTimeout bounds one tool invocation end to end.
	RenderTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("OUTPUT_DIR", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_COLORED", true)
	viper.SetDefault("LOG_JSON", false)
	viper.SetDefault("RENDER_TIMEOUT", "30s")

	cfg := &Config{
		OutputDir:     viper.GetString("OUTPUT_DIR"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		LogColored:    viper.GetBool("LOG_COLORED"),
		LogJSON:       viper.GetBool("LOG_JSON"),
		RenderTimeout: defaultRenderTimeout,
	}

	if raw := viper.GetString("RENDER_TIMEOUT"); raw != "" {
		d, err := str2duration.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RENDER_TIMEOUT %q: %w", raw, err)
		}
		cfg.RenderTimeout = d
	}

	if cfg.OutputDir != "" {
		abs, err := filepath.Abs(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("resolve OUTPUT_DIR: %w", err)
		}
		cfg.OutputDir = abs
	}

	return cfg, nil
}

// EnsureOutputDir creates the configured save directory if persistence
// is enabled. Failure is not fatal: the export manager degrades to
// preview-only when the directory is unusable.
func (c *Config) EnsureOutputDir() error {
	if c.OutputDir == "" {
		return nil
	}
	return os.MkdirAll(c.OutputDir, 0o755)
}

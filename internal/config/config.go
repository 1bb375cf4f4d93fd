// Package config loads application configuration from defaults, an optional
// config file, and FITU_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DebounceWindow time.Duration `mapstructure:"debounce_window"`
	StateDir       string        `mapstructure:"state_dir"`
	LogLevel       string        `mapstructure:"log_level"`
}

// DefaultStateDir returns the per-user state directory. It honors
// XDG_CONFIG_HOME and falls back to ~/.config/fitu.
func DefaultStateDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fitu")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fitu")
}

// Load resolves configuration. A config.yaml in the state dir or the current
// directory overrides defaults; FITU_* environment variables override both.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultStateDir())
	v.AddConfigPath(".")

	v.SetDefault("api_base_url", "http://localhost:8080/api")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("debounce_window", 300*time.Millisecond)
	v.SetDefault("state_dir", DefaultStateDir())
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("FITU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: empty api_base_url")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("config: non-positive request_timeout")
	}
	if cfg.DebounceWindow <= 0 {
		return nil, fmt.Errorf("config: non-positive debounce_window")
	}
	return &cfg, nil
}

// Package config loads pformat settings with Viper from a YAML file,
// PFORMAT_ environment variables and command-line flags, and turns them
// into formatter options.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/pformat/internal/logging"
	"github.com/conneroisu/pformat/pkg/pformat"
)

// Config is the resolved configuration.
type Config struct {
	Culture     string      `mapstructure:"culture" yaml:"culture"`
	ReplaceMode string      `mapstructure:"replace_mode" yaml:"replace_mode"`
	Log         LogConfig   `mapstructure:"log" yaml:"log"`
	Watch       WatchConfig `mapstructure:"watch" yaml:"watch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

const (
	DefaultCulture  = "en-US"
	DefaultDebounce = 300 * time.Millisecond
	MaxDebounce     = 10 * time.Second
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("culture", DefaultCulture)
	v.SetDefault("replace_mode", pformat.ReplaceBySpan.String())
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "auto")
	v.SetDefault("watch.debounce", DefaultDebounce)
}

// Load reads the global Viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func validateConfig(config *Config) error {
	if _, err := pformat.ParseCulture(config.Culture); err != nil {
		return fmt.Errorf("culture: %w", err)
	}
	if _, ok := pformat.ParseReplaceMode(config.ReplaceMode); !ok {
		return fmt.Errorf("replace_mode %q must be span or value", config.ReplaceMode)
	}
	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch config.Log.Format {
	case "", "text", "json", "auto":
	default:
		return fmt.Errorf("log format %q must be text, json or auto", config.Log.Format)
	}
	if config.Watch.Debounce < 0 || config.Watch.Debounce > MaxDebounce {
		return fmt.Errorf("watch debounce %s is not in range 0-%s", config.Watch.Debounce, MaxDebounce)
	}

	return nil
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() logging.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	lc := logging.DefaultConfig()
	lc.Level = level
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}

	return logging.NewLogger(lc)
}

// FormatterOptions converts the configuration into pformat options. The
// logger, when non-nil, receives renumbering debug records.
func (c *Config) FormatterOptions(logger logging.Logger) ([]pformat.Option, error) {
	culture, err := pformat.ParseCulture(c.Culture)
	if err != nil {
		return nil, err
	}
	mode, ok := pformat.ParseReplaceMode(c.ReplaceMode)
	if !ok {
		return nil, fmt.Errorf("unknown replace mode %q", c.ReplaceMode)
	}

	opts := []pformat.Option{pformat.WithCulture(culture), pformat.WithReplaceMode(mode)}
	if logger != nil {
		opts = append(opts, pformat.WithLogger(logger.WithComponent("pformat").Slog()))
	}

	return opts, nil
}

package config

import (
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		ApplyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Storage overrides
	DataDir      *string
	DataFilename *string
	Format       *string
	IOTimeout    *time.Duration

	// Validation overrides
	TitleMaxLength       *int
	DescriptionMaxLength *int

	// Display overrides
	PreviewWidth *int

	// Application overrides
	Verbose *bool

	// Commands overrides
	ExportDefaultFormat *string
}

// ApplyOverrides applies command line overrides to the configuration
func ApplyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}
	if overrides.DataFilename != nil {
		config.Storage.Filename = *overrides.DataFilename
	}
	if overrides.Format != nil {
		config.Storage.Format = *overrides.Format
	}
	if overrides.IOTimeout != nil {
		config.Storage.IOTimeout = *overrides.IOTimeout
	}

	if overrides.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}
	if overrides.DescriptionMaxLength != nil {
		config.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	if overrides.PreviewWidth != nil {
		config.Display.PreviewWidth = *overrides.PreviewWidth
	}

	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}

	if overrides.ExportDefaultFormat != nil {
		config.Commands.ExportDefaultFormat = *overrides.ExportDefaultFormat
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

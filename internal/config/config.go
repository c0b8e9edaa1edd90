package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultFilename is the name of the persistence artifact when none is configured
const DefaultFilename = "tasks.dat"

// Supported persistence formats
const (
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Config holds all configuration options for the task manager application
type Config struct {
	Storage     StorageConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// StorageConfig holds persistence-related configuration
type StorageConfig struct {
	Dir             string        `env:"TM_DATA_DIR"`
	Filename        string        `env:"TM_DATA_FILENAME"`
	Format          string        `env:"TM_STORE_FORMAT"`
	IOTimeout       time.Duration `env:"TM_IO_TIMEOUT"`
	FilePermissions uint32        `env:"TM_DATA_FILE_PERMISSIONS"`
	DirPermissions  uint32        `env:"TM_DATA_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `env:"TM_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `env:"TM_VALIDATION_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	PreviewWidth int `env:"TM_DISPLAY_PREVIEW_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `env:"TM_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ExportDefaultFormat string `env:"TM_EXPORT_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:             ".",
			Filename:        DefaultFilename,
			Format:          FormatJSON,
			IOTimeout:       10 * time.Second,
			FilePermissions: 0644,
			DirPermissions:  0755,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       255,
			DescriptionMaxLength: 10000,
		},
		Display: DisplayConfig{
			PreviewWidth: 60,
		},
		Application: ApplicationConfig{
			Verbose: false,
		},
		Commands: CommandsConfig{
			ExportDefaultFormat: "csv",
		},
	}
}

// GetDataPath returns the full path to the persistence artifact
func (c *Config) GetDataPath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetIOTimeout returns the timeout applied to a single save or load
func (c *Config) GetIOTimeout() time.Duration {
	return c.Storage.IOTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("TM_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TM_DATA_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if format := os.Getenv("TM_STORE_FORMAT"); format != "" {
		c.Storage.Format = format
	}
	if timeout := os.Getenv("TM_IO_TIMEOUT"); timeout != "" {
		c.Storage.IOTimeout = ParseDurationWithFallback(timeout, c.Storage.IOTimeout)
	}
	if perms := os.Getenv("TM_DATA_FILE_PERMISSIONS"); perms != "" {
		c.Storage.FilePermissions = ParseUint32WithFallback(perms, 8, c.Storage.FilePermissions)
	}
	if perms := os.Getenv("TM_DATA_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("TM_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("TM_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		c.Validation.DescriptionMaxLength = ParseIntWithFallback(maxLen, c.Validation.DescriptionMaxLength)
	}

	// Display configuration
	if width := os.Getenv("TM_DISPLAY_PREVIEW_WIDTH"); width != "" {
		c.Display.PreviewWidth = ParseIntWithFallback(width, c.Display.PreviewWidth)
	}

	// Application configuration
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if format := os.Getenv("TM_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "data filename cannot be empty"}
	}
	if c.Storage.Format != FormatJSON && c.Storage.Format != FormatSQLite {
		return &ConfigError{Field: "storage.format", Message: "format must be one of: json, sqlite"}
	}
	if c.Storage.IOTimeout <= 0 {
		return &ConfigError{Field: "storage.io_timeout", Message: "io timeout must be positive"}
	}
	if c.Storage.FilePermissions == 0 || c.Storage.FilePermissions > 0777 {
		return &ConfigError{Field: "storage.file_permissions", Message: "file permissions must be between 0001 and 0777"}
	}
	if c.Storage.DirPermissions == 0 || c.Storage.DirPermissions > 0777 {
		return &ConfigError{Field: "storage.dir_permissions", Message: "directory permissions must be between 0001 and 0777"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}

	if c.Display.PreviewWidth < 10 {
		return &ConfigError{Field: "display.preview_width", Message: "preview width must be at least 10"}
	}

	switch c.Commands.ExportDefaultFormat {
	case "csv", "pdf":
	default:
		return &ConfigError{Field: "commands.export_default_format", Message: "export format must be one of: csv, pdf"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}

package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for the percept application.
// It covers all commands (nms, invert, threshold, serve) and supports loading
// from configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Post-processing configuration
	Postprocess PostprocessConfig `mapstructure:"postprocess" yaml:"postprocess" json:"postprocess"`

	// Image primitive configuration
	Image ImageConfig `mapstructure:"image" yaml:"image" json:"image"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// PostprocessConfig contains box post-processing settings.
type PostprocessConfig struct {
	IoUThreshold float64 `mapstructure:"iou_threshold" yaml:"iou_threshold" json:"iou_threshold"`
}

// ImageConfig contains pixel primitive settings.
type ImageConfig struct {
	Threshold int `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	MaxValue  int `mapstructure:"max_value" yaml:"max_value" json:"max_value"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string `mapstructure:"host" yaml:"host" json:"host"`
	Port              int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin        string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB       int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec        int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout   int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimitEnabled  bool   `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled" json:"rate_limit_enabled"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Postprocess: PostprocessConfig{
			IoUThreshold: 0.5,
		},
		Image: ImageConfig{
			Threshold: 128,
			MaxValue:  255,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Host:              "localhost",
			Port:              8080,
			CORSOrigin:        "*",
			MaxUploadMB:       50,
			TimeoutSec:        30,
			ShutdownTimeout:   10,
			RateLimitEnabled:  false,
			RequestsPerMinute: 120,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Postprocess.IoUThreshold < 0.0 || c.Postprocess.IoUThreshold > 1.0 {
		return fmt.Errorf("invalid postprocess.iou_threshold: %g (must be between 0.0 and 1.0)", c.Postprocess.IoUThreshold)
	}

	if c.Image.Threshold < 0 || c.Image.Threshold > 255 {
		return fmt.Errorf("invalid image.threshold: %d (must be between 0 and 255)", c.Image.Threshold)
	}
	if c.Image.MaxValue < 0 || c.Image.MaxValue > 255 {
		return fmt.Errorf("invalid image.max_value: %d (must be between 0 and 255)", c.Image.MaxValue)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.RateLimitEnabled && c.Server.RequestsPerMinute <= 0 {
		return fmt.Errorf("invalid requests per minute: %d (must be positive)", c.Server.RequestsPerMinute)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

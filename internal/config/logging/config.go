// Package logging provides configuration for application logging.
package logging

import "fmt"

// Config holds logging-specific configuration settings.
type Config struct {
	// Level is the logging level (debug, info, warn, error)
	Level string `yaml:"level" mapstructure:"level"`
	// Encoding is the log encoding format (json, console)
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	// Development enables colored, human-oriented output
	Development bool `yaml:"development" mapstructure:"development"`
}

// New creates a logging configuration with default values.
func New() *Config {
	return &Config{
		Level:    "info",
		Encoding: "console",
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch c.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding %q", c.Encoding)
	}
	return nil
}

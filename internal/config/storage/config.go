// Package storage provides configuration for the run database.
package storage

// Config represents the storage configuration.
type Config struct {
	// Path is the SQLite database file. Empty disables persistence.
	Path string `yaml:"path" mapstructure:"path"`
}

// New creates a storage configuration with default values.
func New() *Config {
	return &Config{Path: "newsminer.db"}
}

// Enabled reports whether runs should be persisted.
func (c *Config) Enabled() bool {
	return c.Path != ""
}

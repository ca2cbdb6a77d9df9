// Package config provides configuration management for the application. It
// handles loading, validation, and access to configuration values from a
// YAML file and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	browserconfig "github.com/jonesrussell/newsminer/internal/config/browser"
	loggingconfig "github.com/jonesrussell/newsminer/internal/config/logging"
	outputconfig "github.com/jonesrussell/newsminer/internal/config/output"
	scraperconfig "github.com/jonesrussell/newsminer/internal/config/scraper"
	storageconfig "github.com/jonesrussell/newsminer/internal/config/storage"
)

// envPrefix namespaces the environment variables viper reads,
// e.g. NEWSMINER_SCRAPER_KEYWORD.
const envPrefix = "NEWSMINER"

// Interface defines the interface for configuration management.
type Interface interface {
	// GetScraperConfig returns the scraper configuration.
	GetScraperConfig() *scraperconfig.Config
	// GetBrowserConfig returns the browser configuration.
	GetBrowserConfig() *browserconfig.Config
	// GetLoggingConfig returns the logging configuration.
	GetLoggingConfig() *loggingconfig.Config
	// GetOutputConfig returns the output configuration.
	GetOutputConfig() *outputconfig.Config
	// GetStorageConfig returns the storage configuration.
	GetStorageConfig() *storageconfig.Config
	// Validate validates the configuration.
	Validate() error
}

// Ensure Config implements Interface
var _ Interface = (*Config)(nil)

// Config represents the application configuration.
type Config struct {
	// Scraper holds scrape-run configuration
	Scraper *scraperconfig.Config `yaml:"scraper" mapstructure:"scraper"`
	// Browser holds headless browser configuration
	Browser *browserconfig.Config `yaml:"browser" mapstructure:"browser"`
	// Logging holds logging configuration
	Logging *loggingconfig.Config `yaml:"logging" mapstructure:"logging"`
	// Output holds run artifact configuration
	Output *outputconfig.Config `yaml:"output" mapstructure:"output"`
	// Storage holds run database configuration
	Storage *storageconfig.Config `yaml:"storage" mapstructure:"storage"`
}

// GetScraperConfig returns the scraper configuration.
func (c *Config) GetScraperConfig() *scraperconfig.Config { return c.Scraper }

// GetBrowserConfig returns the browser configuration.
func (c *Config) GetBrowserConfig() *browserconfig.Config { return c.Browser }

// GetLoggingConfig returns the logging configuration.
func (c *Config) GetLoggingConfig() *loggingconfig.Config { return c.Logging }

// GetOutputConfig returns the output configuration.
func (c *Config) GetOutputConfig() *outputconfig.Config { return c.Output }

// GetStorageConfig returns the storage configuration.
func (c *Config) GetStorageConfig() *storageconfig.Config { return c.Storage }

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Scraper.Validate(); err != nil {
		return fmt.Errorf("scraper: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

// Load loads configuration from the given file path, falling back to
// ./config.yaml, with environment variable overrides applied on top.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	setDefaults(cfg)

	return cfg, nil
}

// registerDefaults declares every key to viper so environment overrides
// apply even when the config file omits the key.
func registerDefaults(v *viper.Viper) {
	scraperDefaults := scraperconfig.New()
	v.SetDefault("scraper.base_url", scraperDefaults.BaseURL)
	v.SetDefault("scraper.keyword", "")
	v.SetDefault("scraper.category_filter", "")
	v.SetDefault("scraper.months_period", 0)
	v.SetDefault("scraper.timeout", scraperDefaults.Timeout)
	v.SetDefault("scraper.max_attempts", scraperDefaults.MaxAttempts)
	v.SetDefault("scraper.retry_base_delay", scraperDefaults.RetryBaseDelay)
	v.SetDefault("scraper.retry_max_delay", scraperDefaults.RetryMaxDelay)

	browserDefaults := browserconfig.New()
	v.SetDefault("browser.headless", browserDefaults.Headless)
	v.SetDefault("browser.no_sandbox", browserDefaults.NoSandbox)
	v.SetDefault("browser.user_agent", browserDefaults.UserAgent)

	loggingDefaults := loggingconfig.New()
	v.SetDefault("logging.level", loggingDefaults.Level)
	v.SetDefault("logging.encoding", loggingDefaults.Encoding)
	v.SetDefault("logging.development", loggingDefaults.Development)

	outputDefaults := outputconfig.New()
	v.SetDefault("output.dir", outputDefaults.Dir)
	v.SetDefault("output.images_subdir", outputDefaults.ImagesSubdir)

	v.SetDefault("storage.path", storageconfig.New().Path)
}

// setDefaults fills nil sections and zero values with defaults.
func setDefaults(cfg *Config) {
	if cfg.Scraper == nil {
		cfg.Scraper = scraperconfig.New()
	} else {
		defaults := scraperconfig.New()
		if cfg.Scraper.BaseURL == "" {
			cfg.Scraper.BaseURL = defaults.BaseURL
		}
		if cfg.Scraper.Timeout == 0 {
			cfg.Scraper.Timeout = defaults.Timeout
		}
		if cfg.Scraper.MaxAttempts == 0 {
			cfg.Scraper.MaxAttempts = defaults.MaxAttempts
		}
		if cfg.Scraper.RetryBaseDelay == 0 {
			cfg.Scraper.RetryBaseDelay = defaults.RetryBaseDelay
		}
		if cfg.Scraper.RetryMaxDelay == 0 {
			cfg.Scraper.RetryMaxDelay = defaults.RetryMaxDelay
		}
	}
	if cfg.Browser == nil {
		cfg.Browser = browserconfig.New()
	} else if cfg.Browser.UserAgent == "" {
		cfg.Browser.UserAgent = browserconfig.DefaultUserAgent
	}
	if cfg.Logging == nil {
		cfg.Logging = loggingconfig.New()
	} else {
		defaults := loggingconfig.New()
		if cfg.Logging.Level == "" {
			cfg.Logging.Level = defaults.Level
		}
		if cfg.Logging.Encoding == "" {
			cfg.Logging.Encoding = defaults.Encoding
		}
	}
	if cfg.Output == nil {
		cfg.Output = outputconfig.New()
	} else if cfg.Output.ImagesSubdir == "" {
		cfg.Output.ImagesSubdir = outputconfig.DefaultImagesSubdir
	}
	if cfg.Storage == nil {
		cfg.Storage = storageconfig.New()
	}
}

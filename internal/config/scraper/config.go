// Package scraper provides configuration for the scrape run itself: what to
// search for, how far back to go, and how patient to be with the site.
package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL        = "https://apnews.com/"
	DefaultTimeout        = 30 * time.Second
	DefaultMaxAttempts    = 3
	DefaultRetryBaseDelay = 1 * time.Second
	DefaultRetryMaxDelay  = 10 * time.Second
)

// Config represents the scraper configuration.
type Config struct {
	// BaseURL is the news site's landing page, where the search affordance
	// lives.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Keyword is the search phrase.
	Keyword string `yaml:"keyword" mapstructure:"keyword"`
	// CategoryFilter is matched case-insensitively as a substring against
	// the site's category checkboxes. Empty skips filtering.
	CategoryFilter string `yaml:"category_filter" mapstructure:"category_filter"`
	// MonthsPeriod bounds how many whole calendar months back the scrape
	// goes. Zero means the current calendar month only; negative means no
	// bound.
	MonthsPeriod int `yaml:"months_period" mapstructure:"months_period"`
	// Timeout bounds each wait for page elements to become visible.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxAttempts is the total attempts per browser interaction.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	// RetryBaseDelay is the initial backoff delay between attempts.
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" mapstructure:"retry_base_delay"`
	// RetryMaxDelay caps the backoff delay.
	RetryMaxDelay time.Duration `yaml:"retry_max_delay" mapstructure:"retry_max_delay"`
}

// New creates a scraper configuration with default values.
func New() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		MaxAttempts:    DefaultMaxAttempts,
		RetryBaseDelay: DefaultRetryBaseDelay,
		RetryMaxDelay:  DefaultRetryMaxDelay,
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("base_url %q is not a valid absolute URL", c.BaseURL)
	}
	if c.Keyword == "" {
		return errors.New("keyword is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("max_attempts must be at least 1")
	}
	if c.RetryBaseDelay <= 0 || c.RetryMaxDelay < c.RetryBaseDelay {
		return errors.New("retry delays must be positive and max >= base")
	}
	return nil
}

// Package browser provides configuration for the headless browser session.
package browser

// DefaultUserAgent identifies the scraper to the site.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// Config represents the browser configuration.
type Config struct {
	// Headless runs Chrome without a window.
	Headless bool `yaml:"headless" mapstructure:"headless"`
	// NoSandbox disables the Chrome sandbox, needed in most containers.
	NoSandbox bool `yaml:"no_sandbox" mapstructure:"no_sandbox"`
	// UserAgent is the user agent string to use.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// New creates a browser configuration with default values.
func New() *Config {
	return &Config{
		Headless:  true,
		NoSandbox: true,
		UserAgent: DefaultUserAgent,
	}
}

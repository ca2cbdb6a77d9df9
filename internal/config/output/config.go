// Package output provides configuration for run artifacts: the export file
// and downloaded images.
package output

import "errors"

// DefaultImagesSubdir is the folder under Dir where promo images land.
const DefaultImagesSubdir = "imgs"

// Config represents the output configuration.
type Config struct {
	// Dir is the folder where run artifacts are written.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// ImagesSubdir is the subfolder of Dir for downloaded images.
	ImagesSubdir string `yaml:"images_subdir" mapstructure:"images_subdir"`
}

// New creates an output configuration with default values.
func New() *Config {
	return &Config{
		Dir:          "output",
		ImagesSubdir: DefaultImagesSubdir,
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("output dir is required")
	}
	if c.ImagesSubdir == "" {
		return errors.New("images subdir is required")
	}
	return nil
}

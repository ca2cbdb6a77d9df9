// Package common provides shared dependency construction for commands.
package common

import (
	"fmt"

	"github.com/jonesrussell/newsminer/internal/config"
	"github.com/jonesrussell/newsminer/internal/logger"
)

// Deps bundles the dependencies every command needs.
type Deps struct {
	Config config.Interface
	Logger logger.Interface
}

// NewCommandDeps loads configuration and builds the logger.
func NewCommandDeps(cfgFile string, debug bool) (*Deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	loggingCfg := cfg.GetLoggingConfig()
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Development = true
	}

	// Validation happens in each command after flag overrides are applied.
	log, err := logger.New(&logger.Config{
		Level:       logger.Level(loggingCfg.Level),
		Development: loggingCfg.Development,
		Encoding:    loggingCfg.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &Deps{Config: cfg, Logger: log}, nil
}

// Package run provides the CLI command that dispatches the registered operations.
package run

import (
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/config"
	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

// ConfigLoaderFunc loads the configuration from the given file path. An empty path means
// environment variables only.
type ConfigLoaderFunc func(filePath string) (*config.Config, error)

// LevelSetterFunc applies the configured log level to the command logger.
type LevelSetterFunc func(lvl zapcore.Level)

// Config holds the configuration for the run command.
type Config struct {
	Logger   logger.Logger
	Registry *operations.OperationRegistry

	// Deps holds optional dependencies. Nil uses production defaults.
	Deps *Deps
}

// Deps holds the injectable dependencies for the run command.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ConfigLoader loads the configuration.
	// Default: config.Load
	ConfigLoader ConfigLoaderFunc

	// NewReporter creates the reporter that collects the reports of one invocation.
	// Default: operations.NewMemoryReporter
	NewReporter func() operations.Reporter

	// SetLevel applies the configured log level.
	// Default: no-op
	SetLevel LevelSetterFunc
}

func (c *Config) deps() {
	if c.Deps == nil {
		c.Deps = &Deps{}
	}
	c.Deps.applyDefaults()

	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	if c.Registry == nil {
		c.Registry = operations.Default()
	}
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ConfigLoader == nil {
		d.ConfigLoader = config.Load
	}
	if d.NewReporter == nil {
		d.NewReporter = func() operations.Reporter { return operations.NewMemoryReporter() }
	}
	if d.SetLevel == nil {
		d.SetLevel = func(zapcore.Level) {}
	}
}

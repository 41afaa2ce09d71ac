// Package commands provides the statops CLI commands.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	cmds := commands.New(lggr)
//	root.AddCommand(
//	    cmds.Run(operations.Default()),
//	    cmds.List(operations.Default()),
//	)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/smartcontractkit/stat-operations/pkg/commands/run"
//
//	root.AddCommand(run.NewCommand(run.Config{
//	    Logger:   lggr,
//	    Registry: registry,
//	    Deps:     &run.Deps{...},  // inject a config loader for testing
//	}))
package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/commands/list"
	"github.com/smartcontractkit/stat-operations/pkg/commands/run"
	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
// This allows setting the logger once and reusing it across all commands.
type Commands struct {
	lggr     logger.Logger
	setLevel run.LevelSetterFunc
}

// Option configures the Commands factory.
type Option func(*Commands)

// WithLevelSetter lets the run command apply the configured log level to the shared logger.
func WithLevelSetter(fn run.LevelSetterFunc) Option {
	return func(c *Commands) {
		c.setLevel = fn
	}
}

// New creates a new Commands factory with the given logger.
// The logger will be shared across all commands created by this factory.
func New(lggr logger.Logger, opts ...Option) *Commands {
	c := &Commands{lggr: lggr}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run creates the run command dispatching the operations of reg.
func (c *Commands) Run(reg *operations.OperationRegistry) *cobra.Command {
	return run.NewCommand(run.Config{
		Logger:   c.lggr,
		Registry: reg,
		Deps:     &run.Deps{SetLevel: c.setLevel},
	})
}

// List creates the list command for the operations of reg.
func (c *Commands) List(reg *operations.OperationRegistry) *cobra.Command {
	return list.NewCommand(list.Config{Registry: reg})
}

// Command statops runs the registered statistical operations over lists of numbers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/commands"
	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

func main() {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	lggr, err := logger.NewWith(func(cfg *zap.Config) {
		cfg.Level = level
		cfg.Encoding = "console"
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lggr.Sync() }()

	if err = newRootCmd(lggr, level).Execute(); err != nil {
		_ = lggr.Sync()
		os.Exit(1) //nolint:gocritic // logger synced above
	}
}

func newRootCmd(lggr logger.Logger, level zap.AtomicLevel) *cobra.Command {
	root := &cobra.Command{
		Use:   "statops",
		Short: "Run statistical operations over lists of numbers",
	}

	cmds := commands.New(lggr, commands.WithLevelSetter(level.SetLevel))
	registry := operations.Default()
	root.AddCommand(
		cmds.Run(registry),
		cmds.List(registry),
	)

	return root
}

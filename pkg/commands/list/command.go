// Package list provides the CLI command that lists the registered operations.
package list

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/commands/text"
)

// Config holds the configuration for the list command.
type Config struct {
	Registry *operations.OperationRegistry
}

// NewCommand creates the list command. A nil registry lists operations.Default().
func NewCommand(cfg Config) *cobra.Command {
	if cfg.Registry == nil {
		cfg.Registry = operations.Default()
	}

	return &cobra.Command{
		Use:   "list",
		Short: "List the registered operations",
		Long: text.LongDesc(`
			List the ID, version and description of every registered operation, in
			registration order.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops := cfg.Registry.List()
			data := make([][]string, 0, len(ops))
			for _, op := range ops {
				def := op.Def()
				version := "-"
				if def.Version != nil {
					version = def.Version.String()
				}
				data = append(data, []string{def.ID, version, def.Description})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Version", "Description"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorders(tablewriter.Border{
				Left:   false,
				Right:  false,
				Top:    true,
				Bottom: true,
			})
			table.AppendBulk(data)
			table.Render()

			return nil
		},
	}
}

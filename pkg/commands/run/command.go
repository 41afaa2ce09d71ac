package run

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/commands/text"
	"github.com/smartcontractkit/stat-operations/pkg/config"
	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

var (
	runLong = `
		Run every registered operation against one or more datasets and print the results.

		Values passed with --values form an unnamed dataset. Named datasets are read from the
		config file. Flags override the config file and STATOPS_* environment variables.
	`

	runExample = `
		# Print the mean, max and median of a list of numbers
		statops run --values 1,2,3,4,5

		# Only the median, as JSON
		statops run -v 1,2,3,4 --operation median -o json

		# Every dataset of a config file
		statops run --config statops.yml
	`
)

// ErrNoInput is returned when neither flags nor config provide any values.
var ErrNoInput = errors.New("no values to run: set --values or add values or datasets to the config")

type runFlags struct {
	configPath string
	values     []float64
	operations []string
	failFast   bool
	output     string
}

// apply overrides the loaded config with the flags that were explicitly set.
func (f *runFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("values") {
		cfg.Values = f.values
	}
	if fs.Changed("operation") {
		cfg.Operations = f.operations
	}
	if fs.Changed("fail-fast") {
		cfg.FailFast = f.failFast
	}
	if fs.Changed("output") {
		cfg.Output = f.output
	}
}

// NewCommand creates the run command.
//
// Usage:
//
//	rootCmd.AddCommand(run.NewCommand(run.Config{
//	    Logger:   lggr,
//	    Registry: operations.Default(),
//	}))
func NewCommand(cfg Config) *cobra.Command {
	// Apply defaults for optional dependencies
	cfg.deps()

	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the registered operations",
		Long:    text.LongDesc(runLong),
		Example: text.Examples(runExample),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags parsed fine, do not print usage on dispatch failures
			cmd.SilenceUsage = true

			return runOperations(cmd, cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML or TOML config file")
	cmd.Flags().Float64SliceVarP(&flags.values, "values", "v", nil, "Comma separated values to run the operations on")
	cmd.Flags().StringSliceVar(&flags.operations, "operation", nil, "Operation ID to run (repeatable, default all)")
	cmd.Flags().BoolVar(&flags.failFast, "fail-fast", false, "Stop at the first failing operation")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.OutputText, "Output format: text, json, yaml or toml")

	return cmd
}

func runOperations(cmd *cobra.Command, cfg Config, flags *runFlags) error {
	lggr := cfg.Logger.Named("run")

	c, err := cfg.Deps.ConfigLoader(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags.apply(cmd.Flags(), c)
	if err = c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	lvl, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	cfg.Deps.SetLevel(lvl)

	inputs := c.Inputs()
	if len(inputs) == 0 {
		return ErrNoInput
	}

	var opts []operations.RunOption
	if len(c.Operations) > 0 {
		opts = append(opts, operations.WithOperations(c.Operations...))
	}
	if c.FailFast {
		opts = append(opts, operations.WithFailFast())
	}

	reporter := cfg.Deps.NewReporter()

	var errs error
	for _, ds := range inputs {
		seq := operations.Sequence(ds.Values)

		results, runErr := cfg.Registry.RunAll(seq, opts...)
		if runErr != nil {
			lggr.Errorw("Dataset failed", "dataset", datasetLabel(ds.Name), "error", runErr)
			errs = multierr.Append(errs, datasetError(ds.Name, runErr))
		} else {
			lggr.Infow("Dataset dispatched", "dataset", datasetLabel(ds.Name), "results", len(results))
		}

		if err = reporter.AddReport(operations.NewReport(ds.Name, seq, results, runErr)); err != nil {
			return fmt.Errorf("failed to record report: %w", err)
		}
	}

	reports, err := reporter.GetReports()
	if err != nil {
		return fmt.Errorf("failed to get reports: %w", err)
	}

	if err = render(cmd.OutOrStdout(), c.Output, reports); err != nil {
		return multierr.Append(errs, fmt.Errorf("failed to render reports: %w", err))
	}

	return errs
}

func datasetError(name string, err error) error {
	if name == "" {
		return err
	}

	return fmt.Errorf("dataset %s: %w", name, err)
}

func datasetLabel(name string) string {
	if name == "" {
		return "values"
	}

	return name
}

// Package config loads the statops configuration from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/spf13/viper"

	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

// Output formats supported by the run command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputTOML = "toml"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{OutputText, OutputJSON, OutputYAML, OutputTOML}

// Dataset is a named sequence of values to dispatch the operations against.
type Dataset struct {
	Name   string    `mapstructure:"name" yaml:"name" toml:"name"`
	Values []float64 `mapstructure:"values" yaml:"values" toml:"values"`
}

// Config wraps the entire configuration for statops.
type Config struct {
	Operations []string  `mapstructure:"operations" yaml:"operations" toml:"operations"` // Operation IDs to run. Empty runs all.
	Values     []float64 `mapstructure:"values" yaml:"values" toml:"values"`             // Shorthand for a single unnamed dataset.
	Datasets   []Dataset `mapstructure:"datasets" yaml:"datasets" toml:"datasets"`
	FailFast   bool      `mapstructure:"fail_fast" yaml:"fail_fast" toml:"fail_fast"` // Stop at the first failing operation.
	Output     string    `mapstructure:"output" yaml:"output" toml:"output"`          // One of OutputFormats.
	LogLevel   string    `mapstructure:"log_level" yaml:"log_level" toml:"log_level"`
}

// Inputs returns the datasets to dispatch. Values, when set, come first as an unnamed dataset.
func (c *Config) Inputs() []Dataset {
	inputs := make([]Dataset, 0, len(c.Datasets)+1)
	if len(c.Values) > 0 {
		inputs = append(inputs, Dataset{Values: c.Values})
	}

	return append(inputs, c.Datasets...)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("invalid output %q (must be one of %v)", c.Output, OutputFormats)
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Datasets))
	for i, ds := range c.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset at index %d: name is required", i)
		}
		if seen[ds.Name] {
			return fmt.Errorf("duplicate dataset name: %s", ds.Name)
		}
		seen[ds.Name] = true
	}

	for _, id := range c.Operations {
		if id == "" {
			return errors.New("operation id must not be empty")
		}
	}

	return nil
}

// Load loads the config from the file path, falling back to env vars if the file does not exist
// or the path is empty. If the file exists, any env vars that are set will override the values
// loaded from the file. The result is validated.
func Load(filePath string) (*Config, error) {
	v := newViper()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)

		// If the config file exists, we continue to read it, otherwise we fallback to using
		// environment variables
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
			}
		}
	}

	return unmarshal(v)
}

// LoadFile loads the config from a file only. The format is inferred from the extension.
func LoadFile(filePath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("output", OutputText)
	v.SetDefault("log_level", "warn")
	v.SetDefault("fail_fast", false)

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envBindings maps config keys to the environment variables that can provide them. List values
// are comma separated, e.g. STATOPS_VALUES=1,2,3.
var envBindings = map[string][]string{
	"operations": {"STATOPS_OPERATIONS"},
	"values":     {"STATOPS_VALUES"},
	"fail_fast":  {"STATOPS_FAIL_FAST"},
	"output":     {"STATOPS_OUTPUT"},
	"log_level":  {"STATOPS_LOG_LEVEL", "LOG_LEVEL"},
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// Prepend the config key to the start of the arguments
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

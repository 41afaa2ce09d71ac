/*
Package operations provides a registry of named statistical operations and a dispatcher that
applies every registered operation to a numeric sequence.

# Core Components

Operation:
  - A named, versioned, stateless statistic over a Sequence
  - Built from a pure ApplyFunc with NewOperation
  - Mean, Max and Median are provided as built-ins

Registry:
  - Stores operations by ID and rejects duplicates with a *ConfigurationError
  - Has an open registration phase followed by a frozen, read-only phase
  - Default returns the frozen process-wide registry of built-ins

Dispatch:
  - RunAll applies each registered operation exactly once
  - Failures surface as *DomainError; by default all of them are collected
  - The order of results is not part of the contract

Reporter:
  - Records the results of a dispatch as a Report
  - MemoryReporter keeps reports in memory for rendering

# Basic Usage

	registry, err := operations.NewBuiltinRegistry()
	if err != nil {
		return err
	}
	registry.MustRegister(myOperation)
	registry.Freeze()

	results, err := registry.RunAll(operations.Sequence{1, 2, 3, 4, 5})
	if err != nil {
		return err
	}
	_ = operations.FormatResults(os.Stdout, results)

Adding an operation never requires changes to RunAll: define it with NewOperation and register
it during initialization.
*/
package operations

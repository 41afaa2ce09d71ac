// Package optest provides utilities for operations testing.
package optest

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/stat-operations/operations"
	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

// NewRegistry creates an open registry holding the built-in operations, logging to the test
// logger of t. Extra operations are registered after the built-ins.
func NewRegistry(t *testing.T, extra ...operations.Operation) *operations.OperationRegistry {
	t.Helper()

	reg, err := operations.NewBuiltinRegistry(operations.WithLogger(logger.Test(t)))
	require.NoError(t, err)
	require.NoError(t, reg.Register(extra...))

	return reg
}

// ConstantOperation returns an operation that always yields v. It is useful for asserting that
// newly registered operations show up in a dispatch.
func ConstantOperation(id string, v float64) operations.Operation {
	return operations.NewOperation(id, semver.MustParse("1.0.0"), "constant "+operations.FormatValue(v),
		func(operations.Sequence) (float64, error) { return v, nil })
}

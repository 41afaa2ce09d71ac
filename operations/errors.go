package operations

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySequence is returned when a statistic is requested for an empty sequence.
	ErrEmptySequence = errors.New("statistic is undefined for an empty sequence")

	// ErrNonFinite is returned when a sequence holds NaN or an infinity.
	ErrNonFinite = errors.New("sequence holds a non-finite value")

	// ErrDuplicateOperation is returned when an operation ID is registered twice.
	ErrDuplicateOperation = errors.New("operation already registered")

	// ErrRegistryFrozen is returned when registering into a frozen registry.
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrInvalidOperation is returned for a nil operation or one without an ID.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrOperationNotFound is returned when an operation ID is not registered.
	ErrOperationNotFound = errors.New("operation not found in registry")
)

// DomainError reports that a statistic is undefined for the given input.
type DomainError struct {
	// Operation is the ID of the failing operation. It is empty when the sequence itself was
	// rejected before any operation ran.
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Operation == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("operation %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a registry misconfiguration, such as a duplicate ID.
// It is a programming-time error.
type ConfigurationError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Operation == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("operation %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// withOperation attaches the operation ID to err. Errors that are not a *DomainError are
// wrapped in one, since any failure inside Apply means the statistic is undefined.
func withOperation(id string, err error) error {
	var derr *DomainError
	if errors.As(err, &derr) {
		return &DomainError{Operation: id, Err: derr.Err}
	}

	return &DomainError{Operation: id, Err: err}
}

package operations

import (
	"fmt"
	"slices"
	"sync"

	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

// OperationRegistry is a store of operations keyed by ID.
//
// A registry has two phases. While open, operations are registered, normally during program
// initialization. After Freeze it is read-only and may be dispatched from any number of
// goroutines.
type OperationRegistry struct {
	mu sync.RWMutex

	// entries maps operation IDs to operations.
	entries map[string]Operation

	// keyHistory lists the operation IDs in the order they were registered.
	keyHistory []string

	frozen bool
	lggr   logger.Logger
}

// RegistryOption configures an OperationRegistry.
type RegistryOption func(*OperationRegistry)

// WithLogger sets the logger used for registration and dispatch.
func WithLogger(lggr logger.Logger) RegistryOption {
	return func(r *OperationRegistry) {
		r.lggr = lggr
	}
}

// NewOperationRegistry creates a new, empty and open OperationRegistry.
func NewOperationRegistry(opts ...RegistryOption) *OperationRegistry {
	r := &OperationRegistry{
		entries:    make(map[string]Operation),
		keyHistory: []string{},
		lggr:       logger.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// NewBuiltinRegistry creates an open OperationRegistry holding the built-in operations.
// More operations can be registered before it is frozen.
func NewBuiltinRegistry(opts ...RegistryOption) (*OperationRegistry, error) {
	r := NewOperationRegistry(opts...)
	if err := r.Register(Builtins()...); err != nil {
		return nil, err
	}

	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *OperationRegistry
)

// Default returns the process-wide registry. It holds the built-in operations and is frozen on
// first use.
func Default() *OperationRegistry {
	defaultOnce.Do(func() {
		defaultRegistry = NewOperationRegistry()
		defaultRegistry.MustRegister(Builtins()...)
		defaultRegistry.Freeze()
	})

	return defaultRegistry
}

// Register adds operations to the registry in the given order.
//
// A *ConfigurationError is returned for a nil operation, an empty ID, an ID that is already
// registered (or repeated within ops), or a frozen registry. When any operation is rejected
// none of ops are added.
func (r *OperationRegistry) Register(ops ...Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return &ConfigurationError{Err: ErrRegistryFrozen}
	}

	pending := make(map[string]struct{}, len(ops))
	for _, op := range ops {
		if op == nil {
			return &ConfigurationError{Err: fmt.Errorf("nil operation: %w", ErrInvalidOperation)}
		}

		id := op.ID()
		if id == "" {
			return &ConfigurationError{Err: fmt.Errorf("empty operation id: %w", ErrInvalidOperation)}
		}

		_, registered := r.entries[id]
		_, repeated := pending[id]
		if registered || repeated {
			return &ConfigurationError{Operation: id, Err: ErrDuplicateOperation}
		}
		pending[id] = struct{}{}
	}

	for _, op := range ops {
		def := op.Def()
		r.entries[def.ID] = op
		r.keyHistory = append(r.keyHistory, def.ID)
		r.lggr.Debugw("Registered operation", "id", def.ID, "version", def.Version)
	}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *OperationRegistry) MustRegister(ops ...Operation) {
	if err := r.Register(ops...); err != nil {
		panic(err)
	}
}

// Freeze ends the registration phase. Subsequent calls to Register fail.
func (r *OperationRegistry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frozen = true
}

// Frozen reports whether the registry is read-only.
func (r *OperationRegistry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frozen
}

// Retrieve returns the operation registered under id.
func (r *OperationRegistry) Retrieve(id string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("operation '%s': %w", id, ErrOperationNotFound)
	}

	return op, nil
}

// ListIDs returns a copy of all registered operation IDs in registration order.
func (r *OperationRegistry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.keyHistory)
}

// List returns all registered operations in registration order.
func (r *OperationRegistry) List() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]Operation, 0, len(r.keyHistory))
	for _, id := range r.keyHistory {
		ops = append(ops, r.entries[id])
	}

	return ops
}

// Len returns the number of registered operations.
func (r *OperationRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.keyHistory)
}

package operations

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/multierr"
)

// Result is the outcome of applying one operation to a sequence.
type Result struct {
	Name  string
	Value float64
	// Err is set only for failed operations of a collect-all dispatch.
	Err error
}

// String renders the result as "The <name> is <value>".
func (r Result) String() string {
	return fmt.Sprintf("The %s is %s", r.Name, FormatValue(r.Value))
}

// FormatValue formats v with the fewest digits that represent it exactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatResults writes one line per successful result to w.
func FormatResults(w io.Writer, results []Result) error {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if _, err := fmt.Fprintln(w, res.String()); err != nil {
			return err
		}
	}

	return nil
}

// RunConfig is the configuration for RunAll.
type RunConfig struct {
	failFast bool
	ids      []string
}

// RunOption configures a single RunAll call.
type RunOption func(*RunConfig)

// WithFailFast stops the dispatch at the first failing operation. Only that error is returned.
func WithFailFast() RunOption {
	return func(c *RunConfig) {
		c.failFast = true
	}
}

// WithOperations restricts the dispatch to the given operation IDs. Every ID must be
// registered.
func WithOperations(ids ...string) RunOption {
	return func(c *RunConfig) {
		c.ids = append(c.ids, ids...)
	}
}

// RunAll applies every registered operation to seq exactly once and returns one Result per
// operation.
//
// Results are currently ordered by registration, but callers must not depend on the order.
//
// By default all failures are collected: the returned error combines every per-operation
// *DomainError (use errors.As or multierr.Errors to inspect them), and the results still hold
// the values of the operations that succeeded. With WithFailFast the first failure is returned
// alone with no results.
func (r *OperationRegistry) RunAll(seq Sequence, opts ...RunOption) ([]Result, error) {
	cfg := &RunConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ops, err := r.selectOperations(cfg.ids)
	if err != nil {
		return nil, err
	}

	var errs error
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		def := op.Def()
		r.lggr.Infow("Executing operation",
			"id", def.ID, "version", def.Version, "description", def.Description)

		v, err := op.Apply(seq)
		if err != nil {
			r.lggr.Warnw("Operation failed", "id", def.ID, "error", err)
			if cfg.failFast {
				return nil, err
			}

			errs = multierr.Append(errs, err)
			results = append(results, Result{Name: def.ID, Err: err})

			continue
		}

		results = append(results, Result{Name: def.ID, Value: v})
	}

	return results, errs
}

// selectOperations snapshots the operations to dispatch. With no ids it returns every
// operation in registration order, otherwise the requested subset in registration order.
func (r *OperationRegistry) selectOperations(ids []string) ([]Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(ids) == 0 {
		ops := make([]Operation, 0, len(r.keyHistory))
		for _, id := range r.keyHistory {
			ops = append(ops, r.entries[id])
		}

		return ops, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := r.entries[id]; !ok {
			return nil, &ConfigurationError{Operation: id, Err: ErrOperationNotFound}
		}
		wanted[id] = struct{}{}
	}

	ops := make([]Operation, 0, len(wanted))
	for _, id := range r.keyHistory {
		if _, ok := wanted[id]; ok {
			ops = append(ops, r.entries[id])
		}
	}

	return ops, nil
}

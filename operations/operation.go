package operations

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Sequence is an ordered collection of numbers that operations are applied to.
// Operations never modify a Sequence; any reordering happens on a copy.
type Sequence []float64

// Validate checks that the sequence is non-empty and holds only finite values.
// The returned error is a *DomainError without an operation name.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return &DomainError{Err: ErrEmptySequence}
	}

	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &DomainError{Err: fmt.Errorf("value at index %d (%v): %w", i, v, ErrNonFinite)}
		}
	}

	return nil
}

// ParseSequence parses decimal strings into a Sequence.
func ParseSequence(values []string) (Sequence, error) {
	seq := make(Sequence, 0, len(values))
	for i, raw := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parse value at index %d: %w", i, err)
		}
		seq = append(seq, v)
	}

	return seq, nil
}

// MarshalJSON encodes the sequence as a JSON array. NaN and infinities have no JSON number
// form and are written as the strings "NaN", "+Inf" and "-Inf".
func (s Sequence) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	values := make([]any, len(s))
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			values[i] = strconv.FormatFloat(v, 'f', -1, 64)
			continue
		}
		values[i] = v
	}

	return json.Marshal(values)
}

// UnmarshalJSON decodes an array of numbers, accepting the strings written by MarshalJSON.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}

	seq := make(Sequence, 0, len(raw))
	for i, r := range raw {
		var v float64
		if err := json.Unmarshal(r, &v); err == nil {
			seq = append(seq, v)
			continue
		}

		var str string
		if err := json.Unmarshal(r, &str); err != nil {
			return fmt.Errorf("decode value at index %d: %w", i, err)
		}
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("parse value at index %d: %w", i, err)
		}
		seq = append(seq, v)
	}
	*s = seq

	return nil
}

// Definition is the metadata for an operation.
// ID is the operation name and must be unique within a registry.
type Definition struct {
	ID          string          `json:"id" yaml:"id" toml:"id"`
	Version     *semver.Version `json:"version" yaml:"version" toml:"version"`
	Description string          `json:"description" yaml:"description" toml:"description"`
}

// Operation computes one statistic over a Sequence.
//
// Implementations must be stateless: applying the same operation to the same sequence always
// yields the same value. Use NewOperation to build one from an ApplyFunc.
type Operation interface {
	// ID returns the operation name.
	ID() string

	// Def returns the operation definition.
	Def() Definition

	// Apply computes the statistic. It returns a *DomainError when the statistic is undefined
	// for the input.
	Apply(seq Sequence) (float64, error)
}

// ApplyFunc is the function signature of an operation body. It is only ever called with a
// validated sequence.
type ApplyFunc func(seq Sequence) (float64, error)

type operation struct {
	def Definition
	fn  ApplyFunc
}

var _ Operation = (*operation)(nil)

// NewOperation creates a new operation.
// Version can be created using semver.MustParse("1.0.0") or semver.New("1.0.0").
func NewOperation(id string, version *semver.Version, description string, fn ApplyFunc) Operation {
	return &operation{
		def: Definition{
			ID:          id,
			Version:     version,
			Description: description,
		},
		fn: fn,
	}
}

func (o *operation) ID() string {
	return o.def.ID
}

func (o *operation) Def() Definition {
	return o.def
}

func (o *operation) Apply(seq Sequence) (float64, error) {
	if err := seq.Validate(); err != nil {
		return 0, withOperation(o.def.ID, err)
	}

	v, err := o.fn(seq)
	if err != nil {
		return 0, withOperation(o.def.ID, err)
	}

	return v, nil
}

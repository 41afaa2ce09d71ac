package operations

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/stat-operations/pkg/logger"
)

func resultMap(t *testing.T, results []Result) map[string]float64 {
	t.Helper()

	m := make(map[string]float64, len(results))
	for _, res := range results {
		require.NoError(t, res.Err)
		_, dup := m[res.Name]
		require.False(t, dup, "operation %s applied more than once", res.Name)
		m[res.Name] = res.Value
	}

	return m
}

func TestRunAll_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seq  Sequence
		want map[string]float64
	}{
		{
			name: "odd length",
			seq:  Sequence{1, 2, 3, 4, 5},
			want: map[string]float64{"mean": 3, "max": 5, "median": 3},
		},
		{
			name: "even length",
			seq:  Sequence{1, 2, 3, 4},
			want: map[string]float64{"mean": 2.5, "max": 4, "median": 2.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results, err := Default().RunAll(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resultMap(t, results))
		})
	}
}

func TestRunAll_Idempotent(t *testing.T) {
	t.Parallel()

	seq := Sequence{9, -3, 4.25, 4.25, 0}

	first, err := Default().RunAll(seq)
	require.NoError(t, err)
	second, err := Default().RunAll(seq)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunAll_ExtensionAddsOneResult(t *testing.T) {
	t.Parallel()

	seq := Sequence{2, 8, 5}

	r, err := NewBuiltinRegistry()
	require.NoError(t, err)
	before, err := r.RunAll(seq)
	require.NoError(t, err)

	r.MustRegister(constOp("answer", 42))
	after, err := r.RunAll(seq)
	require.NoError(t, err)

	require.Len(t, after, len(before)+1)
	want := resultMap(t, before)
	want["answer"] = 42
	assert.Equal(t, want, resultMap(t, after))
}

func TestRunAll_EmptySequenceFailsEveryOperation(t *testing.T) {
	t.Parallel()

	results, err := Default().RunAll(Sequence{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptySequence)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)

	failed := make([]string, 0, len(errs))
	for _, e := range errs {
		var derr *DomainError
		require.ErrorAs(t, e, &derr)
		failed = append(failed, derr.Operation)
	}
	assert.ElementsMatch(t, []string{"mean", "max", "median"}, failed)

	require.Len(t, results, 3)
	for _, res := range results {
		require.Error(t, res.Err)
	}
}

func TestRunAll_CollectsPartialFailures(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("needs an even number of values")
	evenOnly := NewOperation("even-only", semver.MustParse("1.0.0"), "", func(seq Sequence) (float64, error) {
		if len(seq)%2 != 0 {
			return 0, errOdd
		}

		return 1, nil
	})

	r, err := NewBuiltinRegistry()
	require.NoError(t, err)
	r.MustRegister(evenOnly)

	results, err := r.RunAll(Sequence{1, 2, 3})
	require.ErrorIs(t, err, errOdd)
	assert.Len(t, multierr.Errors(err), 1)

	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "even-only", derr.Operation)

	require.Len(t, results, 4)
	var buf bytes.Buffer
	require.NoError(t, FormatResults(&buf, results))
	assert.Equal(t, "The mean is 2\nThe max is 3\nThe median is 2\n", buf.String())
}

func TestRunAll_FailFast(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := NewOperation("counting", semver.MustParse("1.0.0"), "", func(Sequence) (float64, error) {
		calls++

		return 0, nil
	})

	r, err := NewBuiltinRegistry()
	require.NoError(t, err)
	r.MustRegister(counting)

	results, err := r.RunAll(nil, WithFailFast())
	require.ErrorIs(t, err, ErrEmptySequence)
	assert.Nil(t, results)
	assert.Len(t, multierr.Errors(err), 1)

	var derr *DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "mean", derr.Operation)
	assert.Zero(t, calls)
}

func TestRunAll_WithOperations(t *testing.T) {
	t.Parallel()

	seq := Sequence{4, 1, 3}

	results, err := Default().RunAll(seq, WithOperations("median", "mean", "median"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"mean": 8.0 / 3.0, "median": 3}, resultMap(t, results))

	results, err = Default().RunAll(seq, WithOperations("mean", "mode"))
	require.ErrorIs(t, err, ErrOperationNotFound)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "mode", cerr.Operation)
	assert.Nil(t, results)
}

func TestRunAll_EmptyRegistry(t *testing.T) {
	t.Parallel()

	results, err := NewOperationRegistry().RunAll(Sequence{1})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunAll_Logs(t *testing.T) {
	t.Parallel()

	lggr, logs := logger.TestObserved(t, zapcore.InfoLevel)
	r, err := NewBuiltinRegistry(WithLogger(lggr))
	require.NoError(t, err)

	_, err = r.RunAll(Sequence{1, 2})
	require.NoError(t, err)

	executed := logs.FilterMessage("Executing operation").All()
	require.Len(t, executed, 3)
	assert.Equal(t, "mean", executed[0].ContextMap()["id"])
	assert.Equal(t, "Arithmetic mean", executed[0].ContextMap()["description"])

	_, err = r.RunAll(nil)
	require.Error(t, err)
	assert.Equal(t, 3, logs.FilterMessage("Operation failed").Len())
}

func TestRunAll_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	r, err := NewBuiltinRegistry()
	require.NoError(t, err)
	r.Freeze()

	seq := Sequence{5, 1, 4, 2, 3}

	var wg sync.WaitGroup
	results := make([][]Result, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = r.RunAll(seq)
		}()
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestResult_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give Result
		want string
	}{
		{give: Result{Name: "mean", Value: 3}, want: "The mean is 3"},
		{give: Result{Name: "median", Value: 2.5}, want: "The median is 2.5"},
		{give: Result{Name: "max", Value: -0.125}, want: "The max is -0.125"},
		{give: Result{Name: "big", Value: 1e21}, want: "The big is 1000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.give.String())
		})
	}
}

package operations

import (
	"slices"

	"github.com/Masterminds/semver/v3"
)

var (
	// Mean is the arithmetic mean of a sequence.
	Mean = NewOperation("mean", semver.MustParse("1.0.0"), "Arithmetic mean", mean)

	// Max is the largest element of a sequence.
	Max = NewOperation("max", semver.MustParse("1.0.0"), "Largest element", maximum)

	// Median is the middle element of the sorted sequence, or the average of the two middle
	// elements when the length is even.
	Median = NewOperation("median", semver.MustParse("1.0.0"), "Middle value of the sorted sequence", median)
)

// Builtins returns the built-in operations in the order Mean, Max, Median.
func Builtins() []Operation {
	return []Operation{Mean, Max, Median}
}

func mean(seq Sequence) (float64, error) {
	var sum float64
	for _, v := range seq {
		sum += v
	}

	return sum / float64(len(seq)), nil
}

func maximum(seq Sequence) (float64, error) {
	return slices.Max(seq), nil
}

func median(seq Sequence) (float64, error) {
	sorted := slices.Clone(seq)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

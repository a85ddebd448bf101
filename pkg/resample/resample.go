// Package resample maps an irregularly sampled group-delay-difference
// curve onto the shear-synchronous reconstruction grid. Interpolation is
// zero-order hold: each query frequency takes the value of the nearest
// raw sample at or below it. Shear-interferometric data has genuine step
// structure from its spectral binning, so smoothing interpolants are
// deliberately avoided here.
package resample

import (
	"errors"
	"fmt"
	"sort"

	"twodsi/internal/models"
)

// Errors returned by the resampler.
var (
	// ErrOutOfDomain is returned when a query frequency lies outside
	// the support of the raw samples. The resampler never extrapolates.
	ErrOutOfDomain = errors.New("resample: query outside raw support")

	// ErrInvalidInput is returned for empty, mismatched, or unsorted
	// raw sample arrays.
	ErrInvalidInput = errors.New("resample: invalid input")
)

// Resample evaluates the step function defined by the raw samples
// (xs, ys) at every point of the target axis, adding offset to each
// value. xs must be sorted ascending. The offset models a known
// calibration bias in the group-delay extraction; pass 0 when no bias
// is being compensated.
func Resample(xs, ys []float64, axis *models.FrequencyAxis, offset float64) ([]float64, error) {
	if err := validate(xs, ys); err != nil {
		return nil, err
	}

	out := make([]float64, axis.Len())
	for i, f := range axis.Frequencies {
		v, err := At(xs, ys, f)
		if err != nil {
			return nil, err
		}
		out[i] = v + offset
	}
	return out, nil
}

// At evaluates the left-continuous step function defined by (xs, ys) at
// a single query frequency: the value of the nearest raw sample at or
// below the query. Queries outside [xs[0], xs[len-1]] fail with
// ErrOutOfDomain.
func At(xs, ys []float64, query float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("%w: no raw samples", ErrInvalidInput)
	}
	if query < xs[0] || query > xs[len(xs)-1] {
		return 0, fmt.Errorf("%w: frequency %g not in [%g, %g]",
			ErrOutOfDomain, query, xs[0], xs[len(xs)-1])
	}

	// Index of the first sample strictly above the query; the sample
	// before it is the nearest one at or below.
	idx := sort.SearchFloat64s(xs, query)
	if idx < len(xs) && xs[idx] == query {
		return ys[idx], nil
	}
	return ys[idx-1], nil
}

func validate(xs, ys []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: no raw samples", ErrInvalidInput)
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d frequencies but %d values", ErrInvalidInput, len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("%w: frequencies not strictly ascending at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

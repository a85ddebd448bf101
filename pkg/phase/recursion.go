// Package phase recovers absolute spectral phase from a resampled
// group-delay-difference series and removes the low-order polynomial
// components that carry no pulse-shape information.
package phase

import (
	"errors"
	"fmt"
)

// Errors returned by the phase reconstruction.
var (
	// ErrInvalidInput is returned for empty arrays or an out-of-range
	// center index.
	ErrInvalidInput = errors.New("phase: invalid input")

	// ErrFitDegreeTooHigh is returned when the detrending fit is
	// under-determined: the polynomial degree is not below the number
	// of anchor points.
	ErrFitDegreeTooHigh = errors.New("phase: fit degree too high for anchor count")
)

// Accumulate converts the finite-difference series g, where g[i] holds
// Phi(w_i) - Phi(w_{i-1}) on a grid spaced by the shear, into absolute
// phase values anchored at zero at centerIndex.
//
// The reconstruction is a single rightward pass followed by a single
// leftward pass:
//
//	phase[c] = 0
//	phase[i] = g[i] + phase[i-1]    for i = c+1 .. n-1
//	phase[i] = phase[i+1] - g[i+1]  for i = c-1 .. 0
//
// Unlike trapezoidal integration of a group-delay curve, the recursion
// is exact at grid points spaced by the shear: given exact finite
// differences it reproduces the phase with no accumulated interpolation
// error. Non-finite entries in g propagate into the result; callers are
// responsible for cleaning their input.
func Accumulate(g []float64, centerIndex int) ([]float64, error) {
	if len(g) == 0 {
		return nil, fmt.Errorf("%w: empty group-delay series", ErrInvalidInput)
	}
	if centerIndex < 0 || centerIndex >= len(g) {
		return nil, fmt.Errorf("%w: center index %d out of range [0, %d)",
			ErrInvalidInput, centerIndex, len(g))
	}

	phase := make([]float64, len(g))
	phase[centerIndex] = 0

	for i := centerIndex + 1; i < len(g); i++ {
		phase[i] = g[i] + phase[i-1]
	}
	for i := centerIndex - 1; i >= 0; i-- {
		phase[i] = phase[i+1] - g[i+1]
	}

	return phase, nil
}

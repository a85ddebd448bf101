// Package synth generates synthetic 2DSI measurements from a known
// polynomial spectral phase. It stands in for the upstream acquisition
// system in demos and round-trip tests: the generated table feeds the
// reconstruction exactly like a reduced experimental dataset.
package synth

import (
	"errors"
	"fmt"

	"twodsi/internal/models"
)

// ErrInvalidParameter is returned for non-positive shear or sample
// counts, inverted bounds, or an empty phase model.
var ErrInvalidParameter = errors.New("synth: invalid parameter")

// PolynomialPhase models a spectral phase as a polynomial in the
// recentered frequency f - ReferenceFrequency. Coefficients are in
// ascending power order: Coefficients[k] multiplies (f-ref)^k.
type PolynomialPhase struct {
	// ReferenceFrequency recenters the polynomial argument, in Hz.
	ReferenceFrequency float64

	// Coefficients holds the polynomial coefficients in ascending
	// power order.
	Coefficients []float64
}

// Eval returns the phase at frequency f in radians.
func (p *PolynomialPhase) Eval(f float64) float64 {
	x := f - p.ReferenceFrequency
	v := 0.0
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		v = v*x + p.Coefficients[i]
	}
	return v
}

// Generate produces a measurement whose group-delay-difference values
// are the exact finite differences of the phase model across the shear:
//
//	g(f) = Phi(f) - Phi(f - shear)
//
// sampled at `samples` evenly spaced frequencies spanning [fMin, fMax].
// The returned measurement carries the shear and the phase model's
// reference frequency, ready to be written out or reconstructed.
func Generate(phase *PolynomialPhase, fMin, fMax, shear float64, samples int) (*models.Measurement, error) {
	if phase == nil || len(phase.Coefficients) == 0 {
		return nil, fmt.Errorf("%w: empty phase model", ErrInvalidParameter)
	}
	if shear <= 0 {
		return nil, fmt.Errorf("%w: shear must be positive, got %g", ErrInvalidParameter, shear)
	}
	if samples < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidParameter, samples)
	}
	if fMin >= fMax {
		return nil, fmt.Errorf("%w: bounds [%g, %g] not increasing", ErrInvalidParameter, fMin, fMax)
	}

	m := &models.Measurement{
		Frequencies:        make([]float64, samples),
		GroupDelayDiff:     make([]float64, samples),
		Shear:              shear,
		ReferenceFrequency: phase.ReferenceFrequency,
	}

	step := (fMax - fMin) / float64(samples-1)
	for i := 0; i < samples; i++ {
		f := fMin + float64(i)*step
		m.Frequencies[i] = f
		m.GroupDelayDiff[i] = phase.Eval(f) - phase.Eval(f-shear)
	}
	return m, nil
}

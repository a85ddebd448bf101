// Package grid constructs the shear-synchronous frequency axis used by
// the 2DSI phase reconstruction. The axis is anchored at the reference
// frequency and grows outward in steps of the shear until it would leave
// the support of the measured data.
package grid

import (
	"errors"
	"fmt"

	"twodsi/internal/models"
)

// ErrInvalidParameter is returned when the shear is not positive or the
// reference frequency lies outside the measured support.
var ErrInvalidParameter = errors.New("grid: invalid parameter")

// Build constructs the reconstruction grid for the support [fMin, fMax]
// with spacing shear, anchored at refFreq.
//
// The axis contains refFreq exactly as one of its points, extends
// leftward from refFreq in steps of -shear while staying >= fMin, and
// rightward in steps of +shear while staying <= fMax. The returned
// CenterIndex locates refFreq within the concatenated result.
func Build(fMin, fMax, shear, refFreq float64) (*models.FrequencyAxis, error) {
	if shear <= 0 {
		return nil, fmt.Errorf("%w: shear must be positive, got %g", ErrInvalidParameter, shear)
	}
	if fMin > fMax {
		return nil, fmt.Errorf("%w: support bounds inverted [%g, %g]", ErrInvalidParameter, fMin, fMax)
	}
	if refFreq < fMin || refFreq > fMax {
		return nil, fmt.Errorf("%w: reference frequency %g outside support [%g, %g]",
			ErrInvalidParameter, refFreq, fMin, fMax)
	}

	// Left run: refFreq, refFreq-shear, ... down to fMin, then reversed
	// so the run is ascending. When refFreq == fMin the run degenerates
	// to the single anchor point.
	var left []float64
	for f := refFreq; f >= fMin; f -= shear {
		left = append(left, f)
	}
	reverse(left)

	// Right run starts at refFreq as well; the duplicate anchor is
	// dropped from the left run when concatenating.
	var right []float64
	for f := refFreq; f <= fMax; f += shear {
		right = append(right, f)
	}

	frequencies := make([]float64, 0, len(left)-1+len(right))
	frequencies = append(frequencies, left[:len(left)-1]...)
	frequencies = append(frequencies, right...)

	return &models.FrequencyAxis{
		Frequencies: frequencies,
		CenterIndex: len(left) - 1,
	}, nil
}

// BuildFromMeasurement constructs the grid for a measurement, taking the
// support bounds from its raw frequency axis.
func BuildFromMeasurement(m *models.Measurement) (*models.FrequencyAxis, error) {
	if len(m.Frequencies) == 0 {
		return nil, fmt.Errorf("%w: measurement has no frequency samples", ErrInvalidParameter)
	}
	fMin := m.Frequencies[0]
	fMax := m.Frequencies[len(m.Frequencies)-1]
	return Build(fMin, fMax, m.Shear, m.ReferenceFrequency)
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

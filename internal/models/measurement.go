package models

// Measurement holds the reduced output of a 2DSI acquisition: the raw
// frequency axis and the group-delay-difference value measured at each
// frequency, plus the two scalars that parameterize the whole run.
type Measurement struct {
	// Frequencies is the raw frequency axis in Hz, sorted ascending.
	Frequencies []float64

	// GroupDelayDiff holds Phi(w) - Phi(w - Shear) for each raw frequency.
	GroupDelayDiff []float64

	// Shear is the frequency offset between the two interfering pulse
	// replicas in Hz. It sets the spacing of the reconstruction grid.
	Shear float64

	// ReferenceFrequency is the frequency at which the absolute phase
	// is anchored to zero, in Hz.
	ReferenceFrequency float64
}

// ReferencePhase is an independently known phase/spectrum dataset used
// only to validate a reconstruction. It is never required by the
// reconstruction itself.
type ReferencePhase struct {
	// Frequencies is the reference frequency axis in Hz.
	Frequencies []float64

	// Intensity is the spectral intensity at each frequency.
	Intensity []float64

	// Phase is the known spectral phase at each frequency in radians.
	Phase []float64
}

// FrequencyAxis is the shear-synchronous reconstruction grid. Points are
// strictly increasing and spaced by the shear; the point at CenterIndex
// equals the reference frequency exactly.
type FrequencyAxis struct {
	// Frequencies holds the grid points in Hz.
	Frequencies []float64

	// CenterIndex is the offset of the reference frequency within
	// Frequencies.
	CenterIndex int
}

// Len returns the number of grid points.
func (a *FrequencyAxis) Len() int {
	return len(a.Frequencies)
}

// PhaseSeries maps a frequency axis to reconstructed spectral phase
// values. Phase[CenterIndex] is zero by construction.
type PhaseSeries struct {
	// Frequencies is the grid the phase is defined on, in Hz.
	Frequencies []float64

	// Phase is the spectral phase at each grid point in radians.
	Phase []float64

	// CenterIndex is the offset of the reference frequency within
	// Frequencies.
	CenterIndex int
}

// Len returns the number of samples in the series.
func (p *PhaseSeries) Len() int {
	return len(p.Phase)
}

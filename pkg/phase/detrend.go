package phase

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultFitDegree is the polynomial degree used for detrending when no
// override is configured.
const DefaultFitDegree = 7

// Detrend fits a polynomial of the given degree to the reconstructed
// phase, forces the constant and linear coefficients to zero, and
// evaluates the result back over the full grid.
//
// gridFreqs and phaseVals are the reconstruction grid and the phase on
// it; anchorFreqs are the frequencies the fit is evaluated over,
// conventionally the raw 2DSI frequency support. Each anchor snaps to
// the nearest grid point at or below it, and that grid point supplies
// both the abscissa and the phase value of the fit sample, so the
// fitted pairs always lie exactly on the reconstructed curve. Pairing a
// snapped value with the anchor's own frequency would skew off-grid
// samples and let a linear ramp bleed into higher-order coefficients.
// Both frequency sets are recentered by subtracting refFreq before
// fitting, so the nulled coefficients correspond to absolute phase
// offset and pulse arrival time at the reference frequency. Neither
// term is observable shape information, which is why they are
// suppressed explicitly rather than left as fit artifacts.
//
// Coefficients are held in ascending power order: index 0 is the
// constant term, index 1 the linear term.
func Detrend(gridFreqs, phaseVals, anchorFreqs []float64, refFreq float64, degree int) ([]float64, error) {
	if len(gridFreqs) == 0 || len(gridFreqs) != len(phaseVals) {
		return nil, fmt.Errorf("%w: grid has %d frequencies but %d phase values",
			ErrInvalidInput, len(gridFreqs), len(phaseVals))
	}
	if len(anchorFreqs) == 0 {
		return nil, fmt.Errorf("%w: no anchor frequencies", ErrInvalidInput)
	}
	if degree < 2 {
		return nil, fmt.Errorf("%w: degree %d leaves nothing after nulling orders 0 and 1",
			ErrInvalidInput, degree)
	}
	if degree >= len(anchorFreqs) {
		return nil, fmt.Errorf("%w: degree %d with %d anchors",
			ErrFitDegreeTooHigh, degree, len(anchorFreqs))
	}

	// Snap each anchor to its grid point and recenter on the reference.
	// The fit runs in a normalized coordinate (divided by the largest
	// recentered magnitude) to keep the Vandermonde system well scaled
	// at optical frequencies; nulling coefficients 0 and 1 is
	// unaffected by the scaling since each coefficient only picks up a
	// power of the scale factor.
	x := make([]float64, len(anchorFreqs))
	y := make([]float64, len(anchorFreqs))
	for i, f := range anchorFreqs {
		idx := snapIndex(gridFreqs, f)
		x[i] = gridFreqs[idx] - refFreq
		y[i] = phaseVals[idx]
	}
	scale := floats.Max(absSlice(x))
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, fmt.Errorf("%w: degenerate anchor frequencies", ErrInvalidInput)
	}

	// Vandermonde least squares, ascending powers of x/scale.
	cols := degree + 1
	a := mat.NewDense(len(x), cols, nil)
	for i, xi := range x {
		v := 1.0
		xn := xi / scale
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= xn
		}
	}
	b := mat.NewVecDense(len(y), y)

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("phase: polynomial fit failed: %w", err)
	}

	// Null the constant and linear terms before evaluating back.
	coef.SetVec(0, 0)
	coef.SetVec(1, 0)

	out := make([]float64, len(gridFreqs))
	for i, f := range gridFreqs {
		out[i] = evalPoly(coef.RawVector().Data, (f-refFreq)/scale)
	}
	return out, nil
}

// snapIndex returns the index of the nearest grid point at or below
// the query frequency. The grid always lies inside the raw support, so
// an anchor can overhang it by less than one shear at either end; such
// anchors clamp to the boundary index.
func snapIndex(xs []float64, query float64) int {
	idx := sort.SearchFloat64s(xs, query)
	if idx < len(xs) && xs[idx] == query {
		return idx
	}
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// evalPoly evaluates a polynomial with ascending-power coefficients at
// x using Horner's rule.
func evalPoly(coef []float64, x float64) float64 {
	v := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		v = v*x + coef[i]
	}
	return v
}

func absSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = math.Abs(v)
	}
	return out
}

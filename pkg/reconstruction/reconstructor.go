// Package reconstruction wires the 2DSI phase-reconstruction pipeline:
// grid construction, group-delay resampling, the bidirectional phase
// recursion, and polynomial detrending. A run either completes all four
// stages and produces a full phase series, or fails atomically at the
// first stage whose precondition is violated.
package reconstruction

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"

	"twodsi/internal/models"
	"twodsi/pkg/dataset"
	"twodsi/pkg/grid"
	"twodsi/pkg/phase"
	"twodsi/pkg/resample"
)

// ValidationMetrics compares a reconstruction against an independently
// known reference phase. Metrics are computed over the reference
// frequencies that fall inside the reconstruction grid.
type ValidationMetrics struct {
	// RMSE is the root mean square error between the detrended
	// reconstruction and the reference phase, in radians.
	RMSE float64

	// Correlation is the Pearson correlation between the two curves.
	// Values near 1 indicate the reconstructed shape tracks the
	// reference.
	Correlation float64

	// PeakDeviation is the largest absolute difference between the two
	// curves, in radians.
	PeakDeviation float64

	// Points is the number of reference samples the metrics were
	// computed over.
	Points int
}

// Params holds the reconstruction parameters.
type Params struct {
	// InputFile is the measurement table produced by the upstream 2DSI
	// reduction.
	InputFile string

	// OutputFile is the path the (frequency, phase) table is written to.
	OutputFile string

	// ReferenceFile optionally names an independent phase/spectrum
	// table used only for validation metrics.
	ReferenceFile string

	// PolyDegree is the polynomial degree for detrending. Zero selects
	// the default degree.
	PolyDegree int

	// CalibrationOffset is added to every resampled group-delay value.
	CalibrationOffset float64

	// SaveIntermediaryResults determines whether per-stage tables are
	// written under IntermediaryDir.
	SaveIntermediaryResults bool

	// IntermediaryDir is the directory intermediary tables are saved to.
	IntermediaryDir string
}

// Reconstructor runs the reconstruction pipeline over one measurement.
type Reconstructor struct {
	params      *Params
	measurement *models.Measurement
	axis        *models.FrequencyAxis
	resampled   []float64
	phase       *models.PhaseSeries
	detrended   *models.PhaseSeries
	metrics     *ValidationMetrics
}

// NewReconstructor creates a reconstructor with the given parameters.
// The parameters are copied; a zero PolyDegree resolves to the default
// fit degree without touching the caller's struct.
func NewReconstructor(params *Params) *Reconstructor {
	p := *params
	if p.PolyDegree == 0 {
		p.PolyDegree = phase.DefaultFitDegree
	}
	return &Reconstructor{params: &p}
}

// Process runs the full pipeline: load the measurement, build the grid,
// resample the group-delay curve, accumulate the phase, detrend it, and
// write the output table. When a reference dataset is configured the
// validation metrics are computed as a final step.
func (r *Reconstructor) Process() error {
	m, err := dataset.ReadMeasurement(r.params.InputFile)
	if err != nil {
		return fmt.Errorf("failed to load measurement: %w", err)
	}
	r.measurement = m

	if err := r.Reconstruct(m); err != nil {
		return err
	}

	if r.params.SaveIntermediaryResults {
		if err := r.saveIntermediaryResults(); err != nil {
			return fmt.Errorf("failed to save intermediary results: %w", err)
		}
	}

	if r.params.OutputFile != "" {
		if err := dataset.WritePhase(r.params.OutputFile, r.detrended); err != nil {
			return fmt.Errorf("failed to write phase table: %w", err)
		}
	}

	if r.params.ReferenceFile != "" {
		ref, err := dataset.ReadReferencePhase(r.params.ReferenceFile)
		if err != nil {
			return fmt.Errorf("failed to load reference phase: %w", err)
		}
		r.metrics = computeMetrics(r.detrended, ref)
	}

	return nil
}

// Reconstruct runs the four core stages over an in-memory measurement,
// leaving the results on the reconstructor. No files are touched.
func (r *Reconstructor) Reconstruct(m *models.Measurement) error {
	axis, err := grid.BuildFromMeasurement(m)
	if err != nil {
		return fmt.Errorf("failed to build frequency grid: %w", err)
	}
	r.axis = axis

	resampled, err := resample.Resample(m.Frequencies, m.GroupDelayDiff, axis, r.params.CalibrationOffset)
	if err != nil {
		return fmt.Errorf("failed to resample group delay: %w", err)
	}
	r.resampled = resampled

	accumulated, err := phase.Accumulate(resampled, axis.CenterIndex)
	if err != nil {
		return fmt.Errorf("failed to accumulate phase: %w", err)
	}
	r.phase = &models.PhaseSeries{
		Frequencies: axis.Frequencies,
		Phase:       accumulated,
		CenterIndex: axis.CenterIndex,
	}

	detrended, err := phase.Detrend(axis.Frequencies, accumulated, m.Frequencies,
		m.ReferenceFrequency, r.params.PolyDegree)
	if err != nil {
		return fmt.Errorf("failed to detrend phase: %w", err)
	}
	r.detrended = &models.PhaseSeries{
		Frequencies: axis.Frequencies,
		Phase:       detrended,
		CenterIndex: axis.CenterIndex,
	}

	return nil
}

// Axis returns the constructed frequency grid.
func (r *Reconstructor) Axis() *models.FrequencyAxis {
	return r.axis
}

// Phase returns the accumulated phase series before detrending.
func (r *Reconstructor) Phase() *models.PhaseSeries {
	return r.phase
}

// DetrendedPhase returns the final detrended phase series.
func (r *Reconstructor) DetrendedPhase() *models.PhaseSeries {
	return r.detrended
}

// Metrics returns the validation metrics, or nil when no reference
// dataset was configured.
func (r *Reconstructor) Metrics() *ValidationMetrics {
	return r.metrics
}

// saveIntermediaryResults writes one table per pipeline stage so a run
// can be inspected without rerunning it.
func (r *Reconstructor) saveIntermediaryResults() error {
	dir := r.params.IntermediaryDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create intermediary directory: %w", err)
	}

	stages := []struct {
		file  string
		yName string
		ys    []float64
	}{
		{"01_resampled_group_delay.csv", "group_delay_difference", r.resampled},
		{"02_accumulated_phase.csv", "phase", r.phase.Phase},
		{"03_detrended_phase.csv", "phase", r.detrended.Phase},
	}
	for _, s := range stages {
		path := filepath.Join(dir, s.file)
		if err := dataset.WriteSeries(path, "frequency", s.yName, r.axis.Frequencies, s.ys); err != nil {
			return err
		}
	}
	return nil
}

// computeMetrics evaluates the detrended reconstruction at every
// reference frequency inside the grid support and compares against the
// reference phase values.
func computeMetrics(detrended *models.PhaseSeries, ref *models.ReferencePhase) *ValidationMetrics {
	var got, want []float64
	lo := detrended.Frequencies[0]
	hi := detrended.Frequencies[len(detrended.Frequencies)-1]

	for i, f := range ref.Frequencies {
		if f < lo || f > hi {
			continue
		}
		v, err := resample.At(detrended.Frequencies, detrended.Phase, f)
		if err != nil {
			continue
		}
		got = append(got, v)
		want = append(want, ref.Phase[i])
	}

	m := &ValidationMetrics{Points: len(got)}
	if len(got) == 0 {
		return m
	}

	var sumSq float64
	for i := range got {
		d := got[i] - want[i]
		sumSq += d * d
		if ad := math.Abs(d); ad > m.PeakDeviation {
			m.PeakDeviation = ad
		}
	}
	m.RMSE = math.Sqrt(sumSq / float64(len(got)))
	if len(got) > 1 {
		m.Correlation = stat.Correlation(got, want, nil)
	}
	return m
}

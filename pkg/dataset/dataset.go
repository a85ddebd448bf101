// Package dataset reads and writes the tabular files at the boundary of
// the reconstruction core: the measurement table produced upstream, the
// optional reference phase overlay, and the reconstructed phase output.
// All tables are CSV with a named header row.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"twodsi/internal/models"
)

// ErrBadTable is returned when a table is missing required columns or
// contains unparseable rows.
var ErrBadTable = errors.New("dataset: malformed table")

// Measurement table columns. Shear and reference frequency are repeated
// on every row for uniformity; only the first row's values are
// authoritative.
const (
	colFrequency      = "frequency"
	colGroupDelayDiff = "group_delay_difference"
	colShear          = "shear"
	colReference      = "reference_frequency"
	colIntensity      = "intensity"
	colPhase          = "phase"
)

// ReadMeasurement loads a measurement table from path.
func ReadMeasurement(path string) (*models.Measurement, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, colFrequency, colGroupDelayDiff, colShear, colReference)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: no data rows", path, ErrBadTable)
	}

	m := &models.Measurement{
		Frequencies:    make([]float64, len(rows)),
		GroupDelayDiff: make([]float64, len(rows)),
	}
	for i, row := range rows {
		if m.Frequencies[i], err = parseField(row, cols[colFrequency], i); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if m.GroupDelayDiff[i], err = parseField(row, cols[colGroupDelayDiff], i); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if m.Shear, err = parseField(rows[0], cols[colShear], 0); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.ReferenceFrequency, err = parseField(rows[0], cols[colReference], 0); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// WriteMeasurement saves a measurement table to path.
func WriteMeasurement(path string, m *models.Measurement) error {
	if len(m.Frequencies) != len(m.GroupDelayDiff) {
		return fmt.Errorf("%w: %d frequencies but %d values",
			ErrBadTable, len(m.Frequencies), len(m.GroupDelayDiff))
	}

	records := make([][]string, 0, len(m.Frequencies)+1)
	records = append(records, []string{colFrequency, colGroupDelayDiff, colShear, colReference})
	for i := range m.Frequencies {
		records = append(records, []string{
			formatFloat(m.Frequencies[i]),
			formatFloat(m.GroupDelayDiff[i]),
			formatFloat(m.Shear),
			formatFloat(m.ReferenceFrequency),
		})
	}
	return writeTable(path, records)
}

// ReadReferencePhase loads an independently known phase/spectrum table
// used for validation overlays.
func ReadReferencePhase(path string) (*models.ReferencePhase, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(header, colFrequency, colIntensity, colPhase)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ref := &models.ReferencePhase{
		Frequencies: make([]float64, len(rows)),
		Intensity:   make([]float64, len(rows)),
		Phase:       make([]float64, len(rows)),
	}
	for i, row := range rows {
		if ref.Frequencies[i], err = parseField(row, cols[colFrequency], i); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if ref.Intensity[i], err = parseField(row, cols[colIntensity], i); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if ref.Phase[i], err = parseField(row, cols[colPhase], i); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return ref, nil
}

// WriteReferencePhase saves a reference phase/spectrum table to path.
func WriteReferencePhase(path string, ref *models.ReferencePhase) error {
	if len(ref.Frequencies) != len(ref.Intensity) || len(ref.Frequencies) != len(ref.Phase) {
		return fmt.Errorf("%w: mismatched column lengths %d/%d/%d",
			ErrBadTable, len(ref.Frequencies), len(ref.Intensity), len(ref.Phase))
	}

	records := make([][]string, 0, len(ref.Frequencies)+1)
	records = append(records, []string{colFrequency, colIntensity, colPhase})
	for i := range ref.Frequencies {
		records = append(records, []string{
			formatFloat(ref.Frequencies[i]),
			formatFloat(ref.Intensity[i]),
			formatFloat(ref.Phase[i]),
		})
	}
	return writeTable(path, records)
}

// WritePhase saves a reconstructed phase series as a (frequency, phase)
// table at path.
func WritePhase(path string, p *models.PhaseSeries) error {
	return WriteSeries(path, colFrequency, colPhase, p.Frequencies, p.Phase)
}

// WriteSeries saves an arbitrary two-column table at path, one row per
// sample pair. Used for per-stage intermediary dumps.
func WriteSeries(path, xName, yName string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d %s values but %d %s values",
			ErrBadTable, len(xs), xName, len(ys), yName)
	}

	records := make([][]string, 0, len(xs)+1)
	records = append(records, []string{xName, yName})
	for i := range xs {
		records = append(records, []string{
			formatFloat(xs[i]),
			formatFloat(ys[i]),
		})
	}
	return writeTable(path, records)
}

func readTable(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", path, ErrBadTable, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: %w: empty file", path, ErrBadTable)
	}
	return records[0], records[1:], nil
}

func writeTable(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// columnIndex maps required column names to their positions in the
// header row.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadTable, name)
		}
	}
	return cols, nil
}

func parseField(row []string, col, rowIdx int) (float64, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("%w: row %d has %d fields, need column %d",
			ErrBadTable, rowIdx, len(row), col)
	}
	v, err := strconv.ParseFloat(row[col], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d column %d: %v", ErrBadTable, rowIdx, col, err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

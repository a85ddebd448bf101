package visualization

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TestSavePlotWritesPNG verifies a plot with two curves renders to a
// decodable PNG of the expected dimensions.
func TestSavePlotWritesPNG(t *testing.T) {
	p := NewPlotter()

	xs := make([]float64, 101)
	ys := make([]float64, 101)
	zs := make([]float64, 101)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = math.Sin(float64(i) / 10)
		zs[i] = math.Cos(float64(i) / 10)
	}

	if err := p.AddCurve("reconstructed", xs, ys, color.RGBA{0, 0, 255, 255}); err != nil {
		t.Fatalf("AddCurve failed: %v", err)
	}
	if err := p.AddCurve("reference", xs, zs, color.RGBA{255, 0, 0, 255}); err != nil {
		t.Fatalf("AddCurve failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "plot.png")
	if err := p.SavePlot(path); err != nil {
		t.Fatalf("SavePlot failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open written plot: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Written file is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != plotWidth || bounds.Dy() != plotHeight {
		t.Errorf("Expected %dx%d image, got %dx%d",
			plotWidth, plotHeight, bounds.Dx(), bounds.Dy())
	}
}

// TestSavePlotSkipsNonFinite verifies NaN samples do not break
// rendering.
func TestSavePlotSkipsNonFinite(t *testing.T) {
	p := NewPlotter()

	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, math.NaN(), 2, math.Inf(1), 4}
	if err := p.AddCurve("noisy", xs, ys, color.RGBA{0, 0, 0, 255}); err != nil {
		t.Fatalf("AddCurve failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "plot.png")
	if err := p.SavePlot(path); err != nil {
		t.Fatalf("SavePlot failed: %v", err)
	}
}

// TestSavePlotFailures covers empty plotter and mismatched curves.
func TestSavePlotFailures(t *testing.T) {
	t.Run("NoCurves", func(t *testing.T) {
		p := NewPlotter()
		if err := p.SavePlot(filepath.Join(t.TempDir(), "plot.png")); err == nil {
			t.Error("Expected error for empty plotter")
		}
	})

	t.Run("MismatchedCurve", func(t *testing.T) {
		p := NewPlotter()
		if err := p.AddCurve("bad", []float64{1, 2}, []float64{1}, color.RGBA{}); err == nil {
			t.Error("Expected error for mismatched curve lengths")
		}
	})
}

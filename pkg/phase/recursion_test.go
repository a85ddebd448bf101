package phase

import (
	"errors"
	"math"
	"testing"
)

// TestAccumulateAnchorZero verifies the phase is anchored at zero at
// the center index.
func TestAccumulateAnchorZero(t *testing.T) {
	g := []float64{0.5, -0.2, 0.1, 0.7, -0.3}

	for c := 0; c < len(g); c++ {
		phase, err := Accumulate(g, c)
		if err != nil {
			t.Fatalf("Accumulate with center %d failed: %v", c, err)
		}
		if phase[c] != 0 {
			t.Errorf("Expected phase[%d] == 0, got %g", c, phase[c])
		}
	}
}

// TestAccumulateConsistency verifies the finite-difference relation
// phase[i+1] - phase[i] == g[i+1] holds for every adjacent pair, on
// both sides of the center.
func TestAccumulateConsistency(t *testing.T) {
	g := []float64{1.5, -2.0, 0.25, 3.0, -1.0, 0.5, 2.25}
	c := 3

	phase, err := Accumulate(g, c)
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	for i := 0; i < len(g)-1; i++ {
		diff := phase[i+1] - phase[i]
		if diff != g[i+1] {
			t.Errorf("At pair (%d, %d): expected difference %g, got %g", i, i+1, g[i+1], diff)
		}
	}
}

// TestAccumulateSinglePoint verifies the degenerate single-sample case.
func TestAccumulateSinglePoint(t *testing.T) {
	phase, err := Accumulate([]float64{42.0}, 0)
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}
	if len(phase) != 1 || phase[0] != 0 {
		t.Errorf("Expected [0], got %v", phase)
	}
}

// TestAccumulateInvalidInput covers the failure modes: empty series and
// out-of-range center index.
func TestAccumulateInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		g      []float64
		center int
	}{
		{"Empty", nil, 0},
		{"NegativeCenter", []float64{1.0}, -1},
		{"CenterPastEnd", []float64{1.0, 2.0}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Accumulate(tc.g, tc.center); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// TestAccumulatePropagatesNonFinite verifies NaN input is visible in
// the output rather than silently masked.
func TestAccumulatePropagatesNonFinite(t *testing.T) {
	g := []float64{0.1, math.NaN(), 0.2, 0.3}

	phase, err := Accumulate(g, 0)
	if err != nil {
		t.Fatalf("Accumulate failed: %v", err)
	}

	// Everything right of the NaN entry is poisoned by the recursion.
	for i := 1; i < len(phase); i++ {
		if !math.IsNaN(phase[i]) {
			t.Errorf("Expected NaN at index %d, got %g", i, phase[i])
		}
	}
	if phase[0] != 0 {
		t.Errorf("Center value should remain 0, got %g", phase[0])
	}
}

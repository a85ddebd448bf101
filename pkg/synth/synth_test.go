package synth

import (
	"errors"
	"math"
	"testing"
)

// TestGenerateFiniteDifferences verifies the generated values equal the
// analytic finite difference of the phase model across the shear.
func TestGenerateFiniteDifferences(t *testing.T) {
	model := &PolynomialPhase{
		ReferenceFrequency: 2.6e14,
		Coefficients:       []float64{0.5, 1e-14, 1e-28},
	}
	shear := 1.0e12

	m, err := Generate(model, 2.1e14, 3.1e14, shear, 201)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(m.Frequencies) != 201 || len(m.GroupDelayDiff) != 201 {
		t.Fatalf("Expected 201 samples, got %d/%d", len(m.Frequencies), len(m.GroupDelayDiff))
	}
	if m.Shear != shear {
		t.Errorf("Expected shear %g, got %g", shear, m.Shear)
	}
	if m.ReferenceFrequency != model.ReferenceFrequency {
		t.Errorf("Expected reference frequency %g, got %g",
			model.ReferenceFrequency, m.ReferenceFrequency)
	}

	for i, f := range m.Frequencies {
		want := model.Eval(f) - model.Eval(f-shear)
		if math.Abs(m.GroupDelayDiff[i]-want) > 1e-12 {
			t.Errorf("At f=%g: expected difference %g, got %g", f, want, m.GroupDelayDiff[i])
		}
	}
}

// TestGenerateSupportBounds verifies the sampled axis spans exactly
// [fMin, fMax].
func TestGenerateSupportBounds(t *testing.T) {
	model := &PolynomialPhase{ReferenceFrequency: 5.0, Coefficients: []float64{0, 0, 1}}

	m, err := Generate(model, 0.0, 10.0, 0.5, 11)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if m.Frequencies[0] != 0.0 {
		t.Errorf("Expected first sample at 0, got %g", m.Frequencies[0])
	}
	if m.Frequencies[len(m.Frequencies)-1] != 10.0 {
		t.Errorf("Expected last sample at 10, got %g", m.Frequencies[len(m.Frequencies)-1])
	}
}

// TestEvalPolynomial checks the ascending-power coefficient convention.
func TestEvalPolynomial(t *testing.T) {
	model := &PolynomialPhase{
		ReferenceFrequency: 10.0,
		Coefficients:       []float64{1, 2, 3}, // 1 + 2x + 3x^2
	}

	// At f=12, x=2: 1 + 4 + 12 = 17.
	if got := model.Eval(12.0); got != 17.0 {
		t.Errorf("Expected 17, got %g", got)
	}
	// At the reference frequency only the constant term survives.
	if got := model.Eval(10.0); got != 1.0 {
		t.Errorf("Expected 1 at reference frequency, got %g", got)
	}
}

// TestGenerateInvalidParameters covers the rejection cases.
func TestGenerateInvalidParameters(t *testing.T) {
	model := &PolynomialPhase{ReferenceFrequency: 5.0, Coefficients: []float64{0, 0, 1}}

	cases := []struct {
		name       string
		phase      *PolynomialPhase
		fMin, fMax float64
		shear      float64
		samples    int
	}{
		{"NilModel", nil, 0, 10, 1, 11},
		{"EmptyModel", &PolynomialPhase{}, 0, 10, 1, 11},
		{"ZeroShear", model, 0, 10, 0, 11},
		{"OneSample", model, 0, 10, 1, 1},
		{"InvertedBounds", model, 10, 0, 1, 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.phase, tc.fMin, tc.fMax, tc.shear, tc.samples)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

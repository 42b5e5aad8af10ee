package nec

import (
	"math"
	"testing"
)

func TestConductorImpedance(t *testing.T) {
	engine := testEngine()

	z, err := engine.ConductorImpedance("Cu", "#1", 135, "EMT", 3)
	if err != nil {
		t.Fatalf("ConductorImpedance failed: %v", err)
	}
	wantR := 0.154 * 135 / 1000 / 3
	wantX := 0.085 * 135 / 1000 / 3
	if math.Abs(z.R-wantR) > 1e-9 {
		t.Errorf("R = %g, want %g", z.R, wantR)
	}
	if math.Abs(z.X-wantX) > 1e-9 {
		t.Errorf("X = %g, want %g", z.X, wantX)
	}

	// Parallel sets below 1 behave as a single set.
	single, err := engine.ConductorImpedance("Cu", "#1", 135, "EMT", 0)
	if err != nil {
		t.Fatalf("ConductorImpedance failed: %v", err)
	}
	if single.R != 0.154*135/1000 {
		t.Errorf("single-set R = %g", single.R)
	}
}

func TestPercentVoltageDrop(t *testing.T) {
	z := Impedance{R: 0.02, X: 0.008}

	pct := PercentVoltageDrop(100, 480, z, 0.9)
	sinPhi := math.Sqrt(1 - 0.9*0.9)
	want := math.Sqrt(3) * 100 * (0.02*0.9 + 0.008*sinPhi) / 480 * 100
	if math.Abs(pct-want) > 1e-9 {
		t.Errorf("pct = %g, want %g", pct, want)
	}

	if PercentVoltageDrop(100, 0, z, 0.9) != 0 {
		t.Error("non-positive voltage must yield zero drop")
	}

	// Power factor outside [0,1] is clamped, not rejected.
	clamped := PercentVoltageDrop(100, 480, z, 1.7)
	unity := PercentVoltageDrop(100, 480, z, 1.0)
	if clamped != unity {
		t.Errorf("pf clamp: %g != %g", clamped, unity)
	}
}

// TestVoltageDropMonotonicity verifies that for fixed current, voltage,
// length, and installation, percent voltage drop strictly decreases with
// conductor size.
func TestVoltageDropMonotonicity(t *testing.T) {
	engine := testEngine()

	sizes := []string{"#3", "#2", "#1", "1/0", "2/0", "3/0", "4/0", "250"}
	prev := math.Inf(1)
	for _, size := range sizes {
		z, err := engine.ConductorImpedance("Cu", size, 100, "EMT", 1)
		if err != nil {
			t.Fatalf("ConductorImpedance(%s) failed: %v", size, err)
		}
		pct := PercentVoltageDrop(100, 480, z, 0.9)
		if pct >= prev {
			t.Fatalf("drop did not decrease at %s: %g >= %g", size, pct, prev)
		}
		prev = pct
	}
}

package nec

import "testing"

func TestMinimumRacewaySize(t *testing.T) {
	engine := testEngine()

	// Three #1 phase conductors plus a #8 EGC need a 1-1/4 in EMT at 40%
	// fill.
	size, err := engine.MinimumRacewaySize([]ConductorRun{
		{SizeAWG: "#1", Qty: 3},
		{SizeAWG: "#8", Qty: 1},
	}, 0)
	if err != nil {
		t.Fatalf("MinimumRacewaySize failed: %v", err)
	}
	if size != 1.25 {
		t.Errorf("trade size = %g, want 1.25", size)
	}
}

func TestMinimumRacewaySizeNeverFails(t *testing.T) {
	engine := testEngine()

	// A run no raceway can hold still returns the largest trade size; the
	// caller treats that as a possible under-sizing signal.
	size, err := engine.MinimumRacewaySize([]ConductorRun{
		{SizeAWG: "600", Qty: 40},
	}, 0)
	if err != nil {
		t.Fatalf("MinimumRacewaySize failed: %v", err)
	}
	if size != 4.0 {
		t.Errorf("fallback trade size = %g, want 4.0", size)
	}
}

func TestMinimumRacewaySizeUnknownConductor(t *testing.T) {
	engine := testEngine()

	if _, err := engine.MinimumRacewaySize([]ConductorRun{{SizeAWG: "750", Qty: 3}}, 0); err == nil {
		t.Error("expected lookup error for unknown conductor size")
	}
}

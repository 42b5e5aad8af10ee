package nec

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/gridwright/oneline/pkg/tables"
)

func testEngine() *Engine {
	return NewEngine(tables.NewProvider())
}

func floatPtr(v float64) *float64 { return &v }

func TestAmbientCorrectionFactor(t *testing.T) {
	cases := []struct {
		name    string
		column  int
		ambient float64
		rooftop *float64
		want    float64
	}{
		{"baseline 30C", 75, 30, nil, 1.0},
		{"warm 40C at 75", 75, 40, nil, 0.88},
		{"warm 40C at 90", 90, 40, nil, 0.91},
		{"warm 40C at 60", 60, 40, nil, 0.82},
		{"beyond curve", 75, 60, nil, 0.82},
		{"rooftop adder pushes bucket", 75, 30, floatPtr(10), 0.82}, // 30+17=47 -> last step
		{"rooftop above 12in ignored", 75, 30, floatPtr(24), 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AmbientCorrectionFactor(tc.column, tc.ambient, tc.rooftop)
			if got != tc.want {
				t.Errorf("factor = %g, want %g", got, tc.want)
			}
		})
	}
}

func TestBundlingFactor(t *testing.T) {
	cases := map[int]float64{
		1: 1.0, 3: 1.0,
		4: 0.8, 6: 0.8,
		7: 0.7, 9: 0.7,
		10: 0.5, 30: 0.5,
	}
	for ccc, want := range cases {
		if got := BundlingFactor(ccc); got != want {
			t.Errorf("BundlingFactor(%d) = %g, want %g", ccc, got, want)
		}
	}
}

func TestAdjustedAmpacity(t *testing.T) {
	engine := testEngine()

	// #1 Cu THHN at 75C, 30C ambient, 3 CCC, one set: the table value
	// unchanged.
	amps, err := engine.AdjustedAmpacity(AmpacityParams{
		SizeAWG:       "#1",
		Material:      "Cu",
		Insulation:    "THHN",
		TempRatingC:   75,
		CCC:           3,
		TerminalTempC: 75,
		ParallelSets:  1,
	})
	if err != nil {
		t.Fatalf("AdjustedAmpacity failed: %v", err)
	}
	if amps != 130 {
		t.Errorf("unadjusted = %g, want 130", amps)
	}

	// Bundled run: 4-6 CCC applies the 0.8 factor.
	amps, err = engine.AdjustedAmpacity(AmpacityParams{
		SizeAWG:       "#1",
		Material:      "Cu",
		Insulation:    "THHN",
		TempRatingC:   75,
		CCC:           6,
		TerminalTempC: 75,
		ParallelSets:  1,
	})
	if err != nil {
		t.Fatalf("AdjustedAmpacity failed: %v", err)
	}
	if amps != 130*0.8 {
		t.Errorf("bundled = %g, want %g", amps, 130*0.8)
	}

	// Parallel sets scale the result.
	amps, err = engine.AdjustedAmpacity(AmpacityParams{
		SizeAWG:       "#1",
		Material:      "Cu",
		Insulation:    "THHN",
		TempRatingC:   75,
		CCC:           3,
		TerminalTempC: 75,
		ParallelSets:  3,
	})
	if err != nil {
		t.Fatalf("AdjustedAmpacity failed: %v", err)
	}
	if amps != 390 {
		t.Errorf("3 parallel sets = %g, want 390", amps)
	}

	// A 90C conductor on 75C terminals caps at the 75C column value.
	amps, err = engine.AdjustedAmpacity(AmpacityParams{
		SizeAWG:       "#1",
		Material:      "Cu",
		Insulation:    "THHN",
		TempRatingC:   90,
		CCC:           3,
		TerminalTempC: 75,
		ParallelSets:  1,
	})
	if err != nil {
		t.Fatalf("AdjustedAmpacity failed: %v", err)
	}
	if amps != 130 {
		t.Errorf("terminal-capped = %g, want 130", amps)
	}
}

// Sizes with entries in every Cu column, smallest to largest.
var cuSizes = []string{
	"#14", "#12", "#10", "#8", "#6", "#4", "#3", "#2", "#1",
	"1/0", "2/0", "3/0", "4/0", "250", "300", "350", "400", "500", "600",
}

// TestAmpacityMonotonicity verifies that for any fixed derating
// configuration, adjusted ampacity strictly increases with conductor size.
func TestAmpacityMonotonicity(t *testing.T) {
	engine := testEngine()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("adjusted ampacity increases with size", prop.ForAll(
		func(tempIdx int, ambient int, ccc int, sets int) bool {
			tempC := []int{60, 75, 90}[tempIdx]
			prev := -1.0
			for _, size := range cuSizes {
				ambientC := float64(ambient)
				amps, err := engine.AdjustedAmpacity(AmpacityParams{
					SizeAWG:       size,
					Material:      "Cu",
					Insulation:    "THHN",
					TempRatingC:   tempC,
					AmbientC:      &ambientC,
					CCC:           ccc,
					TerminalTempC: tempC,
					ParallelSets:  sets,
				})
				if err != nil {
					return false
				}
				if amps <= prev {
					return false
				}
				prev = amps
			}
			return true
		},
		gen.IntRange(0, 2),
		gen.IntRange(20, 55),
		gen.IntRange(1, 12),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t)
}

package analysis

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNormalizeFillsDefaults verifies zero-valued settings pick up the
// documented defaults while explicit values survive.
func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Config{PowerFactor: 0.85}.Normalize()

	if cfg.PowerFactor != 0.85 {
		t.Errorf("pf = %g, want 0.85", cfg.PowerFactor)
	}
	defaults := DefaultConfig()
	if cfg.BranchVDLimitPct != defaults.BranchVDLimitPct {
		t.Errorf("branch limit = %g, want %g", cfg.BranchVDLimitPct, defaults.BranchVDLimitPct)
	}
	if cfg.FillFraction != defaults.FillFraction {
		t.Errorf("fill fraction = %g, want %g", cfg.FillFraction, defaults.FillFraction)
	}
}

// TestValidateRejectsBadSettings verifies out-of-range values fail.
func TestValidateRejectsBadSettings(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := DefaultConfig()
	bad.PowerFactor = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("pf above 1 should fail")
	}

	bad = DefaultConfig()
	bad.TotalVDLimitPct = -5
	if err := bad.Validate(); err == nil {
		t.Error("negative drop limit should fail")
	}
}

// TestLoadConfig verifies YAML settings load, normalize, and validate.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	doc := "pf: 0.85\nvd_total_pct: 4\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PowerFactor != 0.85 {
		t.Errorf("pf = %g, want 0.85", cfg.PowerFactor)
	}
	if cfg.TotalVDLimitPct != 4 {
		t.Errorf("total limit = %g, want 4", cfg.TotalVDLimitPct)
	}
	if cfg.FeederVDLimitPct != 3 {
		t.Errorf("feeder limit should default to 3, got %g", cfg.FeederVDLimitPct)
	}
}

// TestLoadConfigRejectsInvalid verifies a parseable but out-of-range file
// is refused.
func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	if err := os.WriteFile(path, []byte("pf: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("pf of 7 should fail validation")
	}
}

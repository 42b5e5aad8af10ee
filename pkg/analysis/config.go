package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridwright/oneline/pkg/validation"
)

// Config carries the tunable analysis settings. Zero values mean "use the
// default"; Normalize fills them in.
type Config struct {
	// PowerFactor is the assumed load power factor for voltage-drop
	// calculations.
	PowerFactor float64 `yaml:"pf" json:"pf"`
	// BranchVDLimitPct / FeederVDLimitPct bound per-run voltage drop.
	BranchVDLimitPct float64 `yaml:"vd_branch_pct" json:"vd_branch_pct"`
	FeederVDLimitPct float64 `yaml:"vd_feeder_pct" json:"vd_feeder_pct"`
	// TotalVDLimitPct bounds the cumulative drop from the service to any
	// bus.
	TotalVDLimitPct float64 `yaml:"vd_total_pct" json:"vd_total_pct"`
	// FillFraction is the usable share of raceway cross-section.
	FillFraction float64 `yaml:"fill_fraction" json:"fill_fraction"`
}

// DefaultConfig returns the standard analysis settings.
func DefaultConfig() Config {
	return Config{
		PowerFactor:      0.9,
		BranchVDLimitPct: 3.0,
		FeederVDLimitPct: 3.0,
		TotalVDLimitPct:  5.0,
		FillFraction:     0.4,
	}
}

// Normalize fills zero-valued fields from DefaultConfig.
func (c Config) Normalize() Config {
	defaults := DefaultConfig()
	if c.PowerFactor == 0 {
		c.PowerFactor = defaults.PowerFactor
	}
	if c.BranchVDLimitPct == 0 {
		c.BranchVDLimitPct = defaults.BranchVDLimitPct
	}
	if c.FeederVDLimitPct == 0 {
		c.FeederVDLimitPct = defaults.FeederVDLimitPct
	}
	if c.TotalVDLimitPct == 0 {
		c.TotalVDLimitPct = defaults.TotalVDLimitPct
	}
	if c.FillFraction == 0 {
		c.FillFraction = defaults.FillFraction
	}
	return c
}

// Validate checks that the settings are physically meaningful.
func (c Config) Validate() error {
	return validation.NewConfigValidator("analysis.Config").
		RangeFloat("pf", c.PowerFactor, 0.1, 1.0).
		PositiveFloat("vd_branch_pct", c.BranchVDLimitPct).
		PositiveFloat("vd_feeder_pct", c.FeederVDLimitPct).
		PositiveFloat("vd_total_pct", c.TotalVDLimitPct).
		RangeFloat("fill_fraction", c.FillFraction, 0.1, 1.0).
		Err()
}

// LoadConfig reads analysis settings from a YAML file, normalizes, and
// validates them.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

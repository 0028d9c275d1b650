package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LyesArab/ProcessMining/internal/eventlog"
	"github.com/LyesArab/ProcessMining/internal/units"
)

// PipelineConfig holds the curation pipeline parameters. Fields are pointers
// so a partial JSON file only overrides what it names; the Get* methods
// supply defaults for everything else.
type PipelineConfig struct {
	// Segmentation params
	CaseStrategy      *string  `json:"case_strategy,omitempty"`      // "daily" or "session"
	SessionGapSeconds *float64 `json:"session_gap_seconds,omitempty"`
	SessionLabel      *string  `json:"session_label,omitempty"` // "event-date" or "session-start-date"

	// Noise filter params
	NoiseThresholdSeconds *float64 `json:"noise_threshold_seconds,omitempty"`

	// Analyzer params
	VariantCoverageTarget *float64  `json:"variant_coverage_target,omitempty"`
	DurationPercentiles   []float64 `json:"duration_percentiles,omitempty"`
	DurationUnits         *string   `json:"duration_units,omitempty"`

	// Timezone used when parsing raw reading timestamps
	Timezone *string `json:"timezone,omitempty"`
}

// Default returns a PipelineConfig with all fields unset, so every Get*
// accessor reports its built-in default.
func Default() *PipelineConfig {
	return &PipelineConfig{}
}

// Load reads a PipelineConfig from a JSON file. The file must have a .json
// extension and be under the max file size. Fields omitted from the JSON
// retain their defaults, so partial configs are safe.
func Load(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration values. Structural misconfiguration
// (unknown strategy, negative thresholds, out-of-range targets) fails here,
// before any data is processed.
func (c *PipelineConfig) Validate() error {
	if c.CaseStrategy != nil {
		switch *c.CaseStrategy {
		case eventlog.StrategyDaily, eventlog.StrategySession:
		default:
			return fmt.Errorf("unknown case_strategy %q (valid: %s, %s)",
				*c.CaseStrategy, eventlog.StrategyDaily, eventlog.StrategySession)
		}
	}

	if c.SessionLabel != nil {
		switch *c.SessionLabel {
		case eventlog.LabelEventDate, eventlog.LabelSessionStart:
		default:
			return fmt.Errorf("unknown session_label %q (valid: %s, %s)",
				*c.SessionLabel, eventlog.LabelEventDate, eventlog.LabelSessionStart)
		}
	}

	if c.NoiseThresholdSeconds != nil && *c.NoiseThresholdSeconds < 0 {
		return fmt.Errorf("noise_threshold_seconds must be non-negative, got %f", *c.NoiseThresholdSeconds)
	}

	if c.SessionGapSeconds != nil && *c.SessionGapSeconds < 0 {
		return fmt.Errorf("session_gap_seconds must be non-negative, got %f", *c.SessionGapSeconds)
	}

	if c.VariantCoverageTarget != nil {
		if *c.VariantCoverageTarget <= 0 || *c.VariantCoverageTarget > 1 {
			return fmt.Errorf("variant_coverage_target must be in (0,1], got %f", *c.VariantCoverageTarget)
		}
	}

	for _, p := range c.DurationPercentiles {
		if p <= 0 || p >= 100 {
			return fmt.Errorf("duration percentile must be in (0,100), got %f", p)
		}
	}

	if c.DurationUnits != nil && !units.IsValid(*c.DurationUnits) {
		return fmt.Errorf("invalid duration_units %q (valid: %s)", *c.DurationUnits, units.GetValidUnitsString())
	}

	if c.Timezone != nil {
		if err := units.ValidateTimezone(*c.Timezone); err != nil {
			return err
		}
	}

	return nil
}

// GetCaseStrategy returns the case_strategy value or the default.
func (c *PipelineConfig) GetCaseStrategy() string {
	if c.CaseStrategy == nil {
		return eventlog.StrategyDaily
	}
	return *c.CaseStrategy
}

// GetSessionGapSeconds returns the session_gap_seconds value or the default.
func (c *PipelineConfig) GetSessionGapSeconds() float64 {
	if c.SessionGapSeconds == nil {
		return 7200 // 2 hours, likely sleep periods
	}
	return *c.SessionGapSeconds
}

// GetSessionLabel returns the session_label value or the default.
func (c *PipelineConfig) GetSessionLabel() string {
	if c.SessionLabel == nil {
		return eventlog.LabelEventDate
	}
	return *c.SessionLabel
}

// GetNoiseThresholdSeconds returns the noise_threshold_seconds value or the default.
func (c *PipelineConfig) GetNoiseThresholdSeconds() float64 {
	if c.NoiseThresholdSeconds == nil {
		return 1.0
	}
	return *c.NoiseThresholdSeconds
}

// GetVariantCoverageTarget returns the variant_coverage_target value or the default.
func (c *PipelineConfig) GetVariantCoverageTarget() float64 {
	if c.VariantCoverageTarget == nil {
		return 0.8
	}
	return *c.VariantCoverageTarget
}

// GetDurationPercentiles returns the duration_percentiles value or the default.
func (c *PipelineConfig) GetDurationPercentiles() []float64 {
	if len(c.DurationPercentiles) == 0 {
		return []float64{25, 50, 75, 90, 95, 99}
	}
	return c.DurationPercentiles
}

// GetDurationUnits returns the duration_units value or the default.
func (c *PipelineConfig) GetDurationUnits() string {
	if c.DurationUnits == nil {
		return units.Hours
	}
	return *c.DurationUnits
}

// GetTimezone returns the timezone value or the default.
func (c *PipelineConfig) GetTimezone() string {
	if c.Timezone == nil {
		return "UTC"
	}
	return *c.Timezone
}

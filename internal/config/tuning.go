package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/mathiascbaur/vehicle-analytics/internal/trace"
)

// TuningConfig represents the tuning parameters for trace maintenance, area
// synthesis and matching. Fields omitted from the JSON file retain their
// default values, so partial configs are safe. Angles are given in degrees in
// the file and converted to radians by the accessors.
type TuningConfig struct {
	// Trace admission params
	TraceMinDist            *float64 `json:"trace_min_dist,omitempty"`
	TraceMaxDist            *float64 `json:"trace_max_dist,omitempty"`
	TraceMaxOffset          *float64 `json:"trace_max_offset,omitempty"`
	TraceMaxHeadingDeltaDeg *float64 `json:"trace_max_heading_delta_deg,omitempty"`
	TraceMaxPoints          *int     `json:"trace_max_points,omitempty"`
	TraceMaxLength          *float64 `json:"trace_max_length,omitempty"`

	// Matching params
	MatchMaxOffset          *float64 `json:"match_max_offset,omitempty"`
	MatchMaxHeadingDeltaDeg *float64 `json:"match_max_heading_delta_deg,omitempty"`
	MatchDistSmooth         *float64 `json:"match_dist_smooth,omitempty"`
	MatchMinQuality         *float64 `json:"match_min_quality,omitempty"`
	QualityDelta            *float64 `json:"quality_delta,omitempty"`

	// Area params
	AreaWidthOverflow *float64 `json:"area_width_overflow,omitempty"`

	// Evaluation params
	MinEvaluationTraceLength *float64 `json:"min_evaluation_trace_length,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file is
// validated to ensure it has a .json extension and is under the max file
// size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	positive := map[string]*float64{
		"trace_min_dist":              c.TraceMinDist,
		"trace_max_dist":              c.TraceMaxDist,
		"trace_max_offset":            c.TraceMaxOffset,
		"trace_max_length":            c.TraceMaxLength,
		"match_max_offset":            c.MatchMaxOffset,
		"match_dist_smooth":           c.MatchDistSmooth,
		"min_evaluation_trace_length": c.MinEvaluationTraceLength,
	}
	for name, v := range positive {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %f", name, *v)
		}
	}

	if c.TraceMinDist != nil && c.TraceMaxDist != nil && *c.TraceMinDist >= *c.TraceMaxDist {
		return fmt.Errorf("trace_min_dist (%f) must be below trace_max_dist (%f)", *c.TraceMinDist, *c.TraceMaxDist)
	}

	if c.TraceMaxPoints != nil && *c.TraceMaxPoints < 2 {
		return fmt.Errorf("trace_max_points must be at least 2, got %d", *c.TraceMaxPoints)
	}

	if c.MatchMinQuality != nil {
		if *c.MatchMinQuality < 0 || *c.MatchMinQuality > 1 {
			return fmt.Errorf("match_min_quality must be between 0 and 1, got %f", *c.MatchMinQuality)
		}
	}

	headings := map[string]*float64{
		"trace_max_heading_delta_deg": c.TraceMaxHeadingDeltaDeg,
		"match_max_heading_delta_deg": c.MatchMaxHeadingDeltaDeg,
	}
	for name, v := range headings {
		if v != nil && (*v <= 0 || *v > 180) {
			return fmt.Errorf("%s must be in (0, 180], got %f", name, *v)
		}
	}

	return nil
}

// GetTraceMinDist returns the trace_min_dist value or the default.
func (c *TuningConfig) GetTraceMinDist() float64 {
	if c.TraceMinDist == nil {
		return trace.DefaultTraceMinDist
	}
	return *c.TraceMinDist
}

// GetTraceMaxDist returns the trace_max_dist value or the default.
func (c *TuningConfig) GetTraceMaxDist() float64 {
	if c.TraceMaxDist == nil {
		return trace.DefaultTraceMaxDist
	}
	return *c.TraceMaxDist
}

// GetTraceMaxOffset returns the trace_max_offset value or the default.
func (c *TuningConfig) GetTraceMaxOffset() float64 {
	if c.TraceMaxOffset == nil {
		return trace.DefaultTraceMaxOffset
	}
	return *c.TraceMaxOffset
}

// GetTraceMaxHeadingDelta returns the trace heading delta in radians.
func (c *TuningConfig) GetTraceMaxHeadingDelta() float64 {
	if c.TraceMaxHeadingDeltaDeg == nil {
		return trace.DefaultTraceMaxHeadingDelta
	}
	return *c.TraceMaxHeadingDeltaDeg * math.Pi / 180
}

// GetTraceMaxPoints returns the trace_max_points value or the default.
func (c *TuningConfig) GetTraceMaxPoints() int {
	if c.TraceMaxPoints == nil {
		return trace.DefaultTraceMaxPoints
	}
	return *c.TraceMaxPoints
}

// GetTraceMaxLength returns the trace_max_length value or the default.
func (c *TuningConfig) GetTraceMaxLength() float64 {
	if c.TraceMaxLength == nil {
		return trace.DefaultTraceMaxLength
	}
	return *c.TraceMaxLength
}

// GetMatchMaxOffset returns the match_max_offset value or the default.
func (c *TuningConfig) GetMatchMaxOffset() float64 {
	if c.MatchMaxOffset == nil {
		return trace.DefaultMatchMaxOffset
	}
	return *c.MatchMaxOffset
}

// GetMatchMaxHeadingDelta returns the match heading delta in radians.
func (c *TuningConfig) GetMatchMaxHeadingDelta() float64 {
	if c.MatchMaxHeadingDeltaDeg == nil {
		return trace.DefaultMatchMaxHeadingDelta
	}
	return *c.MatchMaxHeadingDeltaDeg * math.Pi / 180
}

// GetMatchDistSmooth returns the match_dist_smooth value or the default.
func (c *TuningConfig) GetMatchDistSmooth() float64 {
	if c.MatchDistSmooth == nil {
		return trace.DefaultMatchDistSmooth
	}
	return *c.MatchDistSmooth
}

// GetMatchMinQuality returns the match_min_quality value or the default.
func (c *TuningConfig) GetMatchMinQuality() float64 {
	if c.MatchMinQuality == nil {
		return trace.DefaultMatchMinQuality
	}
	return *c.MatchMinQuality
}

// GetQualityDelta returns the quality_delta value or the default.
func (c *TuningConfig) GetQualityDelta() float64 {
	if c.QualityDelta == nil {
		return trace.DefaultQualityDelta
	}
	return *c.QualityDelta
}

// GetAreaWidthOverflow returns the area_width_overflow value or the default.
func (c *TuningConfig) GetAreaWidthOverflow() float64 {
	if c.AreaWidthOverflow == nil {
		return trace.DefaultAreaWidthOverflow
	}
	return *c.AreaWidthOverflow
}

// GetMinEvaluationTraceLength returns the min_evaluation_trace_length value
// or the default.
func (c *TuningConfig) GetMinEvaluationTraceLength() float64 {
	if c.MinEvaluationTraceLength == nil {
		return trace.DefaultMinEvaluationTraceLength
	}
	return *c.MinEvaluationTraceLength
}

// ToTraceConfig materializes the tuning values into a trace configuration.
func (c *TuningConfig) ToTraceConfig() trace.TraceConfig {
	return trace.TraceConfig{
		TraceMinDist:             c.GetTraceMinDist(),
		TraceMaxDist:             c.GetTraceMaxDist(),
		TraceMaxOffset:           c.GetTraceMaxOffset(),
		TraceMaxHeadingDelta:     c.GetTraceMaxHeadingDelta(),
		TraceMaxPoints:           c.GetTraceMaxPoints(),
		TraceMaxLength:           c.GetTraceMaxLength(),
		MatchMaxOffset:           c.GetMatchMaxOffset(),
		MatchMaxHeadingDelta:     c.GetMatchMaxHeadingDelta(),
		MatchDistSmooth:          c.GetMatchDistSmooth(),
		MatchMinQuality:          c.GetMatchMinQuality(),
		QualityDelta:             c.GetQualityDelta(),
		AreaWidthOverflow:        c.GetAreaWidthOverflow(),
		MinEvaluationTraceLength: c.GetMinEvaluationTraceLength(),
	}
}

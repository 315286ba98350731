package trace

import "math"

// Default tunables for trace maintenance and matching. All distances are in
// metres, all angles in radians.
const (
	// DefaultTraceMinDist is the minimum driven distance between two trace points.
	DefaultTraceMinDist = 10.0
	// DefaultTraceMaxDist is the maximum driven distance between two trace points.
	DefaultTraceMaxDist = 200.0
	// DefaultTraceMaxOffset is the maximum deviation from the motion vector of the last trace point.
	DefaultTraceMaxOffset = 10.0
	// DefaultTraceMaxHeadingDelta is the maximum heading delta before a point is admitted.
	// Should be smaller than DefaultMatchMaxHeadingDelta.
	DefaultTraceMaxHeadingDelta = 45.0 * math.Pi / 180.0
	// DefaultTraceMaxPoints is the maximum number of stored points in one trace.
	DefaultTraceMaxPoints = 16
	// DefaultTraceMaxLength is the maximum trace length.
	DefaultTraceMaxLength = 2500.0
	// DefaultMatchMaxOffset is the maximum offset for trace matching.
	DefaultMatchMaxOffset = 20.0
	// DefaultMatchMaxHeadingDelta is the maximum heading delta for trace matching.
	// Should be greater than DefaultTraceMaxHeadingDelta.
	DefaultMatchMaxHeadingDelta = 60.0 * math.Pi / 180.0
	// DefaultMatchDistSmooth is the maximum smoothing distance for match quality.
	DefaultMatchDistSmooth = 20.0
	// DefaultMatchMinQuality is the minimum quality that counts as a match.
	DefaultMatchMinQuality = 0.8
	// DefaultAreaWidthOverflow is the overflow on either side of an auto-sized rectangular area.
	DefaultAreaWidthOverflow = 30.0
	// DefaultQualityDelta is the minimum delta for two qualities to compare as different.
	DefaultQualityDelta = 0.01
	// DefaultMinEvaluationTraceLength is the minimum trace length kept for evaluation,
	// padded with evicted points when the live trace is shorter.
	DefaultMinEvaluationTraceLength = 1000.0

	// MaxValue is the sentinel for an arbitrarily large distance.
	MaxValue = 9999.0
)

// TraceConfig holds the tunables for trace maintenance, area synthesis and
// matching.
type TraceConfig struct {
	TraceMinDist             float64 // Minimum driven distance between two trace points (m)
	TraceMaxDist             float64 // Maximum driven distance between two trace points (m)
	TraceMaxOffset           float64 // Maximum deviation from the last motion vector (m)
	TraceMaxHeadingDelta     float64 // Maximum heading delta before admission (rad)
	TraceMaxPoints           int     // Maximum number of stored trace points
	TraceMaxLength           float64 // Maximum trace length (m)
	MatchMaxOffset           float64 // Maximum offset for trace matching (m)
	MatchMaxHeadingDelta     float64 // Maximum heading delta for trace matching (rad)
	MatchDistSmooth          float64 // Maximum smoothing distance for match quality (m)
	MatchMinQuality          float64 // Minimum quality that counts as a match
	AreaWidthOverflow        float64 // Overflow either side of an auto-sized rectangle (m)
	QualityDelta             float64 // Minimum quality delta for "different"
	MinEvaluationTraceLength float64 // Minimum trace length kept for evaluation (m)
}

// DefaultTraceConfig returns the default trace configuration.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		TraceMinDist:             DefaultTraceMinDist,
		TraceMaxDist:             DefaultTraceMaxDist,
		TraceMaxOffset:           DefaultTraceMaxOffset,
		TraceMaxHeadingDelta:     DefaultTraceMaxHeadingDelta,
		TraceMaxPoints:           DefaultTraceMaxPoints,
		TraceMaxLength:           DefaultTraceMaxLength,
		MatchMaxOffset:           DefaultMatchMaxOffset,
		MatchMaxHeadingDelta:     DefaultMatchMaxHeadingDelta,
		MatchDistSmooth:          DefaultMatchDistSmooth,
		MatchMinQuality:          DefaultMatchMinQuality,
		AreaWidthOverflow:        DefaultAreaWidthOverflow,
		QualityDelta:             DefaultQualityDelta,
		MinEvaluationTraceLength: DefaultMinEvaluationTraceLength,
	}
}

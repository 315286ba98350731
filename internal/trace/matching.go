package trace

import (
	"math"

	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
)

// MatchToPosition computes how well a candidate position and heading follow
// this trace. The position must lie within the given forwarding area; the
// heading uses the same counterclockwise-from-+Y convention as the trace. When a
// match from a previous tick is passed as prior, its quality smooths the new
// quality and the reported match distance never exceeds the prior one, so the
// distance is monotonically non-increasing for a vehicle that keeps matching.
//
// The returned TraceMatch carries the match quality in [0, 1], the distance
// from the position along the trace back to the best matching point, and a
// status tag explaining failed matches.
func (t *Trace) MatchToPosition(position geo.Vector, heading float64, area geo.Area, prior *TraceMatch) TraceMatch {
	traceMatch := NewTraceMatch()

	// No matching possible with fewer than 2 points.
	if len(t.points) < 2 {
		return traceMatch
	}

	if !area.Contains(position.X, position.Y) {
		traceMatch.Status = StatusNoMatchRelevanceArea
		return traceMatch
	}

	directionToRefPos := t.direction(position, t.referencePosition)
	curHeading := t.direction(t.points[1].Position, t.points[0].Position)

	// Rough preselection: a candidate heading away from the reference
	// position cannot match.
	if directionToRefPos > curHeading+math.Pi/2 || directionToRefPos < curHeading-math.Pi/2 {
		traceMatch.Status = StatusNoMatchHeading
		return traceMatch
	}

	oldMatchDistance := MaxValue
	oldMatchQuality := 0.0
	if prior != nil {
		oldMatchDistance = prior.Distance
		oldMatchQuality = prior.Quality
	}

	// Best match so far over the segment sweep.
	var (
		bmQuality float64
		bmOffset  = MaxValue
		bmRawDist float64
		bmPoint   geo.Vector
		rawDist   float64
	)

	// Sweep consecutive point pairs, newest first, and keep the pair with the
	// significantly best quality.
	for i := 0; i+1 < len(t.points); i++ {
		rp1 := t.points[i].Position
		rp2 := t.points[i+1].Position

		// Perpendicular distance between the position and the infinite line
		// through rp1 and rp2.
		offset, err := edgeDistance(rp1, rp2, position)
		if err != nil {
			// Zero-length edge, nothing to match against.
			continue
		}

		currentTraceDirection := t.direction(rp2, rp1)
		hdDelta := math.Abs(heading - currentTraceDirection)

		if offset <= t.cfg.MatchMaxOffset && hdDelta <= t.cfg.MatchMaxHeadingDelta {
			var quality float64
			if prior != nil {
				quality = t.combinedMatchQuality(offset, hdDelta, oldMatchQuality, oldMatchDistance)
			} else {
				quality = t.matchQuality(offset, hdDelta)
			}

			if quality > bmQuality+t.cfg.QualityDelta {
				bmQuality = quality
				bmOffset = offset
				bmRawDist = rawDist
				bmPoint = rp1
			}
		}

		rawDist += geo.Distance(rp1, rp2)
	}

	if bmOffset >= MaxValue {
		traceMatch.Status = StatusNoMatchTrace
		return traceMatch
	}

	matchDist := geo.Distance(position, bmPoint) + bmRawDist
	matchQuality := bmQuality

	// Honor a smaller previous match distance so the reported distance
	// never increases while the vehicle keeps matching.
	if oldMatchDistance < matchDist {
		matchDist = oldMatchDistance
		matchQuality = oldMatchQuality
	}

	return TraceMatch{
		Quality:  matchQuality,
		Distance: matchDist,
		Status:   StatusMatch,
	}
}

// matchQuality scores a single offset / heading-delta pair in [0, 1].
func (t *Trace) matchQuality(offset, hdDelta float64) float64 {
	return 0.7*(1-offset/t.cfg.MatchMaxOffset) + 0.3*(1-hdDelta/t.cfg.MatchMaxHeadingDelta)
}

// combinedMatchQuality smooths the single match quality against the previous
// one; the closer the previous match, the more weight it keeps.
func (t *Trace) combinedMatchQuality(offset, hdDelta, oldQuality, oldEgoDist float64) float64 {
	smq := t.matchQuality(offset, hdDelta)
	sf := math.Max(0, 1-oldEgoDist/t.cfg.MatchDistSmooth)
	return sf*oldQuality + (1-sf)*smq
}

// MatchToOtherTrace computes a quality in [0, 1] describing how well the
// other trace runs along this one. The other trace's points are translated so
// both reference positions coincide before matching.
func (t *Trace) MatchToOtherTrace(other *Trace) float64 {
	xoff := t.referencePosition.X - other.ReferencePosition().X
	yoff := t.referencePosition.Y - other.ReferencePosition().Y
	return t.matchToOtherTrace(other, xoff, yoff)
}

// matchToOtherTrace walks the other trace's translated points along this
// trace's edges. The inner index deliberately does not reset per edge, so
// points are consumed in order along the trace.
func (t *Trace) matchToOtherTrace(other *Trace, xoff, yoff float64) float64 {
	rps1 := t.points
	rps2 := other.Points()
	if len(rps2) == 0 {
		return 0
	}

	var (
		totalOffsets float64
		totalMatches int
	)

	i2 := 0
	for i := 0; i+1 < len(rps1); i++ {
		rp1 := rps1[i].Position
		rp2 := rps1[i+1].Position

		for i2 < len(rps2) {
			tmp := geo.Vector{X: rps2[i2].Position.X + xoff, Y: rps2[i2].Position.Y + yoff}
			offset, err := edgeDistance(rp1, rp2, tmp)
			if err != nil {
				break
			}
			if offset >= t.cfg.MatchMaxOffset {
				// Try to match the point against the next edge.
				break
			}
			totalOffsets += offset
			totalMatches++
			i2++
		}
	}

	if totalMatches > 0 {
		avgOffset := totalOffsets / float64(totalMatches)
		return float64(totalMatches) / float64(len(rps2)) * (1 - avgOffset/t.cfg.MatchMaxOffset)
	}
	return 0
}

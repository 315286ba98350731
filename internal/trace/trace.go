// Package trace maintains bounded polyline summaries of vehicle paths and
// decides how well candidate positions follow them. A trace admits points
// from the stream of tick positions only when the driving geometry warrants
// it, synthesizes circular and rectangular forwarding areas along its
// approach direction, and scores position/heading candidates against the
// retained polyline.
package trace

import (
	"fmt"
	"math"
	"time"

	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
)

// TracePoint is a single admitted point of a vehicle trace.
type TracePoint struct {
	Position  geo.Vector
	Time      time.Time
	Speed     float64
	VehicleID string
}

// Trace is a bounded, self-pruning polyline summary of a vehicle's recent
// path. Points are kept newest first: index 0 is the most recent admitted
// point. A trace offers forwarding-area synthesis along its approach
// direction and quality matching between the trace and candidate positions.
//
// A trace is owned by its host vehicle and is not safe for concurrent use.
type Trace struct {
	cfg TraceConfig

	// points holds the admitted trace points, newest first.
	points []TracePoint

	// virtualEvaluationPoints keeps points evicted from the live window while
	// the live trace is shorter than MinEvaluationTraceLength, newest first.
	virtualEvaluationPoints []TracePoint

	referencePosition geo.Vector
	relevanceArea     geo.Area
	currentPos        *geo.Vector

	// odometer accumulates driven distance since the last admission.
	odometer float64

	// alphaMin/alphaMax bound the angular tube of headings from the newest
	// trace point that do not require a new point. Admission resets the tube
	// fully open; it only narrows between admissions.
	alphaMin float64
	alphaMax float64

	totalPoints int
	creation    time.Time
	vehicleID   string

	now func() time.Time
}

// New creates a trace anchored at refPos and seeds the first trace point
// there. initTime is recorded as the creation time of the trace, initSpeed as
// the speed at the seed point.
func New(refPos geo.Vector, initTime time.Time, initSpeed float64, vehicleID string) *Trace {
	t := &Trace{
		cfg:               DefaultTraceConfig(),
		referencePosition: refPos,
		creation:          initTime,
		vehicleID:         vehicleID,
		now:               time.Now,
	}
	t.addTracePoint(refPos, initTime, initSpeed)
	return t
}

// OverrideMaxTraceLength changes the maximum number of points and/or the
// maximum trace length for this trace. Values <= 0 leave the current setting.
func (t *Trace) OverrideMaxTraceLength(maxPoints int, maxLength float64) {
	if maxPoints > 0 {
		t.cfg.TraceMaxPoints = maxPoints
	}
	if maxLength > 0 {
		t.cfg.TraceMaxLength = maxLength
	}
}

// Config returns the trace's tunables.
func (t *Trace) Config() TraceConfig {
	return t.cfg
}

// SetConfig replaces the trace's tunables.
func (t *Trace) SetConfig(cfg TraceConfig) {
	t.cfg = cfg
}

// addTracePoint inserts a new point at the head of the list, evicting the
// oldest point when the trace is full. Evicted points are retained as virtual
// evaluation points while the live trace is shorter than
// MinEvaluationTraceLength. Admission resets the odometer and opens the
// angular tube.
func (t *Trace) addTracePoint(pos geo.Vector, at time.Time, speed float64) {
	if len(t.points) >= t.cfg.TraceMaxPoints {
		evicted := t.points[len(t.points)-1]
		if t.TraceLength() < t.cfg.MinEvaluationTraceLength {
			t.virtualEvaluationPoints = append([]TracePoint{evicted}, t.virtualEvaluationPoints...)
		}
		t.points = t.points[:len(t.points)-1]
		t.totalPoints--
	}

	t.points = append([]TracePoint{{
		Position:  pos,
		Time:      at,
		Speed:     speed,
		VehicleID: t.vehicleID,
	}}, t.points...)

	t.odometer = 0
	t.alphaMin = 0
	t.alphaMax = 2 * math.Pi
	t.totalPoints++
}

// ForcePointCreation admits a trace point at pos without considering the
// preconditions for regular point creation.
func (t *Trace) ForcePointCreation(pos geo.Vector, speed float64) {
	t.addTracePoint(pos, t.now(), speed)
}

// ProcessNewPosition feeds the vehicle's current position into the trace.
// It is expected to be called on every simulation tick and admits at most one
// trace point per call: the position from the previous call becomes a trace
// point when the driven distance, heading delta or angular tube warrant it.
func (t *Trace) ProcessNewPosition(newPos geo.Vector, speed float64) {
	if t.currentPos == nil {
		t.currentPos = &newPos
		return
	}
	cur := *t.currentPos

	edge := geo.Distance(cur, newPos)

	if len(t.points) == 0 {
		// Nothing in the buffer: the previous position becomes the first point.
		t.addTracePoint(cur, t.now(), speed)
	} else if t.odometer >= t.cfg.TraceMinDist {
		last := t.points[0].Position
		dir := t.direction(last, newPos)
		newPosHeading := t.direction(cur, newPos)

		switch {
		case t.odometer+edge >= t.cfg.TraceMaxDist:
			// Driven distance since the last trace point exceeds the maximum.
			t.addTracePoint(cur, t.now(), speed)
		case math.Abs(dir-newPosHeading) > t.cfg.TraceMaxHeadingDelta:
			// The driving heading diverges from the edge heading.
			t.addTracePoint(cur, t.now(), speed)
		case dir < t.alphaMin || dir > t.alphaMax:
			// The new position left the angular tube of the last point.
			t.addTracePoint(cur, t.now(), speed)
		}
	}

	// The head point and odometer may have changed above.
	t.odometer += edge
	last := t.points[0].Position
	dist := geo.Distance(last, newPos)
	dir := t.direction(last, newPos)

	// Narrow the angular tube. The guard keeps asin in domain; below it the
	// tube is unconstrained anyway.
	if dist > t.cfg.MatchMaxOffset {
		beta := math.Asin(t.cfg.TraceMaxOffset / dist)
		if betaMin := dir - beta; betaMin > t.alphaMin {
			t.alphaMin = betaMin
		}
		if betaMax := dir + beta; betaMax < t.alphaMax {
			t.alphaMax = betaMax
		}
	}

	t.currentPos = &newPos
}

// ProcessNewPositionWithoutSpeed is ProcessNewPosition for hosts that do not
// track speed.
func (t *Trace) ProcessNewPositionWithoutSpeed(newPos geo.Vector) {
	t.ProcessNewPosition(newPos, 0)
}

// direction returns the direction from pos1 to pos2 as an angle from the
// positive Y axis in [0, 2π). Coinciding positions map to 0.
func (t *Trace) direction(pos1, pos2 geo.Vector) float64 {
	return geo.AngleFromYAxis(pos2.Sub(pos1))
}

// CurrentTraceHeading returns the heading of the newest trace edge, the
// direction from the second most recent point to the most recent one.
// It fails with ErrNotEnoughTracePoints when the trace has fewer than two
// points.
func (t *Trace) CurrentTraceHeading() (float64, error) {
	if len(t.points) < 2 {
		return 0, fmt.Errorf("%w: have %d", ErrNotEnoughTracePoints, len(t.points))
	}
	return t.direction(t.points[1].Position, t.points[0].Position), nil
}

// edgeDistance returns the perpendicular distance from p to the infinite line
// through e1 and e2 (Hesse normal form, with a vertical-line fallback).
// It fails with ErrDegenerateEdge when e1 and e2 coincide.
func edgeDistance(e1, e2, p geo.Vector) (float64, error) {
	switch {
	case e1.X != e2.X:
		a := (e2.Y - e1.Y) / (e2.X - e1.X)
		b := 1.0
		c := a*e1.X - e1.Y
		normal := -a*p.X + b*p.Y + c
		return math.Abs(normal / math.Sqrt(a*a+b*b)), nil
	case e1.Y != e2.Y:
		return math.Abs(p.X - e1.X), nil
	default:
		return 0, ErrDegenerateEdge
	}
}

// TraceLength returns the geometric length of the live trace in metres.
func (t *Trace) TraceLength() float64 {
	var length float64
	for i := 1; i < len(t.points); i++ {
		length += geo.Distance(t.points[i].Position, t.points[i-1].Position)
	}
	return length
}

// EvaluationTraceLength returns the length of the live trace plus the length
// of the retained virtual evaluation points.
func (t *Trace) EvaluationTraceLength() float64 {
	var length float64
	for i := 1; i < len(t.virtualEvaluationPoints); i++ {
		length += geo.Distance(t.virtualEvaluationPoints[i].Position, t.virtualEvaluationPoints[i-1].Position)
	}
	return t.TraceLength() + length
}

// NrOfPoints returns the number of live trace points.
func (t *Trace) NrOfPoints() int {
	return len(t.points)
}

// NrOfEvaluationPoints returns the number of live plus virtual evaluation
// points.
func (t *Trace) NrOfEvaluationPoints() int {
	return len(t.points) + len(t.virtualEvaluationPoints)
}

// Points returns the live trace points, newest first. The returned slice is a
// copy.
func (t *Trace) Points() []TracePoint {
	out := make([]TracePoint, len(t.points))
	copy(out, t.points)
	return out
}

// EvaluationPoints returns the live trace points followed by the virtual
// evaluation points, newest first.
func (t *Trace) EvaluationPoints() []TracePoint {
	out := make([]TracePoint, 0, len(t.points)+len(t.virtualEvaluationPoints))
	out = append(out, t.points...)
	out = append(out, t.virtualEvaluationPoints...)
	return out
}

// ReferencePosition returns the trace's anchor position.
func (t *Trace) ReferencePosition() geo.Vector {
	return t.referencePosition
}

// SetReferencePosition moves the trace's anchor, e.g. to the position of the
// event the trace is attached to.
func (t *Trace) SetReferencePosition(pos geo.Vector) {
	t.referencePosition = pos
}

// CurrentPosition returns the last position fed into ProcessNewPosition, or
// false when no position has been processed yet.
func (t *Trace) CurrentPosition() (geo.Vector, bool) {
	if t.currentPos == nil {
		return geo.Vector{}, false
	}
	return *t.currentPos, true
}

// RelevanceArea returns the area assigned to this trace, if any.
func (t *Trace) RelevanceArea() geo.Area {
	return t.relevanceArea
}

// SetRelevanceArea assigns a relevance area to this trace.
func (t *Trace) SetRelevanceArea(area geo.Area) {
	t.relevanceArea = area
}

// CreationTime returns the time the trace was created.
func (t *Trace) CreationTime() time.Time {
	return t.creation
}

// VehicleID returns the ID of the vehicle the trace belongs to.
func (t *Trace) VehicleID() string {
	return t.vehicleID
}

// TotalPoints returns the running total of admitted minus evicted points.
func (t *Trace) TotalPoints() int {
	return t.totalPoints
}

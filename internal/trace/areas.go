package trace

import (
	"math"

	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
)

// CircularArea returns a circle with the given radius around the trace's
// reference position. A non-zero offset moves the center by offset along
// (sin h, cos h), where h is the direction from the reference position to the
// first trace point farther away than radius - offset. For a trace along the
// Y axis a positive offset moves the center back along the trace and a
// negative one ahead of the reference position; since the unit vector of a
// heading h is (-sin h, cos h), for other headings the X component of the
// shift points the opposite way.
func (t *Trace) CircularArea(radius, offset float64) geo.Circle {
	refPos := t.referencePosition

	center := refPos
	if offset != 0 {
		// Heading from the reference position towards the end of the area.
		d := radius - offset
		circHeading := t.headingForwardingArea(t.points, refPos, d)

		center = geo.Vector{
			X: refPos.X + offset*math.Sin(circHeading),
			Y: refPos.Y + offset*math.Cos(circHeading),
		}
	}

	return geo.NewCircle(center, radius)
}

// WideRectangularArea returns a rectangle of the given length along the trace
// starting at the offset reference position, with the width derived from the
// maximum lateral scatter of the trace points.
func (t *Trace) WideRectangularArea(length, offset float64) geo.Rectangle {
	return t.RectangularArea(-1, length, offset)
}

// RectangularArea returns a rectangle of the given length and width along the
// trace starting at the offset reference position. A negative width derives
// the width from the maximum trace point deviation plus the configured
// overflow on both sides.
func (t *Trace) RectangularArea(width, length, offset float64) geo.Rectangle {
	refPos := t.referencePosition

	var rectHeading float64
	if len(t.points) > 0 {
		oldest := t.points[len(t.points)-1].Position

		// The rectangle cannot be longer than the trace.
		traceDist := geo.Distance(refPos, oldest)
		if length > traceDist {
			length = traceDist - offset
		}

		// Negative offset values move the rectangle into the approach direction.
		d := length - offset
		rectHeading = t.headingForwardingArea(t.points, refPos, d)

		if width < 0 {
			var maxOffset float64
			if oldest != refPos {
				for _, p := range t.points {
					dev, err := edgeDistance(refPos, oldest, p.Position)
					if err != nil {
						continue
					}
					if dev > maxOffset {
						maxOffset = dev
					}
				}
			}
			width = 2 * (maxOffset + t.cfg.AreaWidthOverflow)
		}
	} else {
		// An empty trace can only produce a vertical rectangle.
		rectHeading = 0
		if width <= 0 {
			width = length
		}
	}

	sinHeading := math.Sin(rectHeading)
	cosHeading := math.Cos(rectHeading)

	// The quadrant of the heading decides which side of the axis the width
	// is projected to.
	var signIndicator float64
	if normAbs := math.Abs(sinHeading * cosHeading); normAbs == 0 {
		signIndicator = sinHeading + cosHeading
	} else {
		signIndicator = sinHeading * cosHeading / normAbs
	}
	signedWidth := math.Copysign(width, signIndicator)

	p1 := geo.Vector{
		X: refPos.X + signedWidth/2*sinHeading - offset*sinHeading,
		Y: refPos.Y + signedWidth/2*cosHeading + offset*cosHeading,
	}
	p2 := geo.Vector{
		X: p1.X - length*sinHeading,
		Y: p1.Y + length*cosHeading,
	}

	return geo.NewRectangle(p1, p2, width)
}

// headingForwardingArea walks the trace points newest first and returns the
// direction from refPos to the first point farther away than d, or to the
// farthest iterated point when none is.
func (t *Trace) headingForwardingArea(points []TracePoint, refPos geo.Vector, d float64) float64 {
	var tPos geo.Vector
	for _, tp := range points {
		tPos = tp.Position
		if geo.Distance(tPos, refPos) > d {
			break
		}
	}
	return t.direction(refPos, tPos)
}

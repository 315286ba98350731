package geo

import "math"

// Rectangle is an oriented rectangular forwarding / relevance area. It is
// defined by one long edge P1→P2 plus the width along the orthogonal
// direction; the remaining corners P3 and P4 are derived from the edge
// heading so the width extends to the right of P1→P2.
type Rectangle struct {
	P1    Vector
	P2    Vector
	Width float64
}

// NewRectangle creates a rectangle from the two corners of its long edge and
// its width.
func NewRectangle(p1, p2 Vector, width float64) Rectangle {
	return Rectangle{P1: p1, P2: p2, Width: width}
}

// Heading returns the direction of the edge P1→P2 as an angle from the
// positive Y axis.
func (r Rectangle) Heading() float64 {
	return AngleFromYAxis(r.P2.Sub(r.P1))
}

// Length returns the length of the edge P1→P2.
func (r Rectangle) Length() float64 {
	return Distance(r.P1, r.P2)
}

// P3 returns the corner opposite P2, across the width of the rectangle.
func (r Rectangle) P3() Vector {
	h := r.Heading()
	return Vector{
		X: r.P2.X + r.Width*math.Cos(h),
		Y: r.P2.Y + r.Width*math.Sin(h),
	}
}

// P4 returns the corner opposite P1, across the width of the rectangle.
func (r Rectangle) P4() Vector {
	h := r.Heading()
	return Vector{
		X: r.P1.X + r.Width*math.Cos(h),
		Y: r.P1.Y + r.Width*math.Sin(h),
	}
}

// Contains reports whether the point (x, y) lies inside the rectangle,
// using even-odd crossings of a horizontal ray against the four-vertex
// polygon [P1, P2, P3, P4]. The boundary is open on the bottom and counted
// on the top and right edges; crossings with horizontal edges are skipped.
func (r Rectangle) Contains(x, y float64) bool {
	poly := [4]Vector{r.P1, r.P2, r.P3(), r.P4()}

	inside := false
	p1 := poly[0]
	for i := 1; i <= len(poly); i++ {
		p2 := poly[i%len(poly)]
		// Horizontal edges never satisfy the strict lower bound, so no
		// crossing is counted for them.
		if y > math.Min(p1.Y, p2.Y) && y <= math.Max(p1.Y, p2.Y) && x <= math.Max(p1.X, p2.X) && p1.Y != p2.Y {
			xinters := (y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
			if p1.X == p2.X || x <= xinters {
				inside = !inside
			}
		}
		p1 = p2
	}
	return inside
}

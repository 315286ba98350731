package geo

// Circle is a circular forwarding / relevance area.
type Circle struct {
	Center Vector
	Radius float64
}

// NewCircle creates a circle from its center point and radius.
func NewCircle(center Vector, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

// Contains reports whether the point (x, y) lies inside the circle.
// The boundary counts as inside.
func (c Circle) Contains(x, y float64) bool {
	return Distance(Vector{X: x, Y: y}, c.Center) <= c.Radius
}

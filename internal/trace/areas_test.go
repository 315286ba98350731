package trace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
)

// approachTrace builds a trace driven north from (0, 0) to (0, 300) with the
// reference position moved to the event at the northern end.
func approachTrace(t *testing.T) *Trace {
	t.Helper()

	tr := newTestTrace(geo.Vector{X: 0, Y: 0})
	for _, y := range []float64{80, 160, 240, 300} {
		tr.ForcePointCreation(geo.Vector{X: 0, Y: y}, 20)
	}
	tr.SetReferencePosition(geo.Vector{X: 0, Y: 300})
	return tr
}

func TestCircularArea(t *testing.T) {
	t.Parallel()

	t.Run("zero offset centers on reference position", func(t *testing.T) {
		t.Parallel()
		tr := newTestTrace(geo.Vector{X: 7, Y: -3})
		c := tr.CircularArea(50, 0)

		assert.Equal(t, geo.Vector{X: 7, Y: -3}, c.Center)
		assert.Equal(t, 50.0, c.Radius)
		assert.True(t, c.Contains(7, -3))
	})

	t.Run("offset moves center along approach direction", func(t *testing.T) {
		t.Parallel()
		tr := approachTrace(t)
		c := tr.CircularArea(100, 20)

		// The approach comes from the south, so the center moves 20 m south
		// of the event.
		assert.InDelta(t, 0.0, c.Center.X, 1e-9)
		assert.InDelta(t, 280.0, c.Center.Y, 1e-9)
		assert.Equal(t, 100.0, c.Radius)
	})
}

func TestRectangularArea(t *testing.T) {
	t.Parallel()

	t.Run("fixed width along approach", func(t *testing.T) {
		t.Parallel()
		tr := approachTrace(t)
		r := tr.RectangularArea(10, 100, 0)

		assert.InDelta(t, 100.0, r.Length(), 1e-9)
		assert.Equal(t, 10.0, r.Width)
		assert.InDelta(t, math.Pi, r.Heading(), 1e-9, "edge runs against the approach")

		// The long edge runs along the trace axis.
		assert.True(t, r.Contains(-1, 250))
		assert.True(t, r.Contains(-5, 250))
		assert.False(t, r.Contains(5, 250))
		assert.False(t, r.Contains(-1, 100), "beyond the rectangle length")
	})

	t.Run("length clamped to trace span", func(t *testing.T) {
		t.Parallel()
		tr := approachTrace(t)
		r := tr.RectangularArea(10, 500, 0)

		// distance(reference position, oldest point) = 300
		assert.InDelta(t, 300.0, r.Length(), 1e-9)
	})

	t.Run("auto width from trace scatter", func(t *testing.T) {
		t.Parallel()
		tr := newTestTrace(geo.Vector{X: 0, Y: 0})
		tr.ForcePointCreation(geo.Vector{X: 2, Y: 100}, 20)
		tr.ForcePointCreation(geo.Vector{X: -1, Y: 200}, 20)
		tr.ForcePointCreation(geo.Vector{X: 0, Y: 300}, 20)
		tr.SetReferencePosition(geo.Vector{X: 0, Y: 300})

		r := tr.WideRectangularArea(200, 0)

		// Maximum deviation from the axis is 2 m, plus the overflow on both
		// sides.
		assert.InDelta(t, 2*(2+DefaultAreaWidthOverflow), r.Width, 1e-9)
	})

	t.Run("reference position on oldest point skips scatter", func(t *testing.T) {
		t.Parallel()
		tr := newTestTrace(geo.Vector{X: 0, Y: 0})
		tr.ForcePointCreation(geo.Vector{X: 0, Y: 100}, 20)

		r := tr.WideRectangularArea(100, 0)
		assert.InDelta(t, 2*DefaultAreaWidthOverflow, r.Width, 1e-9)
		assert.InDelta(t, 0.0, r.Length(), 1e-9, "length clamps to the zero trace span")
	})
}

func TestHeadingForwardingArea(t *testing.T) {
	t.Parallel()

	tr := approachTrace(t)
	ref := tr.ReferencePosition()

	t.Run("first point beyond distance", func(t *testing.T) {
		t.Parallel()
		// Walking newest first, (0, 160) is the first point farther than
		// 100 m from the reference position.
		h := tr.headingForwardingArea(tr.points, ref, 100)
		assert.InDelta(t, math.Pi, h, 1e-12)
	})

	t.Run("falls back to farthest point", func(t *testing.T) {
		t.Parallel()
		h := tr.headingForwardingArea(tr.points, ref, 10000)
		require.Equal(t, geo.Vector{X: 0, Y: 0}, tr.points[len(tr.points)-1].Position)
		assert.InDelta(t, math.Pi, h, 1e-12)
	})
}

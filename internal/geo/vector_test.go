package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.0, Distance(Vector{X: 0, Y: 0}, Vector{X: 3, Y: 4}), 1e-12)
	assert.InDelta(t, 0.0, Distance(Vector{X: 7, Y: -2}, Vector{X: 7, Y: -2}), 1e-12)
	assert.InDelta(t, math.Sqrt2, Distance(Vector{X: 1, Y: 1}, Vector{X: 2, Y: 2}), 1e-12)
}

func TestAngleFromYAxis(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    Vector
		want float64
	}{
		{"north", Vector{X: 0, Y: 1}, 0},
		{"east", Vector{X: 1, Y: 0}, 3 * math.Pi / 2},
		{"west", Vector{X: -1, Y: 0}, math.Pi / 2},
		{"south", Vector{X: 0, Y: -1}, math.Pi},
		{"north-east", Vector{X: 1, Y: 1}, 7 * math.Pi / 4},
		{"south-west", Vector{X: -1, Y: -1}, 3 * math.Pi / 4},
		{"zero vector", Vector{}, 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := AngleFromYAxis(tc.v)
			assert.InDelta(t, tc.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 2*math.Pi)
		})
	}
}

func TestVectorArithmetic(t *testing.T) {
	t.Parallel()

	a := Vector{X: 1, Y: 2}
	b := Vector{X: -3, Y: 5}

	assert.Equal(t, Vector{X: -2, Y: 7}, a.Add(b))
	assert.Equal(t, Vector{X: 4, Y: -3}, a.Sub(b))
	assert.Equal(t, Vector{X: 2, Y: 4}, a.Scale(2))
}

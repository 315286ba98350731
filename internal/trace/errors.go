package trace

import "errors"

var (
	// ErrNotEnoughTracePoints indicates an operation that needs more trace
	// points than the trace currently holds.
	ErrNotEnoughTracePoints = errors.New("not enough trace points")

	// ErrDegenerateEdge indicates an edge whose endpoints coincide, for which
	// no point-to-edge distance exists.
	ErrDegenerateEdge = errors.New("degenerate edge")
)

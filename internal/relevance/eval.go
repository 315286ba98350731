package relevance

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
	"github.com/mathiascbaur/vehicle-analytics/internal/trace"
)

// EvalData records one relevance evaluation of a vehicle against a message.
type EvalData struct {
	VehicleID string
	ActionID  uuid.UUID
	Time      time.Time
	Position  geo.Vector
	Quality   float64
	Distance  float64
	Status    trace.MatchStatus
}

// Summary aggregates a series of evaluations.
type Summary struct {
	Count       int
	Matches     int
	MatchRate   float64
	MeanQuality float64
	P50Distance float64
	P85Distance float64
}

// Summarize computes aggregate statistics over the given evaluations.
// Quality and distance statistics only consider successful matches.
func Summarize(evals []EvalData) Summary {
	s := Summary{Count: len(evals)}
	if len(evals) == 0 {
		return s
	}

	var qualities, distances []float64
	for _, ev := range evals {
		if ev.Status != trace.StatusMatch {
			continue
		}
		qualities = append(qualities, ev.Quality)
		distances = append(distances, ev.Distance)
	}
	s.Matches = len(qualities)
	s.MatchRate = float64(s.Matches) / float64(s.Count)
	if s.Matches == 0 {
		return s
	}

	s.MeanQuality = stat.Mean(qualities, nil)
	sort.Float64s(distances)
	s.P50Distance = stat.Quantile(0.5, stat.Empirical, distances, nil)
	s.P85Distance = stat.Quantile(0.85, stat.Empirical, distances, nil)
	return s
}

// Package relevance decides, per simulation tick, which vehicles should
// react to which DEN messages. It keeps the per-vehicle registry, drives
// trace maintenance, and threads previous match results through the trace
// matcher so reported match distances stay monotone.
package relevance

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mathiascbaur/vehicle-analytics/internal/den"
	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
	"github.com/mathiascbaur/vehicle-analytics/internal/trace"
)

// ErrUnknownVehicle indicates an operation on a vehicle that was never
// registered with the engine.
var ErrUnknownVehicle = errors.New("unknown vehicle")

// matchKey identifies the match history of one vehicle against one message.
type matchKey struct {
	vehicleID string
	actionID  uuid.UUID
}

// Engine evaluates DEN message relevance for a set of registered vehicles.
// All methods are safe for concurrent use; the per-vehicle traces are only
// mutated through the engine.
type Engine struct {
	cfg trace.TraceConfig

	mu       sync.RWMutex
	vehicles map[string]*den.VehicleData
	priors   map[matchKey]trace.TraceMatch
	evals    []EvalData
}

// NewEngine creates an engine with the given trace configuration.
func NewEngine(cfg trace.TraceConfig) *Engine {
	return &Engine{
		cfg:      cfg,
		vehicles: make(map[string]*den.VehicleData),
		priors:   make(map[matchKey]trace.TraceMatch),
	}
}

// Register adds a vehicle to the engine. A vehicle without a trace gets one
// seeded at its current position.
func (e *Engine) Register(vd *den.VehicleData, at time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if vd.Trace == nil {
		var pos geo.Vector
		if vd.CurrentPosition != nil {
			pos = *vd.CurrentPosition
		}
		vd.Trace = trace.New(pos, at, 0, vd.ID)
	}
	vd.Trace.SetConfig(e.cfg)
	e.vehicles[vd.ID] = vd
}

// Vehicle returns the registered vehicle data for id, or nil.
func (e *Engine) Vehicle(id string) *den.VehicleData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vehicles[id]
}

// Tick feeds a vehicle's current position and speed into its trace. Call once
// per simulation step for every registered vehicle.
func (e *Engine) Tick(vehicleID string, pos geo.Vector, speed float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	vd, ok := e.vehicles[vehicleID]
	if !ok {
		return ErrUnknownVehicle
	}
	vd.OldPosition = vd.CurrentPosition
	vd.CurrentPosition = &pos
	vd.Trace.ProcessNewPosition(pos, speed)
	return nil
}

// Deliver fans a DEN message out to every registered vehicle except the
// sender.
func (e *Engine) Deliver(msg *den.DENMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, vd := range e.vehicles {
		if id == msg.SourceID {
			continue
		}
		vd.ReceiveDENMessage(msg)
	}
}

// Evaluate matches a vehicle's current position and heading against the
// message's trace and forwarding area. The previous match for the same
// vehicle and action ID, if any, is threaded through as prior. A warning is
// returned when the match quality reaches the configured minimum. Every
// attempted match is recorded; nothing is recorded when the vehicle has no
// position, the message has no trace or forwarding area, or the vehicle's
// trace has fewer than two points.
func (e *Engine) Evaluate(vehicleID string, msg *den.DENMessage, at time.Time) (*den.Warning, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vd, ok := e.vehicles[vehicleID]
	if !ok {
		return nil, ErrUnknownVehicle
	}
	if vd.CurrentPosition == nil || msg.Trace == nil || msg.ForwardingArea == nil {
		return nil, nil
	}
	pos := *vd.CurrentPosition

	// The candidate heading is the vehicle's own trace heading; without one
	// no heading agreement can be judged.
	heading, err := vd.Trace.CurrentTraceHeading()
	if err != nil {
		return nil, nil
	}

	key := matchKey{vehicleID: vehicleID, actionID: msg.ActionID}
	var prior *trace.TraceMatch
	if prev, ok := e.priors[key]; ok {
		prior = &prev
	}

	match := msg.Trace.MatchToPosition(pos, heading, msg.ForwardingArea, prior)
	if match.Status == trace.StatusMatch {
		e.priors[key] = match
	}

	e.evals = append(e.evals, EvalData{
		VehicleID: vehicleID,
		ActionID:  msg.ActionID,
		Time:      at,
		Position:  pos,
		Quality:   match.Quality,
		Distance:  match.Distance,
		Status:    match.Status,
	})

	if match.Status != trace.StatusMatch || !match.Sufficient(e.cfg.MatchMinQuality) {
		return nil, nil
	}

	w := den.NewWarning()
	w.TimeStart = at
	w.PresentationType = den.WarningLevelWarning
	w.CurrentPrioritisation = msg.Priority
	w.DistanceToEvent = match.Distance
	w.TypeOfWarning = msg.CauseCode
	vd.Status = den.StatusWarned
	vd.CurrentDisplayContent = w
	return w, nil
}

// EvaluateInbox evaluates every non-expired message in the vehicle's inbox
// and returns the warnings raised.
func (e *Engine) EvaluateInbox(vehicleID string, at time.Time) ([]*den.Warning, error) {
	// Snapshot the inbox under the lock; Deliver appends to it concurrently.
	e.mu.RLock()
	vd, ok := e.vehicles[vehicleID]
	var inbox []*den.DENMessage
	if ok {
		inbox = append(inbox, vd.ReceivedDENMessages()...)
	}
	e.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownVehicle
	}

	var warnings []*den.Warning
	for _, msg := range inbox {
		if msg.Expired(at) || msg.Cancelation {
			continue
		}
		w, err := e.Evaluate(vehicleID, msg, at)
		if err != nil {
			return warnings, err
		}
		if w != nil {
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}

// LastMatch returns the most recent successful match of a vehicle against an
// action ID.
func (e *Engine) LastMatch(vehicleID string, actionID uuid.UUID) (trace.TraceMatch, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.priors[matchKey{vehicleID: vehicleID, actionID: actionID}]
	return m, ok
}

// Evaluations returns a copy of all recorded evaluations.
func (e *Engine) Evaluations() []EvalData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]EvalData, len(e.evals))
	copy(out, e.evals)
	return out
}

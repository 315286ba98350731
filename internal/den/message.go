// Package den holds the passive records exchanged between vehicles in the
// decentralized environmental-notification flow: the DEN message envelope,
// the per-vehicle data container and the warning presentation record. The
// relevance engine only ever consumes the trace and forwarding area carried
// here; everything else is plain data for the host simulation.
package den

import (
	"time"

	"github.com/google/uuid"

	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
	"github.com/mathiascbaur/vehicle-analytics/internal/trace"
)

// ForwardingType selects how a DEN message is disseminated. Usually only
// broadcast is used; message relevance is handled by the forwarding area.
type ForwardingType string

const (
	ForwardingBroadcast        ForwardingType = "broadcast"
	ForwardingUnicast          ForwardingType = "unicast"
	ForwardingGeocastCircle    ForwardingType = "geocast_circle"
	ForwardingGeocastRectangle ForwardingType = "geocast_rectangle"
)

// Medium is the communication medium a DEN message is sent over.
type Medium string

const (
	MediumPWLAN Medium = "pwlan"
	MediumCWLAN Medium = "cwlan"
	MediumUMTS  Medium = "umts"
)

// DENMessage is a virtual decentralized environmental-notification message
// as used in a traffic simulation.
type DENMessage struct {
	SourceID string    // Reference to the sending vehicle
	ActionID uuid.UUID // Identifies the message for the sending vehicle

	ForwardingType ForwardingType
	Medium         Medium

	// ForwardingArea is evaluated by the receivers' traces; any shape
	// implementing containment works.
	ForwardingArea geo.Area

	// Trace is the sender's approach to the event.
	Trace *trace.Trace

	Time         time.Time     // Sending time
	ValidityTime time.Duration // Time until the message becomes invalid

	ReferencePosition geo.Vector // Position of the causing event
	Acceleration      float64
	Speed             float64

	CauseCode   int
	SubCause    int
	DirectCause int

	Cancelation bool // Marks a message revoking an earlier one
	Reliability float64
	Priority    float64

	Payload []byte
}

// NewDENMessage creates a message for the given sender with a fresh action ID.
func NewDENMessage(sourceID string) *DENMessage {
	return &DENMessage{
		SourceID:       sourceID,
		ActionID:       uuid.New(),
		ForwardingType: ForwardingBroadcast,
		Medium:         MediumPWLAN,
	}
}

// Expired reports whether the message's validity time has passed at now.
func (m *DENMessage) Expired(now time.Time) bool {
	if m.ValidityTime <= 0 {
		return false
	}
	return now.After(m.Time.Add(m.ValidityTime))
}

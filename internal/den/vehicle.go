package den

import (
	"github.com/mathiascbaur/vehicle-analytics/internal/geo"
	"github.com/mathiascbaur/vehicle-analytics/internal/trace"
)

// VehicleStatus is the lifecycle state of a V2X vehicle with respect to the
// warning flow.
type VehicleStatus string

const (
	StatusNone               VehicleStatus = "none"
	StatusWarned             VehicleStatus = "warned"
	StatusBrokenDown         VehicleStatus = "broken_down"
	StatusInJam              VehicleStatus = "in_jam"
	StatusCamJamRecognition  VehicleStatus = "cam_jam_recognition"
	StatusApproach           VehicleStatus = "approach"
	StatusInConstructionSite VehicleStatus = "in_constructionsite"
	StatusReset              VehicleStatus = "reset"
)

// VehicleData is the container for the extended state of a V2X vehicle in
// the simulation.
type VehicleData struct {
	ID           string
	DesiredSpeed float64
	DesiredLane  int
	Driveability float64

	OldPosition     *geo.Vector
	CurrentPosition *geo.Vector

	Trace  *trace.Trace
	Status VehicleStatus

	StoredMsg           *DENMessage
	receivedDENMessages []*DENMessage

	DisplayValidityTime   float64
	CurrentDisplayContent *Warning
}

// NewVehicleData creates vehicle data with the given desired speed and trace.
func NewVehicleData(id string, desiredSpeed float64, tr *trace.Trace) *VehicleData {
	return &VehicleData{
		ID:           id,
		DesiredSpeed: desiredSpeed,
		Trace:        tr,
		Status:       StatusNone,
	}
}

// ReceiveDENMessage appends a message to the vehicle's inbox.
func (v *VehicleData) ReceiveDENMessage(msg *DENMessage) {
	v.receivedDENMessages = append(v.receivedDENMessages, msg)
}

// ReceivedDENMessages returns the vehicle's inbox, oldest first.
func (v *VehicleData) ReceivedDENMessages() []*DENMessage {
	return v.receivedDENMessages
}

// ClearReceivedDENMessages empties the vehicle's inbox.
func (v *VehicleData) ClearReceivedDENMessages() {
	v.receivedDENMessages = nil
}

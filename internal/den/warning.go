package den

import "time"

// WarningLevel grades the presentation of a warning.
type WarningLevel string

const (
	WarningLevelInformation WarningLevel = "information"
	WarningLevelWarning     WarningLevel = "warning"
)

// Warning carries the information needed to derive a driving behavior from a
// relevant event.
type Warning struct {
	TimeStart             time.Time
	TimeEnd               time.Time
	PresentationType      WarningLevel
	CurrentPrioritisation float64
	DistanceToEvent       float64
	TypeOfWarning         int
}

// NewWarning returns a warning with the distance-to-event set to unknown.
func NewWarning() *Warning {
	return &Warning{
		PresentationType: WarningLevelInformation,
		DistanceToEvent:  9999,
	}
}

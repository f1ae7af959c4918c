package models

import "time"

// Slot is a derived 1-hour bookable window. Slots are generated fresh per
// request and never stored. Available is false when the slot is in the past
// or overlaps a paid booking.
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
	Past      bool      `json:"past"`
}

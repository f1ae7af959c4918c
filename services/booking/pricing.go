package booking

import (
	"math"
	"time"
)

// RatePerHour is the flat pay-per-use rate charged per booked hour.
const RatePerHour = 5.0

// CalculateAmount prices a booking interval: duration in hours times the
// flat hourly rate, rounded to 2 decimal places.
func CalculateAmount(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(hours*RatePerHour*100) / 100
}

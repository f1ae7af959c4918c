package booking

import (
	"time"

	"voltport/models"
)

// slotWindowDays is the number of calendar days covered by a slot query,
// starting at midnight of the current day.
const slotWindowDays = 7

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap. Touching endpoints do not overlap; this same
// predicate backs both slot display and booking admission.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ceilToHour rounds t up to the next whole hour boundary. Instants already on
// a boundary are returned unchanged.
func ceilToHour(t time.Time) time.Time {
	trunc := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	if trunc.Equal(t) {
		return t
	}
	return trunc.Add(time.Hour)
}

// ComputeSlots generates every 1-hour slot for a port over the 7-day window
// starting at midnight of now's calendar day. It is a pure function of its
// inputs: the port's weekly schedule, the paid bookings inside the window,
// and the current instant.
//
// Per day: no schedule entry means no slots. For the current day the
// effective open instant is advanced to now rounded up to the next whole
// hour, so no slot starts mid-hour. Slots never span midnight and a trailing
// partial hour before close is dropped. A slot is past when it starts before
// now, and available when it is neither past nor overlapping a booked
// interval. Output is ordered by day, then start time; clients render slots
// in this order.
func ComputeSlots(schedule []models.ScheduleEntry, booked []models.Interval, now time.Time) []models.Slot {
	byWeekday := make(map[int]models.ScheduleEntry, len(schedule))
	for _, entry := range schedule {
		byWeekday[entry.Weekday] = entry
	}

	dayZero := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var slots []models.Slot
	for d := 0; d < slotWindowDays; d++ {
		day := dayZero.AddDate(0, 0, d)

		entry, ok := byWeekday[models.WeekdayIndex(day)]
		if !ok {
			continue
		}
		openMin, err := models.ParseClock(entry.Open)
		if err != nil {
			continue
		}
		closeMin, err := models.ParseClock(entry.Close)
		if err != nil {
			continue
		}

		dayOpen := day.Add(time.Duration(openMin) * time.Minute)
		dayClose := day.Add(time.Duration(closeMin) * time.Minute)

		if d == 0 && now.After(dayOpen) {
			dayOpen = ceilToHour(now)
		}

		for slotStart := dayOpen; !slotStart.Add(time.Hour).After(dayClose); slotStart = slotStart.Add(time.Hour) {
			slotEnd := slotStart.Add(time.Hour)

			past := slotStart.Before(now)
			conflict := false
			for _, iv := range booked {
				if Overlaps(slotStart, slotEnd, iv.Start, iv.End) {
					conflict = true
					break
				}
			}

			slots = append(slots, models.Slot{
				StartTime: slotStart,
				EndTime:   slotEnd,
				Available: !past && !conflict,
				Past:      past,
			})
		}
	}
	return slots
}

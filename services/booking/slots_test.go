package booking

import (
	"testing"
	"time"

	"voltport/models"
)

func weekSchedule(open, close string) []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0, 7)
	for d := 0; d < 7; d++ {
		entries = append(entries, models.ScheduleEntry{Weekday: d, Open: open, Close: close})
	}
	return entries
}

func TestComputeSlots_FullWeekCount(t *testing.T) {
	loc := time.UTC
	// A Monday at 07:00, before opening, so no slots are trimmed today.
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, loc)

	slots := ComputeSlots(weekSchedule("08:00", "22:00"), nil, now)

	// 14 hourly slots per day over 7 days.
	if len(slots) != 98 {
		t.Fatalf("expected 98 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Past {
			t.Fatalf("slot %s unexpectedly marked past", s.StartTime.Format(time.RFC3339))
		}
		if !s.Available {
			t.Fatalf("slot %s unexpectedly unavailable", s.StartTime.Format(time.RFC3339))
		}
	}
}

func TestComputeSlots_TodayStartsAtNextFullHour(t *testing.T) {
	loc := time.UTC
	// Monday 14:30: today's first offerable slot is 15:00.
	now := time.Date(2026, 1, 26, 14, 30, 0, 0, loc)

	slots := ComputeSlots(weekSchedule("09:00", "17:00"), nil, now)

	first := slots[0]
	want := time.Date(2026, 1, 26, 15, 0, 0, 0, loc)
	if !first.StartTime.Equal(want) {
		t.Fatalf("expected first slot %s, got %s", want, first.StartTime)
	}
	// 15:00 and 16:00 today, then 8 per day for 6 more days.
	if len(slots) != 2+48 {
		t.Fatalf("expected 50 slots, got %d", len(slots))
	}
}

func TestComputeSlots_OnTheHourNotPast(t *testing.T) {
	loc := time.UTC
	// Exactly 14:00: the 14:00 slot starts now and is still offerable.
	now := time.Date(2026, 1, 26, 14, 0, 0, 0, loc)

	slots := ComputeSlots(weekSchedule("09:00", "17:00"), nil, now)

	first := slots[0]
	if !first.StartTime.Equal(now) {
		t.Fatalf("expected first slot %s, got %s", now, first.StartTime)
	}
	if first.Past || !first.Available {
		t.Fatalf("slot starting exactly now should be available, got past=%v available=%v", first.Past, first.Available)
	}
}

func TestComputeSlots_BookedSlotUnavailable(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, loc)
	booked := []models.Interval{
		{
			Start: time.Date(2026, 1, 27, 10, 0, 0, 0, loc),
			End:   time.Date(2026, 1, 27, 11, 0, 0, 0, loc),
		},
	}

	slots := ComputeSlots(weekSchedule("09:00", "17:00"), booked, now)

	for _, s := range slots {
		if s.StartTime.Equal(booked[0].Start) {
			if s.Available {
				t.Fatalf("booked slot %s should be unavailable", s.StartTime)
			}
		} else if !s.Available {
			t.Fatalf("slot %s should be available", s.StartTime)
		}
	}
}

func TestComputeSlots_TouchingBookingDoesNotBlock(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, loc)
	// Booking ends exactly when the 11:00 slot starts.
	booked := []models.Interval{
		{
			Start: time.Date(2026, 1, 26, 10, 0, 0, 0, loc),
			End:   time.Date(2026, 1, 26, 11, 0, 0, 0, loc),
		},
	}

	slots := ComputeSlots(weekSchedule("09:00", "17:00"), booked, now)

	eleven := time.Date(2026, 1, 26, 11, 0, 0, 0, loc)
	for _, s := range slots {
		if s.StartTime.Equal(eleven) && !s.Available {
			t.Fatalf("slot at 11:00 should not be blocked by a booking ending at 11:00")
		}
	}
}

func TestComputeSlots_OffsetBookingBlocksBothSlots(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, loc)
	// A 09:30-10:30 booking straddles the 09:00 and 10:00 slots.
	booked := []models.Interval{
		{
			Start: time.Date(2026, 1, 26, 9, 30, 0, 0, loc),
			End:   time.Date(2026, 1, 26, 10, 30, 0, 0, loc),
		},
	}

	slots := ComputeSlots(weekSchedule("09:00", "17:00"), booked, now)

	nine := time.Date(2026, 1, 26, 9, 0, 0, 0, loc)
	ten := time.Date(2026, 1, 26, 10, 0, 0, 0, loc)
	for _, s := range slots {
		if (s.StartTime.Equal(nine) || s.StartTime.Equal(ten)) && s.Available {
			t.Fatalf("slot %s should be blocked by the straddling booking", s.StartTime)
		}
	}
}

func TestComputeSlots_Ordering(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, loc)

	slots := ComputeSlots(weekSchedule("09:00", "17:00"), nil, now)

	for i := 1; i < len(slots); i++ {
		if !slots[i].StartTime.After(slots[i-1].StartTime) {
			t.Fatalf("slots out of order at index %d: %s then %s",
				i, slots[i-1].StartTime, slots[i].StartTime)
		}
	}
}

func TestComputeSlots_EmptySchedule(t *testing.T) {
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, time.UTC)

	slots := ComputeSlots(nil, nil, now)
	if len(slots) != 0 {
		t.Fatalf("expected no slots for an empty schedule, got %d", len(slots))
	}
}

func TestComputeSlots_ClosedDaySkipped(t *testing.T) {
	loc := time.UTC
	// Monday 07:00; schedule covers Monday only.
	now := time.Date(2026, 1, 26, 7, 0, 0, 0, loc)
	schedule := []models.ScheduleEntry{{Weekday: 0, Open: "09:00", Close: "12:00"}}

	slots := ComputeSlots(schedule, nil, now)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots (Monday only), got %d", len(slots))
	}
	for _, s := range slots {
		if s.StartTime.Day() != 26 {
			t.Fatalf("unexpected slot on closed day: %s", s.StartTime)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 1, 26, 10, 0, 0, 0, time.UTC)
	h := time.Hour

	cases := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"identical", base, base.Add(h), base, base.Add(h), true},
		{"touching end to start", base, base.Add(h), base.Add(h), base.Add(2 * h), false},
		{"touching start to end", base.Add(h), base.Add(2 * h), base, base.Add(h), false},
		{"partial overlap", base, base.Add(h), base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"containment", base, base.Add(3 * h), base.Add(h), base.Add(2 * h), true},
		{"disjoint", base, base.Add(h), base.Add(5 * h), base.Add(6 * h), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%s) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

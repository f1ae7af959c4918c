package port

import (
	"testing"

	"voltport/models"
)

func TestValidateSchedules(t *testing.T) {
	cases := []struct {
		name    string
		entries []models.ScheduleEntry
		wantErr bool
	}{
		{
			"valid full week",
			[]models.ScheduleEntry{
				{Weekday: 0, Open: "09:00", Close: "17:00"},
				{Weekday: 1, Open: "09:00", Close: "17:00"},
				{Weekday: 6, Open: "10:00", Close: "14:00"},
			},
			false,
		},
		{
			"weekday out of range",
			[]models.ScheduleEntry{{Weekday: 7, Open: "09:00", Close: "17:00"}},
			true,
		},
		{
			"negative weekday",
			[]models.ScheduleEntry{{Weekday: -1, Open: "09:00", Close: "17:00"}},
			true,
		},
		{
			"duplicate weekday",
			[]models.ScheduleEntry{
				{Weekday: 2, Open: "09:00", Close: "12:00"},
				{Weekday: 2, Open: "13:00", Close: "17:00"},
			},
			true,
		},
		{
			"malformed clock",
			[]models.ScheduleEntry{{Weekday: 0, Open: "9am", Close: "17:00"}},
			true,
		},
		{
			"open equals close",
			[]models.ScheduleEntry{{Weekday: 0, Open: "09:00", Close: "09:00"}},
			true,
		},
		{
			"open after close",
			[]models.ScheduleEntry{{Weekday: 0, Open: "18:00", Close: "09:00"}},
			true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSchedules(tc.entries)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestListCacheKey_VersionScopesEntries(t *testing.T) {
	v1 := listCacheKey("1", "Oslo")
	v2 := listCacheKey("2", "Oslo")
	if v1 == v2 {
		t.Fatalf("expected distinct keys across versions, got %q", v1)
	}

	if got, want := listCacheKey("1", "  Oslo "), v1; got != want {
		t.Fatalf("expected normalized key %q, got %q", want, got)
	}
	if got, want := listCacheKey("1", "OSLO"), v1; got != want {
		t.Fatalf("expected case-insensitive key %q, got %q", want, got)
	}
}

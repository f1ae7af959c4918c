package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ScheduleEntry is one weekday's open window for a port. Weekday follows the
// 0=Monday .. 6=Sunday convention; Open and Close are wall-clock "HH:MM"
// strings with minute granularity, and Open must sort strictly before Close.
type ScheduleEntry struct {
	Weekday int    `bson:"weekday" json:"weekday"`
	Open    string `bson:"open" json:"open"`
	Close   string `bson:"close" json:"close"`
}

// Port represents a charging port together with its weekly schedule. The
// schedule is owned by the port and replaced wholesale on admin edits.
type Port struct {
	ID            string          `bson:"id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	City          string          `bson:"city" json:"city"`
	Address       string          `bson:"address" json:"address"`
	Latitude      float64         `bson:"latitude" json:"latitude"`
	Longitude     float64         `bson:"longitude" json:"longitude"`
	ConnectorType string          `bson:"connector_type" json:"connectorType"`
	PowerKW       float64         `bson:"power_kw" json:"powerKw"`
	ImageURL      string          `bson:"image_url" json:"imageUrl"`
	IsActive      bool            `bson:"is_active" json:"isActive"`
	Schedules     []ScheduleEntry `bson:"schedules" json:"schedules,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"-"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"-"`
}

// ParseClock converts an "HH:MM" wall-clock string to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", s)
	}
	return hour*60 + minute, nil
}

// WeekdayIndex maps a time.Time to the schedule's 0=Monday .. 6=Sunday index.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

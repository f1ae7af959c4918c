package models

// ReminderPayload is the asynq task payload for an upcoming-booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	PortName  string `json:"portName"`
	StartTime string `json:"startTime"` // RFC 3339
}

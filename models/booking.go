package models

import "time"

// Payment lifecycle of a booking. Only paid bookings block slots.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Booking represents a reservation of a port for a time interval. Intervals
// are half-open: [StartTime, EndTime).
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"user_id" json:"userId"`
	PortID        string    `bson:"port_id" json:"portId"`
	StartTime     time.Time `bson:"start_time" json:"startTime"`
	EndTime       time.Time `bson:"end_time" json:"endTime"`
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod string    `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	PaymentID     string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// BookingView is a booking joined with its port (and, for admin listings, the
// booking user) for presentation.
type BookingView struct {
	Booking
	Port *Port `json:"port,omitempty"`
	User *User `json:"user,omitempty"`
}

// Interval is a half-open booked time range used by the slot calculator.
type Interval struct {
	Start time.Time
	End   time.Time
}

package booking

import (
	"time"

	bookingRepo "voltport/database/repository/booking"
	portRepo "voltport/database/repository/port"
	subscriptionRepo "voltport/database/repository/subscription"
	"voltport/models"
	"voltport/services/tasks"
)

// CreateBookingRequest carries a validated booking admission request.
type CreateBookingRequest struct {
	PortID        string
	StartTime     time.Time
	EndTime       time.Time
	PaymentMethod string
}

// BookingService exposes slot availability and the booking lifecycle.
type BookingService interface {
	// AvailableSlots returns every 1-hour slot for a port over the next
	// 7 days, ordered by day then start time.
	AvailableSlots(portID string) ([]models.Slot, error)
	// CreateBooking admits a booking request: validates the interval, checks
	// conflicts against paid bookings under an admission lock, prices it, and
	// applies subscription coverage.
	CreateBooking(userID string, req CreateBookingRequest) (*models.Booking, error)
	// ListUserBookings returns a user's bookings, start time ascending, with
	// ports attached.
	ListUserBookings(userID string) ([]models.BookingView, error)
	// ProcessPayment settles a pending booking, either via subscription
	// coverage or a card charge.
	ProcessPayment(userID, bookingID, method string) (*models.Booking, error)
	// CancelBooking cancels a booking: paid bookings are marked refunded,
	// unpaid ones are deleted. Reports whether a refund was issued.
	CancelBooking(userID, bookingID string) (bool, error)
}

// DefaultBookingService is the production booking engine.
type DefaultBookingService struct {
	Repo             bookingRepo.BookingRepository
	PortRepo         portRepo.PortRepository
	SubscriptionRepo subscriptionRepo.SubscriptionRepository
	Locker           Locker
	Payments         PaymentProcessor
	Reminders        tasks.Scheduler
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

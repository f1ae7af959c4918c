package bookingRepo

import (
	"time"

	"voltport/models"
)

// BookingRepository defines methods for booking data access. All interval
// queries treat bookings as half-open ranges [start_time, end_time).
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID, or nil when absent.
	GetByID(id string) (*models.Booking, error)
	// ListByUser retrieves a user's bookings ordered by start time ascending.
	ListByUser(userID string) ([]models.Booking, error)
	// ListAll retrieves every booking ordered by start time descending.
	ListAll() ([]models.Booking, error)
	// ListPaidByPortWindow retrieves paid bookings on a port whose start time
	// falls in [from, to).
	ListPaidByPortWindow(portID string, from, to time.Time) ([]models.Booking, error)
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// Update modifies an existing booking record.
	Update(booking *models.Booking) error
	// Delete removes a booking record by its ID.
	Delete(id string) error
	// CountPaidOverlapping counts paid bookings on a port overlapping the
	// half-open interval [start, end).
	CountPaidOverlapping(portID string, start, end time.Time) (int64, error)
	// CountPaidByUserInWindow counts a user's paid bookings whose start time
	// falls in [from, to). Used for subscription quota accounting.
	CountPaidByUserInWindow(userID string, from, to time.Time) (int64, error)
	// CountByUser counts all bookings made by a user.
	CountByUser(userID string) (int64, error)
	// Count returns the total number of bookings.
	Count() (int64, error)
	// CountStartingBetween counts bookings whose start time falls in [from, to).
	CountStartingBetween(from, to time.Time) (int64, error)
}

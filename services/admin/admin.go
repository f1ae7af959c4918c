package admin

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	bookingRepo "voltport/database/repository/booking"
	portRepo "voltport/database/repository/port"
	subscriptionRepo "voltport/database/repository/subscription"
	userRepo "voltport/database/repository/user"
	"voltport/models"
	"voltport/utils"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalPorts          int64 `json:"totalPorts"`
	ActivePorts         int64 `json:"activePorts"`
	TotalBookings       int64 `json:"totalBookings"`
	BookingsToday       int64 `json:"bookingsToday"`
	RecentBookings      int64 `json:"recentBookings"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
}

type AdminService interface {
	// ListAllBookings returns every booking, newest first, with the user and
	// port joined in.
	ListAllBookings() ([]models.BookingView, error)
	// GetStats computes the dashboard summary.
	GetStats() (*Stats, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	UserRepo         userRepo.UserRepository
	PortRepo         portRepo.PortRepository
	BookingRepo      bookingRepo.BookingRepository
	SubscriptionRepo subscriptionRepo.SubscriptionRepository
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultAdminService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAdminService) ListAllBookings() ([]models.BookingView, error) {
	logger := utils.GetLogger().With(zap.String("service", "admin"))

	bookings, err := s.BookingRepo.ListAll()
	if err != nil {
		logger.Error("failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	users := make(map[string]*models.User)
	ports := make(map[string]*models.Port)
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		user, ok := users[b.UserID]
		if !ok {
			user, err = s.UserRepo.GetByID(b.UserID)
			if err != nil {
				logger.Error("failed to fetch user for booking", zap.String("userID", b.UserID), zap.Error(err))
				return nil, fmt.Errorf("failed to fetch user: %w", err)
			}
			users[b.UserID] = user
		}
		port, ok := ports[b.PortID]
		if !ok {
			port, err = s.PortRepo.GetByID(b.PortID)
			if err != nil {
				logger.Error("failed to fetch port for booking", zap.String("portID", b.PortID), zap.Error(err))
				return nil, fmt.Errorf("failed to fetch port: %w", err)
			}
			ports[b.PortID] = port
		}
		views = append(views, models.BookingView{Booking: b, User: user, Port: port})
	}
	return views, nil
}

func (s *DefaultAdminService) GetStats() (*Stats, error) {
	logger := utils.GetLogger().With(zap.String("service", "admin"))

	var stats Stats
	var err error

	if stats.TotalUsers, err = s.UserRepo.Count(); err != nil {
		logger.Error("failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalPorts, err = s.PortRepo.Count(); err != nil {
		logger.Error("failed to count ports", zap.Error(err))
		return nil, fmt.Errorf("failed to count ports: %w", err)
	}
	if stats.ActivePorts, err = s.PortRepo.CountActive(); err != nil {
		logger.Error("failed to count active ports", zap.Error(err))
		return nil, fmt.Errorf("failed to count active ports: %w", err)
	}
	if stats.TotalBookings, err = s.BookingRepo.Count(); err != nil {
		logger.Error("failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stats.BookingsToday, err = s.BookingRepo.CountStartingBetween(dayStart, dayStart.AddDate(0, 0, 1)); err != nil {
		logger.Error("failed to count today's bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}

	if stats.RecentBookings, err = s.BookingRepo.CountStartingBetween(now.AddDate(0, 0, -7), now); err != nil {
		logger.Error("failed to count recent bookings", zap.Error(err))
		return nil, fmt.Errorf("failed to count recent bookings: %w", err)
	}

	if stats.ActiveSubscriptions, err = s.SubscriptionRepo.CountActive(); err != nil {
		logger.Error("failed to count subscriptions", zap.Error(err))
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	return &stats, nil
}

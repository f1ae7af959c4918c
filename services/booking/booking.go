package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voltport/models"
	"voltport/utils"
)

const admissionLockTTL = 5 * time.Second

// AvailableSlots computes the 7-day slot grid for a port.
func (s *DefaultBookingService) AvailableSlots(portID string) ([]models.Slot, error) {
	logger := utils.GetLogger().With(zap.String("service", "booking"))

	port, err := s.PortRepo.GetByID(portID)
	if err != nil {
		logger.Error("failed to fetch port", zap.String("portID", portID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	if port == nil {
		return nil, NewNotFoundError("port", portID)
	}

	now := s.now()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := windowStart.AddDate(0, 0, slotWindowDays)

	booked, err := s.Repo.ListPaidByPortWindow(portID, windowStart, windowEnd)
	if err != nil {
		logger.Error("failed to fetch bookings for slot window", zap.String("portID", portID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	intervals := make([]models.Interval, 0, len(booked))
	for _, b := range booked {
		intervals = append(intervals, models.Interval{Start: b.StartTime, End: b.EndTime})
	}

	return ComputeSlots(port.Schedules, intervals, now), nil
}

// CreateBooking admits a booking request against a port.
func (s *DefaultBookingService) CreateBooking(userID string, req CreateBookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger().With(zap.String("service", "booking"), zap.String("userID", userID))

	now := s.now()
	if !req.EndTime.After(req.StartTime) {
		return nil, NewValidationError("endTime must be after startTime")
	}
	if req.StartTime.Before(now) {
		return nil, NewValidationError("booking cannot start in the past")
	}

	port, err := s.PortRepo.GetByID(req.PortID)
	if err != nil {
		logger.Error("failed to fetch port", zap.String("portID", req.PortID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	if port == nil {
		return nil, NewNotFoundError("port", req.PortID)
	}

	// Serialize admission per port and start hour so two concurrent requests
	// cannot both pass the conflict check.
	ctx := context.Background()
	lockKey := admissionLockKey(req.PortID, req.StartTime)
	acquired, lockVal, err := s.Locker.TryLock(ctx, lockKey, admissionLockTTL)
	if err != nil {
		logger.Error("failed to acquire admission lock", zap.String("key", lockKey), zap.Error(err))
		return nil, fmt.Errorf("failed to acquire admission lock: %w", err)
	}
	if !acquired {
		return nil, NewConflictError("another booking for this slot is in progress")
	}
	defer func() {
		if err := s.Locker.Unlock(ctx, lockKey, lockVal); err != nil {
			logger.Warn("failed to release admission lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	overlapping, err := s.Repo.CountPaidOverlapping(req.PortID, req.StartTime, req.EndTime)
	if err != nil {
		logger.Error("failed to check booking conflicts", zap.Error(err))
		return nil, fmt.Errorf("failed to check booking conflicts: %w", err)
	}
	if overlapping > 0 {
		return nil, NewConflictError("time slot is not available")
	}

	covered, err := s.subscriptionCovers(userID, now)
	if err != nil {
		return nil, err
	}

	bk := &models.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		PortID:    req.PortID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		CreatedAt: now,
	}
	if covered {
		bk.Amount = 0
		bk.PaymentStatus = models.PaymentPaid
		bk.PaymentMethod = "subscription"
	} else {
		bk.Amount = CalculateAmount(req.StartTime, req.EndTime)
		bk.PaymentStatus = models.PaymentPending
	}

	if err := s.Repo.Create(bk); err != nil {
		logger.Error("failed to create booking", zap.Error(err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if covered {
		s.scheduleReminder(bk, port.Name)
	}

	logger.Info("booking created",
		zap.String("bookingID", bk.ID),
		zap.String("portID", bk.PortID),
		zap.String("paymentStatus", bk.PaymentStatus))
	return bk, nil
}

// ListUserBookings returns a user's bookings with ports joined in.
func (s *DefaultBookingService) ListUserBookings(userID string) ([]models.BookingView, error) {
	logger := utils.GetLogger().With(zap.String("service", "booking"))

	bookings, err := s.Repo.ListByUser(userID)
	if err != nil {
		logger.Error("failed to list bookings", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	ports := make(map[string]*models.Port)
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		port, ok := ports[b.PortID]
		if !ok {
			port, err = s.PortRepo.GetByID(b.PortID)
			if err != nil {
				logger.Error("failed to fetch port for booking", zap.String("portID", b.PortID), zap.Error(err))
				return nil, fmt.Errorf("failed to fetch port: %w", err)
			}
			ports[b.PortID] = port
		}
		views = append(views, models.BookingView{Booking: b, Port: port})
	}
	return views, nil
}

// CancelBooking removes or refunds a booking owned by the user.
func (s *DefaultBookingService) CancelBooking(userID, bookingID string) (bool, error) {
	logger := utils.GetLogger().With(zap.String("service", "booking"))

	bk, err := s.Repo.GetByID(bookingID)
	if err != nil {
		logger.Error("failed to fetch booking", zap.String("bookingID", bookingID), zap.Error(err))
		return false, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if bk == nil {
		return false, NewNotFoundError("booking", bookingID)
	}
	if bk.UserID != userID {
		return false, NewForbiddenError("booking does not belong to user")
	}

	if bk.PaymentStatus == models.PaymentPaid {
		bk.PaymentStatus = models.PaymentRefunded
		if err := s.Repo.Update(bk); err != nil {
			logger.Error("failed to refund booking", zap.String("bookingID", bookingID), zap.Error(err))
			return false, fmt.Errorf("failed to refund booking: %w", err)
		}
		logger.Info("booking refunded", zap.String("bookingID", bookingID))
		return true, nil
	}

	if err := s.Repo.Delete(bookingID); err != nil {
		logger.Error("failed to delete booking", zap.String("bookingID", bookingID), zap.Error(err))
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}
	logger.Info("booking cancelled", zap.String("bookingID", bookingID))
	return false, nil
}

// subscriptionCovers reports whether the user has an active subscription with
// quota remaining for its current window.
func (s *DefaultBookingService) subscriptionCovers(userID string, now time.Time) (bool, error) {
	logger := utils.GetLogger().With(zap.String("service", "booking"))

	sub, err := s.SubscriptionRepo.GetActiveByUser(userID)
	if err != nil {
		logger.Error("failed to fetch subscription", zap.String("userID", userID), zap.Error(err))
		return false, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	if sub == nil || now.After(sub.EndDate) {
		return false, nil
	}

	plan, err := s.SubscriptionRepo.GetPlanByID(sub.PlanID)
	if err != nil {
		logger.Error("failed to fetch plan", zap.String("planID", sub.PlanID), zap.Error(err))
		return false, fmt.Errorf("failed to fetch plan: %w", err)
	}
	if plan == nil {
		return false, nil
	}

	used, err := s.Repo.CountPaidByUserInWindow(userID, sub.StartDate, sub.EndDate)
	if err != nil {
		logger.Error("failed to count subscription usage", zap.String("userID", userID), zap.Error(err))
		return false, fmt.Errorf("failed to count subscription usage: %w", err)
	}
	return used < plan.BookingLimit, nil
}

func (s *DefaultBookingService) scheduleReminder(bk *models.Booking, portName string) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleBookingReminder(*bk, portName); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder",
			zap.String("bookingID", bk.ID), zap.Error(err))
	}
}

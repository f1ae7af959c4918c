package subscription

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "voltport/database/repository/booking"
	subscriptionRepo "voltport/database/repository/subscription"
	"voltport/models"
	"voltport/utils"
)

// Window lengths per plan interval.
const (
	weeklyDuration  = 7 * 24 * time.Hour
	monthlyDuration = 30 * 24 * time.Hour
)

// CreatePlanRequest carries the fields for a new subscription plan.
type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	PlanType     string  `json:"planType" binding:"required"`
	BookingLimit int64   `json:"bookingLimit" binding:"required"`
	Price        float64 `json:"price" binding:"required"`
}

type SubscriptionService interface {
	// ListPlans returns the active plans, cheapest first.
	ListPlans() ([]models.SubscriptionPlan, error)
	// CreatePlan registers a new purchasable plan.
	CreatePlan(req CreatePlanRequest) (*models.SubscriptionPlan, error)
	// Subscribe puts the user on a plan, replacing any active subscription.
	Subscribe(userID, planID string) (*models.SubscriptionView, error)
	// ListUserSubscriptions returns the user's active subscriptions with
	// plan details and usage attached.
	ListUserSubscriptions(userID string) ([]models.SubscriptionView, error)
	// CheckLimit reports whether the user can still book under their
	// subscription, with the remaining quota.
	CheckLimit(userID string) (*LimitStatus, error)
}

// LimitStatus summarizes a user's subscription quota.
type LimitStatus struct {
	HasSubscription   bool  `json:"hasSubscription"`
	CanBook           bool  `json:"canBook"`
	BookingsUsed      int64 `json:"bookingsUsed"`
	BookingsRemaining int64 `json:"bookingsRemaining"`
}

// DefaultSubscriptionService is the production implementation.
type DefaultSubscriptionService struct {
	Repo        subscriptionRepo.SubscriptionRepository
	BookingRepo bookingRepo.BookingRepository
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultSubscriptionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListPlans fetches the active plans.
func (s *DefaultSubscriptionService) ListPlans() ([]models.SubscriptionPlan, error) {
	plans, err := s.Repo.ListActivePlans()
	if err != nil {
		utils.GetLogger().Error("failed to list plans", zap.Error(err))
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// CreatePlan registers a new purchasable plan.
func (s *DefaultSubscriptionService) CreatePlan(req CreatePlanRequest) (*models.SubscriptionPlan, error) {
	if req.PlanType != models.PlanWeekly && req.PlanType != models.PlanMonthly {
		return nil, fmt.Errorf("plan type must be %q or %q", models.PlanWeekly, models.PlanMonthly)
	}
	if req.BookingLimit <= 0 {
		return nil, fmt.Errorf("booking limit must be positive")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	plan := &models.SubscriptionPlan{
		ID:           uuid.New().String(),
		Name:         req.Name,
		PlanType:     req.PlanType,
		BookingLimit: req.BookingLimit,
		Price:        req.Price,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.CreatePlan(plan); err != nil {
		utils.GetLogger().Error("failed to create plan", zap.Error(err))
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return plan, nil
}

// Subscribe creates a new subscription for the plan's interval, deactivating
// any existing subscription first so at most one is active per user.
func (s *DefaultSubscriptionService) Subscribe(userID, planID string) (*models.SubscriptionView, error) {
	logger := utils.GetLogger().With(zap.String("service", "subscription"))

	plan, err := s.Repo.GetPlanByID(planID)
	if err != nil {
		logger.Error("failed to fetch plan", zap.String("planID", planID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan with id %s not found", planID)
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("plan %s is no longer available", plan.Name)
	}

	var duration time.Duration
	switch plan.PlanType {
	case models.PlanWeekly:
		duration = weeklyDuration
	case models.PlanMonthly:
		duration = monthlyDuration
	default:
		return nil, fmt.Errorf("unknown plan type %q", plan.PlanType)
	}

	if err := s.Repo.DeactivateByUser(userID); err != nil {
		logger.Error("failed to deactivate previous subscriptions", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to deactivate previous subscriptions: %w", err)
	}

	now := s.now()
	sub := &models.UserSubscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.Add(duration),
		IsActive:  true,
		CreatedAt: now,
	}
	if err := s.Repo.CreateSubscription(sub); err != nil {
		logger.Error("failed to create subscription", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	logger.Info("user subscribed",
		zap.String("userID", userID),
		zap.String("plan", plan.Name),
		zap.Time("endDate", sub.EndDate))

	return &models.SubscriptionView{
		UserSubscription:  *sub,
		Plan:              plan,
		BookingsUsed:      0,
		BookingsRemaining: plan.BookingLimit,
	}, nil
}

// ListUserSubscriptions attaches plan and usage data to each active
// subscription.
func (s *DefaultSubscriptionService) ListUserSubscriptions(userID string) ([]models.SubscriptionView, error) {
	logger := utils.GetLogger().With(zap.String("service", "subscription"))

	subs, err := s.Repo.ListActiveByUser(userID)
	if err != nil {
		logger.Error("failed to list subscriptions", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	views := make([]models.SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		view, err := s.buildView(sub)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// CheckLimit computes the quota status for the user's active subscription.
func (s *DefaultSubscriptionService) CheckLimit(userID string) (*LimitStatus, error) {
	logger := utils.GetLogger().With(zap.String("service", "subscription"))

	sub, err := s.Repo.GetActiveByUser(userID)
	if err != nil {
		logger.Error("failed to fetch subscription", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch subscription: %w", err)
	}
	if sub == nil || s.now().After(sub.EndDate) {
		return &LimitStatus{}, nil
	}

	view, err := s.buildView(*sub)
	if err != nil {
		return nil, err
	}

	return &LimitStatus{
		HasSubscription:   true,
		CanBook:           view.BookingsRemaining > 0,
		BookingsUsed:      view.BookingsUsed,
		BookingsRemaining: view.BookingsRemaining,
	}, nil
}

func (s *DefaultSubscriptionService) buildView(sub models.UserSubscription) (*models.SubscriptionView, error) {
	plan, err := s.Repo.GetPlanByID(sub.PlanID)
	if err != nil {
		utils.GetLogger().Error("failed to fetch plan", zap.String("planID", sub.PlanID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}

	used, err := s.BookingRepo.CountPaidByUserInWindow(sub.UserID, sub.StartDate, sub.EndDate)
	if err != nil {
		utils.GetLogger().Error("failed to count subscription usage", zap.String("userID", sub.UserID), zap.Error(err))
		return nil, fmt.Errorf("failed to count subscription usage: %w", err)
	}

	view := &models.SubscriptionView{
		UserSubscription: sub,
		Plan:             plan,
		BookingsUsed:     used,
	}
	if plan != nil {
		remaining := plan.BookingLimit - used
		if remaining < 0 {
			remaining = 0
		}
		view.BookingsRemaining = remaining
	}
	return view, nil
}

package models

import "time"

// Subscription plan periods.
const (
	PlanWeekly  = "weekly"
	PlanMonthly = "monthly"
)

// SubscriptionPlan is a purchasable booking bundle.
type SubscriptionPlan struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	PlanType     string    `bson:"plan_type" json:"planType"` // "weekly" or "monthly"
	BookingLimit int64     `bson:"booking_limit" json:"bookingLimit"`
	Price        float64   `bson:"price" json:"price"`
	IsActive     bool      `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time `bson:"created_at" json:"-"`
}

// UserSubscription ties a user to a plan for a period. It is active while
// IsActive is set and the current instant is not past EndDate.
type UserSubscription struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	PlanID    string    `bson:"plan_id" json:"planId"`
	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`
	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// SubscriptionView is a subscription joined with its plan and current usage.
type SubscriptionView struct {
	UserSubscription
	Plan              *SubscriptionPlan `json:"plan,omitempty"`
	BookingsUsed      int64             `json:"bookingsUsed"`
	BookingsRemaining int64             `json:"bookingsRemaining"`
}

package subscriptionRepo

import (
	"voltport/models"
)

// SubscriptionRepository defines data access for subscription plans and
// user subscriptions.
type SubscriptionRepository interface {
	// ListActivePlans retrieves active plans ordered by price ascending.
	ListActivePlans() ([]models.SubscriptionPlan, error)
	// GetPlanByID retrieves a plan by its unique ID, or nil when absent.
	GetPlanByID(id string) (*models.SubscriptionPlan, error)
	// CreatePlan inserts a new plan record.
	CreatePlan(plan *models.SubscriptionPlan) error

	// GetActiveByUser retrieves the user's active subscription, or nil.
	GetActiveByUser(userID string) (*models.UserSubscription, error)
	// ListActiveByUser retrieves the user's active subscriptions, newest first.
	ListActiveByUser(userID string) ([]models.UserSubscription, error)
	// CreateSubscription inserts a new user subscription record.
	CreateSubscription(sub *models.UserSubscription) error
	// DeactivateByUser clears the active flag on all of a user's subscriptions.
	DeactivateByUser(userID string) error
	// CountActiveByUser counts a user's active subscriptions.
	CountActiveByUser(userID string) (int64, error)
	// CountActive counts active subscriptions across all users.
	CountActive() (int64, error)
}

package subscriptionRepo

import (
	"context"
	"fmt"
	"time"

	"voltport/database"
	"voltport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubscriptionRepo implements SubscriptionRepository using MongoDB, with
// separate collections for plans and user subscriptions.
type MongoSubscriptionRepo struct {
	planColl *mongo.Collection
	subColl  *mongo.Collection
}

// NewMongoSubscriptionRepo creates a new SubscriptionRepository using MongoDB.
func NewMongoSubscriptionRepo() SubscriptionRepository {
	repo := &MongoSubscriptionRepo{
		planColl: database.Collection("subscription_plans"),
		subColl:  database.Collection("user_subscriptions"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.planColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create plan indexes: %w", err)
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}
	if _, err := r.subColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create subscription indexes: %w", err)
	}
	return nil
}

// ListActivePlans retrieves active plans ordered by price ascending.
func (r *MongoSubscriptionRepo) ListActivePlans() ([]models.SubscriptionPlan, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := r.planColl.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []models.SubscriptionPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode plans: %w", err)
	}
	return plans, nil
}

// GetPlanByID retrieves a plan by ID. Returns nil when not found.
func (r *MongoSubscriptionRepo) GetPlanByID(id string) (*models.SubscriptionPlan, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var plan models.SubscriptionPlan
	if err := r.planColl.FindOne(ctx, bson.M{"id": id}).Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch plan with id %s: %w", id, err)
	}
	return &plan, nil
}

// CreatePlan inserts a new plan document.
func (r *MongoSubscriptionRepo) CreatePlan(plan *models.SubscriptionPlan) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	if _, err := r.planColl.InsertOne(ctx, plan); err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// GetActiveByUser retrieves the user's active subscription. Returns nil when
// the user has none.
func (r *MongoSubscriptionRepo) GetActiveByUser(userID string) (*models.UserSubscription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "is_active": true}
	opts := options.FindOne().SetSort(bson.D{{Key: "start_date", Value: -1}})

	var sub models.UserSubscription
	if err := r.subColl.FindOne(ctx, filter, opts).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch subscription for user %s: %w", userID, err)
	}
	return &sub, nil
}

// ListActiveByUser retrieves the user's active subscriptions, newest first.
func (r *MongoSubscriptionRepo) ListActiveByUser(userID string) ([]models.UserSubscription, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := r.subColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var subs []models.UserSubscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscriptions: %w", err)
	}
	return subs, nil
}

// CreateSubscription inserts a new user subscription document.
func (r *MongoSubscriptionRepo) CreateSubscription(sub *models.UserSubscription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	if _, err := r.subColl.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// DeactivateByUser clears the active flag on all of a user's subscriptions.
func (r *MongoSubscriptionRepo) DeactivateByUser(userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "is_active": true}
	update := bson.M{"$set": bson.M{"is_active": false}}
	if _, err := r.subColl.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to deactivate subscriptions for user %s: %w", userID, err)
	}
	return nil
}

// CountActiveByUser counts a user's active subscriptions.
func (r *MongoSubscriptionRepo) CountActiveByUser(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.subColl.CountDocuments(ctx, bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions for user %s: %w", userID, err)
	}
	return n, nil
}

// CountActive counts active subscriptions across all users.
func (r *MongoSubscriptionRepo) CountActive() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.subColl.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	return n, nil
}

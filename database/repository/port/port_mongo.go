package portRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"voltport/database"
	"voltport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPortRepo implements PortRepository using MongoDB.
type MongoPortRepo struct {
	coll *mongo.Collection
}

// NewMongoPortRepo creates a new instance of PortRepository using MongoDB.
func NewMongoPortRepo() PortRepository {
	coll := database.Collection("ports")
	repo := &MongoPortRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPortRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a port by its unique ID. Returns nil when not found.
func (r *MongoPortRepo) GetByID(id string) (*models.Port, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var port models.Port
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&port); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch port with id %s: %w", id, err)
	}
	return &port, nil
}

// cityFilter builds the listing filter. The city value is matched as a
// literal, case-insensitive substring, never as a pattern.
func cityFilter(city string) bson.M {
	if city == "" {
		return bson.M{}
	}
	return bson.M{"city": bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(city), Options: "i"}}}
}

// GetAll retrieves ports, optionally filtered by city substring.
func (r *MongoPortRepo) GetAll(city string) ([]models.Port, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, cityFilter(city), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	defer cursor.Close(ctx)

	var ports []models.Port
	if err := cursor.All(ctx, &ports); err != nil {
		return nil, fmt.Errorf("failed to decode ports: %w", err)
	}
	return ports, nil
}

// Create inserts a new port document.
func (r *MongoPortRepo) Create(port *models.Port) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	port.CreatedAt = now
	port.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, port)
	if err != nil {
		return fmt.Errorf("failed to create port: %w", err)
	}
	return nil
}

// Update replaces an existing port document, schedule included.
func (r *MongoPortRepo) Update(port *models.Port) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	port.UpdatedAt = time.Now()
	filter := bson.M{"id": port.ID}
	update := bson.M{"$set": port}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update port with id %s: %w", port.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("port with id %s not found", port.ID)
	}
	return nil
}

// Delete removes a port document by its ID.
func (r *MongoPortRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete port with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("port with id %s not found", id)
	}
	return nil
}

// Count returns the total number of ports.
func (r *MongoPortRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count ports: %w", err)
	}
	return n, nil
}

// CountActive returns the number of active ports.
func (r *MongoPortRepo) CountActive() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count active ports: %w", err)
	}
	return n, nil
}

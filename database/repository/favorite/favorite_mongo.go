package favoriteRepo

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

// MongoFavoriteRepo implements FavoriteRepository using MongoDB.
type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

// NewMongoFavoriteRepo creates a new FavoriteRepository using MongoDB.
func NewMongoFavoriteRepo() FavoriteRepository {
	coll := database.Collection("favorites")
	repo := &MongoFavoriteRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFavoriteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One favorite per (user, port).
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "port_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new favorite document.
func (r *MongoFavoriteRepo) Create(fav *models.Favorite) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, fav); err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// GetByUserAndPort retrieves the favorite for (user, port). Returns nil when
// not found.
func (r *MongoFavoriteRepo) GetByUserAndPort(userID, portID string) (*models.Favorite, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var fav models.Favorite
	filter := bson.M{"user_id": userID, "port_id": portID}
	if err := r.coll.FindOne(ctx, filter).Decode(&fav); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch favorite: %w", err)
	}
	return &fav, nil
}

// ListByUser retrieves a user's favorites, newest first.
func (r *MongoFavoriteRepo) ListByUser(userID string) ([]models.Favorite, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var favs []models.Favorite
	if err := cursor.All(ctx, &favs); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return favs, nil
}

// Delete removes the favorite for (user, port).
func (r *MongoFavoriteRepo) Delete(userID, portID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "port_id": portID})
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// CountByUser counts a user's favorites.
func (r *MongoFavoriteRepo) CountByUser(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites for user %s: %w", userID, err)
	}
	return n, nil
}

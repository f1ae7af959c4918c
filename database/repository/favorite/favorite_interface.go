package favoriteRepo

import (
	"voltport/models"
)

// FavoriteRepository defines data access for a user's saved ports.
type FavoriteRepository interface {
	// Create inserts a new favorite record.
	Create(fav *models.Favorite) error
	// GetByUserAndPort retrieves the favorite for (user, port), or nil.
	GetByUserAndPort(userID, portID string) (*models.Favorite, error)
	// ListByUser retrieves a user's favorites, newest first.
	ListByUser(userID string) ([]models.Favorite, error)
	// Delete removes the favorite for (user, port); reports whether one existed.
	Delete(userID, portID string) (bool, error)
	// CountByUser counts a user's favorites.
	CountByUser(userID string) (int64, error)
}

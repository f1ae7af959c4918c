package userRepo

import (
	"voltport/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its lowercase email address, or nil when
	// no such user exists.
	GetByEmail(email string) (*models.User, error)
	// GetAll retrieves all users, newest first.
	GetAll() ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// Count returns the total number of users.
	Count() (int64, error)
}

package user

import (
	bookingRepo "voltport/database/repository/booking"
	favoriteRepo "voltport/database/repository/favorite"
	subscriptionRepo "voltport/database/repository/subscription"
	userRepo "voltport/database/repository/user"
	"voltport/models"
)

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// SignupRequest carries the fields needed to create an account.
type SignupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries the mutable profile fields.
type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// AdminUpdateUserRequest extends UpdateUserRequest with admin-only fields.
type AdminUpdateUserRequest struct {
	UpdateUserRequest
	IsAdmin *bool `json:"isAdmin"`
}

type UserService interface {
	// Authentication
	RegisterUser(req SignupRequest) (*AuthResponse, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	AuthenticateAdmin(email, password string) (*AuthResponse, error)
	RevokeUserAuthToken(userID string) error

	// User Management
	GetUserByID(userID string) (*models.User, error)
	UpdateUser(userID string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID string) error

	// Admin / Utility
	GetAllUsers() ([]models.AdminUserView, error)
	UpdateUserAdmin(userID string, req AdminUpdateUserRequest) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo             userRepo.UserRepository
	BookingRepo      bookingRepo.BookingRepository
	FavoriteRepo     favoriteRepo.FavoriteRepository
	SubscriptionRepo subscriptionRepo.SubscriptionRepository
}

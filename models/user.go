package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FullName     string    `bson:"full_name" json:"fullName"`
	Email        string    `bson:"email" json:"email"` // stored lowercase
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `bson:"created_at" json:"-"`
	UpdatedAt    time.Time `bson:"updated_at" json:"-"`
}

// AdminUserView is the user representation returned by the admin console,
// enriched with per-user usage counters.
type AdminUserView struct {
	User
	BookingsCount      int64 `json:"bookingsCount"`
	FavoritesCount     int64 `json:"favoritesCount"`
	SubscriptionsCount int64 `json:"subscriptionsCount"`
}

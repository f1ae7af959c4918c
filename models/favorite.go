package models

import "time"

// Favorite marks a port as saved by a user. At most one per (user, port).
type Favorite struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	PortID    string    `bson:"port_id" json:"portId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

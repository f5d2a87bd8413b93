package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. Accounts are created by registration
// only; no exposed operation mutates or deletes them.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id,omitempty"`
	Email        string        `bson:"email"          json:"email"`
	PasswordHash string        `bson:"password_hash"  json:"-"`
	Verified     bool          `bson:"verified"       json:"verified"`
	CreatedAt    time.Time     `bson:"created_at"     json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"     json:"updated_at"`
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Medication represents a medication record. Names are not unique; the
// interactions payload is schema-free and stored as provided.
type Medication struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string        `bson:"name"          json:"name"`
	Interactions any           `bson:"interactions"  json:"interactions"`
	Source       string        `bson:"source"        json:"source"`
	CreatedAt    time.Time     `bson:"created_at"    json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"    json:"updated_at"`
}

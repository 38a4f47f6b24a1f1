package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is independently seeded and referenced by User.Roles. Users hold
// role ids only; permission evaluation happens elsewhere.
type Role struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string        `bson:"name" json:"name"`
	Permissions []string      `bson:"permissions" json:"permissions"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

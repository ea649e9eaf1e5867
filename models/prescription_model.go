package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription is the standalone admin-reviewable record. The image is a
// reference returned by the upload endpoint, not raw bytes.
type Prescription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Image     string             `bson:"image" json:"image" validate:"required"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"productId,omitempty"`
	Name                 string             `bson:"name" json:"name" validate:"required"`
	Slug                 string             `bson:"slug" json:"slug" validate:"required"`
	Brand                string             `bson:"brand" json:"brand"`
	Description          string             `bson:"description" json:"description"`
	Category             string             `bson:"category" json:"category" validate:"required"`
	Image                string             `bson:"image" json:"image"`
	Price                float64            `bson:"price" json:"price" validate:"required,gt=0"`
	CountInStock         int                `bson:"countInStock" json:"countInStock"`
	Rating               float64            `bson:"rating" json:"rating"`
	NumReviews           int                `bson:"numReviews" json:"numReviews"`
	RequiresPrescription bool               `bson:"requiresPrescription" json:"requiresPrescription"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

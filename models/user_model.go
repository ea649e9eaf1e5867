package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name" validate:"required"`
	Email             string             `bson:"email" json:"email" validate:"required,email"`
	Password          string             `bson:"password" json:"-"`
	IsAdmin           bool               `bson:"isAdmin" json:"isAdmin"`
	ResetToken        string             `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpires time.Time          `bson:"resetTokenExpires,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Principal is the verified identity carried by a session token.
type Principal struct {
	ID      primitive.ObjectID
	Name    string
	Email   string
	IsAdmin bool
}

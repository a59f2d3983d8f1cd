package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Advisor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Title        string             `bson:"title" json:"title"`
	Credentials  string             `bson:"credentials,omitempty" json:"credentials,omitempty"`
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Photo        string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Order        int                `bson:"order" json:"order"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

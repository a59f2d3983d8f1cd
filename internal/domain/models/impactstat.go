package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImpactStat is a homepage counter such as "5000+ Beneficiaries".
type ImpactStat struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Label       string             `bson:"label" json:"label"`
	Value       string             `bson:"value" json:"value"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

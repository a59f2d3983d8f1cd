package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	InitiativeCategories = []string{"healthcare", "education", "welfare", "environment", "other"}
	InitiativeStatuses   = []string{"ongoing", "passed", "upcoming"}
)

// Initiative is a program or campaign run by the organization.
// Slug is unique and derived from the title when not supplied.
type Initiative struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Excerpt       string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	FeaturedImage string             `bson:"featured_image,omitempty" json:"featuredImage,omitempty"`
	Images        []string           `bson:"images" json:"images"`
	Category      string             `bson:"category" json:"category"`
	Status        string             `bson:"status" json:"status"`
	StartDate     *time.Time         `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate       *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	Beneficiaries int                `bson:"beneficiaries,omitempty" json:"beneficiaries,omitempty"`
	Objectives    []string           `bson:"objectives" json:"objectives"`
	IsHighlighted bool               `bson:"is_highlighted" json:"isHighlighted"`
	Order         int                `bson:"order" json:"order"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

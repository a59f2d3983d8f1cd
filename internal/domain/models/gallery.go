package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultGalleryCategory is assigned when an image is created without one.
const DefaultGalleryCategory = "general"

type GalleryImage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL     string             `bson:"image_url" json:"imageUrl"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
	Category     string             `bson:"category" json:"category"`
	Event        string             `bson:"event,omitempty" json:"event,omitempty"`
	Order        int                `bson:"order" json:"order"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

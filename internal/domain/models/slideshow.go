package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxSlides caps the number of hero carousel slides. Order is in [0, MaxSlides).
const MaxSlides = 10

// CropArea is the focal rectangle chosen in the admin cropper.
type CropArea struct {
	X      float64 `bson:"x" json:"x"`
	Y      float64 `bson:"y" json:"y"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
}

type SlideshowImage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ImageURL   string             `bson:"image_url" json:"imageUrl"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle   string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ButtonText string             `bson:"button_text,omitempty" json:"buttonText,omitempty"`
	ButtonLink string             `bson:"button_link,omitempty" json:"buttonLink,omitempty"`
	Order      int                `bson:"order" json:"order"`
	CropArea   *CropArea          `bson:"crop_area,omitempty" json:"cropArea,omitempty"`
	IsActive   bool               `bson:"is_active" json:"isActive"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

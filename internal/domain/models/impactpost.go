package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImpactPost is a published impact story. Content is markdown.
type ImpactPost struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Slug             string             `bson:"slug" json:"slug"`
	Content          string             `bson:"content" json:"content"`
	Excerpt          string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	FeaturedImage    string             `bson:"featured_image,omitempty" json:"featuredImage,omitempty"`
	Images           []string           `bson:"images" json:"images"`
	Category         string             `bson:"category,omitempty" json:"category,omitempty"`
	BeneficiaryCount int                `bson:"beneficiary_count,omitempty" json:"beneficiaryCount,omitempty"`
	AreasImpacted    []string           `bson:"areas_impacted" json:"areasImpacted"`
	Tags             []string           `bson:"tags" json:"tags"`
	Author           string             `bson:"author,omitempty" json:"author,omitempty"`
	PublishedAt      *time.Time         `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	IsPublished      bool               `bson:"is_published" json:"isPublished"`
	ViewCount        int                `bson:"view_count" json:"viewCount"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

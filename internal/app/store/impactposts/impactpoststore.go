// internal/app/store/impactposts/impactpoststore.go
package impactpoststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/app/system/slug"
	"github.com/dalemusser/duasite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "impact_posts"

// ErrDuplicateSlug is returned when another impact post already owns the slug.
// It is a store failure, so the API reports it as an internal error.
var ErrDuplicateSlug = errors.New("impact post: duplicate slug")

// newestPublished sorts published posts first by publish date, then drafts by creation.
var newestPublished = bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}

type Input struct {
	Title            *string    `json:"title" bson:"title,omitempty"`
	Slug             *string    `json:"slug" bson:"slug,omitempty"`
	Content          *string    `json:"content" bson:"content,omitempty"`
	Excerpt          *string    `json:"excerpt" bson:"excerpt,omitempty"`
	FeaturedImage    *string    `json:"featuredImage" bson:"featured_image,omitempty" validate:"omitempty,httpurl"`
	Images           *[]string  `json:"images" bson:"images,omitempty" validate:"omitempty,dive,httpurl"`
	Category         *string    `json:"category" bson:"category,omitempty"`
	BeneficiaryCount *int       `json:"beneficiaryCount" bson:"beneficiary_count,omitempty" validate:"omitempty,gte=0"`
	AreasImpacted    *[]string  `json:"areasImpacted" bson:"areas_impacted,omitempty"`
	Tags             *[]string  `json:"tags" bson:"tags,omitempty"`
	Author           *string    `json:"author" bson:"author,omitempty"`
	PublishedAt      *time.Time `json:"publishedAt" bson:"published_at,omitempty"`
	IsPublished      *bool      `json:"isPublished" bson:"is_published,omitempty"`
	IsActive         *bool      `json:"isActive" bson:"is_active,omitempty"`
}

// Filter narrows List.
type Filter struct {
	ActiveOnly    bool
	PublishedOnly bool
	Category      string
	Tag           string
	Limit         int64
}

type Store struct {
	c crud.Collection[models.ImpactPost]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.ImpactPost](db, Collection)}
}

// List returns posts newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.ImpactPost, error) {
	filter := crud.ActiveFilter(f.ActiveOnly)
	if f.PublishedOnly {
		filter["is_published"] = true
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	return s.c.Find(ctx, filter, newestPublished, f.Limit)
}

// Public returns the posts visible on the public site.
func (s *Store) Public(ctx context.Context, limit int64) ([]models.ImpactPost, error) {
	return s.List(ctx, Filter{ActiveOnly: true, PublishedOnly: true, Limit: limit})
}

// Create inserts a post. Publishing without a date stamps the current time.
func (s *Store) Create(ctx context.Context, in Input) (models.ImpactPost, error) {
	if err := inputval.Require(
		inputval.Field{Name: "title", Value: in.Title},
		inputval.Field{Name: "content", Value: in.Content},
	); err != nil {
		return models.ImpactPost{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.ImpactPost{}, err
	}
	switch {
	case in.Slug != nil && *in.Slug != "":
		v := slug.Make(*in.Slug)
		in.Slug = &v
	default:
		v := slug.Make(*in.Title)
		in.Slug = &v
	}
	if *in.Slug == "" {
		return models.ImpactPost{}, apierr.Validation("slug must contain letters or digits")
	}
	now := time.Now().UTC()
	if in.IsPublished != nil && *in.IsPublished && in.PublishedAt == nil {
		in.PublishedAt = &now
	}
	p, err := crud.Overlay(models.ImpactPost{
		ID:            primitive.NewObjectID(),
		Images:        []string{},
		AreasImpacted: []string{},
		Tags:          []string{},
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, in)
	if err != nil {
		return models.ImpactPost{}, err
	}
	out, err := s.c.Insert(ctx, p)
	if wafflemongo.IsDup(err) {
		return models.ImpactPost{}, ErrDuplicateSlug
	}
	return out, err
}

// Get looks up by id first and falls back to the slug.
func (s *Store) Get(ctx context.Context, idOrSlug string) (models.ImpactPost, error) {
	if oid, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		p, err := s.c.FindOne(ctx, bson.M{"_id": oid})
		if err != mongo.ErrNoDocuments {
			return p, err
		}
	}
	return s.c.FindOne(ctx, bson.M{"slug": idOrSlug})
}

// ViewBySlug returns a published, active post and counts the view.
func (s *Store) ViewBySlug(ctx context.Context, sl string) (models.ImpactPost, error) {
	var p models.ImpactPost
	err := s.c.C.FindOneAndUpdate(ctx,
		bson.M{"slug": sl, "is_published": true, "is_active": true},
		bson.M{"$inc": bson.M{"view_count": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	return p, err
}

// Update applies the supplied fields. Switching isPublished on for a post
// that never had a publish date stamps one.
func (s *Store) Update(ctx context.Context, id string, in Input) (models.ImpactPost, error) {
	if err := inputval.NotBlank(
		inputval.Field{Name: "title", Value: in.Title},
		inputval.Field{Name: "content", Value: in.Content},
	); err != nil {
		return models.ImpactPost{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.ImpactPost{}, err
	}
	if in.Slug != nil {
		if *in.Slug == "" {
			in.Slug = nil
		} else {
			v := slug.Make(*in.Slug)
			if v == "" {
				return models.ImpactPost{}, apierr.Validation("slug must contain letters or digits")
			}
			in.Slug = &v
		}
	}
	if in.IsPublished != nil && *in.IsPublished && in.PublishedAt == nil {
		cur, err := s.c.Get(ctx, id)
		if err != nil {
			return models.ImpactPost{}, err
		}
		if cur.PublishedAt == nil {
			now := time.Now().UTC()
			in.PublishedAt = &now
		}
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.ImpactPost{}, err
	}
	out, err := s.c.Set(ctx, id, set)
	if wafflemongo.IsDup(err) {
		return models.ImpactPost{}, ErrDuplicateSlug
	}
	return out, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

// CountPublished returns the number of publicly visible posts.
func (s *Store) CountPublished(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, bson.M{"is_active": true, "is_published": true})
}

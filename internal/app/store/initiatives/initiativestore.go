// internal/app/store/initiatives/initiativestore.go
package initiativestore

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
)

const Collection = "initiatives"

// byOrderNewest sorts by order, newest first within the same order.
var byOrderNewest = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}}

// ErrDuplicateSlug is returned when another initiative already owns the slug.
// It is a store failure, so the API reports it as an internal error.
var ErrDuplicateSlug = errors.New("initiative: duplicate slug")

type Input struct {
	Title         *string    `json:"title" bson:"title,omitempty"`
	Slug          *string    `json:"slug" bson:"slug,omitempty"`
	Description   *string    `json:"description" bson:"description,omitempty"`
	Excerpt       *string    `json:"excerpt" bson:"excerpt,omitempty"`
	FeaturedImage *string    `json:"featuredImage" bson:"featured_image,omitempty" validate:"omitempty,httpurl"`
	Images        *[]string  `json:"images" bson:"images,omitempty" validate:"omitempty,dive,httpurl"`
	Category      *string    `json:"category" bson:"category,omitempty" validate:"omitempty,oneof=healthcare education welfare environment other"`
	Status        *string    `json:"status" bson:"status,omitempty" validate:"omitempty,oneof=ongoing passed upcoming"`
	StartDate     *time.Time `json:"startDate" bson:"start_date,omitempty"`
	EndDate       *time.Time `json:"endDate" bson:"end_date,omitempty"`
	Location      *string    `json:"location" bson:"location,omitempty"`
	Beneficiaries *int       `json:"beneficiaries" bson:"beneficiaries,omitempty" validate:"omitempty,gte=0"`
	Objectives    *[]string  `json:"objectives" bson:"objectives,omitempty"`
	IsHighlighted *bool      `json:"isHighlighted" bson:"is_highlighted,omitempty"`
	Order         *int       `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive      *bool      `json:"isActive" bson:"is_active,omitempty"`
}

// Filter narrows List. Empty strings and a nil Highlighted match everything.
type Filter struct {
	ActiveOnly  bool
	Category    string
	Status      string
	Highlighted *bool
	Limit       int64
}

type Store struct {
	c crud.Collection[models.Initiative]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.Initiative](db, Collection)}
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Initiative, error) {
	filter := crud.ActiveFilter(f.ActiveOnly)
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Highlighted != nil {
		filter["is_highlighted"] = *f.Highlighted
	}
	return s.c.Find(ctx, filter, byOrderNewest, f.Limit)
}

// normalizeSlug derives the slug from the title when none is supplied and
// canonicalizes a supplied one.
func normalizeSlug(in *Input) error {
	switch {
	case in.Slug != nil && *in.Slug != "":
		v := slug.Make(*in.Slug)
		in.Slug = &v
	case in.Title != nil:
		v := slug.Make(*in.Title)
		in.Slug = &v
	}
	if in.Slug != nil && *in.Slug == "" {
		return apierr.Validation("slug must contain letters or digits")
	}
	return nil
}

// Create inserts an initiative. Category defaults to "other" and Status to
// "ongoing".
func (s *Store) Create(ctx context.Context, in Input) (models.Initiative, error) {
	if err := inputval.Require(
		inputval.Field{Name: "title", Value: in.Title},
		inputval.Field{Name: "description", Value: in.Description},
	); err != nil {
		return models.Initiative{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.Initiative{}, err
	}
	if err := normalizeSlug(&in); err != nil {
		return models.Initiative{}, err
	}
	now := time.Now().UTC()
	it, err := crud.Overlay(models.Initiative{
		ID:         primitive.NewObjectID(),
		Category:   "other",
		Status:     "ongoing",
		Images:     []string{},
		Objectives: []string{},
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, in)
	if err != nil {
		return models.Initiative{}, err
	}
	out, err := s.c.Insert(ctx, it)
	if wafflemongo.IsDup(err) {
		return models.Initiative{}, ErrDuplicateSlug
	}
	return out, err
}

// Get looks up by id first and falls back to the slug.
func (s *Store) Get(ctx context.Context, idOrSlug string) (models.Initiative, error) {
	if oid, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		it, err := s.c.FindOne(ctx, bson.M{"_id": oid})
		if err != mongo.ErrNoDocuments {
			return it, err
		}
	}
	return s.GetBySlug(ctx, idOrSlug)
}

func (s *Store) GetBySlug(ctx context.Context, sl string) (models.Initiative, error) {
	return s.c.FindOne(ctx, bson.M{"slug": sl})
}

// Update applies the supplied fields. A changed title does not rename the
// slug; only an explicit slug does.
func (s *Store) Update(ctx context.Context, id string, in Input) (models.Initiative, error) {
	if err := inputval.NotBlank(
		inputval.Field{Name: "title", Value: in.Title},
		inputval.Field{Name: "description", Value: in.Description},
	); err != nil {
		return models.Initiative{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.Initiative{}, err
	}
	if in.Slug != nil {
		if *in.Slug == "" {
			in.Slug = nil
		} else {
			v := slug.Make(*in.Slug)
			if v == "" {
				return models.Initiative{}, apierr.Validation("slug must contain letters or digits")
			}
			in.Slug = &v
		}
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.Initiative{}, err
	}
	out, err := s.c.Set(ctx, id, set)
	if wafflemongo.IsDup(err) {
		return models.Initiative{}, ErrDuplicateSlug
	}
	return out, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

// CountActive returns the number of visible initiatives.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, crud.ActiveFilter(true))
}

// CountByStatus returns the number of active initiatives with the given status.
func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.c.Count(ctx, bson.M{"is_active": true, "status": status})
}

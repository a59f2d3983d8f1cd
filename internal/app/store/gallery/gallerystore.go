// internal/app/store/gallery/gallerystore.go
package gallerystore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "gallery_images"

type Input struct {
	Title        *string `json:"title" bson:"title,omitempty"`
	Description  *string `json:"description" bson:"description,omitempty"`
	ImageURL     *string `json:"imageUrl" bson:"image_url,omitempty" validate:"omitempty,httpurl"`
	ThumbnailURL *string `json:"thumbnailUrl" bson:"thumbnail_url,omitempty" validate:"omitempty,httpurl"`
	Category     *string `json:"category" bson:"category,omitempty"`
	Event        *string `json:"event" bson:"event,omitempty"`
	Order        *int    `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive" bson:"is_active,omitempty"`
}

// Filter narrows List.
type Filter struct {
	ActiveOnly bool
	Category   string
}

type Store struct {
	c crud.Collection[models.GalleryImage]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.GalleryImage](db, Collection)}
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.GalleryImage, error) {
	filter := crud.ActiveFilter(f.ActiveOnly)
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return s.c.Find(ctx, filter, crud.ByOrder, 0)
}

// Categories returns the distinct categories of active images.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	vals, err := s.c.C.Distinct(ctx, "category", bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

func (s *Store) build(in Input, now time.Time) (models.GalleryImage, error) {
	if err := inputval.Require(inputval.Field{Name: "imageUrl", Value: in.ImageURL}); err != nil {
		return models.GalleryImage{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.GalleryImage{}, err
	}
	img, err := crud.Overlay(models.GalleryImage{
		ID:        primitive.NewObjectID(),
		Category:  models.DefaultGalleryCategory,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.GalleryImage{}, err
	}
	if img.Category == "" {
		img.Category = models.DefaultGalleryCategory
	}
	return img, nil
}

// Create inserts one image. Category defaults to "general".
func (s *Store) Create(ctx context.Context, in Input) (models.GalleryImage, error) {
	img, err := s.build(in, time.Now().UTC())
	if err != nil {
		return models.GalleryImage{}, err
	}
	return s.c.Insert(ctx, img)
}

// CreateMany validates every input first, then inserts them together.
// Nothing is written if any input is invalid.
func (s *Store) CreateMany(ctx context.Context, ins []Input) ([]models.GalleryImage, error) {
	now := time.Now().UTC()
	imgs := make([]models.GalleryImage, 0, len(ins))
	docs := make([]interface{}, 0, len(ins))
	for _, in := range ins {
		img, err := s.build(in, now)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
		docs = append(docs, img)
	}
	if len(docs) == 0 {
		return imgs, nil
	}
	if _, err := s.c.C.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return imgs, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.GalleryImage, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.GalleryImage, error) {
	if err := inputval.NotBlank(inputval.Field{Name: "imageUrl", Value: in.ImageURL}); err != nil {
		return models.GalleryImage{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.GalleryImage{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.GalleryImage{}, err
	}
	return s.c.Set(ctx, id, set)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

// CountActive returns the number of visible images.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, crud.ActiveFilter(true))
}

// internal/app/store/slideshow/slideshowstore.go
package slideshowstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "slideshow_images"

// ErrFull is returned when the carousel already holds MaxSlides slides.
var ErrFull = apierr.Validation("Maximum 10 slideshow images allowed")

type CropInput struct {
	X      *float64 `json:"x" bson:"x,omitempty" validate:"omitempty,gte=0"`
	Y      *float64 `json:"y" bson:"y,omitempty" validate:"omitempty,gte=0"`
	Width  *float64 `json:"width" bson:"width,omitempty" validate:"omitempty,gt=0"`
	Height *float64 `json:"height" bson:"height,omitempty" validate:"omitempty,gt=0"`
}

type Input struct {
	ImageURL   *string    `json:"imageUrl" bson:"image_url,omitempty" validate:"omitempty,httpurl"`
	Title      *string    `json:"title" bson:"title,omitempty"`
	Subtitle   *string    `json:"subtitle" bson:"subtitle,omitempty"`
	ButtonText *string    `json:"buttonText" bson:"button_text,omitempty"`
	ButtonLink *string    `json:"buttonLink" bson:"button_link,omitempty" validate:"omitempty,httpurl"`
	Order      *int       `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0,lte=9"`
	CropArea   *CropInput `json:"cropArea" bson:"crop_area,omitempty"`
	IsActive   *bool      `json:"isActive" bson:"is_active,omitempty"`
}

// Position is one entry of a bulk reorder.
type Position struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type Store struct {
	c crud.Collection[models.SlideshowImage]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.SlideshowImage](db, Collection)}
}

// List returns at most MaxSlides slides in display order.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.SlideshowImage, error) {
	return s.c.Find(ctx, crud.ActiveFilter(activeOnly), crud.ByOrder, models.MaxSlides)
}

// Create appends a slide. The cap counts every slide, active or not, and a
// missing order places the slide last.
func (s *Store) Create(ctx context.Context, in Input) (models.SlideshowImage, error) {
	if err := inputval.Require(inputval.Field{Name: "imageUrl", Value: in.ImageURL}); err != nil {
		return models.SlideshowImage{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.SlideshowImage{}, err
	}
	n, err := s.c.NextOrder(ctx, bson.M{})
	if err != nil {
		return models.SlideshowImage{}, err
	}
	if n >= models.MaxSlides {
		return models.SlideshowImage{}, ErrFull
	}
	if in.Order == nil {
		in.Order = &n
	}
	now := time.Now().UTC()
	img, err := crud.Overlay(models.SlideshowImage{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.SlideshowImage{}, err
	}
	return s.c.Insert(ctx, img)
}

func (s *Store) Get(ctx context.Context, id string) (models.SlideshowImage, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.SlideshowImage, error) {
	if err := inputval.NotBlank(inputval.Field{Name: "imageUrl", Value: in.ImageURL}); err != nil {
		return models.SlideshowImage{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.SlideshowImage{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.SlideshowImage{}, err
	}
	return s.c.Set(ctx, id, crud.Flatten(set))
}

// Reorder applies every position and returns all slides in their new order.
// The whole batch is rejected before any write if an id is malformed or
// unknown, or an order falls outside [0, MaxSlides).
func (s *Store) Reorder(ctx context.Context, positions []Position) ([]models.SlideshowImage, error) {
	oids := make([]primitive.ObjectID, 0, len(positions))
	for _, p := range positions {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, apierr.Validationf("invalid slide id %q", p.ID)
		}
		if p.Order < 0 || p.Order >= models.MaxSlides {
			return nil, apierr.Validationf("order must be between 0 and %d", models.MaxSlides-1)
		}
		oids = append(oids, oid)
	}
	if err := s.requireExisting(ctx, oids); err != nil {
		return nil, err
	}

	writes := make([]mongo.WriteModel, 0, len(positions))
	now := time.Now().UTC()
	for i, p := range positions {
		oid := oids[i]
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": oid}).
			SetUpdate(bson.M{"$set": bson.M{"order": p.Order, "updated_at": now}}))
	}
	if len(writes) > 0 {
		if _, err := s.c.C.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return nil, err
		}
	}
	return s.c.Find(ctx, bson.M{}, crud.ByOrder, 0)
}

// requireExisting returns a validation error naming the first id with no slide.
func (s *Store) requireExisting(ctx context.Context, oids []primitive.ObjectID) error {
	if len(oids) == 0 {
		return nil
	}
	found, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil, 0)
	if err != nil {
		return err
	}
	have := make(map[primitive.ObjectID]bool, len(found))
	for _, img := range found {
		have[img.ID] = true
	}
	for _, oid := range oids {
		if !have[oid] {
			return apierr.Validationf("unknown slide id %q", oid.Hex())
		}
	}
	return nil
}

// Delete removes a slide and renumbers the rest 0..n-1 in their existing order.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.c.Delete(ctx, id); err != nil {
		return err
	}
	return s.renumber(ctx)
}

func (s *Store) renumber(ctx context.Context) error {
	rest, err := s.c.Find(ctx, bson.M{}, crud.ByOrder, 0)
	if err != nil {
		return err
	}
	var writes []mongo.WriteModel
	for i, img := range rest {
		if img.Order == i {
			continue
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": img.ID}).
			SetUpdate(bson.M{"$set": bson.M{"order": i}}))
	}
	if len(writes) == 0 {
		return nil
	}
	_, err = s.c.C.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}

// Count returns the number of slides of any status.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, bson.M{})
}

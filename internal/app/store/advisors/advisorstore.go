// internal/app/store/advisors/advisorstore.go
package advisorstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "advisors"

type Input struct {
	Name         *string `json:"name" bson:"name,omitempty"`
	Title        *string `json:"title" bson:"title,omitempty"`
	Credentials  *string `json:"credentials" bson:"credentials,omitempty"`
	Organization *string `json:"organization" bson:"organization,omitempty"`
	Photo        *string `json:"photo" bson:"photo,omitempty" validate:"omitempty,httpurl"`
	Bio          *string `json:"bio" bson:"bio,omitempty"`
	Email        *string `json:"email" bson:"email,omitempty" validate:"omitempty,looseemail"`
	Order        *int    `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"isActive" bson:"is_active,omitempty"`
}

type Store struct {
	c crud.Collection[models.Advisor]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.Advisor](db, Collection)}
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Advisor, error) {
	return s.c.Find(ctx, crud.ActiveFilter(activeOnly), crud.ByOrder, 0)
}

func (s *Store) Create(ctx context.Context, in Input) (models.Advisor, error) {
	if err := inputval.Require(
		inputval.Field{Name: "name", Value: in.Name},
		inputval.Field{Name: "title", Value: in.Title},
	); err != nil {
		return models.Advisor{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.Advisor{}, err
	}
	now := time.Now().UTC()
	a, err := crud.Overlay(models.Advisor{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.Advisor{}, err
	}
	return s.c.Insert(ctx, a)
}

func (s *Store) Get(ctx context.Context, id string) (models.Advisor, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Advisor, error) {
	if err := inputval.NotBlank(
		inputval.Field{Name: "name", Value: in.Name},
		inputval.Field{Name: "title", Value: in.Title},
	); err != nil {
		return models.Advisor{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.Advisor{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.Advisor{}, err
	}
	return s.c.Set(ctx, id, set)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

// internal/app/store/partners/partnerstore.go
package partnerstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "partners"

type Input struct {
	Name        *string `json:"name" bson:"name,omitempty"`
	Description *string `json:"description" bson:"description,omitempty"`
	Logo        *string `json:"logo" bson:"logo,omitempty" validate:"omitempty,httpurl"`
	Website     *string `json:"website" bson:"website,omitempty" validate:"omitempty,httpurl"`
	Location    *string `json:"location" bson:"location,omitempty"`
	Type        *string `json:"type" bson:"type,omitempty" validate:"omitempty,oneof=collaborator partner sponsor"`
	Order       *int    `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive" bson:"is_active,omitempty"`
}

// Filter narrows List.
type Filter struct {
	ActiveOnly bool
	Type       string
}

type Store struct {
	c crud.Collection[models.Partner]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.Partner](db, Collection)}
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Partner, error) {
	filter := crud.ActiveFilter(f.ActiveOnly)
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return s.c.Find(ctx, filter, crud.ByOrder, 0)
}

// Create inserts a partner; Type defaults to "partner".
func (s *Store) Create(ctx context.Context, in Input) (models.Partner, error) {
	if err := inputval.Require(inputval.Field{Name: "name", Value: in.Name}); err != nil {
		return models.Partner{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.Partner{}, err
	}
	now := time.Now().UTC()
	p, err := crud.Overlay(models.Partner{
		ID:        primitive.NewObjectID(),
		Type:      "partner",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.Partner{}, err
	}
	return s.c.Insert(ctx, p)
}

func (s *Store) Get(ctx context.Context, id string) (models.Partner, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.Partner, error) {
	if err := inputval.NotBlank(inputval.Field{Name: "name", Value: in.Name}); err != nil {
		return models.Partner{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.Partner{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.Partner{}, err
	}
	return s.c.Set(ctx, id, set)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

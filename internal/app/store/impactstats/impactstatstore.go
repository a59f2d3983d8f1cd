// internal/app/store/impactstats/impactstatstore.go
package impactstatstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "impact_stats"

type Input struct {
	Label       *string `json:"label" bson:"label,omitempty"`
	Value       *string `json:"value" bson:"value,omitempty"`
	Description *string `json:"description" bson:"description,omitempty"`
	Icon        *string `json:"icon" bson:"icon,omitempty"`
	Order       *int    `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive" bson:"is_active,omitempty"`
}

type Store struct {
	c crud.Collection[models.ImpactStat]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.ImpactStat](db, Collection)}
}

func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.ImpactStat, error) {
	return s.c.Find(ctx, crud.ActiveFilter(activeOnly), crud.ByOrder, 0)
}

func (s *Store) Create(ctx context.Context, in Input) (models.ImpactStat, error) {
	if err := inputval.Require(
		inputval.Field{Name: "label", Value: in.Label},
		inputval.Field{Name: "value", Value: in.Value},
	); err != nil {
		return models.ImpactStat{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.ImpactStat{}, err
	}
	now := time.Now().UTC()
	st, err := crud.Overlay(models.ImpactStat{
		ID:        primitive.NewObjectID(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.ImpactStat{}, err
	}
	return s.c.Insert(ctx, st)
}

func (s *Store) Get(ctx context.Context, id string) (models.ImpactStat, error) {
	return s.c.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id string, in Input) (models.ImpactStat, error) {
	if err := inputval.NotBlank(
		inputval.Field{Name: "label", Value: in.Label},
		inputval.Field{Name: "value", Value: in.Value},
	); err != nil {
		return models.ImpactStat{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.ImpactStat{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.ImpactStat{}, err
	}
	return s.c.Set(ctx, id, set)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

// internal/app/store/team/teamstore.go
package teamstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the team members collection name.
const Collection = "team_members"

// SocialInput is a partial update of a member's profile links.
type SocialInput struct {
	LinkedIn *string `json:"linkedin" bson:"linkedin,omitempty" validate:"omitempty,httpurl"`
	Facebook *string `json:"facebook" bson:"facebook,omitempty" validate:"omitempty,httpurl"`
	Twitter  *string `json:"twitter" bson:"twitter,omitempty" validate:"omitempty,httpurl"`
}

// Input is the create/update payload. Nil fields are left unchanged on update.
type Input struct {
	Name         *string      `json:"name" bson:"name,omitempty"`
	Role         *string      `json:"role" bson:"role,omitempty"`
	Designation  *string      `json:"designation" bson:"designation,omitempty"`
	Organization *string      `json:"organization" bson:"organization,omitempty"`
	Photo        *string      `json:"photo" bson:"photo,omitempty" validate:"omitempty,httpurl"`
	Bio          *string      `json:"bio" bson:"bio,omitempty"`
	Email        *string      `json:"email" bson:"email,omitempty" validate:"omitempty,looseemail"`
	SocialLinks  *SocialInput `json:"socialLinks" bson:"social_links,omitempty"`
	Type         *string      `json:"type" bson:"type,omitempty" validate:"omitempty,oneof=founder co_founder member"`
	Order        *int         `json:"order" bson:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool        `json:"isActive" bson:"is_active,omitempty"`
}

// Filter narrows List.
type Filter struct {
	ActiveOnly bool
	Type       string
}

type Store struct {
	c crud.Collection[models.TeamMember]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.TeamMember](db, Collection)}
}

// List returns members sorted by order, then creation time.
func (s *Store) List(ctx context.Context, f Filter) ([]models.TeamMember, error) {
	filter := crud.ActiveFilter(f.ActiveOnly)
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return s.c.Find(ctx, filter, crud.ByOrder, 0)
}

// Create validates in and inserts a member. Type defaults to member and
// new records are active unless told otherwise.
func (s *Store) Create(ctx context.Context, in Input) (models.TeamMember, error) {
	if err := inputval.Require(
		inputval.Field{Name: "name", Value: in.Name},
		inputval.Field{Name: "role", Value: in.Role},
	); err != nil {
		return models.TeamMember{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.TeamMember{}, err
	}

	now := time.Now().UTC()
	m, err := crud.Overlay(models.TeamMember{
		ID:        primitive.NewObjectID(),
		Type:      models.TeamTypeMember,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)
	if err != nil {
		return models.TeamMember{}, err
	}
	return s.c.Insert(ctx, m)
}

func (s *Store) Get(ctx context.Context, id string) (models.TeamMember, error) {
	return s.c.Get(ctx, id)
}

// Update merges the supplied fields.
func (s *Store) Update(ctx context.Context, id string, in Input) (models.TeamMember, error) {
	if err := inputval.NotBlank(
		inputval.Field{Name: "name", Value: in.Name},
		inputval.Field{Name: "role", Value: in.Role},
	); err != nil {
		return models.TeamMember{}, err
	}
	if err := inputval.Check(in); err != nil {
		return models.TeamMember{}, err
	}
	set, err := crud.SetDoc(in)
	if err != nil {
		return models.TeamMember{}, err
	}
	return s.c.Set(ctx, id, crud.Flatten(set))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

// CountActive returns the number of visible members.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, crud.ActiveFilter(true))
}

// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "messages"

var (
	ErrMissingFields = apierr.Validation("All fields are required")
	ErrInvalidEmail  = apierr.Validation("Invalid email address")
)

// Input carries both the contact-form fields (create) and the inbox
// fields (update). Create ignores IsRead, IsReplied and Notes; Update
// ignores everything else.
type Input struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`

	IsRead    *bool   `json:"isRead"`
	IsReplied *bool   `json:"isReplied"`
	Notes     *string `json:"notes"`
}

// Filter narrows List.
type Filter struct {
	UnreadOnly bool
	Skip       int64
	Limit      int64
}

type Store struct {
	c crud.Collection[models.Message]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.Message](db, Collection)}
}

// List returns messages newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Message, error) {
	filter := bson.M{}
	if f.UnreadOnly {
		filter["is_read"] = false
	}
	return s.c.FindPage(ctx, filter, crud.Newest, f.Skip, f.Limit)
}

func val(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Create stores a contact-form submission as unread and unreplied.
func (s *Store) Create(ctx context.Context, in Input) (models.Message, error) {
	name, email, subject, body := val(in.Name), val(in.Email), val(in.Subject), val(in.Message)
	if name == "" || email == "" || subject == "" || body == "" {
		return models.Message{}, ErrMissingFields
	}
	if !inputval.IsValidEmail(email) {
		return models.Message{}, ErrInvalidEmail
	}
	now := time.Now().UTC()
	return s.c.Insert(ctx, models.Message{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Phone:     val(in.Phone),
		Subject:   subject,
		Message:   body,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Store) Get(ctx context.Context, id string) (models.Message, error) {
	return s.c.Get(ctx, id)
}

// Open returns the message and marks it read.
func (s *Store) Open(ctx context.Context, id string) (models.Message, error) {
	m, err := s.c.Get(ctx, id)
	if err != nil || m.IsRead {
		return m, err
	}
	return s.c.Set(ctx, id, bson.M{"is_read": true})
}

// Update changes the inbox state. Marking a message replied stamps
// repliedAt with the current time.
func (s *Store) Update(ctx context.Context, id string, in Input) (models.Message, error) {
	set := bson.M{}
	if in.IsRead != nil {
		set["is_read"] = *in.IsRead
	}
	if in.IsReplied != nil {
		set["is_replied"] = *in.IsReplied
		if *in.IsReplied {
			set["replied_at"] = time.Now().UTC()
		}
	}
	if in.Notes != nil {
		set["notes"] = *in.Notes
	}
	return s.c.Set(ctx, id, set)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, id)
}

func (s *Store) CountUnread(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, bson.M{"is_read": false})
}

func (s *Store) CountAll(ctx context.Context) (int64, error) {
	return s.c.Count(ctx, bson.M{})
}

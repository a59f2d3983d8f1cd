// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/authutil"
	"github.com/dalemusser/duasite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the admins collection name.
const Collection = "admins"

var ErrDuplicateEmail = errors.New("an admin with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create hashes password and inserts a new admin. Email is stored lowercased.
func (s *Store) Create(ctx context.Context, email, password, name, role string) (models.Admin, error) {
	email = authutil.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return models.Admin{}, errors.New("email and password are required")
	}
	if role == "" {
		role = models.RoleAdmin
	}
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.Admin{}, err
	}

	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

// GetByEmail looks up an admin by email, case-insensitively.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := s.c.FindOne(ctx, bson.M{"email": authutil.NormalizeEmail(email)}).Decode(&a)
	return a, err
}

// GetByID returns an admin by id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Admin, error) {
	var a models.Admin
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// Authenticate returns the admin when password matches. Unknown email and
// wrong password both yield authutil.ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.Admin, error) {
	a, err := s.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Admin{}, authutil.ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, err
	}
	if !authutil.CheckPassword(a.PasswordHash, password) {
		return models.Admin{}, authutil.ErrInvalidCredentials
	}
	return a, nil
}

// Count returns the number of admins.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

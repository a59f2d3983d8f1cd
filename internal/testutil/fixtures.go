package testutil

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func urlEscape(s string) string { return url.QueryEscape(s) }

// Fixtures provides helper methods for creating test data directly in the
// collections, bypassing store validation.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateAdmin inserts an admin with an already-hashed password.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, passwordHash string) models.Admin {
	f.t.Helper()
	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         "Fixture Admin",
		Role:         models.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "admins", a)
	return a
}

// CreateTeamMember inserts a team member.
func (f *Fixtures) CreateTeamMember(ctx context.Context, name, typ string, order int, active bool) models.TeamMember {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.TeamMember{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Role:      "Volunteer",
		Type:      typ,
		Order:     order,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "team_members", m)
	return m
}

// CreateInitiative inserts an initiative.
func (f *Fixtures) CreateInitiative(ctx context.Context, title, slug string, active, highlighted bool) models.Initiative {
	f.t.Helper()
	now := time.Now().UTC()
	in := models.Initiative{
		ID:            primitive.NewObjectID(),
		Title:         title,
		Slug:          slug,
		Description:   "Fixture initiative",
		Category:      "healthcare",
		Status:        "ongoing",
		Images:        []string{},
		Objectives:    []string{},
		IsHighlighted: highlighted,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "initiatives", in)
	return in
}

// CreateSlide inserts a slideshow image at the given order.
func (f *Fixtures) CreateSlide(ctx context.Context, order int) models.SlideshowImage {
	f.t.Helper()
	now := time.Now().UTC()
	s := models.SlideshowImage{
		ID:        primitive.NewObjectID(),
		ImageURL:  "https://res.cloudinary.com/demo/slide.jpg",
		Order:     order,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "slideshow_images", s)
	return s
}

// CreateMessage inserts an unread contact message.
func (f *Fixtures) CreateMessage(ctx context.Context, name, subject string) models.Message {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.Message{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     "sender@example.org",
		Subject:   subject,
		Message:   "Hello",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "messages", m)
	return m
}

// CreateVisit inserts an analytics session created at the given time.
func (f *Fixtures) CreateVisit(ctx context.Context, sessionID, visitorID, country string, at time.Time, paths ...string) models.Visit {
	f.t.Helper()
	views := make([]models.PageView, 0, len(paths))
	for _, p := range paths {
		views = append(views, models.PageView{Path: p, Timestamp: at})
	}
	entry, exit := "", ""
	if len(paths) > 0 {
		entry, exit = paths[0], paths[len(paths)-1]
	}
	v := models.Visit{
		ID:           primitive.NewObjectID(),
		SessionID:    sessionID,
		VisitorID:    visitorID,
		IPAddress:    "203.0.113.9",
		Country:      country,
		Device:       "desktop",
		Browser:      "Chrome",
		OS:           "Windows",
		PageViews:    views,
		EntryPage:    entry,
		ExitPage:     exit,
		LastActivity: at,
		CreatedAt:    at,
	}
	f.insert(ctx, "analytics", v)
	return v
}

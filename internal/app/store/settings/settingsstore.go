// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/inputval"
	"github.com/dalemusser/duasite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the settings collection name.
const Collection = "settings"

// singletonID is the _id used when the settings document is first created.
// Concurrent first reads collide on it, so at most one document exists.
var singletonID = primitive.ObjectID{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}

// Store provides access to the site-wide settings singleton.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// SocialInput is a partial update of the social links block.
type SocialInput struct {
	Facebook  *string `json:"facebook" bson:"facebook,omitempty" validate:"omitempty,httpurl"`
	Instagram *string `json:"instagram" bson:"instagram,omitempty" validate:"omitempty,httpurl"`
	YouTube   *string `json:"youtube" bson:"youtube,omitempty" validate:"omitempty,httpurl"`
	TikTok    *string `json:"tiktok" bson:"tiktok,omitempty" validate:"omitempty,httpurl"`
	LinkedIn  *string `json:"linkedin" bson:"linkedin,omitempty" validate:"omitempty,httpurl"`
	Twitter   *string `json:"twitter" bson:"twitter,omitempty" validate:"omitempty,httpurl"`
}

// AnimationsInput is a partial update of the animation preferences.
type AnimationsInput struct {
	HeroAnimation      *string `json:"heroAnimation" bson:"hero_animation,omitempty" validate:"omitempty,oneof=fade slide zoom parallax kenburns"`
	SectionAnimation   *string `json:"sectionAnimation" bson:"section_animation,omitempty" validate:"omitempty,oneof=fadeUp slideIn stagger reveal"`
	HoverEffect        *string `json:"hoverEffect" bson:"hover_effect,omitempty" validate:"omitempty,oneof=glow lift ripple shine"`
	EnableParallax     *bool   `json:"enableParallax" bson:"enable_parallax,omitempty"`
	EnableSmoothScroll *bool   `json:"enableSmoothScroll" bson:"enable_smooth_scroll,omitempty"`
}

// Input is a partial settings update. Nil fields are left unchanged.
type Input struct {
	SiteName       *string `json:"siteName" bson:"site_name,omitempty"`
	Tagline        *string `json:"tagline" bson:"tagline,omitempty"`
	Motto          *string `json:"motto" bson:"motto,omitempty"`
	Logo           *string `json:"logo" bson:"logo,omitempty" validate:"omitempty,httpurl"`
	Favicon        *string `json:"favicon" bson:"favicon,omitempty" validate:"omitempty,httpurl"`
	AboutIntro     *string `json:"aboutIntro" bson:"about_intro,omitempty"`
	AboutTheme     *string `json:"aboutTheme" bson:"about_theme,omitempty"`
	Mission        *string `json:"mission" bson:"mission,omitempty"`
	Vision         *string `json:"vision" bson:"vision,omitempty"`
	WelcomeMessage *string `json:"welcomeMessage" bson:"welcome_message,omitempty"`

	Address           *string                    `json:"address" bson:"address,omitempty"`
	Email             *string                    `json:"email" bson:"email,omitempty" validate:"omitempty,looseemail"`
	Phone             *string                    `json:"phone" bson:"phone,omitempty"`
	Website           *string                    `json:"website" bson:"website,omitempty" validate:"omitempty,httpurl"`
	EmergencyContacts *[]models.EmergencyContact `json:"emergencyContacts" bson:"emergency_contacts,omitempty"`
	GoogleMapsEmbed   *string                    `json:"googleMapsEmbed" bson:"google_maps_embed,omitempty"`
	SocialLinks       *SocialInput               `json:"socialLinks" bson:"social_links,omitempty"`

	FooterText    *string          `json:"footerText" bson:"footer_text,omitempty"`
	CopyrightText *string          `json:"copyrightText" bson:"copyright_text,omitempty"`
	Animations    *AnimationsInput `json:"animations" bson:"animations,omitempty"`
}

// Get returns the settings singleton, creating it with defaults if absent.
func (s *Store) Get(ctx context.Context) (models.Settings, error) {
	var st models.Settings
	err := s.c.FindOne(ctx, bson.M{}).Decode(&st)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Settings{}, err
	}

	now := time.Now().UTC()
	st = models.DefaultSettings()
	st.ID = singletonID
	st.CreatedAt = now
	st.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		if !wafflemongo.IsDup(err) {
			return models.Settings{}, err
		}
		// Lost the race with another first read; return the winner.
		if err := s.c.FindOne(ctx, bson.M{"_id": singletonID}).Decode(&st); err != nil {
			return models.Settings{}, err
		}
	}
	return st, nil
}

// Upsert merges the supplied fields into the singleton, creating it first
// if needed. Nested blocks merge field by field.
func (s *Store) Upsert(ctx context.Context, in Input) (models.Settings, error) {
	if err := inputval.Check(in); err != nil {
		return models.Settings{}, err
	}
	current, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	set, err := crud.SetDoc(in)
	if err != nil {
		return models.Settings{}, err
	}
	set = crud.Flatten(set)
	set["updated_at"] = time.Now().UTC()

	var out models.Settings
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": current.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.Settings{}, err
	}
	return out, nil
}

// Count returns the number of settings documents. Used by tests and seed.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Package seed creates the first admin account and the starter content a
// fresh install needs. It runs once: when any admin exists it does nothing.
package seed

import (
	"context"
	"errors"
	"time"

	adminstore "github.com/dalemusser/duasite/internal/app/store/admins"
	advisorstore "github.com/dalemusser/duasite/internal/app/store/advisors"
	analyticsstore "github.com/dalemusser/duasite/internal/app/store/analytics"
	donationstore "github.com/dalemusser/duasite/internal/app/store/donations"
	gallerystore "github.com/dalemusser/duasite/internal/app/store/gallery"
	impactpoststore "github.com/dalemusser/duasite/internal/app/store/impactposts"
	impactstatstore "github.com/dalemusser/duasite/internal/app/store/impactstats"
	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	partnerstore "github.com/dalemusser/duasite/internal/app/store/partners"
	settingsstore "github.com/dalemusser/duasite/internal/app/store/settings"
	slideshowstore "github.com/dalemusser/duasite/internal/app/store/slideshow"
	teamstore "github.com/dalemusser/duasite/internal/app/store/team"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Default admin credentials when none are configured.
const (
	DefaultAdminEmail    = "admin@duabd.org"
	DefaultAdminPassword = "admin123"
)

// ErrAlreadySeeded is returned by Run when an admin account exists.
var ErrAlreadySeeded = errors.New("Database already seeded")

// Options configures a seed run.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

// Counts reports how many records each collection received.
type Counts struct {
	Admin           int `json:"admin"`
	TeamMembers     int `json:"teamMembers"`
	Advisors        int `json:"advisors"`
	Partners        int `json:"partners"`
	Initiatives     int `json:"initiatives"`
	ImpactStats     int `json:"impactStats"`
	DonationOptions int `json:"donationOptions"`
}

// Map returns the counts keyed by their JSON names.
func (c Counts) Map() map[string]int {
	return map[string]int{
		"admin":           c.Admin,
		"teamMembers":     c.TeamMembers,
		"advisors":        c.Advisors,
		"partners":        c.Partners,
		"initiatives":     c.Initiatives,
		"impactStats":     c.ImpactStats,
		"donationOptions": c.DonationOptions,
	}
}

// contentCollections are cleared by Reset.
var contentCollections = []string{
	adminstore.Collection,
	settingsstore.Collection,
	teamstore.Collection,
	advisorstore.Collection,
	partnerstore.Collection,
	initiativestore.Collection,
	impactstatstore.Collection,
	impactpoststore.Collection,
	donationstore.Collection,
	gallerystore.Collection,
	slideshowstore.Collection,
	messagestore.Collection,
	analyticsstore.Collection,
}

// Reset deletes every document from the content collections. Indexes stay.
func Reset(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, name := range contentCollections {
		res, err := db.Collection(name).DeleteMany(ctx, bson.M{})
		if err != nil {
			return err
		}
		logger.Info("collection cleared", zap.String("collection", name), zap.Int64("deleted", res.DeletedCount))
	}
	return nil
}

// Run seeds an empty database. It returns ErrAlreadySeeded, and writes
// nothing, when an admin account already exists.
func Run(ctx context.Context, db *mongo.Database, opts Options, logger *zap.Logger) (Counts, error) {
	admins := adminstore.New(db)
	n, err := admins.Count(ctx)
	if err != nil {
		return Counts{}, err
	}
	if n > 0 {
		return Counts{}, ErrAlreadySeeded
	}

	email, password := opts.AdminEmail, opts.AdminPassword
	if email == "" {
		email = DefaultAdminEmail
	}
	if password == "" {
		password = DefaultAdminPassword
	}
	if _, err := admins.Create(ctx, email, password, "Super Admin", models.RoleSuperAdmin); err != nil {
		return Counts{}, err
	}

	if _, err := settingsstore.New(db).Upsert(ctx, starterSettings()); err != nil {
		return Counts{}, err
	}

	now := time.Now().UTC()
	c := Counts{Admin: 1}
	steps := []struct {
		coll string
		docs []any
		n    *int
	}{
		{teamstore.Collection, teamMembers(now), &c.TeamMembers},
		{advisorstore.Collection, advisors(now), &c.Advisors},
		{partnerstore.Collection, partners(now), &c.Partners},
		{initiativestore.Collection, initiatives(now), &c.Initiatives},
		{impactstatstore.Collection, impactStats(now), &c.ImpactStats},
		{donationstore.Collection, donationOptions(now), &c.DonationOptions},
	}
	for _, st := range steps {
		res, err := db.Collection(st.coll).InsertMany(ctx, st.docs)
		if err != nil {
			return c, err
		}
		*st.n = len(res.InsertedIDs)
	}

	logger.Info("database seeded",
		zap.String("admin_email", email),
		zap.Int("team_members", c.TeamMembers),
		zap.Int("initiatives", c.Initiatives))
	return c, nil
}

func str(s string) *string { return &s }
func yes() *bool           { b := true; return &b }

func starterSettings() settingsstore.Input {
	return settingsstore.Input{
		SiteName:   str(models.DefaultSiteName),
		Tagline:    str(models.DefaultTagline),
		Motto:      str("Delivering Happiness, Through healthcare, education, and communal welfare initiatives across rural Bangladesh."),
		AboutIntro: str("Development and Unity Alliance is a non-profit organisation dedicated to delivering happiness and improving lives through comprehensive Healthcare, quality Education, and sustainable Communal welfare programs across Bangladesh."),
		WelcomeMessage: str("We welcome you to Development and Unity Alliance (DUA), an organization that has been founded on the values of compassion, dignity, and empowerment. " +
			"We are a community-driven and nonprofit initiative that envisions a brighter future for all, especially for the underserved communities of Bangladesh.\n\n" +
			"We work in various fields ranging from healthcare and education to climate action and inclusivity. Our mission is simple yet profound: to deliver happiness where it's needed most."),
		Mission: str("\"Where Compassion Meets Action\"\n\nTo provide comprehensive healthcare, quality education, and social welfare services that uplift communities and deliver happiness to those in need."),
		Vision:  str("\"A Hopeful Future\"\n\nTo build a society where every individual has access to quality healthcare, education, and communal support, creating sustainable communities that thrive with dignity and hope."),
		Address: str("25/13C, Tajmahal Road, Mohammapur, Dhaka-1207, Bangladesh"),
		Email:   str("info@duabd.org"),
		Phone:   str("+8801743121942"),
		Website: str(models.DefaultWebsite),
		Animations: &settingsstore.AnimationsInput{
			HeroAnimation:      str("kenburns"),
			SectionAnimation:   str("fadeUp"),
			HoverEffect:        str("glow"),
			EnableParallax:     yes(),
			EnableSmoothScroll: yes(),
		},
	}
}

func teamMembers(now time.Time) []any {
	rows := []struct{ name, role, org, email, typ string }{
		{"Md Shofikul Islam", "Founder", "BRAC University", "mdshofikulislam042@gmail.com", models.TeamTypeFounder},
		{"Farhin Ahmed", "Co-Founder", "University of Melbourne", "farhinahmed13@gmail.com", models.TeamTypeCoFounder},
		{"Arian Nuhan", "Co-Founder", "BRAC University", "ariannuhan41@gmail.com", models.TeamTypeCoFounder},
		{"Rubayat Ecolo", "General Member", "AUST University", "", models.TeamTypeMember},
		{"Fahmidul Alam", "General Member", "BRAC University", "", models.TeamTypeMember},
		{"Maisun Shikder Maisha", "General Member", "University of Sydney", "", models.TeamTypeMember},
		{"Noor E Jannat", "General Member", "BRAC University", "", models.TeamTypeMember},
		{"Abdullah Al Limon", "General Member", "Stamford University Bangladesh", "", models.TeamTypeMember},
	}
	docs := make([]any, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, models.TeamMember{
			ID:           primitive.NewObjectID(),
			Name:         r.name,
			Role:         r.role,
			Organization: r.org,
			Email:        r.email,
			Type:         r.typ,
			Order:        i + 1,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return docs
}

func advisors(now time.Time) []any {
	rows := []struct{ name, title, creds, org string }{
		{"Dr. Monir Hossain", "MBBS", "Assistant Professor", "Shahabuddin Medical College and Hospital"},
		{"Mohammad Rafiqul Islam", "PhD", "Assistant Professor", "BRAC Institute of Languages, BRAC University"},
		{"Mohammad Mynuddin", "Associate Professor", "", "Dhaka Residential Model College"},
	}
	docs := make([]any, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, models.Advisor{
			ID:           primitive.NewObjectID(),
			Name:         r.name,
			Title:        r.title,
			Credentials:  r.creds,
			Organization: r.org,
			Order:        i + 1,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return docs
}

func partners(now time.Time) []any {
	rows := []struct{ name, location string }{
		{"Insaf Barakah Foundation", "Dhaka, Bangladesh"},
		{"Insaf Barakah Kidney and General Hospital", "Dhaka"},
		{"Shahbuddin Medical College and Hospital", "Dhaka"},
		{"Hi-Care General Hospital", "Uttara, Dhaka-1230"},
		{"English Learning Abode", ""},
	}
	docs := make([]any, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, models.Partner{
			ID:        primitive.NewObjectID(),
			Name:      r.name,
			Location:  r.location,
			Type:      "partner",
			Order:     i + 1,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return docs
}

func initiatives(now time.Time) []any {
	rows := []struct{ title, slug, desc, category string }{
		{"DUA Healthcamp", "dua-healthcamp", "Free health camps providing medical care to underserved communities", "healthcare"},
		{"Climate First by DUA", "climate-first", "Environmental initiatives for climate action", "environment"},
		{"Korail Diaries", "korail-diaries", "Community support program in Korail", "welfare"},
		{"Mental Health Initiative with InsideGlobal", "mental-health-initiative", "Mental health awareness and support program", "healthcare"},
		{"Happy Box for Saint Martin", "happy-box-saint-martin", "Happiness delivery program for Saint Martin communities", "welfare"},
		{"Barakah: The Ramadan & Eid Initiative", "barakah-ramadan-eid", "Special programs during Ramadan and Eid celebrations", "welfare"},
		{"Seba Tori (Boat Hospital)", "seba-tori", "Mobile healthcare via boat for remote areas", "healthcare"},
		{"Second Chance Stationery", "second-chance-stationery", "Recycled stationery initiative for education", "education"},
		{"Amr Chokhe Korail", "amr-chokhe-korail", "Community documentation project in Korail", "welfare"},
	}
	docs := make([]any, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, models.Initiative{
			ID:          primitive.NewObjectID(),
			Title:       r.title,
			Slug:        r.slug,
			Description: r.desc,
			Category:    r.category,
			Status:      "ongoing",
			Images:      []string{},
			Objectives:  []string{},
			Order:       i + 1,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return docs
}

func impactStats(now time.Time) []any {
	rows := []struct{ label, value, desc, icon string }{
		{"Health Camps Conducted", "27+", "15000+ health beneficiaries", "health"},
		{"Meals Served", "7000+", "Nutritious meals for communities", "food"},
		{"Families Helped", "5200+", "Emergency relief support", "family"},
		{"Trees Planted", "1500+", "Environmental conservation", "tree"},
		{"Children Educated", "300+", "30+ orphans with full DUA support", "education"},
	}
	docs := make([]any, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, models.ImpactStat{
			ID:          primitive.NewObjectID(),
			Label:       r.label,
			Value:       r.value,
			Description: r.desc,
			Icon:        r.icon,
			Order:       i + 1,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return docs
}

// donationOptions are placeholders; account numbers are filled in from the
// admin screen.
func donationOptions(now time.Time) []any {
	rows := []struct{ typ, name, instructions string }{
		{"bkash", "bKash", "Send money to our bKash number"},
		{"nagad", "Nagad", "Send money to our Nagad number"},
		{"rocket", "Rocket", "Send money to our Rocket number"},
		{"bank", "Bank Transfer", "Transfer to our bank account"},
	}
	docs := make([]any, 0, len(rows))
	for i, r := range rows {
		docs = append(docs, models.DonationOption{
			ID:           primitive.NewObjectID(),
			Type:         r.typ,
			Name:         r.name,
			Instructions: r.instructions,
			Order:        i + 1,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return docs
}

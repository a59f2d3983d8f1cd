package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when the settings document is first created.
const (
	DefaultSiteName  = "Development and Unity Alliance"
	DefaultTagline   = "Delivering Happiness"
	DefaultAddress   = "Dhaka, Bangladesh"
	DefaultEmail     = "info@duabd.org"
	DefaultPhone     = "+880 1XXX-XXXXXX"
	DefaultWebsite   = "https://duabd.org"
	DefaultCopyright = "© 2024 Development and Unity Alliance. All rights reserved."
)

// Animation choices exposed to the public theme.
var (
	HeroAnimations    = []string{"fade", "slide", "zoom", "parallax", "kenburns"}
	SectionAnimations = []string{"fadeUp", "slideIn", "stagger", "reveal"}
	HoverEffects      = []string{"glow", "lift", "ripple", "shine"}
)

// EmergencyContact is a named phone line shown on the contact page.
type EmergencyContact struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Role  string `bson:"role,omitempty" json:"role,omitempty"`
}

// SocialLinks holds the organization's social profiles.
type SocialLinks struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	TikTok    string `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
}

// Animations is the public theme's motion preference block.
type Animations struct {
	HeroAnimation      string `bson:"hero_animation" json:"heroAnimation"`
	SectionAnimation   string `bson:"section_animation" json:"sectionAnimation"`
	HoverEffect        string `bson:"hover_effect" json:"hoverEffect"`
	EnableParallax     bool   `bson:"enable_parallax" json:"enableParallax"`
	EnableSmoothScroll bool   `bson:"enable_smooth_scroll" json:"enableSmoothScroll"`
}

// Settings is the site-wide singleton. At most one document exists.
type Settings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	SiteName       string `bson:"site_name" json:"siteName"`
	Tagline        string `bson:"tagline" json:"tagline"`
	Motto          string `bson:"motto,omitempty" json:"motto,omitempty"`
	Logo           string `bson:"logo,omitempty" json:"logo,omitempty"`
	Favicon        string `bson:"favicon,omitempty" json:"favicon,omitempty"`
	AboutIntro     string `bson:"about_intro,omitempty" json:"aboutIntro,omitempty"`
	AboutTheme     string `bson:"about_theme,omitempty" json:"aboutTheme,omitempty"`
	Mission        string `bson:"mission,omitempty" json:"mission,omitempty"`
	Vision         string `bson:"vision,omitempty" json:"vision,omitempty"`
	WelcomeMessage string `bson:"welcome_message,omitempty" json:"welcomeMessage,omitempty"`

	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	Email             string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Website           string             `bson:"website,omitempty" json:"website,omitempty"`
	EmergencyContacts []EmergencyContact `bson:"emergency_contacts" json:"emergencyContacts"`
	GoogleMapsEmbed   string             `bson:"google_maps_embed,omitempty" json:"googleMapsEmbed,omitempty"`
	SocialLinks       SocialLinks        `bson:"social_links" json:"socialLinks"`

	FooterText    string     `bson:"footer_text,omitempty" json:"footerText,omitempty"`
	CopyrightText string     `bson:"copyright_text,omitempty" json:"copyrightText,omitempty"`
	Animations    Animations `bson:"animations" json:"animations"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultSettings returns the values used when no settings document exists.
func DefaultSettings() Settings {
	return Settings{
		SiteName:          DefaultSiteName,
		Tagline:           DefaultTagline,
		Address:           DefaultAddress,
		Email:             DefaultEmail,
		Phone:             DefaultPhone,
		Website:           DefaultWebsite,
		CopyrightText:     DefaultCopyright,
		EmergencyContacts: []EmergencyContact{},
		Animations: Animations{
			HeroAnimation:      "kenburns",
			SectionAnimation:   "fadeUp",
			HoverEffect:        "glow",
			EnableParallax:     true,
			EnableSmoothScroll: true,
		},
	}
}

// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (DUASITE_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and request limits; everything specific to the
// site lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Admin session configuration
	SessionKey    string        // Secret for signing session cookies; also guards POST /api/seed
	SessionName   string        // Cookie name (default: duasite-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session lifetime (default: 24h)
	CSRFKey       string        // 32-byte key for admin form CSRF tokens

	// Seed credentials for the first admin
	AdminEmail    string
	AdminPassword string

	// Visitor geo lookup
	GeoIPEndpoint  string
	GeoIPCacheSize int

	// Cloudinary unsigned uploads (disabled when cloud name is empty)
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryFolder       string

	// Email/SMTP for contact notifications (disabled when host is empty)
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	MailNotifyTo string

	// Base URL for links in notification email
	BaseURL string

	// Comma-separated origins allowed on /api
	CORSAllowedOrigins []string

	// duaseed only: clear content collections before seeding
	SeedReset bool

	// Audit log destinations: "all", "db", "log" or "off"
	AuditLogAuth  string
	AuditLogAdmin string
}

// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/auditlog"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/geoip"
	"github.com/dalemusser/duasite/internal/app/system/seed"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvPrefix is the environment variable prefix for app keys.
const EnvPrefix = "DUASITE"

const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey    = "dev-only-csrf-key-0123456789abcd"
)

// appConfigKeys defines the configuration keys for the site.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: DUASITE_MONGO_URI, DUASITE_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "duasite", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "duasite-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Admin session lifetime (e.g., 24h, 90m)"},
	{Name: "csrf_key", Default: devCSRFKey, Desc: "32-byte key for admin form CSRF tokens"},

	// Seed
	{Name: "admin_email", Default: seed.DefaultAdminEmail, Desc: "Email of the admin created by seeding"},
	{Name: "admin_password", Default: seed.DefaultAdminPassword, Desc: "Password of the admin created by seeding"},
	{Name: "seed_reset", Default: false, Desc: "duaseed: clear content collections before seeding"},

	// Geo lookup
	{Name: "geoip_endpoint", Default: geoip.DefaultEndpoint, Desc: "IP geolocation base URL"},
	{Name: "geoip_cache_size", Default: 1024, Desc: "Cached geo lookups"},

	// Cloudinary
	{Name: "cloudinary_cloud_name", Default: "", Desc: "Cloudinary cloud name (blank disables uploads)"},
	{Name: "cloudinary_upload_preset", Default: "", Desc: "Cloudinary unsigned upload preset"},
	{Name: "cloudinary_folder", Default: "duabd", Desc: "Cloudinary base folder"},

	// Email/SMTP
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank disables notifications)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "", Desc: "From email address"},
	{Name: "mail_from_name", Default: "DUA Website", Desc: "From display name"},
	{Name: "mail_notify_to", Default: "", Desc: "Recipient of contact form notifications"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Base URL for links in notification email"},
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated origins allowed on /api"},

	// Audit logging: all (MongoDB + zap), db, log, off
	{Name: "audit_log_auth", Default: auditlog.ModeAll, Desc: "Sign-in events: all, db, log, off"},
	{Name: "audit_log_admin", Default: auditlog.ModeAll, Desc: "Maintenance events (seeding): all, db, log, off"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// DUASITE_* environment variables and flags (flags > env > files > defaults).
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", auth.DefaultMaxAge),
		CSRFKey:          appValues.String("csrf_key"),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
		SeedReset:     appValues.Bool("seed_reset"),

		GeoIPEndpoint:  appValues.String("geoip_endpoint"),
		GeoIPCacheSize: appValues.Int("geoip_cache_size"),

		CloudinaryCloudName:    appValues.String("cloudinary_cloud_name"),
		CloudinaryUploadPreset: appValues.String("cloudinary_upload_preset"),
		CloudinaryFolder:       appValues.String("cloudinary_folder"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),
		MailNotifyTo: appValues.String("mail_notify_to"),

		BaseURL:            strings.TrimRight(appValues.String("base_url"), "/"),
		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		AuditLogAuth:  strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogAdmin: strings.ToLower(appValues.String("audit_log_admin")),
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// It rejects a malformed MongoDB URI, an empty session key, a CSRF key that
// is not 32 bytes, an unknown audit mode, and the development keys in prod.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.SessionKey) == "" {
		return errors.New("session_key must be set")
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if appCfg.SessionMaxAge < time.Minute {
		return fmt.Errorf("session_max_age %s is too short", appCfg.SessionMaxAge)
	}
	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if mode != "" && !auditlog.Valid(mode) {
			return fmt.Errorf("%s must be one of all, db, log, off (got %q)", key, mode)
		}
	}
	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return errors.New("session_key must be changed from the development default in prod")
		}
		if appCfg.CSRFKey == devCSRFKey {
			return errors.New("csrf_key must be changed from the development default in prod")
		}
	}
	return nil
}

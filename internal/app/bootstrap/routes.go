// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	aboutfeature "github.com/dalemusser/duasite/internal/app/features/about"
	advisorsfeature "github.com/dalemusser/duasite/internal/app/features/advisors"
	analyticsfeature "github.com/dalemusser/duasite/internal/app/features/analytics"
	auditlogfeature "github.com/dalemusser/duasite/internal/app/features/auditlog"
	contactfeature "github.com/dalemusser/duasite/internal/app/features/contact"
	dashboardfeature "github.com/dalemusser/duasite/internal/app/features/dashboard"
	donationsfeature "github.com/dalemusser/duasite/internal/app/features/donations"
	errorsfeature "github.com/dalemusser/duasite/internal/app/features/errors"
	galleryfeature "github.com/dalemusser/duasite/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/duasite/internal/app/features/health"
	homefeature "github.com/dalemusser/duasite/internal/app/features/home"
	impactfeature "github.com/dalemusser/duasite/internal/app/features/impact"
	impactstatsfeature "github.com/dalemusser/duasite/internal/app/features/impactstats"
	initiativesfeature "github.com/dalemusser/duasite/internal/app/features/initiatives"
	loginfeature "github.com/dalemusser/duasite/internal/app/features/login"
	logoutfeature "github.com/dalemusser/duasite/internal/app/features/logout"
	messagesfeature "github.com/dalemusser/duasite/internal/app/features/messages"
	partnersfeature "github.com/dalemusser/duasite/internal/app/features/partners"
	seedfeature "github.com/dalemusser/duasite/internal/app/features/seed"
	settingsfeature "github.com/dalemusser/duasite/internal/app/features/settings"
	slideshowfeature "github.com/dalemusser/duasite/internal/app/features/slideshow"
	teamfeature "github.com/dalemusser/duasite/internal/app/features/team"
	uploadfeature "github.com/dalemusser/duasite/internal/app/features/upload"
	"github.com/dalemusser/duasite/internal/app/store/audit"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/auditlog"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/geoip"
	"github.com/dalemusser/duasite/internal/app/system/imagehost"
	"github.com/dalemusser/duasite/internal/app/system/mailer"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	dbseed "github.com/dalemusser/duasite/internal/app/system/seed"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Login attempts allowed per email address in loginWindow.
const (
	loginAttempts = 5
	loginWindow   = 15 * time.Minute
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The router has three areas:
//   - the public site (/, /about, /initiatives, /impact, /gallery, /donate, /contact)
//   - the admin UI under /admin, CSRF protected
//   - the JSON API under /api, with CORS
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	geo, err := geoip.New(appCfg.GeoIPEndpoint, appCfg.GeoIPCacheSize)
	if err != nil {
		logger.Error("geoip client init failed", zap.Error(err))
		return nil, err
	}
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	images := imagehost.New(appCfg.CloudinaryCloudName, appCfg.CloudinaryUploadPreset, appCfg.CloudinaryFolder)
	if !images.Enabled() {
		logger.Info("image uploads disabled: cloudinary is not configured")
	}
	if !mail.Enabled() {
		logger.Info("contact notifications disabled: no SMTP host")
	}

	db := deps.MongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)
	inbox := &messagesfeature.Inbox{
		DB:       db,
		Store:    messagestore.New(db),
		Queue:    deps.Jobs,
		Mailer:   mail,
		NotifyTo: appCfg.MailNotifyTo,
		BaseURL:  appCfg.BaseURL,
		Log:      logger,
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler(db)
	r.NotFound(notFound(errorsHandler))

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Feature handlers are shared between the public, admin, and API areas.
	homeHandler := homefeature.NewHandler(db, errLog, logger)
	aboutHandler := aboutfeature.NewHandler(db, errLog, logger)
	contactHandler := contactfeature.NewHandler(db, inbox, errLog, logger)
	teamHandler := teamfeature.NewHandler(db, errLog, logger)
	advisorsHandler := advisorsfeature.NewHandler(db, errLog, logger)
	partnersHandler := partnersfeature.NewHandler(db, errLog, logger)
	initiativesHandler := initiativesfeature.NewHandler(db, errLog, logger)
	impactHandler := impactfeature.NewHandler(db, errLog, logger)
	impactStatsHandler := impactstatsfeature.NewHandler(db, errLog, logger)
	donationsHandler := donationsfeature.NewHandler(db, errLog, logger)
	galleryHandler := galleryfeature.NewHandler(db, errLog, logger)
	slideshowHandler := slideshowfeature.NewHandler(db, errLog, logger)
	settingsHandler := settingsfeature.NewHandler(db, errLog, logger)
	messagesHandler := messagesfeature.NewHandler(db, inbox, errLog, logger)
	analyticsHandler := analyticsfeature.NewHandler(db, geo, deps.Jobs, errLog, logger)
	analyticsHandler.Secure = secure
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, ratelimit.NewLoginLimiter(loginAttempts, loginWindow), logger)
	loginHandler.Audit = auditLogger
	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	logoutHandler.Audit = auditLogger
	uploadHandler := uploadfeature.NewHandler(images, logger)
	seedHandler := seedfeature.NewHandler(db, appCfg.SessionKey, dbseed.Options{
		AdminEmail:    appCfg.AdminEmail,
		AdminPassword: appCfg.AdminPassword,
	}, logger)
	seedHandler.Audit = auditLogger

	// Public pages
	r.Mount("/", homefeature.Routes(homeHandler))
	r.Mount("/about", aboutfeature.Routes(aboutHandler))
	r.Mount("/initiatives", initiativesfeature.PublicRoutes(initiativesHandler))
	r.Mount("/impact", impactfeature.PublicRoutes(impactHandler))
	r.Mount("/gallery", galleryfeature.PublicRoutes(galleryHandler))
	r.Mount("/donate", donationsfeature.PublicRoutes(donationsHandler))
	r.Mount("/contact", contactfeature.Routes(contactHandler))

	// Admin UI
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(csrfProtect(appCfg.CSRFKey, secure))

		ar.Mount("/login", loginfeature.Routes(loginHandler))
		ar.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		ar.Mount("/", dashboardfeature.Routes(dashboardHandler, sessionMgr))
		ar.Mount("/analytics", analyticsfeature.AdminRoutes(analyticsHandler, sessionMgr))
		ar.Mount("/messages", messagesfeature.AdminRoutes(messagesHandler, sessionMgr))
		ar.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))
		ar.Mount("/slideshow", slideshowfeature.AdminRoutes(slideshowHandler, sessionMgr))
		ar.Mount("/initiatives", initiativesfeature.AdminRoutes(initiativesHandler, sessionMgr))
		ar.Mount("/impact", impactfeature.AdminRoutes(impactHandler, sessionMgr))
		ar.Mount("/impact-stats", impactstatsfeature.AdminRoutes(impactStatsHandler, sessionMgr))
		ar.Mount("/gallery", galleryfeature.AdminRoutes(galleryHandler, sessionMgr))
		ar.Mount("/team", teamfeature.AdminRoutes(teamHandler, sessionMgr))
		ar.Mount("/advisors", advisorsfeature.AdminRoutes(advisorsHandler, sessionMgr))
		ar.Mount("/partners", partnersfeature.AdminRoutes(partnersHandler, sessionMgr))
		ar.Mount("/donations", donationsfeature.AdminRoutes(donationsHandler, sessionMgr))
		ar.Route("/settings", func(sr chi.Router) {
			sr.Use(sessionMgr.RequireSignedIn)
			settingsHandler.MountRoutes(sr)
		})
	})

	// JSON API
	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		api.Mount("/auth", loginfeature.APIRoutes(loginHandler))
		api.Mount("/team", teamfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/advisors", advisorsfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/partners", partnersfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/initiatives", initiativesfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/impact", impactfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/impact-stats", impactstatsfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/donations", donationsfeature.APIRoutes(db, sessionMgr, logger))
		api.Mount("/gallery", galleryfeature.APIRoutes(galleryHandler, sessionMgr))
		api.Mount("/slideshow", slideshowfeature.APIRoutes(slideshowHandler, sessionMgr))
		api.Mount("/settings", settingsfeature.APIRoutes(settingsHandler, sessionMgr))
		api.Mount("/messages", messagesfeature.APIRoutes(messagesHandler, sessionMgr))
		api.Mount("/analytics", analyticsfeature.APIRoutes(analyticsHandler, sessionMgr))
		api.Mount("/dashboard", dashboardfeature.APIRoutes(dashboardHandler, sessionMgr))
		api.Mount("/upload", uploadfeature.Routes(uploadHandler, sessionMgr))
		api.Mount("/seed", seedfeature.Routes(seedHandler))
		api.NotFound(notFound(errorsHandler))
	})

	return r, nil
}

// csrfProtect guards admin forms. Over plain HTTP (dev) requests are marked
// plaintext so the origin check does not demand an https Referer.
func csrfProtect(key string, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect([]byte(key),
		csrf.Secure(secure),
		csrf.Path("/admin"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			errorsfeature.RenderBadRequest(w, r, "Your form expired. Please reload the page and try again.", r.URL.Path)
		})),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		if secure {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func notFound(h *errorsfeature.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respond.JSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
			return
		}
		h.NotFound(w, r)
	}
}

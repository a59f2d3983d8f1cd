// internal/app/features/analytics/routes.go
package analytics

import (
	"time"

	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// APIRoutes serves /api/analytics: the public beacon and the admin summary.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.PerIP(120, time.Minute)).Post("/", h.APITrack)
	r.With(sm.RequireSignedIn).Get("/", h.APISummary)
	return r
}

// AdminRoutes mounts /admin/analytics.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServePage)
	})
	return r
}

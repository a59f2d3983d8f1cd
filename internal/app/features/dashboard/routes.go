// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin landing page at /admin. Both the page and the
// JSON stats require a session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeAdmin)
	})
	return r
}

// APIRoutes mounts /api/dashboard.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.With(sm.RequireSignedIn).Get("/", h.APIStats)
	return r
}

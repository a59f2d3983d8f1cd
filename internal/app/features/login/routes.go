// internal/app/features/login/routes.go
package login

import (
	"time"

	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes serves the HTML login form, mounted at /admin/login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.With(ratelimit.PerIP(20, time.Minute)).Post("/", h.HandleLoginPost)
	return r
}

// APIRoutes serves the JSON auth endpoints, mounted at /api/auth.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.PerIP(20, time.Minute)).Post("/login", h.APILogin)
	r.Post("/logout", h.APILogout)
	r.Get("/session", h.APISession)
	return r
}

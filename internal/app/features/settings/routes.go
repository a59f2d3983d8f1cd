// internal/app/features/settings/routes.go
package settings

import (
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the admin settings form. The caller applies the
// session gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ServeSettings)
	r.Post("/", h.HandleSettings)
}

// APIRoutes serves /api/settings: public read, signed-in write.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.APIGet)
	r.With(sm.RequireSignedIn).Put("/", h.APIPut)
	return r
}

// internal/app/features/advisors/routes.go
package advisors

import (
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts the advisor screens, typically at /admin/advisors.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleUpdate)
		pr.Post("/{id}/delete", h.HandleDelete)
	})
	return r
}

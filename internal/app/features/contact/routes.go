// internal/app/features/contact/routes.go
package contact

import (
	"time"

	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeContact) // relative path
	r.With(ratelimit.PerIP(10, time.Minute)).Post("/", h.HandleSubmit)
	return r
}

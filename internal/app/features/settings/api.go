// internal/app/features/settings/api.go
package settings

import (
	"context"
	"net/http"

	settingsstore "github.com/dalemusser/duasite/internal/app/store/settings"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
)

const entity = "Settings"

// APIGet handles GET /api/settings. The singleton is created with defaults
// on first read.
func (h *Handler) APIGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Store.Get(ctx)
	if err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// APIPut handles PUT /api/settings, merging the body into the singleton.
func (h *Handler) APIPut(w http.ResponseWriter, r *http.Request) {
	var in settingsstore.Input
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Store.Upsert(ctx, in)
	if err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

// internal/app/features/gallery/public.go
package gallery

import (
	"context"
	"net/http"
	"net/url"

	gallerystore "github.com/dalemusser/duasite/internal/app/store/gallery"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

type categoryTab struct {
	Label  string
	URL    string
	Active bool
}

type publicVM struct {
	viewdata.BaseVM
	Images []models.GalleryImage
	Tabs   []categoryTab
}

// ServePublic renders /gallery, optionally narrowed to ?category=.
func (h *Handler) ServePublic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := query.Get(r, "category")
	imgs, err := h.Store.List(ctx, gallerystore.Filter{ActiveOnly: true, Category: category})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list gallery failed", err, "Failed to load gallery.", "/")
		return
	}

	tabs := []categoryTab{{Label: "All", URL: "/gallery", Active: category == ""}}
	for _, c := range h.categories(ctx) {
		tabs = append(tabs, categoryTab{
			Label:  c,
			URL:    "/gallery?" + url.Values{"category": {c}}.Encode(),
			Active: c == category,
		})
	}
	templates.Render(w, r, "gallery_public", publicVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Gallery", "/"),
		Images: imgs,
		Tabs:   tabs,
	})
}

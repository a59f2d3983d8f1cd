// internal/app/features/slideshow/admin.go
package slideshow

import (
	"context"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	slideshowstore "github.com/dalemusser/duasite/internal/app/store/slideshow"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/slideshow"

type slideRow struct {
	models.SlideshowImage
	First bool
	Last  bool
}

type listVM struct {
	viewdata.BaseVM
	Slides []slideRow
	Full   bool
	Max    int
}

type formVM struct {
	formutil.Base
	Item   models.SlideshowImage
	Image  formutil.Image
	Crop   models.CropArea
	Action string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slides, err := h.Store.List(ctx, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list slideshow failed", err, "Failed to load slideshow.", "/admin")
		return
	}
	rows := make([]slideRow, len(slides))
	for i, s := range slides {
		rows[i] = slideRow{SlideshowImage: s, First: i == 0, Last: i == len(slides)-1}
	}
	templates.Render(w, r, "slideshow_list", listVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Slideshow", "/admin"),
		Slides: rows,
		Full:   len(slides) >= models.MaxSlides,
		Max:    models.MaxSlides,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.SlideshowImage{IsActive: true}, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	s, err := h.Store.Create(ctx, in)
	if err != nil {
		h.formFailed(w, r, models.SlideshowImage{}, in, err)
		return
	}
	h.Log.Info("slide created", zap.String("slide_id", s.ID.Hex()), zap.Int("order", s.Order))
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	s, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderForm(w, r, s, "")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	id := chi.URLParam(r, "id")
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	current, err := h.Store.Get(ctx, id)
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	if _, err := h.Store.Update(ctx, id, in); err != nil {
		h.formFailed(w, r, current, in, err)
		return
	}
	formutil.Redirect(w, r, listPath)
}

// HandleMove shifts a slide one place up or down (dir=up|down) through the
// same bulk reorder the API uses.
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	delta := 1
	if r.PostForm.Get("dir") == "up" {
		delta = -1
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slides, err := h.Store.List(ctx, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list slideshow failed", err, "Failed to load slideshow.", listPath)
		return
	}
	positions, ok := moved(slides, chi.URLParam(r, "id"), delta)
	if !ok {
		formutil.Redirect(w, r, listPath)
		return
	}
	if _, err := h.Store.Reorder(ctx, positions); apierr.IsValidation(err) {
		h.ErrLog.LogBadRequest(w, r, "reorder slideshow rejected", err, "The slideshow changed. Reload and try again.", listPath)
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "reorder slideshow failed", err, "Failed to reorder slides.", listPath)
		return
	}
	formutil.Redirect(w, r, listPath)
}

// moved returns the full 0-based order after swapping the slide with id and
// its neighbour at delta. ok is false when id is absent or already at the edge.
func moved(slides []models.SlideshowImage, id string, delta int) ([]slideshowstore.Position, bool) {
	idx := -1
	for i, s := range slides {
		if s.ID.Hex() == id {
			idx = i
			break
		}
	}
	j := idx + delta
	if idx < 0 || j < 0 || j >= len(slides) {
		return nil, false
	}
	order := make([]models.SlideshowImage, len(slides))
	copy(order, slides)
	order[idx], order[j] = order[j], order[idx]

	out := make([]slideshowstore.Position, len(order))
	for i, s := range order {
		out[i] = slideshowstore.Position{ID: s.ID.Hex(), Order: i}
	}
	return out, true
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.loadFailed(w, r, err)
		return
	}
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, s models.SlideshowImage, msg string) {
	vm := formVM{
		Item:   s,
		Image:  formutil.Image{Name: "imageUrl", Label: "Slide image", Value: s.ImageURL, Folder: "slideshow"},
		Action: listPath,
	}
	if s.CropArea != nil {
		vm.Crop = *s.CropArea
	}
	title := "New Slide"
	if !s.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + s.ID.Hex() + "/edit"
		title = "Edit Slide"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "slideshow_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, s models.SlideshowImage, in slideshowstore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save slide failed", err, "Failed to save slide.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(s, in); oerr == nil {
		s = filled
	}
	h.renderForm(w, r, s, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "slide not found", err, "Slide not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load slide failed", err, "Failed to load slide.", listPath)
}

func inputFromForm(r *http.Request) slideshowstore.Input {
	in := slideshowstore.Input{
		ImageURL:   formutil.String(r, "imageUrl"),
		Title:      formutil.String(r, "title"),
		Subtitle:   formutil.String(r, "subtitle"),
		ButtonText: formutil.String(r, "buttonText"),
		ButtonLink: formutil.String(r, "buttonLink"),
		IsActive:   formutil.Bool(r, "isActive"),
	}
	// The crop only counts once the cropper has produced a size.
	if w := formutil.Float(r, "cropWidth"); w != nil {
		in.CropArea = &slideshowstore.CropInput{
			X:      formutil.Float(r, "cropX"),
			Y:      formutil.Float(r, "cropY"),
			Width:  w,
			Height: formutil.Float(r, "cropHeight"),
		}
	}
	return in
}

// internal/app/features/gallery/admin.go
package gallery

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	gallerystore "github.com/dalemusser/duasite/internal/app/store/gallery"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/limits"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/gallery"

type listVM struct {
	viewdata.BaseVM
	Images     []models.GalleryImage
	Category   string
	Categories []string
}

type formVM struct {
	formutil.Base
	Item       models.GalleryImage
	Image      formutil.Image
	Thumbnail  formutil.Image
	Categories []string
	Action     string
}

type bulkVM struct {
	formutil.Base
	Category   string
	Event      string
	URLs       string
	Categories []string
}

func (h *Handler) categories(ctx context.Context) []string {
	cats, err := h.Store.Categories(ctx)
	if err != nil {
		h.Log.Warn("gallery categories load failed", zap.Error(err))
	}
	return cats
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := query.Get(r, "category")
	list, err := h.Store.List(ctx, gallerystore.Filter{Category: category})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list gallery failed", err, "Failed to load gallery.", "/admin")
		return
	}
	templates.Render(w, r, "gallery_list", listVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, "Gallery", "/admin"),
		Images:     list,
		Category:   category,
		Categories: h.categories(ctx),
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.GalleryImage{Category: models.DefaultGalleryCategory, IsActive: true}, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	img, err := h.Store.Create(ctx, in)
	if err != nil {
		h.formFailed(w, r, models.GalleryImage{}, in, err)
		return
	}
	h.Log.Info("gallery image created", zap.String("image_id", img.ID.Hex()))
	formutil.Redirect(w, r, listPath)
}

// ServeBulk shows the paste-many-URLs form.
func (h *Handler) ServeBulk(w http.ResponseWriter, r *http.Request) {
	h.renderBulk(w, r, bulkVM{Category: models.DefaultGalleryCategory}, "")
}

// HandleBulk creates one image per posted URL line, all or nothing.
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	vm := bulkVM{
		Category: *formutil.String(r, "category"),
		Event:    *formutil.String(r, "event"),
		URLs:     r.PostForm.Get("urls"),
	}
	urls := *formutil.Lines(r, "urls")
	if len(urls) == 0 {
		h.renderBulk(w, r, vm, "Add at least one image URL.")
		return
	}
	if len(urls) > limits.MaxBulkGalleryURLs {
		h.renderBulk(w, r, vm, fmt.Sprintf("Add at most %d images at a time.", limits.MaxBulkGalleryURLs))
		return
	}
	ins := make([]gallerystore.Input, 0, len(urls))
	for _, u := range urls {
		ins = append(ins, gallerystore.Input{
			ImageURL: &u,
			Category: &vm.Category,
			Event:    &vm.Event,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	imgs, err := h.Store.CreateMany(ctx, ins)
	if err != nil {
		if apierr.IsValidation(err) {
			h.renderBulk(w, r, vm, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "bulk gallery create failed", err, "Failed to save images.", listPath)
		return
	}
	h.Log.Info("gallery images created", zap.Int("count", len(imgs)))
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	img, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderForm(w, r, img, "")
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

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.loadFailed(w, r, err)
		return
	}
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, img models.GalleryImage, msg string) {
	vm := formVM{
		Item:       img,
		Image:      formutil.Image{Name: "imageUrl", Label: "Image", Value: img.ImageURL, Folder: "gallery"},
		Thumbnail:  formutil.Image{Name: "thumbnailUrl", Label: "Thumbnail", Value: img.ThumbnailURL, Folder: "gallery"},
		Categories: h.categories(r.Context()),
		Action:     listPath,
	}
	title := "Add Image"
	if !img.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + img.ID.Hex() + "/edit"
		title = "Edit Image"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "gallery_form", vm)
}

func (h *Handler) renderBulk(w http.ResponseWriter, r *http.Request, vm bulkVM, msg string) {
	vm.Categories = h.categories(r.Context())
	formutil.SetBase(&vm.Base, r, h.DB, "Add Many Images", listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "gallery_bulk", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, img models.GalleryImage, in gallerystore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save gallery image failed", err, "Failed to save image.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(img, in); oerr == nil {
		img = filled
	}
	h.renderForm(w, r, img, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "gallery image not found", err, "Image not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load gallery image failed", err, "Failed to load image.", listPath)
}

func inputFromForm(r *http.Request) gallerystore.Input {
	return gallerystore.Input{
		Title:        formutil.String(r, "title"),
		Description:  formutil.String(r, "description"),
		ImageURL:     formutil.String(r, "imageUrl"),
		ThumbnailURL: formutil.String(r, "thumbnailUrl"),
		Category:     formutil.String(r, "category"),
		Event:        formutil.String(r, "event"),
		Order:        formutil.Int(r, "order"),
		IsActive:     formutil.Bool(r, "isActive"),
	}
}

// internal/app/features/impact/admin.go
package impact

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	impactpoststore "github.com/dalemusser/duasite/internal/app/store/impactposts"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/impact"

type listVM struct {
	viewdata.BaseVM
	Posts []models.ImpactPost
	State string
}

type formVM struct {
	formutil.Base
	Item          models.ImpactPost
	FeaturedImage formutil.Image
	PublishedAt   string
	ImagesText    string
	TagsText      string
	AreasText     string
	Action        string
}

// ServeList shows every post. ?state=draft or ?state=published narrows it.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	state := query.Get(r, "state")
	list, err := h.Store.List(ctx, impactpoststore.Filter{PublishedOnly: state == "published"})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list impact posts failed", err, "Failed to load stories.", "/admin")
		return
	}
	if state == "draft" {
		drafts := list[:0]
		for _, p := range list {
			if !p.IsPublished {
				drafts = append(drafts, p)
			}
		}
		list = drafts
	}
	templates.Render(w, r, "impact_list", listVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Impact Stories", "/admin"),
		Posts:  list,
		State:  state,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	p := models.ImpactPost{IsActive: true}
	if u, ok := auth.CurrentUser(r); ok {
		p.Author = u.Name
	}
	h.renderForm(w, r, p, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Create(ctx, in)
	if err != nil {
		h.formFailed(w, r, models.ImpactPost{}, in, err)
		return
	}
	h.Log.Info("impact post created", zap.String("post_id", p.ID.Hex()), zap.Bool("published", p.IsPublished))
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderForm(w, r, p, "")
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
	if _, err := h.Store.Update(ctx, current.ID.Hex(), in); err != nil {
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, p models.ImpactPost, msg string) {
	vm := formVM{
		Item:          p,
		FeaturedImage: formutil.Image{Name: "featuredImage", Label: "Featured image", Value: p.FeaturedImage, Folder: "impact"},
		PublishedAt:   formutil.FormatDate(p.PublishedAt),
		ImagesText:    strings.Join(p.Images, "\n"),
		TagsText:      strings.Join(p.Tags, ", "),
		AreasText:     strings.Join(p.AreasImpacted, ", "),
		Action:        listPath,
	}
	title := "New Story"
	if !p.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + p.ID.Hex() + "/edit"
		title = "Edit Story"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "impact_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, p models.ImpactPost, in impactpoststore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save impact post failed", err, "Failed to save story.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(p, in); oerr == nil {
		p = filled
	}
	h.renderForm(w, r, p, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "impact post not found", err, "Story not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load impact post failed", err, "Failed to load story.", listPath)
}

func inputFromForm(r *http.Request) impactpoststore.Input {
	return impactpoststore.Input{
		Title:            formutil.String(r, "title"),
		Slug:             formutil.String(r, "slug"),
		Content:          formutil.String(r, "content"),
		Excerpt:          formutil.String(r, "excerpt"),
		FeaturedImage:    formutil.String(r, "featuredImage"),
		Images:           formutil.Lines(r, "images"),
		Category:         formutil.String(r, "category"),
		BeneficiaryCount: formutil.Int(r, "beneficiaryCount"),
		AreasImpacted:    formutil.CSV(r, "areasImpacted"),
		Tags:             formutil.CSV(r, "tags"),
		Author:           formutil.String(r, "author"),
		PublishedAt:      formutil.Date(r, "publishedAt"),
		IsPublished:      formutil.Bool(r, "isPublished"),
		IsActive:         formutil.Bool(r, "isActive"),
	}
}

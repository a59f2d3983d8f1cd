// internal/app/features/initiatives/admin.go
package initiatives

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/initiatives"

type listVM struct {
	viewdata.BaseVM
	Initiatives []models.Initiative
	Status      string
	Category    string
	Statuses    []string
	Categories  []string
}

type formVM struct {
	formutil.Base
	Item           models.Initiative
	FeaturedImage  formutil.Image
	Categories     []string
	Statuses       []string
	StartDate      string
	EndDate        string
	ObjectivesText string
	ImagesText     string
	Action         string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	status, category := query.Get(r, "status"), query.Get(r, "category")
	list, err := h.Store.List(ctx, initiativestore.Filter{Status: status, Category: category})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list initiatives failed", err, "Failed to load initiatives.", "/admin")
		return
	}
	templates.Render(w, r, "initiatives_list", listVM{
		BaseVM:      viewdata.NewBaseVM(r, h.DB, "Initiatives", "/admin"),
		Initiatives: list,
		Status:      status,
		Category:    category,
		Statuses:    models.InitiativeStatuses,
		Categories:  models.InitiativeCategories,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.Initiative{Category: "other", Status: "ongoing", IsActive: true}, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	it, err := h.Store.Create(ctx, in)
	if err != nil {
		h.formFailed(w, r, models.Initiative{}, in, err)
		return
	}
	h.Log.Info("initiative created", zap.String("initiative_id", it.ID.Hex()), zap.String("slug", it.Slug))
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	it, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderForm(w, r, it, "")
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, it models.Initiative, msg string) {
	vm := formVM{
		Item:           it,
		FeaturedImage:  formutil.Image{Name: "featuredImage", Label: "Featured image", Value: it.FeaturedImage, Folder: "initiatives"},
		Categories:     models.InitiativeCategories,
		Statuses:       models.InitiativeStatuses,
		StartDate:      formutil.FormatDate(it.StartDate),
		EndDate:        formutil.FormatDate(it.EndDate),
		ObjectivesText: strings.Join(it.Objectives, "\n"),
		ImagesText:     strings.Join(it.Images, "\n"),
		Action:         listPath,
	}
	title := "New Initiative"
	if !it.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + it.ID.Hex() + "/edit"
		title = "Edit Initiative"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "initiatives_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, it models.Initiative, in initiativestore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save initiative failed", err, "Failed to save initiative.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(it, in); oerr == nil {
		it = filled
	}
	h.renderForm(w, r, it, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "initiative not found", err, "Initiative not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load initiative failed", err, "Failed to load initiative.", listPath)
}

func inputFromForm(r *http.Request) initiativestore.Input {
	return initiativestore.Input{
		Title:         formutil.String(r, "title"),
		Slug:          formutil.String(r, "slug"),
		Description:   formutil.String(r, "description"),
		Excerpt:       formutil.String(r, "excerpt"),
		FeaturedImage: formutil.String(r, "featuredImage"),
		Images:        formutil.Lines(r, "images"),
		Category:      formutil.String(r, "category"),
		Status:        formutil.String(r, "status"),
		StartDate:     formutil.Date(r, "startDate"),
		EndDate:       formutil.Date(r, "endDate"),
		Location:      formutil.String(r, "location"),
		Beneficiaries: formutil.Int(r, "beneficiaries"),
		Objectives:    formutil.Lines(r, "objectives"),
		IsHighlighted: formutil.Bool(r, "isHighlighted"),
		Order:         formutil.Int(r, "order"),
		IsActive:      formutil.Bool(r, "isActive"),
	}
}

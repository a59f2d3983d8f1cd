// internal/app/features/partners/admin.go
package partners

import (
	"context"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	partnerstore "github.com/dalemusser/duasite/internal/app/store/partners"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/partners"

type listVM struct {
	viewdata.BaseVM
	Partners []models.Partner
	Type     string
	Types    []string
}

type formVM struct {
	formutil.Base
	Item   models.Partner
	Logo   formutil.Image
	Types  []string
	Action string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	typ := r.URL.Query().Get("type")
	items, err := h.Store.List(ctx, partnerstore.Filter{Type: typ})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list partners failed", err, "Failed to load partners.", "/admin")
		return
	}
	templates.Render(w, r, "partners_list", listVM{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Partners", "/admin"),
		Partners: items,
		Type:     typ,
		Types:    models.PartnerTypes,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.Partner{Type: "partner", IsActive: true}, "")
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
		h.formFailed(w, r, models.Partner{}, in, err)
		return
	}
	h.Log.Info("partner created", zap.String("id", it.ID.Hex()))
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, it models.Partner, msg string) {
	vm := formVM{
		Item:   it,
		Logo:   formutil.Image{Name: "logo", Label: "Logo", Value: it.Logo, Folder: "partners"},
		Types:  models.PartnerTypes,
		Action: listPath,
	}
	title := "New Partner"
	if !it.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + it.ID.Hex() + "/edit"
		title = "Edit Partner"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "partners_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, it models.Partner, in partnerstore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save partner failed", err, "Failed to save partner.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(it, in); oerr == nil {
		it = filled
	}
	h.renderForm(w, r, it, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "partner not found", err, "Partner not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load partner failed", err, "Failed to load partner.", listPath)
}

func inputFromForm(r *http.Request) partnerstore.Input {
	return partnerstore.Input{
		Name:        formutil.String(r, "name"),
		Description: formutil.String(r, "description"),
		Logo:        formutil.String(r, "logo"),
		Website:     formutil.String(r, "website"),
		Location:    formutil.String(r, "location"),
		Type:        formutil.String(r, "type"),
		Order:       formutil.Int(r, "order"),
		IsActive:    formutil.Bool(r, "isActive"),
	}
}

// internal/app/features/impactstats/admin.go
package impactstats

import (
	"context"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	impactstatstore "github.com/dalemusser/duasite/internal/app/store/impactstats"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/impact-stats"

type listVM struct {
	viewdata.BaseVM
	Stats []models.ImpactStat
}

type formVM struct {
	formutil.Base
	Item   models.ImpactStat
	Action string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.List(ctx, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list impact stats failed", err, "Failed to load impact stats.", "/admin")
		return
	}
	templates.Render(w, r, "impactstats_list", listVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Impact Stats", "/admin"),
		Stats:  items,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.ImpactStat{IsActive: true}, "")
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
		h.formFailed(w, r, models.ImpactStat{}, in, err)
		return
	}
	h.Log.Info("impact stat created", zap.String("id", it.ID.Hex()))
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, it models.ImpactStat, msg string) {
	vm := formVM{
		Item:   it,
		Action: listPath,
	}
	title := "New Impact Stat"
	if !it.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + it.ID.Hex() + "/edit"
		title = "Edit Impact Stat"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "impactstats_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, it models.ImpactStat, in impactstatstore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save impact stat failed", err, "Failed to save impact stat.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(it, in); oerr == nil {
		it = filled
	}
	h.renderForm(w, r, it, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "impact stat not found", err, "Impact stat not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load impact stat failed", err, "Failed to load impact stat.", listPath)
}

func inputFromForm(r *http.Request) impactstatstore.Input {
	return impactstatstore.Input{
		Label:       formutil.String(r, "label"),
		Value:       formutil.String(r, "value"),
		Description: formutil.String(r, "description"),
		Icon:        formutil.String(r, "icon"),
		Order:       formutil.Int(r, "order"),
		IsActive:    formutil.Bool(r, "isActive"),
	}
}

// internal/app/features/advisors/admin.go
package advisors

import (
	"context"
	"net/http"

	advisorstore "github.com/dalemusser/duasite/internal/app/store/advisors"
	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/advisors"

type listVM struct {
	viewdata.BaseVM
	Advisors []models.Advisor
}

type formVM struct {
	formutil.Base
	Advisor models.Advisor
	Photo   formutil.Image
	Action  string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list advisors failed", err, "Failed to load advisors.", "/admin")
		return
	}
	templates.Render(w, r, "advisors_list", listVM{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Advisors", "/admin"),
		Advisors: list,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.Advisor{IsActive: true}, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.Create(ctx, in)
	if err != nil {
		h.formFailed(w, r, models.Advisor{}, in, err)
		return
	}
	h.Log.Info("advisor created", zap.String("advisor_id", a.ID.Hex()))
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderForm(w, r, a, "")
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, a models.Advisor, msg string) {
	vm := formVM{
		Advisor: a,
		Photo:   formutil.Image{Name: "photo", Label: "Photo", Value: a.Photo, Folder: "advisors"},
		Action:  listPath,
	}
	title := "New Advisor"
	if !a.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + a.ID.Hex() + "/edit"
		title = "Edit Advisor"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "advisors_form", vm)
}

// formFailed re-renders the form with the submitted values on a validation
// error and falls through to the error page otherwise.
func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, a models.Advisor, in advisorstore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save advisor failed", err, "Failed to save advisor.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(a, in); oerr == nil {
		a = filled
	}
	h.renderForm(w, r, a, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "advisor not found", err, "Advisor not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load advisor failed", err, "Failed to load advisor.", listPath)
}

func inputFromForm(r *http.Request) advisorstore.Input {
	return advisorstore.Input{
		Name:         formutil.String(r, "name"),
		Title:        formutil.String(r, "title"),
		Credentials:  formutil.String(r, "credentials"),
		Organization: formutil.String(r, "organization"),
		Photo:        formutil.String(r, "photo"),
		Bio:          formutil.String(r, "bio"),
		Email:        formutil.String(r, "email"),
		Order:        formutil.Int(r, "order"),
		IsActive:     formutil.Bool(r, "isActive"),
	}
}

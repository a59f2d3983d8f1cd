// internal/app/features/team/admin.go
package team

import (
	"context"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	teamstore "github.com/dalemusser/duasite/internal/app/store/team"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/team"

type listVM struct {
	viewdata.BaseVM
	Members []models.TeamMember
	Type    string
	Types   []string
}

type formVM struct {
	formutil.Base
	Member models.TeamMember
	Photo  formutil.Image
	Types  []string
	Action string
}

// ServeList shows every member, optionally narrowed to one type.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	typ := r.URL.Query().Get("type")
	members, err := h.Store.List(ctx, teamstore.Filter{Type: typ})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list team failed", err, "Failed to load team members.", "/admin")
		return
	}
	templates.Render(w, r, "team_list", listVM{
		BaseVM:  viewdata.NewBaseVM(r, h.DB, "Team", "/admin"),
		Members: members,
		Type:    typ,
		Types:   models.TeamTypes,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.TeamMember{Type: models.TeamTypeMember, IsActive: true}, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", listPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Create(ctx, in)
	if err != nil {
		h.formFailed(w, r, models.TeamMember{}, in, err)
		return
	}
	h.Log.Info("team member created", zap.String("member_id", m.ID.Hex()))
	formutil.Redirect(w, r, listPath)
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	h.renderForm(w, r, m, "")
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, m models.TeamMember, msg string) {
	vm := formVM{
		Member: m,
		Photo:  formutil.Image{Name: "photo", Label: "Photo", Value: m.Photo, Folder: "team"},
		Types:  models.TeamTypes,
		Action: listPath,
	}
	title := "New Team Member"
	if !m.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + m.ID.Hex() + "/edit"
		title = "Edit Team Member"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "team_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, m models.TeamMember, in teamstore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save team member failed", err, "Failed to save team member.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(m, in); oerr == nil {
		m = filled
	}
	h.renderForm(w, r, m, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "team member not found", err, "Team member not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load team member failed", err, "Failed to load team member.", listPath)
}

func inputFromForm(r *http.Request) teamstore.Input {
	return teamstore.Input{
		Name:         formutil.String(r, "name"),
		Role:         formutil.String(r, "role"),
		Designation:  formutil.String(r, "designation"),
		Organization: formutil.String(r, "organization"),
		Photo:        formutil.String(r, "photo"),
		Bio:          formutil.String(r, "bio"),
		Email:        formutil.String(r, "email"),
		SocialLinks: &teamstore.SocialInput{
			LinkedIn: formutil.String(r, "linkedin"),
			Facebook: formutil.String(r, "facebook"),
			Twitter:  formutil.String(r, "twitter"),
		},
		Type:     formutil.String(r, "type"),
		Order:    formutil.Int(r, "order"),
		IsActive: formutil.Bool(r, "isActive"),
	}
}

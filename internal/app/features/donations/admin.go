// internal/app/features/donations/admin.go
package donations

import (
	"context"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	donationstore "github.com/dalemusser/duasite/internal/app/store/donations"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const listPath = "/admin/donations"

type listVM struct {
	viewdata.BaseVM
	Options []models.DonationOption
	Type    string
	Types   []string
}

type formVM struct {
	formutil.Base
	Item   models.DonationOption
	QRCode formutil.Image
	Types  []string
	Action string
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	typ := r.URL.Query().Get("type")
	items, err := h.Store.List(ctx, donationstore.Filter{Type: typ})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donation options failed", err, "Failed to load donation options.", "/admin")
		return
	}
	templates.Render(w, r, "donations_list", listVM{
		BaseVM:  viewdata.NewBaseVM(r, h.DB, "Donation Options", "/admin"),
		Options: items,
		Type:    typ,
		Types:   models.DonationTypes,
	})
}

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, models.DonationOption{Type: "bkash", IsActive: true}, "")
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
		h.formFailed(w, r, models.DonationOption{}, in, err)
		return
	}
	h.Log.Info("donation option created", zap.String("id", it.ID.Hex()))
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

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, it models.DonationOption, msg string) {
	vm := formVM{
		Item:   it,
		QRCode: formutil.Image{Name: "qrCode", Label: "QR code", Value: it.QRCode, Folder: "donations"},
		Types:  models.DonationTypes,
		Action: listPath,
	}
	title := "New Donation Option"
	if !it.ID.IsZero() {
		vm.IsEdit = true
		vm.Action = listPath + "/" + it.ID.Hex() + "/edit"
		title = "Edit Donation Option"
	}
	formutil.SetBase(&vm.Base, r, h.DB, title, listPath)
	if msg != "" {
		vm.SetError(msg)
		w.WriteHeader(http.StatusBadRequest)
	}
	templates.Render(w, r, "donations_form", vm)
}

func (h *Handler) formFailed(w http.ResponseWriter, r *http.Request, it models.DonationOption, in donationstore.Input, err error) {
	if !apierr.IsValidation(err) {
		h.ErrLog.LogServerError(w, r, "save donation option failed", err, "Failed to save donation option.", listPath)
		return
	}
	if filled, oerr := crud.Overlay(it, in); oerr == nil {
		it = filled
	}
	h.renderForm(w, r, it, err.Error())
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsNotFound(err) {
		h.ErrLog.LogNotFound(w, r, "donation option not found", err, "Donation option not found.", listPath)
		return
	}
	h.ErrLog.LogServerError(w, r, "load donation option failed", err, "Failed to load donation option.", listPath)
}

func inputFromForm(r *http.Request) donationstore.Input {
	return donationstore.Input{
		Type:          formutil.String(r, "type"),
		Name:          formutil.String(r, "name"),
		AccountNumber: formutil.String(r, "accountNumber"),
		AccountName:   formutil.String(r, "accountName"),
		BankName:      formutil.String(r, "bankName"),
		BranchName:    formutil.String(r, "branchName"),
		RoutingNumber: formutil.String(r, "routingNumber"),
		Instructions:  formutil.String(r, "instructions"),
		QRCode:        formutil.String(r, "qrCode"),
		Icon:          formutil.String(r, "icon"),
		Order:         formutil.Int(r, "order"),
		IsActive:      formutil.Bool(r, "isActive"),
	}
}

// internal/app/features/donations/public.go
package donations

import (
	"context"
	"net/http"

	donationstore "github.com/dalemusser/duasite/internal/app/store/donations"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

var typeLabels = map[string]string{
	"bank":   "Bank Transfer",
	"bkash":  "bKash",
	"nagad":  "Nagad",
	"rocket": "Rocket",
	"upay":   "Upay",
	"other":  "Other",
}

// TypeLabel is the display name of a donation type.
func TypeLabel(t string) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return t
}

type optionCard struct {
	models.DonationOption
	TypeLabel string
}

type donateVM struct {
	viewdata.BaseVM
	Wallets []optionCard
	Banks   []optionCard
}

// splitOptions puts bank accounts apart from mobile wallets, keeping order.
func splitOptions(opts []models.DonationOption) (wallets, banks []optionCard) {
	for _, o := range opts {
		c := optionCard{DonationOption: o, TypeLabel: TypeLabel(o.Type)}
		if o.Type == "bank" {
			banks = append(banks, c)
		} else {
			wallets = append(wallets, c)
		}
	}
	return wallets, banks
}

// ServeDonate renders /donate with the active options.
func (h *Handler) ServeDonate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	opts, err := h.Store.List(ctx, donationstore.Filter{ActiveOnly: true})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "donate: list options failed", err, "Failed to load donation options.", "/")
		return
	}
	vm := donateVM{BaseVM: viewdata.NewBaseVM(r, h.DB, "Donate", "/")}
	vm.Wallets, vm.Banks = splitOptions(opts)
	templates.Render(w, r, "donations_public", vm)
}

package donations

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	donationstore "github.com/dalemusser/duasite/internal/app/store/donations"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestAPI_CreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := APIRoutes(db, newSessionManager(t), zap.NewNop())

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"wallet", map[string]any{"type": "bkash", "name": "bKash", "accountNumber": "01700000000"}, http.StatusCreated},
		{"missing account", map[string]any{"type": "nagad", "name": "Nagad"}, http.StatusBadRequest},
		{"bank without bank name", map[string]any{"type": "bank", "name": "Bank", "accountNumber": "123"}, http.StatusBadRequest},
		{"bank", map[string]any{"type": "bank", "name": "Bank", "accountNumber": "123", "bankName": "Sonali Bank"}, http.StatusCreated},
		{"unknown type", map[string]any{"type": "paypal", "name": "PayPal", "accountNumber": "x"}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", tc.body)))
			rec.AssertStatus(t, tc.want)
		})
	}

	var list []models.DonationOption
	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?type=bank", nil))
	rec.DecodeJSON(t, &list)
	if len(list) != 1 || list[0].BankName != "Sonali Bank" {
		t.Errorf("bank list = %+v", list)
	}
}

func TestHandleCreate_RedirectsToList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.FormRequest(t, "/admin/donations", map[string]string{
		"type":          "rocket",
		"name":          "Rocket",
		"accountNumber": "01800000000",
		"accountName":   "DUA",
		"isActive":      "on",
	})
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.WithAdmin(req))
	rec.AssertRedirect(t, listPath)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := h.Store.List(ctx, donationstore.Filter{Type: "rocket"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].AccountName != "DUA" {
		t.Errorf("list = %+v", list)
	}
}

func TestSplitOptions(t *testing.T) {
	wallets, banks := splitOptions([]models.DonationOption{
		{Type: "bkash", Name: "bKash Personal"},
		{Type: "bank", Name: "City Bank"},
		{Type: "nagad", Name: "Nagad"},
	})
	if len(wallets) != 2 || wallets[0].TypeLabel != "bKash" || wallets[1].TypeLabel != "Nagad" {
		t.Errorf("wallets = %+v", wallets)
	}
	if len(banks) != 1 || banks[0].TypeLabel != "Bank Transfer" {
		t.Errorf("banks = %+v", banks)
	}
	if TypeLabel("crypto") != "crypto" {
		t.Error("unknown type label changed")
	}
}

package auditlog

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	"github.com/dalemusser/duasite/internal/app/store/audit"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

func TestRoutes_RequireSignIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	Routes(h, sm).ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusSeeOther)
}

func TestParseCategory(t *testing.T) {
	tests := map[string]string{
		"auth":  audit.CategoryAuth,
		"admin": audit.CategoryAdmin,
		"":      "",
		"other": "",
	}
	for in, want := range tests {
		if got := parseCategory(in); got != want {
			t.Errorf("parseCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		category string
		start    int
		want     string
	}{
		{"", 1, "/admin/audit"},
		{"", 26, "/admin/audit?start=26"},
		{"auth", 1, "/admin/audit?category=auth"},
		{"auth", 51, "/admin/audit?category=auth&start=51"},
	}
	for _, tt := range tests {
		if got := pageURL(tt.category, tt.start); got != tt.want {
			t.Errorf("pageURL(%q, %d) = %q, want %q", tt.category, tt.start, got, tt.want)
		}
	}
}

func TestToRow_Labels(t *testing.T) {
	r := toRow(audit.Event{EventType: audit.EventLoginFailed, FailureReason: "invalid credentials", Timestamp: time.Now()})
	if r.Label != "Failed sign-in" || r.Success || r.Reason != "invalid credentials" {
		t.Errorf("row = %+v", r)
	}
	if got := toRow(audit.Event{EventType: "custom"}).Label; got != "custom" {
		t.Errorf("unknown type label = %q", got)
	}
}

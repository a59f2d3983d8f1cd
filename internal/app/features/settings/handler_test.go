package settings_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	"github.com/dalemusser/duasite/internal/app/features/settings"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *settings.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return settings.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
}

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestAPIGet_CreatesSingleton(t *testing.T) {
	h := newTestHandler(t)

	var first, second models.Settings
	for _, out := range []*models.Settings{&first, &second} {
		rec := testutil.NewRecorder()
		h.APIGet(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
		rec.AssertStatus(t, http.StatusOK)
		rec.DecodeJSON(t, out)
	}
	if first.ID != second.ID {
		t.Errorf("second GET returned a different document: %s vs %s", first.ID.Hex(), second.ID.Hex())
	}
	if first.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q", first.SiteName)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := h.Store.Count(ctx); n != 1 {
		t.Errorf("settings count = %d, want 1", n)
	}
}

func TestAPIPut_MergesFields(t *testing.T) {
	h := newTestHandler(t)

	body := map[string]any{
		"tagline":    "Together",
		"animations": map[string]any{"hoverEffect": "lift"},
	}
	rec := testutil.NewRecorder()
	h.APIPut(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPut, "/api/settings", body)))
	rec.AssertStatus(t, http.StatusOK)

	var st models.Settings
	rec.DecodeJSON(t, &st)
	if st.Tagline != "Together" {
		t.Errorf("Tagline = %q", st.Tagline)
	}
	if st.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName changed to %q", st.SiteName)
	}
	if st.Animations.HoverEffect != "lift" || st.Animations.HeroAnimation != "kenburns" {
		t.Errorf("Animations = %+v", st.Animations)
	}
}

func TestAPIPut_InvalidEnum(t *testing.T) {
	h := newTestHandler(t)

	body := map[string]any{"animations": map[string]any{"heroAnimation": "spin"}}
	rec := testutil.NewRecorder()
	h.APIPut(rec, testutil.JSONRequest(t, http.MethodPut, "/api/settings", body))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestAPIRoutes_PutRequiresSession(t *testing.T) {
	h := newTestHandler(t)
	r := settings.APIRoutes(h, newSessionManager(t))

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPut, "/", map[string]any{"tagline": "x"}))
	rec.AssertStatus(t, http.StatusUnauthorized)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := h.Store.Count(ctx); n != 0 {
		t.Errorf("rejected PUT wrote settings (count %d)", n)
	}
}

func TestHandleSettings_SavesAndRedirects(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.FormRequest(t, "/admin/settings", map[string]string{
		"siteName":          "DUA",
		"tagline":           "Delivering Happiness",
		"emergencyContacts": "Ambulance | 999 | Emergency\nbad line\nClinic | 01700000000",
		"heroAnimation":     "fade",
		"sectionAnimation":  "reveal",
		"hoverEffect":       "shine",
		"enableParallax":    "on",
	})
	rec := testutil.NewRecorder()
	h.HandleSettings(rec, testutil.WithAdmin(req))
	rec.AssertRedirect(t, "/admin/settings?saved=1")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	st, err := h.Store.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.SiteName != "DUA" || st.Animations.HeroAnimation != "fade" {
		t.Errorf("settings = %+v", st)
	}
	if st.Animations.EnableSmoothScroll {
		t.Error("unchecked box should clear EnableSmoothScroll")
	}
	if len(st.EmergencyContacts) != 2 || st.EmergencyContacts[0].Role != "Emergency" {
		t.Errorf("EmergencyContacts = %+v", st.EmergencyContacts)
	}
}

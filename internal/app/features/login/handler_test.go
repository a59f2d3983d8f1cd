package login

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	"github.com/dalemusser/duasite/internal/app/store/audit"
	"github.com/dalemusser/duasite/internal/app/system/auditlog"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/authutil"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(testKey, "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := NewHandler(db, sm, uierrors.NewErrorLogger(logger), ratelimit.NewLoginLimiter(3, time.Minute), logger)
	return h, testutil.NewFixtures(t, db)
}

func seedAdmin(t *testing.T, fx *testutil.Fixtures, email, password string) {
	t.Helper()
	hash, err := authutil.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateAdmin(ctx, email, hash)
}

func TestAPILogin_Success(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")

	req := testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "Admin@DUABD.org", Password: "admin123"})
	rec := testutil.NewRecorder()
	h.APILogin(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var body sessionBody
	rec.DecodeJSON(t, &body)
	if !body.Authenticated || body.Email != "admin@duabd.org" {
		t.Errorf("body = %+v", body)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestAPILogin_WrongPassword(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")

	req := testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "admin@duabd.org", Password: "nope"})
	rec := testutil.NewRecorder()
	h.APILogin(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Invalid credentials")
}

func TestAPILogin_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "admin@duabd.org"})
	rec := testutil.NewRecorder()
	h.APILogin(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestAPILogin_RateLimitedPerEmail(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")

	var last int
	for i := 0; i < 4; i++ {
		req := testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "admin@duabd.org", Password: "wrong"})
		rec := testutil.NewRecorder()
		h.APILogin(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("fourth attempt status = %d, want 429", last)
	}
}

func TestAPISession(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.APISession(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	var anon sessionBody
	rec.DecodeJSON(t, &anon)
	if anon.Authenticated {
		t.Error("anonymous request reported authenticated")
	}

	rec = testutil.NewRecorder()
	h.APISession(rec, testutil.WithAdmin(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)))
	var signed sessionBody
	rec.DecodeJSON(t, &signed)
	if !signed.Authenticated || signed.Role == "" {
		t.Errorf("signed-in body = %+v", signed)
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")

	rec := testutil.NewRecorder()
	h.APILogin(rec, testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "admin@duabd.org", Password: "admin123"}))
	rec.AssertStatus(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := testutil.NewRecorder()
	h.SessionMgr.LoadSessionUser(http.HandlerFunc(h.APISession)).ServeHTTP(out, req)

	var body sessionBody
	out.DecodeJSON(t, &body)
	if !body.Authenticated {
		t.Error("cookie from login did not authenticate the next request")
	}
}

func TestHandleLoginPost_SuccessRedirects(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")

	req := testutil.FormRequest(t, "/admin/login", map[string]string{
		"email":    "admin@duabd.org",
		"password": "admin123",
		"return":   "/admin/messages",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, req)

	rec.AssertRedirect(t, "/admin/messages")
}

func TestHandleLoginPost_UnsafeReturnFallsBack(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")

	req := testutil.FormRequest(t, "/admin/login", map[string]string{
		"email":    "admin@duabd.org",
		"password": "admin123",
		"return":   "https://evil.example.com/",
	})
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, req)

	rec.AssertRedirect(t, DashboardPath)
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeLogin(rec, testutil.WithAdmin(httptest.NewRequest(http.MethodGet, "/admin/login", nil)))

	rec.AssertRedirect(t, DashboardPath)
}

func TestAPILogin_AuditTrail(t *testing.T) {
	h, fx := newTestHandler(t)
	seedAdmin(t, fx, "admin@duabd.org", "admin123")
	store := audit.New(fx.DB())
	h.Audit = auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeDB})

	h.APILogin(testutil.NewRecorder(), testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "admin@duabd.org", Password: "nope"}))
	h.APILogin(testutil.NewRecorder(), testutil.JSONRequest(t, http.MethodPost, "/api/auth/login", credentials{Email: "admin@duabd.org", Password: "admin123"}))

	ctx, cancel := testutil.TestContext()
	defer cancel()
	events, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// newest first
	if events[0].EventType != audit.EventLoginSuccess || events[0].ActorID == "" || events[0].Channel != "api" {
		t.Errorf("success event = %+v", events[0])
	}
	if events[1].EventType != audit.EventLoginFailed || events[1].ActorEmail != "admin@duabd.org" || events[1].Success {
		t.Errorf("failed event = %+v", events[1])
	}
}

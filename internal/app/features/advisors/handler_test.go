package advisors

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	advisorstore "github.com/dalemusser/duasite/internal/app/store/advisors"
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

func TestAPI_UnauthenticatedCreateRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := APIRoutes(db, newSessionManager(t), zap.NewNop())

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", map[string]any{"name": "Dr. A", "title": "PhD"}))
	rec.AssertStatus(t, http.StatusUnauthorized)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := db.Collection("advisors").CountDocuments(ctx, map[string]any{}); n != 0 {
		t.Errorf("rejected create wrote %d documents", n)
	}
}

func TestAPI_LifecycleAndActiveFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := APIRoutes(db, newSessionManager(t), zap.NewNop())

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", map[string]any{"name": "Dr. A", "title": "PhD"})))
	rec.AssertStatus(t, http.StatusCreated)
	var created models.Advisor
	rec.DecodeJSON(t, &created)

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPut, "/"+created.ID.Hex(), map[string]any{"isActive": false})))
	rec.AssertStatus(t, http.StatusOK)

	var list []models.Advisor
	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	rec.DecodeJSON(t, &list)
	if len(list) != 0 {
		t.Errorf("default list returned %d hidden advisors", len(list))
	}

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?active=all", nil))
	rec.DecodeJSON(t, &list)
	if len(list) != 1 || list[0].Title != "PhD" {
		t.Errorf("active=all list = %+v", list)
	}

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(httptest.NewRequest(http.MethodDelete, "/"+created.ID.Hex(), nil)))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Advisor deleted")

	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+created.ID.Hex(), nil))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleCreate_RedirectsToList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.FormRequest(t, "/admin/advisors", map[string]string{
		"name":         "Mohammad Mynuddin",
		"title":        "Associate Professor",
		"organization": "Dhaka Residential Model College",
		"order":        "3",
		"isActive":     "on",
	})
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.WithAdmin(req))
	rec.AssertRedirect(t, listPath)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := h.Store.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Order != 3 {
		t.Errorf("list = %+v", list)
	}
}

func TestHandleCreate_ValidationWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.FormRequest(t, "/admin/advisors", map[string]string{"name": "No Title"})
	rec := testutil.NewRecorder()
	func() {
		// The form re-render needs booted templates.
		defer func() { _ = recover() }()
		h.HandleCreate(rec, testutil.WithAdmin(req))
	}()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, _ := h.Store.List(ctx, false)
	if len(list) != 0 {
		t.Errorf("invalid form created %d advisors", len(list))
	}
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	name, title := "Dr. B", "MBBS"
	a, err := h.Store.Create(ctx, inputOf(name, title))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodPost, "/admin/advisors/"+a.ID.Hex()+"/delete", nil), "id", a.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, testutil.WithAdmin(req))
	rec.AssertRedirect(t, listPath)

	if _, err := h.Store.Get(ctx, a.ID.Hex()); err == nil {
		t.Error("advisor still present after delete")
	}
}

func inputOf(name, title string) advisorstore.Input {
	return advisorstore.Input{Name: &name, Title: &title}
}

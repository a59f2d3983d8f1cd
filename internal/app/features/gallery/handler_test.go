package gallery

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	gallerystore "github.com/dalemusser/duasite/internal/app/store/gallery"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
)

func newFixture(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, APIRoutes(h, sm)
}

func TestAPICreate_Single(t *testing.T) {
	h, r := newFixture(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", map[string]any{
		"imageUrl": "https://res.cloudinary.com/demo/a.jpg",
	})))
	rec.AssertStatus(t, http.StatusCreated)
	var img models.GalleryImage
	rec.DecodeJSON(t, &img)
	if img.Category != models.DefaultGalleryCategory {
		t.Errorf("Category = %q", img.Category)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := h.Store.CountActive(ctx); n != 1 {
		t.Errorf("CountActive = %d", n)
	}
}

func TestAPICreate_Array(t *testing.T) {
	h, r := newFixture(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", []map[string]any{
		{"imageUrl": "https://res.cloudinary.com/demo/a.jpg", "category": "events"},
		{"imageUrl": "https://res.cloudinary.com/demo/b.jpg", "category": "events"},
	})))
	rec.AssertStatus(t, http.StatusCreated)
	var imgs []models.GalleryImage
	rec.DecodeJSON(t, &imgs)
	if len(imgs) != 2 {
		t.Fatalf("created %d images", len(imgs))
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, _ := h.Store.List(ctx, gallerystore.Filter{Category: "events"})
	if len(list) != 2 {
		t.Errorf("stored %d events images", len(list))
	}
}

func TestAPICreate_ArrayIsAllOrNothing(t *testing.T) {
	h, r := newFixture(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", []map[string]any{
		{"imageUrl": "https://res.cloudinary.com/demo/a.jpg"},
		{"title": "missing url"},
	})))
	rec.AssertStatus(t, http.StatusBadRequest)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := h.Store.CountActive(ctx); n != 0 {
		t.Errorf("partial batch wrote %d images", n)
	}
}

func TestAPICreate_RequiresSession(t *testing.T) {
	_, r := newFixture(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", map[string]any{"imageUrl": "https://x.org/a.jpg"}))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestAPIList_CategoryFilter(t *testing.T) {
	_, r := newFixture(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", []map[string]any{
		{"imageUrl": "https://x.org/1.jpg", "category": "healthcamp"},
		{"imageUrl": "https://x.org/2.jpg", "category": "iftar"},
	})))
	rec.AssertStatus(t, http.StatusCreated)

	var list []models.GalleryImage
	rec = testutil.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?category=iftar", nil))
	rec.DecodeJSON(t, &list)
	if len(list) != 1 || list[0].ImageURL != "https://x.org/2.jpg" {
		t.Errorf("list = %+v", list)
	}
}

func TestHandleBulk(t *testing.T) {
	h, _ := newFixture(t)

	req := testutil.FormRequest(t, "/admin/gallery/bulk", map[string]string{
		"urls":     "https://x.org/1.jpg\n\nhttps://x.org/2.jpg\n",
		"category": "winter",
		"event":    "Blanket drive",
	})
	rec := testutil.NewRecorder()
	h.HandleBulk(rec, testutil.WithAdmin(req))
	rec.AssertRedirect(t, listPath)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	list, err := h.Store.List(ctx, gallerystore.Filter{Category: "winter"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Event != "Blanket drive" {
		t.Errorf("list = %+v", list)
	}
}

package team

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
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

func TestAPI_ListFiltersByTypeAndActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateTeamMember(ctx, "Founder", models.TeamTypeFounder, 1, true)
	fx.CreateTeamMember(ctx, "Member A", models.TeamTypeMember, 2, true)
	fx.CreateTeamMember(ctx, "Member B", models.TeamTypeMember, 3, false)

	r := APIRoutes(db, newSessionManager(t), zap.NewNop())

	tests := []struct {
		query string
		want  []string
	}{
		{"/", []string{"Founder", "Member A"}},
		{"/?type=member", []string{"Member A"}},
		{"/?type=member&active=all", []string{"Member A", "Member B"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.query, nil))
			rec.AssertStatus(t, http.StatusOK)

			var got []models.TeamMember
			rec.DecodeJSON(t, &got)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d members, want %d", len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("got[%d] = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestAPI_UnauthenticatedWritesRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fx.CreateTeamMember(ctx, "Keep", models.TeamTypeMember, 1, true)

	r := APIRoutes(db, newSessionManager(t), zap.NewNop())
	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		rec := testutil.NewRecorder()
		r.ServeHTTP(rec, testutil.JSONRequest(t, method, "/"+m.ID.Hex(), map[string]any{"name": "Changed"}))
		rec.AssertStatus(t, http.StatusUnauthorized)
	}

	got, err := NewHandler(db, nil, zap.NewNop()).Store.Get(ctx, m.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Keep" {
		t.Errorf("Name = %q after rejected writes", got.Name)
	}
}

func TestHandleUpdate_PartialFormKeepsID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := fx.CreateTeamMember(ctx, "Farhin Ahmed", models.TeamTypeCoFounder, 2, true)

	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	req := testutil.FormRequest(t, "/admin/team/"+m.ID.Hex()+"/edit", map[string]string{
		"name":         "Farhin Ahmed",
		"role":         "Co-Founder",
		"organization": "University of Melbourne",
		"type":         models.TeamTypeCoFounder,
		"linkedin":     "https://linkedin.com/in/farhin",
		"order":        "2",
		"isActive":     "on",
	})
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdate(rec, testutil.WithAdmin(req))
	rec.AssertRedirect(t, listPath)

	got, err := h.Store.Get(ctx, m.ID.Hex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Role != "Co-Founder" || got.SocialLinks.LinkedIn != "https://linkedin.com/in/farhin" {
		t.Errorf("member = %+v", got)
	}
}

func TestHandleEdit_UnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/admin/team/nope/edit", nil), "id", "nope")
	rec := testutil.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeEdit(rec, testutil.WithAdmin(req))
	}()
	rec.AssertStatus(t, http.StatusNotFound)
}

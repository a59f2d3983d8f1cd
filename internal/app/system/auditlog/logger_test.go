package auditlog_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/duasite/internal/app/store/audit"
	"github.com/dalemusser/duasite/internal/app/system/auditlog"
	"github.com/dalemusser/duasite/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NilIsNoop(t *testing.T) {
	var l *auditlog.Logger
	l.LoginSuccess(context.Background(), httptest.NewRequest("POST", "/admin/login", nil), "id", "a@b.org", "form")
}

func TestLogger_Modes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		mode     string
		wantDB   int64
		wantLogs int
	}{
		{auditlog.ModeAll, 1, 1},
		{auditlog.ModeDB, 1, 0},
		{auditlog.ModeLog, 0, 1},
		{auditlog.ModeOff, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if _, err := db.Collection(audit.Collection).DeleteMany(ctx, map[string]any{}); err != nil {
				t.Fatalf("clear: %v", err)
			}
			core, logs := observer.New(zap.InfoLevel)
			l := auditlog.New(store, zap.New(core), auditlog.Config{Auth: tt.mode, Admin: auditlog.ModeAll})

			req := httptest.NewRequest("POST", "/admin/login", nil)
			req.RemoteAddr = "203.0.113.9:5555"
			l.LoginFailed(ctx, req, "who@duabd.org", "form")

			n, err := store.Count(ctx, audit.QueryFilter{EventType: audit.EventLoginFailed})
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if n != tt.wantDB {
				t.Errorf("stored = %d, want %d", n, tt.wantDB)
			}
			if got := logs.FilterMessage("audit event").Len(); got != tt.wantLogs {
				t.Errorf("zap entries = %d, want %d", got, tt.wantLogs)
			}
		})
	}
}

func TestLogger_RecordsRequestContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	l := auditlog.New(store, zap.NewNop(), auditlog.Config{Auth: auditlog.ModeDB, Admin: auditlog.ModeDB})
	req := httptest.NewRequest("POST", "/api/seed", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	req.Header.Set("User-Agent", "curl/8.0")
	l.DatabaseSeeded(ctx, req, map[string]int{"teamMembers": 4})

	got, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil || len(got) != 1 {
		t.Fatalf("Query: %v, %d events", err, len(got))
	}
	e := got[0]
	if e.IP != "198.51.100.4" || e.UserAgent != "curl/8.0" || e.Details["teamMembers"] != "4" || !e.Success {
		t.Errorf("event = %+v", e)
	}
}

func TestValid(t *testing.T) {
	for _, m := range []string{"all", "db", "log", "off"} {
		if !auditlog.Valid(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	if auditlog.Valid("everything") {
		t.Error("unknown mode accepted")
	}
}

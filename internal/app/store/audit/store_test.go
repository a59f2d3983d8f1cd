package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/audit"
	"github.com/dalemusser/duasite/internal/testutil"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	events := []audit.Event{
		{Timestamp: base, Category: audit.CategoryAuth, EventType: audit.EventLoginFailed, ActorEmail: "a@duabd.org"},
		{Timestamp: base.Add(time.Minute), Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, ActorEmail: "a@duabd.org", Success: true},
		{Timestamp: base.Add(2 * time.Minute), Category: audit.CategoryAdmin, EventType: audit.EventDatabaseSeeded, Success: true},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	all, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].EventType != audit.EventDatabaseSeeded {
		t.Errorf("newest first: got %q", all[0].EventType)
	}

	authOnly, err := store.Query(ctx, audit.QueryFilter{Category: audit.CategoryAuth})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(authOnly) != 2 {
		t.Errorf("auth events = %d, want 2", len(authOnly))
	}

	n, err := store.Count(ctx, audit.QueryFilter{EventType: audit.EventLoginFailed})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("failed logins = %d, want 1", n)
	}

	page, err := store.Query(ctx, audit.QueryFilter{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(page) != 1 || page[0].EventType != audit.EventLoginSuccess {
		t.Errorf("offset page = %+v", page)
	}
}

func TestStore_Log_SetsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLogout}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	got, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil || len(got) != 1 {
		t.Fatalf("Query: %v, %d events", err, len(got))
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

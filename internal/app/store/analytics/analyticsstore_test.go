package analyticsstore_test

import (
	"testing"
	"time"

	analyticsstore "github.com/dalemusser/duasite/internal/app/store/analytics"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/geoip"
	"github.com/dalemusser/duasite/internal/testutil"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

func TestStore_Record_SameSessionAppends(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/", UserAgent: chromeUA}, "203.0.113.5")
	if err != nil || !created {
		t.Fatalf("first beacon: created=%v err=%v", created, err)
	}
	created, err = store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/about", Duration: 12}, "203.0.113.5")
	if err != nil || created {
		t.Fatalf("second beacon: created=%v err=%v", created, err)
	}

	v, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(v.PageViews) != 2 {
		t.Fatalf("page views: got %d, want 2", len(v.PageViews))
	}
	if v.EntryPage != "/" || v.ExitPage != "/about" {
		t.Errorf("entry/exit: %q %q", v.EntryPage, v.ExitPage)
	}
	if v.Browser != "Chrome" || v.Device != "desktop" {
		t.Errorf("classification: %q %q", v.Browser, v.Device)
	}
	if v.PageViews[0].Duration != 12 {
		t.Errorf("duration should land on the previous view, got %d", v.PageViews[0].Duration)
	}
	if n, _ := store.CountSince(ctx, time.Time{}); n != 1 {
		t.Errorf("sessions: got %d, want 1", n)
	}
}

func TestStore_Record_LeaveSetsDurationWithoutView(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/about"}, "203.0.113.5"); err != nil {
		t.Fatalf("view beacon: %v", err)
	}
	// hidden, shown, hidden again: the later leave wins
	for _, d := range []int{5, 9} {
		created, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/about", Duration: d, Event: analyticsstore.EventLeave}, "203.0.113.5")
		if err != nil || created {
			t.Fatalf("leave beacon: created=%v err=%v", created, err)
		}
	}

	v, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(v.PageViews) != 1 {
		t.Fatalf("page views: got %d, want 1", len(v.PageViews))
	}
	if v.PageViews[0].Duration != 9 {
		t.Errorf("duration: got %d, want 9", v.PageViews[0].Duration)
	}

	sum, err := store.Aggregate(ctx, analyticsstore.PeriodAll)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if sum.TotalPageViews != 1 || len(sum.TopPages) != 1 || sum.TopPages[0].Count != 1 {
		t.Errorf("leave counted as a view: %+v", sum)
	}
}

func TestStore_Record_LeaveIgnoresStalePathAndUnknownSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "none", VisitorID: "v1", Path: "/", Duration: 4, Event: analyticsstore.EventLeave}, ""); err != nil {
		t.Fatalf("leave for unknown session: %v", err)
	}
	if n, _ := store.CountSince(ctx, time.Time{}); n != 0 {
		t.Errorf("leave created a session")
	}

	if _, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/"}, ""); err != nil {
		t.Fatalf("view: %v", err)
	}
	if _, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/gallery", Duration: 4, Event: analyticsstore.EventLeave}, ""); err != nil {
		t.Fatalf("stale leave: %v", err)
	}
	v, _ := store.GetSession(ctx, "s1")
	if len(v.PageViews) != 1 || v.PageViews[0].Duration != 0 {
		t.Errorf("stale leave touched the last view: %+v", v.PageViews)
	}
}

func TestStore_Record_UnknownEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/", Event: "click"}, "")
	if !apierr.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestStore_Record_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", Path: "/"}, "")
	if !apierr.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestStore_SetLocation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Record(ctx, analyticsstore.Beacon{SessionID: "s1", VisitorID: "v1", Path: "/"}, "203.0.113.5"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.SetLocation(ctx, "s1", geoip.Location{Country: "Bangladesh", City: "Dhaka", Region: "Dhaka Division"}); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}
	v, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if v.Country != "Bangladesh" || v.City != "Dhaka" {
		t.Errorf("location: %+v", v)
	}
}

func TestStore_Aggregate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := analyticsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx.CreateVisit(ctx, "s1", "v1", "Bangladesh", now.Add(-time.Hour), "/", "/about")
	fx.CreateVisit(ctx, "s2", "v1", "Bangladesh", now.Add(-2*time.Hour), "/")
	fx.CreateVisit(ctx, "s3", "v2", "", now.Add(-3*time.Hour), "/gallery")
	fx.CreateVisit(ctx, "old", "v3", "India", now.Add(-10*24*time.Hour), "/")

	sum, err := store.Aggregate(ctx, analyticsstore.Period7d)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if sum.TotalVisitors != 3 || sum.UniqueVisitors != 2 || sum.TotalPageViews != 4 {
		t.Errorf("totals: %+v", sum)
	}
	if len(sum.ByCountry) != 1 || sum.ByCountry[0].Key != "Bangladesh" || sum.ByCountry[0].Count != 2 {
		t.Errorf("byCountry: %+v", sum.ByCountry)
	}
	if len(sum.TopPages) == 0 || sum.TopPages[0].Key != "/" || sum.TopPages[0].Count != 2 {
		t.Errorf("topPages: %+v", sum.TopPages)
	}
	if len(sum.ByDevice) != 1 || sum.ByDevice[0].Count != 3 {
		t.Errorf("byDevice: %+v", sum.ByDevice)
	}
	if len(sum.RecentSessions) != 4 {
		t.Errorf("recentSessions ignores the period: got %d", len(sum.RecentSessions))
	}

	all, err := store.Aggregate(ctx, analyticsstore.PeriodAll)
	if err != nil {
		t.Fatalf("Aggregate all failed: %v", err)
	}
	if all.TotalVisitors != 4 {
		t.Errorf("all: got %d sessions, want 4", all.TotalVisitors)
	}

	if _, err := store.Aggregate(ctx, "2w"); !apierr.IsValidation(err) {
		t.Errorf("bad period: got %v, want validation error", err)
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		period string
		want   time.Time
	}{
		{"", now.AddDate(0, 0, -7)},
		{"1d", now.AddDate(0, 0, -1)},
		{"30d", now.AddDate(0, 0, -30)},
		{"90d", now.AddDate(0, 0, -90)},
		{"all", time.Time{}},
	}
	for _, tt := range tests {
		got, err := analyticsstore.Since(tt.period, now)
		if err != nil {
			t.Errorf("Since(%q): %v", tt.period, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Since(%q) = %v, want %v", tt.period, got, tt.want)
		}
	}
}

package metricsstore_test

import (
	"testing"
	"time"

	metricsstore "github.com/dalemusser/duasite/internal/app/store/metrics"
	"github.com/dalemusser/duasite/internal/testutil"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, db, time.Now().UTC())
	if counts != (metricsstore.Counts{}) {
		t.Errorf("counts on empty db = %+v, want zeros", counts)
	}
}

func TestFetchDashboardCounts_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	fixtures.CreateMessage(ctx, "Nadia", "Partnership")
	fixtures.CreateMessage(ctx, "Karim", "Volunteering")

	fixtures.CreateVisit(ctx, "s1", "v1", "Bangladesh", now.Add(-time.Hour), "/")
	fixtures.CreateVisit(ctx, "s2", "v2", "Bangladesh", now.Add(-30*time.Hour), "/")
	fixtures.CreateVisit(ctx, "s3", "v3", "India", now.Add(-20*24*time.Hour), "/")

	fixtures.CreateInitiative(ctx, "Clean Water", "clean-water", true, false)
	fixtures.CreateInitiative(ctx, "Old Drive", "old-drive", false, false)
	fixtures.CreateTeamMember(ctx, "Rahim", "volunteer", 0, true)

	counts := metricsstore.FetchDashboardCounts(ctx, db, now)

	want := metricsstore.Counts{
		UnreadMessages:    2,
		TotalMessages:     2,
		VisitorsToday:     1,
		VisitorsWeek:      2,
		VisitorsAll:       3,
		ActiveInitiatives: 1,
		ActiveTeam:        1,
	}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
}

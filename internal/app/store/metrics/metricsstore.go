// internal/app/store/metrics/metricsstore.go
package metricsstore

import (
	"context"
	"time"

	analyticsstore "github.com/dalemusser/duasite/internal/app/store/analytics"
	gallerystore "github.com/dalemusser/duasite/internal/app/store/gallery"
	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	teamstore "github.com/dalemusser/duasite/internal/app/store/team"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the admin dashboard.
type Counts struct {
	UnreadMessages    int64 `json:"unreadMessages"`
	TotalMessages     int64 `json:"totalMessages"`
	VisitorsToday     int64 `json:"visitorsToday"`
	VisitorsWeek      int64 `json:"visitorsWeek"`
	VisitorsAll       int64 `json:"visitorsAll"`
	ActiveInitiatives int64 `json:"activeInitiatives"`
	ActiveTeam        int64 `json:"activeTeam"`
	ActiveGallery     int64 `json:"activeGallery"`
}

// FetchDashboardCounts returns the dashboard totals as of now.
// Tolerant: a counter that fails to load reads 0.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database, now time.Time) Counts {
	var out Counts
	count := func(coll string, filter bson.M, dst *int64) {
		if n, err := db.Collection(coll).CountDocuments(ctx, filter); err == nil {
			*dst = n
		}
	}

	count(messagestore.Collection, bson.M{"is_read": false}, &out.UnreadMessages)
	count(messagestore.Collection, bson.M{}, &out.TotalMessages)

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count(analyticsstore.Collection, bson.M{"created_at": bson.M{"$gte": day}}, &out.VisitorsToday)
	count(analyticsstore.Collection, bson.M{"created_at": bson.M{"$gte": now.Add(-7 * 24 * time.Hour)}}, &out.VisitorsWeek)
	count(analyticsstore.Collection, bson.M{}, &out.VisitorsAll)

	active := bson.M{"is_active": true}
	count(initiativestore.Collection, active, &out.ActiveInitiatives)
	count(teamstore.Collection, active, &out.ActiveTeam)
	count(gallerystore.Collection, active, &out.ActiveGallery)

	return out
}

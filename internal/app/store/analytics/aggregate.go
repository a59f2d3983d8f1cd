package analyticsstore

import (
	"context"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Periods accepted by Aggregate.
const (
	Period1d  = "1d"
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	PeriodAll = "all"
)

// DefaultPeriod applies when the caller names none.
const DefaultPeriod = Period7d

const (
	topCountries = 10
	topPages     = 10
	recentLimit  = 20
)

// Bucket is one grouped count. Key is the country, device, browser, path
// or day (YYYY-MM-DD) depending on the breakdown.
type Bucket struct {
	Key   string `bson:"_id" json:"key"`
	Count int64  `bson:"count" json:"count"`
}

// Summary is the dashboard view of one period.
type Summary struct {
	Period         string         `json:"period"`
	TotalVisitors  int64          `json:"totalVisitors"`
	UniqueVisitors int64          `json:"uniqueVisitors"`
	TotalPageViews int64          `json:"totalPageViews"`
	ByCountry      []Bucket       `json:"byCountry"`
	ByDevice       []Bucket       `json:"byDevice"`
	ByBrowser      []Bucket       `json:"byBrowser"`
	TopPages       []Bucket       `json:"topPages"`
	ByDay          []Bucket       `json:"byDay"`
	RecentSessions []models.Visit `json:"recentSessions"`
}

// Since returns the start of period relative to now. "all" and "" map to
// the zero time and the default period respectively.
func Since(period string, now time.Time) (time.Time, error) {
	switch period {
	case "":
		return now.Add(-7 * 24 * time.Hour), nil
	case Period1d:
		return now.Add(-24 * time.Hour), nil
	case Period7d:
		return now.Add(-7 * 24 * time.Hour), nil
	case Period30d:
		return now.Add(-30 * 24 * time.Hour), nil
	case Period90d:
		return now.Add(-90 * 24 * time.Hour), nil
	case PeriodAll:
		return time.Time{}, nil
	default:
		return time.Time{}, apierr.Validation("period must be one of: 1d, 7d, 30d, 90d, all")
	}
}

// Aggregate computes the breakdowns for sessions started within period.
// Every breakdown is sorted by count descending, except ByDay which is
// chronological.
func (s *Store) Aggregate(ctx context.Context, period string) (Summary, error) {
	start, err := Since(period, time.Now().UTC())
	if err != nil {
		return Summary{}, err
	}
	if period == "" {
		period = DefaultPeriod
	}
	match := bson.M{"created_at": bson.M{"$gte": start}}

	out := Summary{Period: period}
	if out.TotalVisitors, err = s.c.Count(ctx, match); err != nil {
		return Summary{}, err
	}
	visitors, err := s.c.C.Distinct(ctx, "visitor_id", match)
	if err != nil {
		return Summary{}, err
	}
	out.UniqueVisitors = int64(len(visitors))

	if out.TotalPageViews, err = s.sumPageViews(ctx, match); err != nil {
		return Summary{}, err
	}

	countryMatch := bson.M{
		"created_at": bson.M{"$gte": start},
		"country":    bson.M{"$exists": true, "$ne": ""},
	}
	if out.ByCountry, err = s.group(ctx, countryMatch, "$country", topCountries); err != nil {
		return Summary{}, err
	}
	if out.ByDevice, err = s.group(ctx, match, "$device", 0); err != nil {
		return Summary{}, err
	}
	if out.ByBrowser, err = s.group(ctx, match, "$browser", 0); err != nil {
		return Summary{}, err
	}
	if out.TopPages, err = s.topPaths(ctx, match, topPages); err != nil {
		return Summary{}, err
	}
	if out.ByDay, err = s.byDay(ctx, match); err != nil {
		return Summary{}, err
	}
	if out.RecentSessions, err = s.Recent(ctx, recentLimit); err != nil {
		return Summary{}, err
	}
	return out, nil
}

// TopCountries returns the countries with the most sessions of all time.
func (s *Store) TopCountries(ctx context.Context, limit int64) ([]Bucket, error) {
	return s.group(ctx, bson.M{"country": bson.M{"$exists": true, "$ne": ""}}, "$country", limit)
}

func (s *Store) sumPageViews(ctx context.Context, match bson.M) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$size": bson.M{"$ifNull": bson.A{"$page_views", bson.A{}}}}},
		}}},
	}
	cur, err := s.c.C.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (s *Store) group(ctx context.Context, match bson.M, field string, limit int64) ([]Bucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	return s.buckets(ctx, pipeline)
}

func (s *Store) topPaths(ctx context.Context, match bson.M, limit int64) ([]Bucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$page_views"}},
		{{Key: "$group", Value: bson.M{"_id": "$page_views.path", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return s.buckets(ctx, pipeline)
}

func (s *Store) byDay(ctx context.Context, match bson.M) ([]Bucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return s.buckets(ctx, pipeline)
}

func (s *Store) buckets(ctx context.Context, pipeline mongo.Pipeline) ([]Bucket, error) {
	cur, err := s.c.C.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Bucket{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

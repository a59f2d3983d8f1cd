// internal/app/store/analytics/analyticsstore.go
package analyticsstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/duasite/internal/app/store/crud"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/geoip"
	"github.com/dalemusser/duasite/internal/app/system/uaclass"
	"github.com/dalemusser/duasite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "analytics"

// ErrMissingFields is returned for a beacon without session, visitor or path.
var ErrMissingFields = apierr.Validation("Missing required fields")

// Beacon events. An empty event is a page view.
const (
	EventView  = "view"
	EventLeave = "leave"
)

// Beacon is one page-view report from the public site.
type Beacon struct {
	SessionID string `json:"sessionId"`
	VisitorID string `json:"visitorId"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
	// Duration is the number of seconds spent on the previous page, or on
	// the current page for a leave event.
	Duration int `json:"duration"`
	// Event is "view" (default) or "leave". A leave only records the time
	// spent on the session's last view and never adds a page view.
	Event string `json:"event"`
}

type Store struct {
	c crud.Collection[models.Visit]
}

func New(db *mongo.Database) *Store {
	return &Store{c: crud.New[models.Visit](db, Collection)}
}

// Record appends the page view to the beacon's session, creating the
// session on its first view. created reports whether a new session was
// started, which is the cue for geo enrichment.
func (s *Store) Record(ctx context.Context, b Beacon, ip string) (created bool, err error) {
	b.SessionID = strings.TrimSpace(b.SessionID)
	b.VisitorID = strings.TrimSpace(b.VisitorID)
	b.Path = strings.TrimSpace(b.Path)
	if b.SessionID == "" || b.VisitorID == "" || b.Path == "" {
		return false, ErrMissingFields
	}

	switch b.Event {
	case "", EventView:
	case EventLeave:
		return false, s.leave(ctx, b)
	default:
		return false, apierr.Validationf("unknown event %q", b.Event)
	}

	created, err = s.upsert(ctx, b, ip)
	// Two first views racing on the unique session index: the loser
	// retries as an append.
	if wafflemongo.IsDup(err) {
		created, err = s.upsert(ctx, b, ip)
	}
	return created, err
}

func (s *Store) upsert(ctx context.Context, b Beacon, ip string) (bool, error) {
	now := time.Now().UTC()
	ua := uaclass.Classify(b.UserAgent)

	view := models.PageView{Path: b.Path, Title: b.Title, Timestamp: now}
	update := bson.M{
		"$push": bson.M{"page_views": view},
		"$set":  bson.M{"exit_page": b.Path, "last_activity": now},
		"$setOnInsert": bson.M{
			"visitor_id": b.VisitorID,
			"ip_address": ip,
			"device":     ua.Device,
			"browser":    ua.Browser,
			"os":         ua.OS,
			"referrer":   b.Referrer,
			"entry_page": b.Path,
			"created_at": now,
		},
	}

	var prev models.Visit
	err := s.c.C.FindOneAndUpdate(ctx,
		bson.M{"session_id": b.SessionID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before),
	).Decode(&prev)
	if err == mongo.ErrNoDocuments {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if b.Duration > 0 && len(prev.PageViews) > 0 {
		key := "page_views." + strconv.Itoa(len(prev.PageViews)-1) + ".duration"
		if _, err := s.c.C.UpdateOne(ctx,
			bson.M{"_id": prev.ID},
			bson.M{"$set": bson.M{key: b.Duration}},
		); err != nil {
			return false, err
		}
	}
	return false, nil
}

// leave sets the duration of the session's last view when it is still the
// page being left. Unknown sessions and stale paths are ignored.
func (s *Store) leave(ctx context.Context, b Beacon) error {
	if b.Duration <= 0 {
		return nil
	}
	v, err := s.c.FindOne(ctx, bson.M{"session_id": b.SessionID})
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return err
	}
	last := len(v.PageViews) - 1
	if last < 0 || v.PageViews[last].Path != b.Path {
		return nil
	}
	key := "page_views." + strconv.Itoa(last) + ".duration"
	_, err = s.c.C.UpdateOne(ctx,
		bson.M{"_id": v.ID},
		bson.M{"$set": bson.M{key: b.Duration, "last_activity": time.Now().UTC()}},
	)
	return err
}

// SetLocation patches geo fields onto the session. Empty lookups are ignored.
func (s *Store) SetLocation(ctx context.Context, sessionID string, loc geoip.Location) error {
	if loc.Country == "" {
		return nil
	}
	_, err := s.c.C.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"country": loc.Country, "city": loc.City, "region": loc.Region}},
	)
	return err
}

// GetSession returns the visit for a session id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (models.Visit, error) {
	return s.c.FindOne(ctx, bson.M{"session_id": sessionID})
}

// Recent returns the most recently started sessions.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.Visit, error) {
	return s.c.Find(ctx, bson.M{}, crud.Newest, limit)
}

// CountSince returns the number of sessions started at or after t.
func (s *Store) CountSince(ctx context.Context, t time.Time) (int64, error) {
	return s.c.Count(ctx, bson.M{"created_at": bson.M{"$gte": t}})
}

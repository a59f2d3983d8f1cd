// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	analyticsstore "github.com/dalemusser/duasite/internal/app/store/analytics"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/tasks"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/workers"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// VisitorCookie holds the long-lived visitor id when the beacon sends none.
const VisitorCookie = "dua_vid"

const visitorMaxAge = 365 * 24 * time.Hour

type Handler struct {
	DB     *mongo.Database
	Store  *analyticsstore.Store
	Geo    tasks.Locator
	Queue  *workers.Queue
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Secure bool
}

func NewHandler(db *mongo.Database, geo tasks.Locator, q *workers.Queue, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  analyticsstore.New(db),
		Geo:    geo,
		Queue:  q,
		Log:    logger,
		ErrLog: errLog,
	}
}

type trackedBody struct {
	Success bool `json:"success"`
}

// APITrack records a page-view beacon. The geo lookup for a new session is
// queued and never awaited.
func (h *Handler) APITrack(w http.ResponseWriter, r *http.Request) {
	var b analyticsstore.Beacon
	if err := respond.Decode(r, &b); err != nil {
		respond.Error(w, h.Log, "Analytics", err)
		return
	}
	if b.VisitorID == "" {
		b.VisitorID = h.visitorID(w, r)
	}
	if b.UserAgent == "" {
		b.UserAgent = r.UserAgent()
	}
	ip := ratelimit.ClientIP(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Store.Record(ctx, b, ip)
	if err != nil {
		respond.Error(w, h.Log, "Analytics", err)
		return
	}
	if created && h.Queue != nil && h.Geo != nil {
		h.Queue.Enqueue(tasks.GeoEnrichJob(h.Geo, h.Store, b.SessionID, ip, h.Log))
	}
	respond.JSON(w, http.StatusOK, trackedBody{Success: true})
}

// visitorID returns the cookie visitor id, issuing a new one if needed.
func (h *Handler) visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(visitorMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// APISummary returns the aggregation for ?period= (1d, 7d, 30d, 90d, all).
func (h *Handler) APISummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sum, err := h.Store.Aggregate(ctx, query.Get(r, "period"))
	if err != nil {
		respond.Error(w, h.Log, "Analytics", err)
		return
	}
	respond.JSON(w, http.StatusOK, sum)
}

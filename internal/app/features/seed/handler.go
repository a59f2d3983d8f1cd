// internal/app/features/seed/handler.go
package seed

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/auditlog"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	dbseed "github.com/dalemusser/duasite/internal/app/system/seed"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Secret string
	Opts   dbseed.Options
	Log    *zap.Logger
	Audit  *auditlog.Logger
}

func NewHandler(db *mongo.Database, secret string, opts dbseed.Options, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Secret: secret, Opts: opts, Log: logger}
}

type request struct {
	Secret string `json:"secret"`
}

type result struct {
	Message string         `json:"message"`
	Data    *dbseed.Counts `json:"data,omitempty"`
}

// Serve handles POST /api/seed. The secret must match the session key.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.Log, "Seed", err)
		return
	}
	if h.Secret == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.Secret)) != 1 {
		h.Log.Warn("seed rejected: bad secret", zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.SeedRejected(r.Context(), r)
		respond.Error(w, h.Log, "Seed", apierr.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	counts, err := dbseed.Run(ctx, h.DB, h.Opts, h.Log)
	if errors.Is(err, dbseed.ErrAlreadySeeded) {
		respond.JSON(w, http.StatusOK, result{Message: err.Error()})
		return
	}
	if err != nil {
		h.Log.Error("seed failed", zap.Error(err))
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to seed database"})
		return
	}
	h.Audit.DatabaseSeeded(r.Context(), r, counts.Map())
	respond.JSON(w, http.StatusCreated, result{Message: "Database seeded successfully", Data: &counts})
}

// Routes mounts /api/seed with a tight per-IP limit.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.PerIP(5, time.Minute)).Post("/", h.Serve)
	return r
}

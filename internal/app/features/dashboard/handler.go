// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	analyticsstore "github.com/dalemusser/duasite/internal/app/store/analytics"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	metricsstore "github.com/dalemusser/duasite/internal/app/store/metrics"
	"github.com/dalemusser/duasite/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	dashboardTimeout = 10 * time.Second
	recentSessions   = 5
	recentMessages   = 5
	topCountries     = 5
)

type Handler struct {
	DB        *mongo.Database
	Analytics *analyticsstore.Store
	Messages  *messagestore.Store
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Analytics: analyticsstore.New(db),
		Messages:  messagestore.New(db),
		Log:       logger,
		ErrLog:    errLog,
	}
}

// Stats is the /api/dashboard body.
type Stats struct {
	metricsstore.Counts
	RecentSessions []models.Visit          `json:"recentSessions"`
	TopCountries   []analyticsstore.Bucket `json:"topCountries"`
}

func (h *Handler) stats(ctx context.Context) (Stats, error) {
	out := Stats{Counts: metricsstore.FetchDashboardCounts(ctx, h.DB, time.Now().UTC())}
	var err error
	if out.RecentSessions, err = h.Analytics.Recent(ctx, recentSessions); err != nil {
		return Stats{}, err
	}
	if out.TopCountries, err = h.Analytics.TopCountries(ctx, topCountries); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// internal/app/features/impactstats/handler.go
package impactstats

import (
	"context"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	impactstatstore "github.com/dalemusser/duasite/internal/app/store/impactstats"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Store  *impactstatstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  impactstatstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*impactstatstore.Store
}

func (a api) List(ctx context.Context, q url.Values) ([]models.ImpactStat, error) {
	return a.Store.List(ctx, resource.ActiveOnly(q))
}

// APIRoutes serves /api/impact-stats.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.ImpactStat, impactstatstore.Input](
		api{impactstatstore.New(db)},
		resource.Options{Entity: "Impact stat"},
		sm, logger,
	)
}

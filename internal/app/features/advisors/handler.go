// internal/app/features/advisors/handler.go
package advisors

import (
	"context"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	advisorstore "github.com/dalemusser/duasite/internal/app/store/advisors"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin advisor screens.
type Handler struct {
	DB     *mongo.Database
	Store  *advisorstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  advisorstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

// api adapts the store to resource.Ops.
type api struct {
	*advisorstore.Store
}

func (a api) List(ctx context.Context, q url.Values) ([]models.Advisor, error) {
	return a.Store.List(ctx, resource.ActiveOnly(q))
}

// APIRoutes serves /api/advisors.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.Advisor, advisorstore.Input](
		api{advisorstore.New(db)},
		resource.Options{Entity: "Advisor"},
		sm, logger,
	)
}

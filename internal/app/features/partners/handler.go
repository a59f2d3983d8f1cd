// internal/app/features/partners/handler.go
package partners

import (
	"context"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	partnerstore "github.com/dalemusser/duasite/internal/app/store/partners"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Store  *partnerstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  partnerstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*partnerstore.Store
}

// List accepts ?type= and the active toggle.
func (a api) List(ctx context.Context, q url.Values) ([]models.Partner, error) {
	return a.Store.List(ctx, partnerstore.Filter{
		ActiveOnly: resource.ActiveOnly(q),
		Type:       q.Get("type"),
	})
}

// APIRoutes serves /api/partners.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.Partner, partnerstore.Input](
		api{partnerstore.New(db)},
		resource.Options{Entity: "Partner"},
		sm, logger,
	)
}

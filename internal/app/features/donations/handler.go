// internal/app/features/donations/handler.go
package donations

import (
	"context"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	donationstore "github.com/dalemusser/duasite/internal/app/store/donations"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Store  *donationstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  donationstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*donationstore.Store
}

// List accepts ?type= and the active toggle.
func (a api) List(ctx context.Context, q url.Values) ([]models.DonationOption, error) {
	return a.Store.List(ctx, donationstore.Filter{
		ActiveOnly: resource.ActiveOnly(q),
		Type:       q.Get("type"),
	})
}

// APIRoutes serves /api/donations.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.DonationOption, donationstore.Input](
		api{donationstore.New(db)},
		resource.Options{Entity: "Donation option"},
		sm, logger,
	)
}

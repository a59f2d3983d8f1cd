// internal/app/features/team/handler.go
package team

import (
	"context"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	teamstore "github.com/dalemusser/duasite/internal/app/store/team"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Store  *teamstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  teamstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*teamstore.Store
}

// List accepts ?type=founder|co_founder|member and the active toggle.
func (a api) List(ctx context.Context, q url.Values) ([]models.TeamMember, error) {
	return a.Store.List(ctx, teamstore.Filter{
		ActiveOnly: resource.ActiveOnly(q),
		Type:       q.Get("type"),
	})
}

// APIRoutes serves /api/team.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.TeamMember, teamstore.Input](
		api{teamstore.New(db)},
		resource.Options{Entity: "Team member"},
		sm, logger,
	)
}

// internal/app/features/impact/handler.go
package impact

import (
	"context"
	"net/url"
	"strconv"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	impactpoststore "github.com/dalemusser/duasite/internal/app/store/impactposts"
	impactstatstore "github.com/dalemusser/duasite/internal/app/store/impactstats"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the impact story screens and public pages.
type Handler struct {
	DB     *mongo.Database
	Store  *impactpoststore.Store
	Stats  *impactstatstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  impactpoststore.New(db),
		Stats:  impactstatstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*impactpoststore.Store
}

// List serves published posts. Signed-in callers may pass published=all
// to include drafts.
func (a api) List(ctx context.Context, q url.Values) ([]models.ImpactPost, error) {
	return a.Store.List(ctx, filterFromQuery(ctx, q))
}

func filterFromQuery(ctx context.Context, q url.Values) impactpoststore.Filter {
	f := impactpoststore.Filter{
		ActiveOnly:    resource.ActiveOnly(q),
		PublishedOnly: true,
		Category:      q.Get("category"),
		Tag:           q.Get("tag"),
	}
	if _, signedIn := auth.FromContext(ctx); signedIn && q.Get("published") == "all" {
		f.PublishedOnly = false
	}
	if n, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil && n > 0 {
		f.Limit = n
	}
	return f
}

// APIRoutes serves /api/impact. Reads accept an id or a slug.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.ImpactPost, impactpoststore.Input](
		api{impactpoststore.New(db)},
		resource.Options{Entity: "Impact post"},
		sm, logger,
	)
}

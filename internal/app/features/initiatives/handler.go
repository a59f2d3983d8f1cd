// internal/app/features/initiatives/handler.go
package initiatives

import (
	"context"
	"net/url"
	"strconv"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the initiative admin screens and public pages.
type Handler struct {
	DB     *mongo.Database
	Store  *initiativestore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  initiativestore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*initiativestore.Store
}

// List accepts ?category=, ?status=, ?highlighted=true, ?limit= and the
// active toggle.
func (a api) List(ctx context.Context, q url.Values) ([]models.Initiative, error) {
	return a.Store.List(ctx, filterFromQuery(q))
}

func filterFromQuery(q url.Values) initiativestore.Filter {
	f := initiativestore.Filter{
		ActiveOnly: resource.ActiveOnly(q),
		Category:   q.Get("category"),
		Status:     q.Get("status"),
	}
	if q.Get("highlighted") == "true" {
		t := true
		f.Highlighted = &t
	}
	if n, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil && n > 0 {
		f.Limit = n
	}
	return f
}

// APIRoutes serves /api/initiatives. Reads accept an id or a slug.
func APIRoutes(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	return resource.Routes[models.Initiative, initiativestore.Input](
		api{initiativestore.New(db)},
		resource.Options{Entity: "Initiative"},
		sm, logger,
	)
}

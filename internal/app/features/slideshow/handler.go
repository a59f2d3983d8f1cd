// internal/app/features/slideshow/handler.go
package slideshow

import (
	"context"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	slideshowstore "github.com/dalemusser/duasite/internal/app/store/slideshow"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const entity = "Slideshow image"

type Handler struct {
	DB     *mongo.Database
	Store  *slideshowstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  slideshowstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*slideshowstore.Store
}

func (a api) List(ctx context.Context, q url.Values) ([]models.SlideshowImage, error) {
	return a.Store.List(ctx, resource.ActiveOnly(q))
}

type reorderBody struct {
	Images []slideshowstore.Position `json:"images"`
}

// APIReorder applies {"images":[{"id","order"}]} and returns the slides in
// their new order.
func (h *Handler) APIReorder(w http.ResponseWriter, r *http.Request) {
	var body reorderBody
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	if body.Images == nil {
		respond.Error(w, h.Log, entity, apierr.Validation("Invalid data format"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	slides, err := h.Store.Reorder(ctx, body.Images)
	if err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, slides)
}

// APIRoutes serves /api/slideshow. PUT on the collection reorders.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := resource.Routes[models.SlideshowImage, slideshowstore.Input](
		api{h.Store},
		resource.Options{Entity: entity},
		sm, h.Log,
	)
	r.With(sm.RequireSignedIn).Put("/", h.APIReorder)
	return r
}

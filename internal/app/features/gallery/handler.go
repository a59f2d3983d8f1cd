// internal/app/features/gallery/handler.go
package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	gallerystore "github.com/dalemusser/duasite/internal/app/store/gallery"
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

const entity = "Gallery image"

type Handler struct {
	DB     *mongo.Database
	Store  *gallerystore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  gallerystore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*gallerystore.Store
}

// List accepts ?category= and the active toggle.
func (a api) List(ctx context.Context, q url.Values) ([]models.GalleryImage, error) {
	return a.Store.List(ctx, gallerystore.Filter{
		ActiveOnly: resource.ActiveOnly(q),
		Category:   q.Get("category"),
	})
}

// APICreate accepts one image object or an array of them. An array is
// validated as a whole and answered with the created list.
func (h *Handler) APICreate(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := respond.Decode(r, &raw); err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if trimmed := bytes.TrimLeft(raw, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		var ins []gallerystore.Input
		if err := json.Unmarshal(raw, &ins); err != nil {
			respond.Error(w, h.Log, entity, apierr.Validation("Invalid request body"))
			return
		}
		imgs, err := h.Store.CreateMany(ctx, ins)
		if err != nil {
			respond.Error(w, h.Log, entity, err)
			return
		}
		respond.JSON(w, http.StatusCreated, imgs)
		return
	}

	var in gallerystore.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		respond.Error(w, h.Log, entity, apierr.Validation("Invalid request body"))
		return
	}
	img, err := h.Store.Create(ctx, in)
	if err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	respond.JSON(w, http.StatusCreated, img)
}

// APIRoutes serves /api/gallery.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	return resource.Routes[models.GalleryImage, gallerystore.Input](
		api{h.Store},
		resource.Options{Entity: entity, Create: h.APICreate},
		sm, h.Log,
	)
}

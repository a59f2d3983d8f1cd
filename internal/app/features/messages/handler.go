// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/dalemusser/duasite/internal/app/system/resource"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const entity = "Message"

type Handler struct {
	DB     *mongo.Database
	Store  *messagestore.Store
	Inbox  *Inbox
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, inbox *Inbox, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  inbox.Store,
		Inbox:  inbox,
		Log:    logger,
		ErrLog: errLog,
	}
}

type api struct {
	*messagestore.Store
}

// List accepts ?unread=true and ?limit=.
func (a api) List(ctx context.Context, q url.Values) ([]models.Message, error) {
	f := messagestore.Filter{UnreadOnly: q.Get("unread") == "true"}
	if n, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil && n > 0 {
		f.Limit = n
	}
	return a.Store.List(ctx, f)
}

type createdBody struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// APICreate is the public contact endpoint.
func (h *Handler) APICreate(w http.ResponseWriter, r *http.Request) {
	var in messagestore.Input
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Inbox.Submit(ctx, in)
	if err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	respond.JSON(w, http.StatusCreated, createdBody{Message: "Message sent successfully", ID: m.ID.Hex()})
}

// APIOpen returns one message and marks it read.
func (h *Handler) APIOpen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Open(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, m)
}

// APIRoutes serves /api/messages. Creation is public and rate limited;
// everything else needs a session.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	return resource.Routes[models.Message, messagestore.Input](
		api{h.Store},
		resource.Options{
			Entity:       entity,
			PublicCreate: true,
			PrivateRead:  true,
			Create:       ratelimit.PerIP(10, time.Minute)(http.HandlerFunc(h.APICreate)).ServeHTTP,
			Read:         h.APIOpen,
		},
		sm, h.Log,
	)
}

// Package resource mounts the five JSON operations every content entity
// exposes (list, create, read, update, delete) on a chi router.
//
// Reads are public unless Options.PrivateRead is set. Writes go through
// the session gate unless Options.PublicCreate opens creation.
package resource

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Ops is the per-entity operation set. T is the stored record, In the
// partial input accepted by create and update.
type Ops[T any, In any] interface {
	List(ctx context.Context, q url.Values) ([]T, error)
	Create(ctx context.Context, in In) (T, error)
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, in In) (T, error)
	Delete(ctx context.Context, id string) error
}

// Options tunes the mounted routes.
type Options struct {
	// Entity names the record in messages, e.g. "Initiative".
	Entity string
	// PublicCreate lets anonymous callers POST (the contact form).
	PublicCreate bool
	// PrivateRead gates list and read behind the session.
	PrivateRead bool
	// Create replaces the default create handler.
	Create http.HandlerFunc
	// Read replaces the default read-by-id handler.
	Read http.HandlerFunc
}

// Handler serves one entity's routes.
type Handler[T any, In any] struct {
	Ops  Ops[T, In]
	Opts Options
	Log  *zap.Logger
	Gate func(http.Handler) http.Handler
}

// Routes builds the router:
//
//	GET    /      list
//	POST   /      create
//	GET    /{id}  read
//	PUT    /{id}  update
//	DELETE /{id}  delete
func Routes[T any, In any](ops Ops[T, In], opts Options, sm *auth.SessionManager, logger *zap.Logger) chi.Router {
	h := &Handler[T, In]{Ops: ops, Opts: opts, Log: logger, Gate: sm.RequireSignedIn}
	return h.Router()
}

// Router mounts the handler's routes on a fresh router.
func (h *Handler[T, In]) Router() chi.Router {
	r := chi.NewRouter()

	read := r.With()
	if h.Opts.PrivateRead {
		read = r.With(h.Gate)
	}
	read.Get("/", h.List)
	if h.Opts.Read != nil {
		read.Get("/{id}", h.Opts.Read)
	} else {
		read.Get("/{id}", h.Read)
	}

	create := http.HandlerFunc(h.Create)
	if h.Opts.Create != nil {
		create = h.Opts.Create
	}
	if h.Opts.PublicCreate {
		r.Post("/", create)
	} else {
		r.With(h.Gate).Post("/", create)
	}

	r.Group(func(pr chi.Router) {
		pr.Use(h.Gate)
		pr.Put("/{id}", h.Update)
		pr.Delete("/{id}", h.Delete)
	})
	return r
}

func (h *Handler[T, In]) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Ops.List(ctx, r.URL.Query())
	if err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *Handler[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := h.Ops.Create(ctx, in)
	if err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}
	respond.JSON(w, http.StatusCreated, item)
}

func (h *Handler[T, In]) Read(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := h.Ops.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *Handler[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := h.Ops.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (h *Handler[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Ops.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		respond.Error(w, h.Log, h.Opts.Entity, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": h.Opts.Entity + " deleted"})
}

// ActiveOnly reads the "active" toggle: lists are active-only unless the
// caller passes active=false or active=all.
func ActiveOnly(q url.Values) bool {
	switch strings.ToLower(strings.TrimSpace(q.Get("active"))) {
	case "false", "all", "0":
		return false
	default:
		return true
	}
}

// internal/app/features/upload/handler.go
package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/imagehost"
	"github.com/dalemusser/duasite/internal/app/system/limits"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Uploader hands image bytes to the hosting service.
type Uploader interface {
	Enabled() bool
	Upload(ctx context.Context, filename, subfolder string, r io.Reader) (imagehost.Result, error)
}

var folderName = regexp.MustCompile(`^[a-z0-9-]{1,32}$`)

var (
	errNoFile     = apierr.Validation("No file uploaded")
	errNotImage   = apierr.Validation("Only image files can be uploaded")
	errTooLarge   = apierr.Validation("File is too large. Maximum size is 10 MB.")
	errBadFolder  = apierr.Validation("Invalid folder")
	errNotEnabled = apierr.Validation("Image uploads are not configured")
)

type Handler struct {
	Host Uploader
	Log  *zap.Logger
}

func NewHandler(host Uploader, logger *zap.Logger) *Handler {
	return &Handler{Host: host, Log: logger}
}

// Serve handles POST /api/upload: multipart field "file" plus an optional
// "folder" naming the admin screen (gallery, team, slideshow...).
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if !h.Host.Enabled() {
		respond.Error(w, h.Log, "Upload", errNotEnabled)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxImageUploadSize)

	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, h.Log, "Upload", errTooLarge)
			return
		}
		respond.Error(w, h.Log, "Upload", errNoFile)
		return
	}
	defer file.Close()

	if ct := hdr.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		respond.Error(w, h.Log, "Upload", errNotImage)
		return
	}
	folder := strings.TrimSpace(r.FormValue("folder"))
	if folder != "" && !folderName.MatchString(folder) {
		respond.Error(w, h.Log, "Upload", errBadFolder)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Host.Upload(ctx, path.Base(hdr.Filename), folder, file)
	if err != nil {
		respond.Error(w, h.Log, "Upload", err)
		return
	}
	h.Log.Info("image uploaded",
		zap.String("public_id", res.PublicID),
		zap.String("folder", folder),
		zap.Int64("bytes", hdr.Size))
	respond.JSON(w, http.StatusOK, res)
}

// Routes mounts /api/upload behind the session.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.With(sm.RequireSignedIn).Post("/", h.Serve)
	return r
}

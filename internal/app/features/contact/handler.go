// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	"github.com/dalemusser/duasite/internal/app/features/messages"
	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/htmlsanitize"
	"github.com/dalemusser/duasite/internal/app/system/limits"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// contactForm echoes the visitor's input back after a failed submission.
type contactForm struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type pageData struct {
	viewdata.BaseVM
	Map   template.HTML
	Form  contactForm
	Error string
	Sent  bool
}

type Handler struct {
	DB     *mongo.Database
	Inbox  *messages.Inbox
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, inbox *messages.Inbox, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Inbox:  inbox,
		Log:    logger,
		ErrLog: errLog,
	}
}

func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, contactForm{}, "", r.URL.Query().Get("sent") == "1")
}

// HandleSubmit creates a Message through the same path as POST /api/messages.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "contact: parse form failed", err, "Invalid form data.", "/contact")
		return
	}
	in := messagestore.Input{
		Name:    formutil.String(r, "name"),
		Email:   formutil.String(r, "email"),
		Phone:   formutil.String(r, "phone"),
		Subject: formutil.String(r, "subject"),
		Message: formutil.String(r, "message"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Inbox.Submit(ctx, in); err != nil {
		if !apierr.IsValidation(err) {
			h.ErrLog.LogServerError(w, r, "contact: submit failed", err, "Failed to send message. Please try again.", "/contact")
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, contactForm{
			Name:    *in.Name,
			Email:   *in.Email,
			Phone:   *in.Phone,
			Subject: *in.Subject,
			Message: *in.Message,
		}, err.Error(), false)
		return
	}
	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, f contactForm, msg string, sent bool) {
	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Contact Us", "/"),
		Form:   f,
		Error:  msg,
		Sent:   sent,
	}
	data.Map = htmlsanitize.MapEmbed(data.Site.GoogleMapsEmbed)
	templates.Render(w, r, "contact", data)
}

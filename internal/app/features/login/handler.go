// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	adminstore "github.com/dalemusser/duasite/internal/app/store/admins"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/auditlog"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/authutil"
	"github.com/dalemusser/duasite/internal/app/system/navigation"
	"github.com/dalemusser/duasite/internal/app/system/ratelimit"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DashboardPath is where a successful login lands by default.
const DashboardPath = "/admin"

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Limiter    *ratelimit.LoginLimiter
	Admins     *adminstore.Store
	Audit      *auditlog.Logger
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Limiter:    limiter,
		Admins:     adminstore.New(db),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/login                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Admin Login", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/login                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", auth.LoginPath)
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	returnURL := r.PostForm.Get("return")

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email, returnURL)
		return
	}
	if h.Limiter != nil && h.Limiter.Limited(w, r, email) {
		h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginRateLimited(r.Context(), r, email, "form")
		h.renderFormWithError(w, r, "Too many login attempts. Please wait a minute and try again.", email, returnURL)
		return
	}

	admin, err := h.authenticate(r.Context(), email, password)
	if errors.Is(err, authutil.ErrInvalidCredentials) {
		h.Log.Info("login failed", zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginFailed(r.Context(), r, email, "form")
		h.renderFormWithError(w, r, "Invalid email or password.", email, returnURL)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "admin lookup failed", err, "A database error occurred.", auth.LoginPath)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, sessionUser(admin)); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Unable to sign you in.", auth.LoginPath)
		return
	}
	h.Log.Info("admin signed in", zap.String("admin_id", admin.ID.Hex()))
	h.Audit.LoginSuccess(r.Context(), r, admin.ID.Hex(), admin.Email, "form")

	http.Redirect(w, r, navigation.Validate(returnURL, navigation.AdminReturn), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, h.DB, "Admin Login", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	})
}

func (h *Handler) authenticate(ctx context.Context, email, password string) (models.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	return h.Admins.Authenticate(ctx, email, password)
}

func sessionUser(a models.Admin) auth.SessionUser {
	return auth.SessionUser{
		ID:    a.ID.Hex(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| JSON: /api/auth                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionBody struct {
	Authenticated bool   `json:"authenticated"`
	ID            string `json:"id,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}

// APILogin handles POST /api/auth/login.
func (h *Handler) APILogin(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := respond.Decode(r, &c); err != nil {
		respond.Error(w, h.Log, "Admin", err)
		return
	}
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		respond.Error(w, h.Log, "Admin", apierr.Validation("Email and password are required"))
		return
	}
	if h.Limiter != nil && h.Limiter.Limited(w, r, c.Email) {
		h.Audit.LoginRateLimited(r.Context(), r, c.Email, "api")
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
		return
	}

	admin, err := h.authenticate(r.Context(), c.Email, c.Password)
	if errors.Is(err, authutil.ErrInvalidCredentials) {
		h.Audit.LoginFailed(r.Context(), r, c.Email, "api")
		respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		respond.Error(w, h.Log, "Admin", err)
		return
	}

	u := sessionUser(admin)
	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		respond.Error(w, h.Log, "Admin", err)
		return
	}
	h.Audit.LoginSuccess(r.Context(), r, u.ID, u.Email, "api")
	respond.JSON(w, http.StatusOK, sessionBody{Authenticated: true, ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}

// APILogout handles POST /api/auth/logout.
func (h *Handler) APILogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Audit.Logout(r.Context(), r, u.ID, u.Email, "api")
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// APISession handles GET /api/auth/session.
func (h *Handler) APISession(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.JSON(w, http.StatusOK, sessionBody{})
		return
	}
	respond.JSON(w, http.StatusOK, sessionBody{Authenticated: true, ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
}

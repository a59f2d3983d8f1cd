// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	messagestore "github.com/dalemusser/duasite/internal/app/store/messages"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/respond"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type adminData struct {
	viewdata.BaseVM
	Stats
	Greeting     string
	Messages     []models.Message
	SessionRows  []sessionRow
	HasCountries bool
	QuickActions []quickAction
}

type sessionRow struct {
	Location  string
	Device    string
	Browser   string
	EntryPage string
	StartedAt string
}

type quickAction struct {
	Label string
	URL   string
}

var quickActions = []quickAction{
	{"Add slideshow image", "/admin/slideshow/new"},
	{"Add initiative", "/admin/initiatives/new"},
	{"Write impact story", "/admin/impact/new"},
	{"Upload gallery images", "/admin/gallery/bulk"},
	{"Edit site settings", "/admin/settings"},
}

// ServeAdmin renders /admin.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	st, err := h.stats(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard stats failed", err, "Failed to load the dashboard.", "/")
		return
	}
	msgs, err := h.Messages.List(ctx, messagestore.Filter{UnreadOnly: true, Limit: recentMessages})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard messages failed", err, "Failed to load the dashboard.", "/")
		return
	}

	data := adminData{
		BaseVM:       viewdata.NewBaseVM(r, h.DB, "Dashboard", "/admin"),
		Stats:        st,
		Greeting:     "Welcome back",
		Messages:     msgs,
		HasCountries: len(st.TopCountries) > 0,
		QuickActions: quickActions,
	}
	if u, ok := auth.CurrentUser(r); ok && u.Name != "" {
		data.Greeting = "Welcome back, " + u.Name
	}
	for _, v := range st.RecentSessions {
		loc := v.Country
		if v.City != "" && v.Country != "" {
			loc = v.City + ", " + v.Country
		}
		if loc == "" {
			loc = "Unknown"
		}
		data.SessionRows = append(data.SessionRows, sessionRow{
			Location:  loc,
			Device:    v.Device,
			Browser:   v.Browser,
			EntryPage: v.EntryPage,
			StartedAt: v.CreatedAt.Format("Jan 2 15:04"),
		})
	}

	h.Log.Debug("admin dashboard served", zap.Int64("unread", st.UnreadMessages))
	templates.Render(w, r, "admin_dashboard", data)
}

// APIStats serves GET /api/dashboard.
func (h *Handler) APIStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	st, err := h.stats(ctx)
	if err != nil {
		respond.Error(w, h.Log, "Dashboard", err)
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

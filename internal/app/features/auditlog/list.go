// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/duasite/internal/app/store/audit"
	"github.com/dalemusser/duasite/internal/app/system/paging"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

const listPath = "/admin/audit"

type eventRow struct {
	When    string
	Label   string
	Email   string
	IP      string
	Channel string
	Success bool
	Reason  string
}

type listVM struct {
	viewdata.BaseVM
	Category string
	Events   []eventRow
	Total    int64
	Page     paging.Range
	PrevURL  string
	NextURL  string
}

var labels = map[string]string{
	audit.EventLoginSuccess:     "Signed in",
	audit.EventLoginFailed:      "Failed sign-in",
	audit.EventLoginRateLimited: "Sign-in blocked",
	audit.EventLogout:           "Signed out",
	audit.EventDatabaseSeeded:   "Database seeded",
	audit.EventSeedRejected:     "Seed rejected",
}

// parseCategory keeps only known categories; anything else lists all.
func parseCategory(s string) string {
	switch s {
	case audit.CategoryAuth, audit.CategoryAdmin:
		return s
	}
	return ""
}

// ServeList handles GET /admin/audit[?category=auth|admin][&start=N].
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	category := parseCategory(query.Get(r, "category"))
	start := paging.ParseStart(r)

	events, err := h.Store.Query(ctx, audit.QueryFilter{
		Category: category,
		Offset:   paging.Skip(start),
		Limit:    paging.LimitPlusOne(),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events failed", err, "Failed to load activity.", "/admin")
		return
	}
	total, err := h.Store.Count(ctx, audit.QueryFilter{Category: category})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events failed", err, "Failed to load activity.", "/admin")
		return
	}

	hasNext := paging.TrimPage(&events)
	page := paging.ComputeRange(start, len(events), hasNext)

	rows := make([]eventRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, toRow(e))
	}

	templates.Render(w, r, "audit_list", listVM{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "Sign-in activity", "/admin"),
		Category: category,
		Events:   rows,
		Total:    total,
		Page:     page,
		PrevURL:  pageURL(category, page.PrevStart),
		NextURL:  pageURL(category, page.NextStart),
	})
}

func toRow(e audit.Event) eventRow {
	label, ok := labels[e.EventType]
	if !ok {
		label = e.EventType
	}
	return eventRow{
		When:    e.Timestamp.Local().Format("Jan 2, 2006 3:04 PM"),
		Label:   label,
		Email:   e.ActorEmail,
		IP:      e.IP,
		Channel: e.Channel,
		Success: e.Success,
		Reason:  e.FailureReason,
	}
}

func pageURL(category string, start int) string {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if start > 1 {
		q.Set("start", strconv.Itoa(start))
	}
	if len(q) == 0 {
		return listPath
	}
	return listPath + "?" + q.Encode()
}

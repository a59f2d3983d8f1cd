// internal/app/features/analytics/admin.go
package analytics

import (
	"context"
	"net/http"
	"strconv"

	analyticsstore "github.com/dalemusser/duasite/internal/app/store/analytics"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

var periods = []struct{ Value, Label string }{
	{analyticsstore.Period1d, "24 hours"},
	{analyticsstore.Period7d, "7 days"},
	{analyticsstore.Period30d, "30 days"},
	{analyticsstore.Period90d, "90 days"},
	{analyticsstore.PeriodAll, "All time"},
}

type periodTab struct {
	Label  string
	URL    string
	Active bool
}

// BarRow is a bucket with its share of the largest bucket, for bar widths.
type BarRow struct {
	Key     string
	Count   int64
	Percent int
}

type sessionRow struct {
	models.Visit
	Location  string
	StartedAt string
	Views     int
}

type pageVM struct {
	viewdata.BaseVM
	Periods        []periodTab
	Summary        analyticsstore.Summary
	PagesPerVisit  string
	Countries      []BarRow
	Devices        []BarRow
	Browsers       []BarRow
	Pages          []BarRow
	Days           []BarRow
	RecentSessions []sessionRow
}

// Bars scales buckets against the largest count.
func Bars(bs []analyticsstore.Bucket) []BarRow {
	var max int64
	for _, b := range bs {
		if b.Count > max {
			max = b.Count
		}
	}
	out := make([]BarRow, 0, len(bs))
	for _, b := range bs {
		row := BarRow{Key: b.Key, Count: b.Count}
		if row.Key == "" {
			row.Key = "unknown"
		}
		if max > 0 {
			row.Percent = int(b.Count * 100 / max)
		}
		out = append(out, row)
	}
	return out
}

func location(v models.Visit) string {
	switch {
	case v.City != "" && v.Country != "":
		return v.City + ", " + v.Country
	case v.Country != "":
		return v.Country
	default:
		return "Unknown"
	}
}

func pagesPerVisit(s analyticsstore.Summary) string {
	if s.TotalVisitors == 0 {
		return "0"
	}
	tenths := s.TotalPageViews * 10 / s.TotalVisitors
	return itoa(tenths/10) + "." + itoa(tenths%10)
}

// ServePage renders /admin/analytics.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	period := query.Get(r, "period")
	if period == "" {
		period = analyticsstore.DefaultPeriod
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	sum, err := h.Store.Aggregate(ctx, period)
	if apierr.IsValidation(err) {
		h.ErrLog.LogBadRequest(w, r, "bad analytics period", err, err.Error(), "/admin/analytics")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "aggregate analytics failed", err, "Failed to load analytics.", "/admin")
		return
	}

	vm := pageVM{
		BaseVM:        viewdata.NewBaseVM(r, h.DB, "Analytics", "/admin"),
		Summary:       sum,
		PagesPerVisit: pagesPerVisit(sum),
		Countries:     Bars(sum.ByCountry),
		Devices:       Bars(sum.ByDevice),
		Browsers:      Bars(sum.ByBrowser),
		Pages:         Bars(sum.TopPages),
		Days:          Bars(sum.ByDay),
	}
	for _, p := range periods {
		vm.Periods = append(vm.Periods, periodTab{
			Label:  p.Label,
			URL:    "/admin/analytics?period=" + p.Value,
			Active: p.Value == sum.Period,
		})
	}
	for _, v := range sum.RecentSessions {
		vm.RecentSessions = append(vm.RecentSessions, sessionRow{
			Visit:     v,
			Location:  location(v),
			StartedAt: v.CreatedAt.Format("Jan 2 15:04"),
			Views:     len(v.PageViews),
		})
	}
	templates.Render(w, r, "analytics_page", vm)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

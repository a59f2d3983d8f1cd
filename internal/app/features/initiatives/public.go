// internal/app/features/initiatives/public.go
package initiatives

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusLabel is the public wording for a status value.
func StatusLabel(status string) string {
	switch status {
	case "passed":
		return "Completed"
	case "":
		return ""
	default:
		return strings.ToUpper(status[:1]) + status[1:]
	}
}

// Card is an initiative prepared for the public grid and the home page.
type Card struct {
	models.Initiative
	StatusLabel string
	Summary     string
	StartLabel  string
}

// NewCard prepares it for display.
func NewCard(it models.Initiative) Card {
	c := Card{Initiative: it, StatusLabel: StatusLabel(it.Status), Summary: it.Excerpt}
	if c.Summary == "" {
		c.Summary = it.Description
	}
	if it.StartDate != nil {
		c.StartLabel = it.StartDate.Format("Jan 2, 2006")
	}
	return c
}

type filterLink struct {
	Label  string
	URL    string
	Active bool
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type indexVM struct {
	viewdata.BaseVM
	Cards         []Card
	StatusFilters []filterLink
	Categories    []categoryOption
}

type showVM struct {
	viewdata.BaseVM
	Item       Card
	EndLabel   string
	Objectives []string
	Images     []string
}

// ServeIndex renders /initiatives with the status and category filters.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	status, category := query.Get(r, "status"), query.Get(r, "category")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx, initiativestore.Filter{ActiveOnly: true, Status: status, Category: category})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list initiatives failed", err, "Failed to load initiatives.", "/")
		return
	}
	cards := make([]Card, 0, len(list))
	for _, it := range list {
		cards = append(cards, NewCard(it))
	}

	vm := indexVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Initiatives", "/"),
		Cards:  cards,
	}
	for _, s := range append([]string{""}, models.InitiativeStatuses...) {
		label := StatusLabel(s)
		if s == "" {
			label = "All"
		}
		vm.StatusFilters = append(vm.StatusFilters, filterLink{
			Label:  label,
			URL:    filterURL("status", s),
			Active: s == status,
		})
	}
	vm.Categories = append(vm.Categories, categoryOption{Label: "All Categories", Selected: category == ""})
	for _, c := range models.InitiativeCategories {
		if c == "other" {
			continue
		}
		vm.Categories = append(vm.Categories, categoryOption{
			Value:    c,
			Label:    strings.ToUpper(c[:1]) + c[1:],
			Selected: c == category,
		})
	}
	templates.Render(w, r, "initiatives_index", vm)
}

func filterURL(key, value string) string {
	if value == "" {
		return "/initiatives"
	}
	return "/initiatives?" + url.Values{key: {value}}.Encode()
}

// ServeShow renders one active initiative by slug.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	it, err := h.Store.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err == nil && !it.IsActive {
		err = mongo.ErrNoDocuments
	}
	if err != nil {
		if apierr.IsNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "initiative not found", err, "Initiative not found.", "/initiatives")
			return
		}
		h.ErrLog.LogServerError(w, r, "load initiative failed", err, "Failed to load initiative.", "/initiatives")
		return
	}

	vm := showVM{
		BaseVM:     viewdata.NewBaseVM(r, h.DB, it.Title, "/initiatives"),
		Item:       NewCard(it),
		Objectives: it.Objectives,
		Images:     it.Images,
	}
	if it.EndDate != nil {
		vm.EndLabel = it.EndDate.Format("Jan 2, 2006")
	}
	templates.Render(w, r, "initiatives_show", vm)
}

// internal/app/features/impact/public.go
package impact

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/htmlsanitize"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const summaryRunes = 150

// Card is a post prepared for the story grid.
type Card struct {
	models.ImpactPost
	Summary   string
	DateLabel string
}

// NewCard prepares p for display. Posts without an excerpt show the start
// of their content.
func NewCard(p models.ImpactPost) Card {
	c := Card{ImpactPost: p, Summary: p.Excerpt}
	if c.Summary == "" {
		c.Summary = truncate(p.Content, summaryRunes)
	}
	when := p.CreatedAt
	if p.PublishedAt != nil {
		when = *p.PublishedAt
	}
	c.DateLabel = when.Format("Jan 2, 2006")
	return c
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n])) + "..."
}

type indexVM struct {
	viewdata.BaseVM
	Stats []models.ImpactStat
	Cards []Card
}

type showVM struct {
	viewdata.BaseVM
	Item Card
	Body template.HTML
}

// ServeIndex renders /impact: the counters and the published stories.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.Store.Public(ctx, 0)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list impact posts failed", err, "Failed to load stories.", "/")
		return
	}
	stats, err := h.Stats.List(ctx, true)
	if err != nil {
		h.Log.Warn("impact stats load failed", zap.Error(err))
	}
	cards := make([]Card, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, NewCard(p))
	}
	templates.Render(w, r, "impact_index", indexVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, "Impact", "/"),
		Stats:  stats,
		Cards:  cards,
	})
}

// ServeShow renders one published story and counts the view.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Store.ViewBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		if apierr.IsNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "impact post not found", err, "Story not found.", "/impact")
			return
		}
		h.ErrLog.LogServerError(w, r, "load impact post failed", err, "Failed to load story.", "/impact")
		return
	}
	templates.Render(w, r, "impact_show", showVM{
		BaseVM: viewdata.NewBaseVM(r, h.DB, p.Title, "/impact"),
		Item:   NewCard(p),
		Body:   htmlsanitize.Markdown(p.Content),
	})
}

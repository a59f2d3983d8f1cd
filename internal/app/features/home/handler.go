package home

import (
	"context"
	"html/template"
	"net/http"
	"strconv"

	"github.com/dalemusser/duasite/internal/app/features/impact"
	"github.com/dalemusser/duasite/internal/app/features/initiatives"
	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	impactpoststore "github.com/dalemusser/duasite/internal/app/store/impactposts"
	impactstatstore "github.com/dalemusser/duasite/internal/app/store/impactstats"
	initiativestore "github.com/dalemusser/duasite/internal/app/store/initiatives"
	partnerstore "github.com/dalemusser/duasite/internal/app/store/partners"
	slideshowstore "github.com/dalemusser/duasite/internal/app/store/slideshow"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	featuredInitiatives = 6
	latestStories       = 3
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	DB          *mongo.Database
	Slides      *slideshowstore.Store
	Initiatives *initiativestore.Store
	Stats       *impactstatstore.Store
	Partners    *partnerstore.Store
	Stories     *impactpoststore.Store
	Log         *zap.Logger
	ErrLog      *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Slides:      slideshowstore.New(db),
		Initiatives: initiativestore.New(db),
		Stats:       impactstatstore.New(db),
		Partners:    partnerstore.New(db),
		Stories:     impactpoststore.New(db),
		Log:         logger,
		ErrLog:      errLog,
	}
}

type slideVM struct {
	models.SlideshowImage
	Index  int
	First  bool
	Styles template.CSS
}

type homeVM struct {
	viewdata.BaseVM
	Slides      []slideVM
	HasSlides   bool
	Initiatives []initiatives.Card
	Stats       []models.ImpactStat
	Partners    []models.Partner
	Stories     []impact.Card
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: load content failed", err, "Failed to load the page.", "/")
		return
	}
	c.BaseVM = viewdata.NewBaseVM(r, h.DB, "", "/")
	templates.Render(w, r, "home", c)
}

// load gathers the active content shown on the landing page.
func (h *Handler) load(ctx context.Context) (homeVM, error) {
	var vm homeVM

	slides, err := h.Slides.List(ctx, true)
	if err != nil {
		return vm, err
	}
	yes := true
	featured, err := h.Initiatives.List(ctx, initiativestore.Filter{ActiveOnly: true, Highlighted: &yes, Limit: featuredInitiatives})
	if err != nil {
		return vm, err
	}
	if vm.Stats, err = h.Stats.List(ctx, true); err != nil {
		return vm, err
	}
	if vm.Partners, err = h.Partners.List(ctx, partnerstore.Filter{ActiveOnly: true}); err != nil {
		return vm, err
	}
	stories, err := h.Stories.Public(ctx, latestStories)
	if err != nil {
		return vm, err
	}

	vm.HasSlides = len(slides) > 0
	for i, s := range slides {
		vm.Slides = append(vm.Slides, slideVM{SlideshowImage: s, Index: i, First: i == 0, Styles: focalPoint(s.CropArea)})
	}
	for _, it := range featured {
		vm.Initiatives = append(vm.Initiatives, initiatives.NewCard(it))
	}
	for _, p := range stories {
		vm.Stories = append(vm.Stories, impact.NewCard(p))
	}
	return vm, nil
}

// focalPoint turns a crop rectangle (percent units) into an object-position
// centered on it.
func focalPoint(c *models.CropArea) template.CSS {
	if c == nil || c.Width <= 0 || c.Height <= 0 {
		return ""
	}
	x := c.X + c.Width/2
	y := c.Y + c.Height/2
	return template.CSS("object-position: " + pct(x) + " " + pct(y))
}

func pct(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

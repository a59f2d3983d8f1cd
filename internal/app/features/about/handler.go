// internal/app/features/about/handler.go
package about

import (
	"context"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	advisorstore "github.com/dalemusser/duasite/internal/app/store/advisors"
	partnerstore "github.com/dalemusser/duasite/internal/app/store/partners"
	teamstore "github.com/dalemusser/duasite/internal/app/store/team"
	"github.com/dalemusser/duasite/internal/app/system/htmlsanitize"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type pageData struct {
	viewdata.BaseVM
	Intro     template.HTML
	Theme     template.HTML
	Mission   template.HTML
	Vision    template.HTML
	Founders  []models.TeamMember
	Members   []models.TeamMember
	Advisors  []models.Advisor
	Partners  []partnerGroup
	HasPeople bool
}

type partnerGroup struct {
	Label    string
	Partners []models.Partner
}

type Handler struct {
	DB       *mongo.Database
	Team     *teamstore.Store
	Advisors *advisorstore.Store
	Partners *partnerstore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Team:     teamstore.New(db),
		Advisors: advisorstore.New(db),
		Partners: partnerstore.New(db),
		Log:      logger,
		ErrLog:   errLog,
	}
}

// splitTeam separates founder cards from the member grid, keeping order.
func splitTeam(team []models.TeamMember) (founders, members []models.TeamMember) {
	for _, m := range team {
		if m.IsFounder() {
			founders = append(founders, m)
		} else {
			members = append(members, m)
		}
	}
	return founders, members
}

var partnerLabels = map[string]string{
	"partner":      "Partners",
	"collaborator": "Collaborators",
	"sponsor":      "Sponsors",
}

// groupPartners buckets partners by type in models.PartnerTypes order.
func groupPartners(ps []models.Partner) []partnerGroup {
	byType := make(map[string][]models.Partner)
	for _, p := range ps {
		byType[p.Type] = append(byType[p.Type], p)
	}
	var out []partnerGroup
	for _, t := range models.PartnerTypes {
		if len(byType[t]) > 0 {
			out = append(out, partnerGroup{Label: partnerLabels[t], Partners: byType[t]})
		}
	}
	return out
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Team.List(ctx, teamstore.Filter{ActiveOnly: true})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "about: team failed", err, "Failed to load the page.", "/")
		return
	}
	advisors, err := h.Advisors.List(ctx, true)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "about: advisors failed", err, "Failed to load the page.", "/")
		return
	}
	partners, err := h.Partners.List(ctx, partnerstore.Filter{ActiveOnly: true})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "about: partners failed", err, "Failed to load the page.", "/")
		return
	}

	data := pageData{
		BaseVM:   viewdata.NewBaseVM(r, h.DB, "About Us", "/"),
		Advisors: advisors,
		Partners: groupPartners(partners),
	}
	data.Founders, data.Members = splitTeam(team)
	data.HasPeople = len(team) > 0 || len(advisors) > 0
	data.Intro = htmlsanitize.SanitizeToHTML(data.Site.AboutIntro)
	data.Theme = htmlsanitize.SanitizeToHTML(data.Site.AboutTheme)
	data.Mission = htmlsanitize.SanitizeToHTML(data.Site.Mission)
	data.Vision = htmlsanitize.SanitizeToHTML(data.Site.Vision)

	templates.Render(w, r, "about", data)
}

// internal/app/features/settings/admin.go
package settings

import (
	"context"
	"net/http"
	"strings"

	settingsstore "github.com/dalemusser/duasite/internal/app/store/settings"
	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"github.com/dalemusser/duasite/internal/app/system/formutil"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

const adminPath = "/admin/settings"

type settingsVM struct {
	formutil.Base
	Settings          models.Settings
	EmergencyContacts string
	Logo              formutil.Image
	Favicon           formutil.Image
	HeroAnimations    []string
	SectionAnimations []string
	HoverEffects      []string
}

// ServeSettings displays the settings form.
func (h *Handler) ServeSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Store.Get(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load settings failed", err, "Failed to load settings.", "/admin")
		return
	}
	vm := h.newVM(r, st)
	if r.URL.Query().Get("saved") == "1" {
		vm.Notice = "Settings saved."
	}
	templates.Render(w, r, "settings_form", vm)
}

// HandleSettings processes the settings form submission.
func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", adminPath)
		return
	}
	in := inputFromForm(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Store.Upsert(ctx, in); err != nil {
		if apierr.IsValidation(err) {
			current, _ := h.Store.Get(ctx)
			vm := h.newVM(r, applyForm(current, r))
			vm.SetError(err.Error())
			w.WriteHeader(http.StatusBadRequest)
			templates.Render(w, r, "settings_form", vm)
			return
		}
		h.ErrLog.LogServerError(w, r, "save settings failed", err, "Failed to save settings.", adminPath)
		return
	}
	h.Log.Info("settings updated")
	http.Redirect(w, r, adminPath+"?saved=1", http.StatusSeeOther)
}

func (h *Handler) newVM(r *http.Request, st models.Settings) settingsVM {
	vm := settingsVM{
		Settings:          st,
		EmergencyContacts: formatContacts(st.EmergencyContacts),
		Logo:              formutil.Image{Name: "logo", Label: "Logo", Value: st.Logo, Folder: "branding"},
		Favicon:           formutil.Image{Name: "favicon", Label: "Favicon", Value: st.Favicon, Folder: "branding"},
		HeroAnimations:    models.HeroAnimations,
		SectionAnimations: models.SectionAnimations,
		HoverEffects:      models.HoverEffects,
	}
	formutil.SetBase(&vm.Base, r, h.DB, "Settings", "/admin")
	return vm
}

func inputFromForm(r *http.Request) settingsstore.Input {
	return settingsstore.Input{
		SiteName:          formutil.String(r, "siteName"),
		Tagline:           formutil.String(r, "tagline"),
		Motto:             formutil.String(r, "motto"),
		Logo:              formutil.String(r, "logo"),
		Favicon:           formutil.String(r, "favicon"),
		AboutIntro:        formutil.String(r, "aboutIntro"),
		AboutTheme:        formutil.String(r, "aboutTheme"),
		Mission:           formutil.String(r, "mission"),
		Vision:            formutil.String(r, "vision"),
		WelcomeMessage:    formutil.String(r, "welcomeMessage"),
		Address:           formutil.String(r, "address"),
		Email:             formutil.String(r, "email"),
		Phone:             formutil.String(r, "phone"),
		Website:           formutil.String(r, "website"),
		EmergencyContacts: parseContacts(r.PostForm.Get("emergencyContacts")),
		GoogleMapsEmbed:   formutil.String(r, "googleMapsEmbed"),
		SocialLinks: &settingsstore.SocialInput{
			Facebook:  formutil.String(r, "facebook"),
			Instagram: formutil.String(r, "instagram"),
			YouTube:   formutil.String(r, "youtube"),
			TikTok:    formutil.String(r, "tiktok"),
			LinkedIn:  formutil.String(r, "linkedin"),
			Twitter:   formutil.String(r, "twitter"),
		},
		FooterText:    formutil.String(r, "footerText"),
		CopyrightText: formutil.String(r, "copyrightText"),
		Animations: &settingsstore.AnimationsInput{
			HeroAnimation:      formutil.String(r, "heroAnimation"),
			SectionAnimation:   formutil.String(r, "sectionAnimation"),
			HoverEffect:        formutil.String(r, "hoverEffect"),
			EnableParallax:     formutil.Bool(r, "enableParallax"),
			EnableSmoothScroll: formutil.Bool(r, "enableSmoothScroll"),
		},
	}
}

// applyForm overlays the posted values on st so a rejected form
// re-renders with what the admin typed.
func applyForm(st models.Settings, r *http.Request) models.Settings {
	f := r.PostForm.Get
	st.SiteName, st.Tagline, st.Motto = f("siteName"), f("tagline"), f("motto")
	st.Logo, st.Favicon = f("logo"), f("favicon")
	st.AboutIntro, st.AboutTheme = f("aboutIntro"), f("aboutTheme")
	st.Mission, st.Vision, st.WelcomeMessage = f("mission"), f("vision"), f("welcomeMessage")
	st.Address, st.Email, st.Phone, st.Website = f("address"), f("email"), f("phone"), f("website")
	st.GoogleMapsEmbed = f("googleMapsEmbed")
	st.FooterText, st.CopyrightText = f("footerText"), f("copyrightText")
	st.EmergencyContacts = *parseContacts(f("emergencyContacts"))
	return st
}

// parseContacts reads one contact per line as "name | phone | role".
func parseContacts(text string) *[]models.EmergencyContact {
	out := []models.EmergencyContact{}
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		c := models.EmergencyContact{Name: parts[0], Phone: parts[1]}
		if len(parts) > 2 {
			c.Role = parts[2]
		}
		out = append(out, c)
	}
	return &out
}

func formatContacts(cs []models.EmergencyContact) string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		line := c.Name + " | " + c.Phone
		if c.Role != "" {
			line += " | " + c.Role
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"context"
	"html/template"
	"net/http"
	"time"

	settingsstore "github.com/dalemusser/duasite/internal/app/store/settings"
	"github.com/dalemusser/duasite/internal/app/system/auth"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/dalemusser/duasite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BaseVM contains common fields for all view models, public and admin.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, db, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	// Site settings (from database, defaults when unavailable)
	Site models.Settings

	// Admin context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Year        int

	// CSRF protection for admin forms
	CSRFToken string
	CSRFField template.HTML
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - db: database for loading site settings (can be nil for defaults)
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, db *mongo.Database, title, backDefault string) BaseVM {
	vm := BaseVM{
		Site:        models.DefaultSettings(),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
	}

	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Role = u.Role
		vm.UserName = u.Name
	}

	if db != nil {
		vm.Site = LoadSettings(r.Context(), db)
	}
	return vm
}

// LoadSettings returns the site settings, or defaults if they cannot be read.
func LoadSettings(ctx context.Context, db *mongo.Database) models.Settings {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	st, err := settingsstore.New(db).Get(ctx)
	if err != nil {
		zap.L().Warn("viewdata: settings load failed; using defaults", zap.Error(err))
		return models.DefaultSettings()
	}
	return st
}

// PageTitle joins a page title with the site name, e.g. "Gallery | DUA".
func (b BaseVM) PageTitle() string {
	if b.Title == "" {
		return b.Site.SiteName
	}
	return b.Title + " | " + b.Site.SiteName
}

// IsCurrent reports whether path is the current page, for nav highlighting.
func (b BaseVM) IsCurrent(path string) bool {
	return b.CurrentPath == path
}

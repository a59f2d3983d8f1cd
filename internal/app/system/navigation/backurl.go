// Package navigation provides helpers for safe return URLs and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/admin").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are paths to reject (e.g., "/admin/login").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string
}

// AdminReturn is used after sign-in: stay inside the admin area and never
// bounce back to the login or logout endpoints.
var AdminReturn = BackURLOptions{
	AllowedPrefix:    "/admin",
	ExcludedSubpaths: []string{"/admin/login", "/admin/logout"},
	Fallback:         "/admin",
}

// SafeBackURL extracts and validates a "return" URL from the query string,
// then the form. Only same-site relative paths are followed.
//
//	dest := navigation.SafeBackURL(r, navigation.AdminReturn)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := strings.TrimSpace(query.Get(r, "return"))
	if ret == "" {
		ret = strings.TrimSpace(r.FormValue("return"))
	}
	return Validate(ret, opts)
}

// Validate applies opts to a candidate return URL.
func Validate(ret string, opts BackURLOptions) string {
	if !relative(ret) {
		return opts.Fallback
	}
	ret = urlutil.SafeReturn(ret, "", "")
	if ret == "" {
		return opts.Fallback
	}
	if opts.AllowedPrefix != "" && ret != opts.AllowedPrefix && !strings.HasPrefix(ret, strings.TrimRight(opts.AllowedPrefix, "/")+"/") && !strings.HasPrefix(ret, opts.AllowedPrefix+"?") {
		return opts.Fallback
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if ret == excluded || strings.HasPrefix(ret, excluded+"/") || strings.HasPrefix(ret, excluded+"?") {
			return opts.Fallback
		}
	}
	return ret
}

func relative(s string) bool {
	return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") && !strings.HasPrefix(s, "/\\")
}

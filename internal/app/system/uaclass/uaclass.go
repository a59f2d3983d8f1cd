// Package uaclass classifies a User-Agent string into coarse device, browser
// and OS buckets for the visit dashboard. Matching is substring based and
// approximate; the order of checks is significant.
package uaclass

import "strings"

// Device classes.
const (
	Mobile  = "mobile"
	Tablet  = "tablet"
	Desktop = "desktop"
)

// Result is the classification of one user agent.
type Result struct {
	Device  string
	Browser string
	OS      string
}

// Classify returns Device, Browser and OS for ua.
func Classify(ua string) Result {
	return Result{Device: Device(ua), Browser: Browser(ua), OS: OS(ua)}
}

// Device returns mobile, tablet, or desktop. Mobile wins over tablet.
func Device(ua string) string {
	l := strings.ToLower(ua)
	switch {
	case strings.Contains(l, "mobile"):
		return Mobile
	case strings.Contains(l, "tablet"), strings.Contains(l, "ipad"):
		return Tablet
	default:
		return Desktop
	}
}

// Browser checks Firefox, then Chrome without Edg, then Safari without Chrome,
// then Edge, then Opera. Edge user agents carry "Chrome" too, so the Chrome
// test must exclude "Edg" for Edge to be reachable.
func Browser(ua string) string {
	has := func(s string) bool { return strings.Contains(ua, s) }
	switch {
	case has("Firefox"):
		return "Firefox"
	case has("Chrome") && !has("Edg"):
		return "Chrome"
	case has("Safari") && !has("Chrome"):
		return "Safari"
	case has("Edg"):
		return "Edge"
	case has("Opera"), has("OPR"):
		return "Opera"
	default:
		return "Other"
	}
}

// OS returns Windows, iOS, Android, macOS, Linux, or Other.
func OS(ua string) string {
	has := func(s string) bool { return strings.Contains(ua, s) }
	switch {
	case has("Windows"):
		return "Windows"
	case has("iPhone"), has("iPad"), has("iPod"):
		return "iOS"
	case has("Android"):
		return "Android"
	case has("Mac OS"), has("Macintosh"):
		return "macOS"
	case has("Linux"), has("X11"):
		return "Linux"
	default:
		return "Other"
	}
}

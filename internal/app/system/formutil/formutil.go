// Package formutil provides helpers for admin form pages: the shared view
// model with an error banner, and parsers that turn posted fields into the
// pointer-valued inputs the stores accept.
//
// When a form submission fails validation, the form is re-rendered with the
// submitted values and the store's error message.
//
// Example usage:
//
//	type teamFormData struct {
//		formutil.Base
//		Member models.TeamMember
//	}
//
//	data := teamFormData{Member: m}
//	formutil.SetBase(&data.Base, r, h.DB, "Edit Member", "/admin/team")
//	data.SetError(err.Error())
//	templates.Render(w, r, "team_form", data)
package formutil

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
)

// DateLayout is the value format of <input type="date">.
const DateLayout = "2006-01-02"

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error  template.HTML
	Notice string
	IsEdit bool
}

// SetBase populates the layout fields from the request.
func SetBase(b *Base, r *http.Request, db *mongo.Database, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, db, title, backDefault)
}

// SetError sets the error message. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// String returns a pointer to the trimmed field value. Posted forms always
// carry every field, so an empty value clears the stored one.
func String(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.PostForm.Get(name))
	return &v
}

// OptString returns nil when the field was not posted at all.
func OptString(r *http.Request, name string) *string {
	if _, ok := r.PostForm[name]; !ok {
		return nil
	}
	return String(r, name)
}

// Bool reads a checkbox. Unchecked boxes are absent from the post, so the
// result is always non-nil.
func Bool(r *http.Request, name string) *bool {
	v := r.PostForm.Get(name)
	b := v == "on" || v == "true" || v == "1"
	return &b
}

// Int parses an integer field. Blank or malformed input yields nil.
func Int(r *http.Request, name string) *int {
	v := strings.TrimSpace(r.PostForm.Get(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// Float parses a decimal field. Blank or malformed input yields nil.
func Float(r *http.Request, name string) *float64 {
	v := strings.TrimSpace(r.PostForm.Get(name))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Date parses a yyyy-mm-dd field as UTC midnight. Blank or malformed input yields nil.
func Date(r *http.Request, name string) *time.Time {
	v := strings.TrimSpace(r.PostForm.Get(name))
	if v == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, v, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// Lines splits a textarea into trimmed, non-empty lines.
func Lines(r *http.Request, name string) *[]string {
	out := []string{}
	for _, line := range strings.Split(r.PostForm.Get(name), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return &out
}

// CSV splits a comma-separated field into trimmed, non-empty items.
func CSV(r *http.Request, name string) *[]string {
	out := []string{}
	for _, part := range strings.Split(r.PostForm.Get(name), ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return &out
}

// FormatDate renders t for a date input; nil renders empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// Image is the view model of the shared "image_field" partial: a URL input
// paired with an upload button that fills it.
type Image struct {
	Name   string
	Label  string
	Value  string
	Folder string
}

// Redirect sends the browser to dest after a successful form post. HTMX
// requests get an HX-Redirect header instead of a 303.
func Redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

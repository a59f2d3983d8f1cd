// Package htmlsanitize cleans admin-supplied rich text before it reaches a
// public page: impact story markdown, settings copy, and the Google Maps embed.
package htmlsanitize

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	ugc = bluemonday.UGCPolicy()

	// Raw HTML in markdown is escaped by goldmark (WithUnsafe is not set);
	// the UGC pass afterwards strips anything unsafe in generated links.
	md = goldmark.New(
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
		),
	)

	mapSrc   = regexp.MustCompile(`^https://(www\.)?google\.com/maps/embed\?[^"'<>\s]*$`)
	mapEmbed = newMapPolicy()
)

func newMapPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("iframe")
	p.AllowAttrs("src").Matching(mapSrc).OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(regexp.MustCompile(`^[0-9]{1,4}%?$`)).OnElements("iframe")
	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^(lazy|eager)$`)).OnElements("iframe")
	p.AllowAttrs("referrerpolicy").Matching(regexp.MustCompile(`^[a-z-]+$`)).OnElements("iframe")
	p.AllowAttrs("allowfullscreen").OnElements("iframe")
	return p
}

// Sanitize strips unsafe markup and keeps formatting, links, lists and tables.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// SanitizeToHTML is Sanitize for direct use in templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// Markdown renders markdown to sanitized HTML.
func Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(ugc.SanitizeBytes(buf.Bytes()))
}

// MapEmbed keeps only a Google Maps iframe from s. Anything else is dropped.
func MapEmbed(s string) template.HTML {
	out := strings.TrimSpace(mapEmbed.Sanitize(s))
	if !strings.Contains(out, "<iframe") || !strings.Contains(out, "src=") {
		return ""
	}
	return template.HTML(out)
}

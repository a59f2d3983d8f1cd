// Package slug derives URL slugs from titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases s, collapses every run of characters outside [a-z0-9] to a
// single hyphen, and trims leading and trailing hyphens.
//
//	Make("DUA Healthcamp!") == "dua-healthcamp"
func Make(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

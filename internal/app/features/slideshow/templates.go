// internal/app/features/slideshow/templates.go
package slideshow

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "slideshow",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

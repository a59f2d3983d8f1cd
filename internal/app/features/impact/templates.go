// internal/app/features/impact/templates.go
package impact

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "impact",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

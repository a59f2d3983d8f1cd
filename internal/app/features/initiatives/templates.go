// internal/app/features/initiatives/templates.go
package initiatives

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "initiatives",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}

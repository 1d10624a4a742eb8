package board

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageData struct {
	Snapshot
	RefreshSeconds int
}

// Render writes the dashboard page. The page reloads itself every refresh.
func Render(w io.Writer, snap Snapshot, refresh time.Duration) error {
	return pageTmpl.Execute(w, pageData{
		Snapshot:       snap,
		RefreshSeconds: int(refresh / time.Second),
	})
}

package dashboard

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Render renders a template with the given data.
func Render(w io.Writer, templateName string, data interface{}) error {
	tmpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

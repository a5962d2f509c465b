// Package web contiene las vistas HTML y los assets estáticos, embebidos en el binario.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer ejecuta las vistas parseadas una sola vez al arrancar.
// Es seguro para uso concurrente (html/template lo es tras el parse).
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Render escribe primero a un buffer para no mandar HTML a medias:
// si la vista falla, responde 500 en texto plano.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return fmt.Errorf("web: render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static sirve /css/* desde static/css.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static/css")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/css/", http.FileServer(http.FS(sub)))
}

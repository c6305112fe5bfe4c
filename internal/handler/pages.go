package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexTemplate = "index.html"

// indexPage is the view model of the home page and its contact form.
type indexPage struct {
	SiteName string
	Form     service.ContactForm
	Errors   service.FieldErrors
	Notice   *Notice
}

// PageRenderer renders the embedded HTML templates.
type PageRenderer struct {
	tmpl     *template.Template
	siteName string
}

// NewPageRenderer parses the embedded templates.
func NewPageRenderer(siteName string) (*PageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &PageRenderer{tmpl: tmpl, siteName: siteName}, nil
}

// renderIndex writes the home page with the given status code. The page is
// rendered into a buffer first so a template error never produces a partial page.
func (p *PageRenderer) renderIndex(w http.ResponseWriter, r *http.Request, status int, page indexPage) {
	page.SiteName = p.siteName
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, indexTemplate, page); err != nil {
		slog.ErrorContext(r.Context(), "render page", "template", indexTemplate, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

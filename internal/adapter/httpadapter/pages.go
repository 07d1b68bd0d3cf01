package httpadapter

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

type pageKind string

const (
	pageMap   pageKind = "map"
	pageTrend pageKind = "trend"
)

type pages struct {
	tmpl *template.Template
}

func newPages() *pages {
	return &pages{
		tmpl: template.Must(template.ParseFS(templateFS, "templates/dashboard.html")),
	}
}

type pageData struct {
	Page        pageKind
	Title       string
	TrendTitle  string
	OptionsJSON template.JS
}

func (s *Server) handlePage(kind pageKind) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		opts, err := json.Marshal(s.dash.Options())
		if err != nil {
			s.logger.Error("encode options failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		data := pageData{
			Page:        kind,
			Title:       "Casos de Homicidio por Accidentes de Tránsito en Colombia",
			TrendTitle:  trendTitle,
			OptionsJSON: template.JS(opts), //nolint:gosec // JSON produced by encoding/json
		}

		var buf bytes.Buffer
		if err := s.pages.tmpl.Execute(&buf, data); err != nil {
			s.logger.Error("render page failed", "page", kind, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = buf.WriteTo(w)
	}
}

package httpadapter

import (
	"bytes"
	"errors"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/homicide-dashboard/internal/render"
)

// trendTitle is the chart title shown on the trend page.
const trendTitle = "Tendencia Total de Accidentes de Tráfico y Homicidios con el Tiempo"

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.dash.Options())
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := s.dash.MapView(r.Context(), q.Get("year"), q.Get("municipio"))
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := s.dash.TrendView(r.Context(), q.Get("year"), q.Get("departamento"))
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleTrendPNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := s.dash.TrendView(r.Context(), q.Get("year"), q.Get("departamento"))

	var buf bytes.Buffer
	if err := render.TrendPNG(&buf, trendTitle, view); err != nil {
		if errors.Is(err, render.ErrNoData) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.logger.Error("render trend chart failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

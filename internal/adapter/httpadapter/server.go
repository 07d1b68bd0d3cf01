package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/couchcryptid/homicide-dashboard/internal/dashboard"
	"github.com/couchcryptid/homicide-dashboard/internal/domain"
)

// Dashboard is the view service behind the HTTP routes.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Options() dashboard.Options
	MapView(ctx context.Context, year, municipality string) domain.MapView
	TrendView(ctx context.Context, year, department string) domain.TrendView
}

// Server exposes the dashboard pages, its JSON API, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	pages      *pages
	logger     *slog.Logger
}

// NewServer creates an HTTP server. allowedOrigins applies to /api/ routes.
func NewServer(addr string, dash Dashboard, allowedOrigins []string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		pages:  newPages(),
		logger: logger,
	}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/options", s.handleOptions)
	api.HandleFunc("GET /api/map", s.handleMap)
	api.HandleFunc("GET /api/trend", s.handleTrend)
	api.HandleFunc("GET /api/trend.png", s.handleTrendPNG)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	mux.Handle("/api/", corsHandler.Handler(api))
	mux.HandleFunc("GET /{$}", s.handlePage(pageMap))
	mux.HandleFunc("GET /tendencia-homicidios", s.handlePage(pageTrend))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dash))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

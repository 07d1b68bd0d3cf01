// Package dashboard serves the map and trend views over a loaded table.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/couchcryptid/homicide-dashboard/internal/observability"
)

const (
	viewMap   = "map"
	viewTrend = "trend"
)

// Options lists the dropdown choices of both dashboard pages.
type Options struct {
	Years          []int    `json:"years"`
	Municipalities []string `json:"municipalities"`
	Departments    []string `json:"departments"`
	AllCases       string   `json:"all_cases"`
	AllYears       string   `json:"all_years"`
	AllDepartments string   `json:"all_departments"`
}

// Service computes views on demand. The table is never mutated after New,
// so a Service is safe for concurrent use.
type Service struct {
	table   *domain.Table
	logger  *slog.Logger
	metrics *observability.Metrics
	options Options
}

// New creates a Service over a loaded table.
func New(table *domain.Table, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		table:   table,
		logger:  logger,
		metrics: metrics,
		options: Options{
			Years:          table.Years(),
			Municipalities: table.Municipalities(),
			Departments:    table.Departments(),
			AllCases:       domain.AllCases,
			AllYears:       domain.AllYears,
			AllDepartments: domain.AllDepartments,
		},
	}
}

// Options returns the dropdown choices. Lists are sorted and distinct.
func (s *Service) Options() Options {
	return s.options
}

// MapView computes the scatter map for the given selections.
func (s *Service) MapView(ctx context.Context, year, municipality string) domain.MapView {
	yf, mf := domain.ParseFilter(year), domain.ParseFilter(municipality)
	start := time.Now()

	view := domain.ComputeMapView(s.table, yf, mf)

	s.observe(ctx, viewMap, start, yf.Active() || mf.Active(), len(view.Points),
		"year", yf.String(), "municipality", mf.String(), "total_cases", view.TotalCases)
	return view
}

// TrendView computes the daily trend for the given selections.
func (s *Service) TrendView(ctx context.Context, year, department string) domain.TrendView {
	yf, df := domain.ParseFilter(year), domain.ParseFilter(department)
	start := time.Now()

	view := domain.ComputeTrendView(s.table, yf, df)

	s.observe(ctx, viewTrend, start, yf.Active() || df.Active(), len(view.Hover),
		"year", yf.String(), "department", df.String(), "total_cases", view.TotalCases)
	return view
}

// CheckReadiness reports ready once a non-empty table is held.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.table == nil || s.table.Len() == 0 {
		return errors.New("dataset is empty")
	}
	return nil
}

func (s *Service) observe(ctx context.Context, view string, start time.Time, filtered bool, size int, attrs ...any) {
	s.metrics.ViewRequests.WithLabelValues(view, strconv.FormatBool(filtered)).Inc()
	s.metrics.ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	s.metrics.ViewSize.WithLabelValues(view).Observe(float64(size))
	if size == 0 {
		s.metrics.ViewEmpty.WithLabelValues(view).Inc()
	}
	s.logger.DebugContext(ctx, "view computed", append([]any{"view", view, "size", size}, attrs...)...)
}

// Package dataset loads the homicide workbook into an immutable domain.Table.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/couchcryptid/homicide-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Opener returns a reader over the workbook at source.
type Opener interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// Loader fetches, parses, normalizes, and optionally geocodes the dataset.
// It runs once per process; any failure aborts the whole load.
type Loader struct {
	opener   Opener
	sheet    string
	geocoder domain.Geocoder
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewLoader creates a Loader. Pass a nil geocoder to require coordinates in
// every row.
func NewLoader(opener Opener, sheet string, geocoder domain.Geocoder, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		opener:   opener,
		sheet:    sheet,
		geocoder: geocoder,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Load reads the workbook at source and returns the normalized table.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Table, error) {
	start := l.clock.Now()
	l.logger.Info("dataset load started", "source", source)

	rc, err := l.opener.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raws, err := ReadWorkbook(rc, l.sheet)
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	records := make([]domain.Record, 0, len(raws))
	geocoded, unlocated := 0, 0
	for _, raw := range raws {
		rec, err := domain.ParseRawRecord(raw)
		if err != nil {
			return nil, err
		}
		if !rec.Located {
			located, err := domain.Locate(ctx, rec, l.geocoder, l.logger)
			switch {
			case ctx.Err() != nil:
				return nil, fmt.Errorf("row %d: %w", raw.Row, ctx.Err())
			case err != nil:
				// Kept for the trend; the map skips it.
				l.logger.Warn("record has no coordinates", "row", raw.Row, "error", err)
				unlocated++
			default:
				rec = located
				geocoded++
			}
		}
		records = append(records, rec)
	}

	loadedAt := l.clock.Now()
	table := domain.NewTable(records, source, loadedAt)

	elapsed := loadedAt.Sub(start)
	l.metrics.DatasetRecords.Set(float64(table.Len()))
	l.metrics.DatasetUnlocated.Set(float64(unlocated))
	l.metrics.DatasetLoadDuration.Observe(elapsed.Seconds())
	l.metrics.DatasetLoadedAt.Set(float64(loadedAt.Unix()))
	l.logger.Info("dataset loaded",
		"records", table.Len(),
		"geocoded", geocoded,
		"unlocated", unlocated,
		"years", len(table.Years()),
		"municipalities", len(table.Municipalities()),
		"departments", len(table.Departments()),
		"duration", elapsed,
	)
	return table, nil
}

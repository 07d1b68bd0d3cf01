// Package render draws server-side images of dashboard views.
package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/couchcryptid/homicide-dashboard/internal/domain"
)

// ErrNoData is returned when a view has nothing to plot.
var ErrNoData = errors.New("no data to render")

const (
	chartWidth  = 1024
	chartHeight = 480
)

// TrendPNG writes the daily totals of view as a PNG line chart. The y-axis
// spans [0, view.YAxisMax].
func TrendPNG(w io.Writer, title string, view domain.TrendView) error {
	if len(view.Daily) == 0 {
		return ErrNoData
	}

	xs := make([]time.Time, len(view.Daily))
	ys := make([]float64, len(view.Daily))
	for i, d := range view.Daily {
		xs[i] = d.Date
		ys[i] = float64(d.Count)
	}

	yMax := view.YAxisMax
	if yMax <= 0 {
		yMax = 1
	}

	series := chart.TimeSeries{
		Name:    "Casos",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: chart.ColorBlue,
			StrokeWidth: 2,
		},
	}
	xAxis := chart.XAxis{
		Name:           "Fecha",
		ValueFormatter: chart.TimeValueFormatterWithFormat(domain.DateLayout),
	}
	// A lone day has no line to stroke and no x extent; draw it as a dot
	// centred in a one-day window.
	if len(xs) == 1 {
		series.Style.DotColor = chart.ColorBlue
		series.Style.DotWidth = 4
		xAxis.Range = singleDayRange(xs[0])
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 32}},
		XAxis:      xAxis,
		YAxis: chart.YAxis{
			Name:  "Total de Casos",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: []chart.Series{series},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render trend chart: %w", err)
	}
	return nil
}

func singleDayRange(day time.Time) *chart.ContinuousRange {
	return &chart.ContinuousRange{
		Min: chart.TimeToFloat64(day.Add(-12 * time.Hour)),
		Max: chart.TimeToFloat64(day.Add(12 * time.Hour)),
	}
}

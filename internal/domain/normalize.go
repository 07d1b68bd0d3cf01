package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NotReported is the canonical "not reported" category label.
const NotReported = "NO REPORTADO"

var (
	// ErrMalformedCell is returned when a required cell cannot be parsed.
	ErrMalformedCell = errors.New("malformed cell")

	// ErrMissingCoordinates is returned when a row has no coordinates and
	// none could be resolved.
	ErrMissingCoordinates = errors.New("missing coordinates")
)

// notReportedAliases maps every upstream spelling of "not reported" to the
// canonical label. Gender and age group share the same set.
var notReportedAliases = map[string]string{
	"NO REPORTADO": NotReported,
	"NO REPOTADO":  NotReported,
	"NO REPORTA":   NotReported,
}

// dateLayouts are tried in order for text dates. Day-first matches the
// Colombian source; month-first is never attempted.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
}

// ParseRawRecord converts worksheet cells into a normalized Record.
// Region names and weapons are upper-cased and trimmed, category labels are
// trimmed and canonicalized, and the date is truncated to a UTC calendar day.
func ParseRawRecord(raw RawRecord) (Record, error) {
	date, err := parseDate(raw.Date)
	if err != nil {
		return Record{}, cellError(raw.Row, "FECHA HECHO", raw.Date)
	}
	year, err := parseInt(raw.Year)
	if err != nil {
		return Record{}, cellError(raw.Row, "AÑO", raw.Year)
	}
	count, err := parseInt(raw.Count)
	if err != nil {
		return Record{}, cellError(raw.Row, "CANTIDAD", raw.Count)
	}

	rec := Record{
		Date:         date,
		Year:         year,
		Department:   NormalizeRegion(raw.Department),
		Municipality: NormalizeRegion(raw.Municipality),
		Gender:       NormalizeCategory(raw.Gender),
		Weapon:       NormalizeWeapon(raw.Weapon),
		AgeGroup:     NormalizeCategory(raw.AgeGroup),
		Count:        count,
	}

	lat, lon := strings.TrimSpace(raw.Latitude), strings.TrimSpace(raw.Longitude)
	switch {
	case lat == "" && lon == "":
		// Left for Locate.
	case lat == "":
		return Record{}, cellError(raw.Row, "LATITUDE", raw.Latitude)
	case lon == "":
		return Record{}, cellError(raw.Row, "LONGITUDE", raw.Longitude)
	default:
		if rec.Geo.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
			return Record{}, cellError(raw.Row, "LATITUDE", raw.Latitude)
		}
		if rec.Geo.Lon, err = strconv.ParseFloat(lon, 64); err != nil {
			return Record{}, cellError(raw.Row, "LONGITUDE", raw.Longitude)
		}
		rec.Located = true
	}

	return rec, nil
}

// NormalizeRegion upper-cases and trims a department or municipality name.
func NormalizeRegion(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeCategory trims a category label and collapses "not reported"
// variants to NotReported.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if canonical, ok := notReportedAliases[strings.ToUpper(s)]; ok {
		return canonical
	}
	return s
}

// NormalizeWeapon upper-cases a weapon label so that "Moto" and "MOTO" land in
// the same share. "Not reported" variants collapse to NotReported.
func NormalizeWeapon(s string) string {
	return strings.ToUpper(NormalizeCategory(s))
}

func cellError(row int, column, value string) error {
	return fmt.Errorf("%w: row %d, column %s: %q", ErrMalformedCell, row, column, value)
}

// parseInt accepts integral values written as floats ("2010.0"), which is how
// spreadsheets often store whole numbers.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %s", s)
	}
	return int(f), nil
}

// parseDate accepts any of dateLayouts. Spreadsheet serial dates are
// converted to DateLayout by the workbook reader before they get here.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %s", s)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

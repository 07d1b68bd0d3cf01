package domain

import (
	"slices"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// RawRecord holds the cell text of one worksheet row, keyed by column.
// Row is the 1-based worksheet row, used in error messages.
type RawRecord struct {
	Row          int
	Date         string
	Year         string
	Department   string
	Municipality string
	Latitude     string
	Longitude    string
	Gender       string
	Weapon       string
	AgeGroup     string
	Count        string
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Record is one normalized row of the dataset.
type Record struct {
	Date         time.Time
	Year         int
	Department   string
	Municipality string
	Geo          Geo
	Gender       string
	Weapon       string
	AgeGroup     string
	Count        int

	// Located is false when the source row had no coordinates and none
	// have been resolved yet.
	Located bool
}

// Table is the immutable, normalized dataset shared by every view.
type Table struct {
	records  []Record
	source   string
	loadedAt time.Time
}

// NewTable copies records into a read-only table.
func NewTable(records []Record, source string, loadedAt time.Time) *Table {
	return &Table{
		records:  slices.Clone(records),
		source:   source,
		loadedAt: loadedAt,
	}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Source returns where the table was loaded from.
func (t *Table) Source() string { return t.source }

// LoadedAt returns when the table finished loading.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Records returns a copy of all records in source order.
func (t *Table) Records() []Record { return slices.Clone(t.records) }

// Each calls fn for every record in source order without copying.
func (t *Table) Each(fn func(Record)) {
	for i := range t.records {
		fn(t.records[i])
	}
}

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	seen := make(map[int]struct{})
	for i := range t.records {
		seen[t.records[i].Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Municipalities returns the distinct municipality names, sorted.
func (t *Table) Municipalities() []string {
	return t.distinct(func(r Record) string { return r.Municipality })
}

// Departments returns the distinct department names, sorted.
func (t *Table) Departments() []string {
	return t.distinct(func(r Record) string { return r.Department })
}

func (t *Table) distinct(field func(Record) string) []string {
	seen := make(map[string]struct{})
	for i := range t.records {
		seen[field(t.records[i])] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

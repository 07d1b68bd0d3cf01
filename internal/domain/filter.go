package domain

import (
	"strconv"
	"strings"
)

// Sentinel selections offered by the dashboard dropdowns. Each means "do not
// filter on this axis".
const (
	AllCases       = "Todos Los Casos"
	AllYears       = "Todos los Años"
	AllDepartments = "Todos los Departamentos"
)

var sentinels = []string{"", "all", AllCases, AllYears, AllDepartments}

// Filter narrows records on one axis. The zero value matches everything.
type Filter struct {
	value  string
	active bool
}

// ParseFilter interprets a dropdown selection. Any sentinel, on any axis,
// yields an inactive filter. Values not present in the data are kept as-is
// and simply match nothing.
func ParseFilter(selection string) Filter {
	v := strings.TrimSpace(selection)
	for _, s := range sentinels {
		if strings.EqualFold(v, s) {
			return Filter{}
		}
	}
	return Filter{value: v, active: true}
}

// Active reports whether the filter narrows the result.
func (f Filter) Active() bool { return f.active }

// String returns the selected value, or "all" for an inactive filter.
func (f Filter) String() string {
	if !f.active {
		return "all"
	}
	return f.value
}

func (f Filter) matchYear(year int) bool {
	if !f.active {
		return true
	}
	y, err := parseInt(f.value)
	return err == nil && y == year
}

// matchRegion compares against an already normalized region name.
func (f Filter) matchRegion(region string) bool {
	if !f.active {
		return true
	}
	return NormalizeRegion(f.value) == region
}

// YearFilter builds an active filter for a specific year.
func YearFilter(year int) Filter {
	return Filter{value: strconv.Itoa(year), active: true}
}

package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Share is a category's percentage of the total case count.
type Share struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// shareTable sums counts per category and divides by total, rounding to two
// decimals. A zero total yields 0 for every category. The map serves per-row
// lookups; the slice is ordered by descending share, ties by label.
func shareTable(records []Record, category func(Record) string, total int) (map[string]float64, []Share) {
	sums := make(map[string]int)
	for i := range records {
		sums[category(records[i])] += records[i].Count
	}

	lookup := make(map[string]float64, len(sums))
	ordered := make([]Share, 0, len(sums))
	for label, sum := range sums {
		pct := 0.0
		if total != 0 {
			pct = round2(float64(sum) / float64(total) * 100)
		}
		lookup[label] = pct
		ordered = append(ordered, Share{Label: label, Percent: pct})
	}
	slices.SortFunc(ordered, func(a, b Share) int {
		if c := cmp.Compare(b.Percent, a.Percent); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return lookup, ordered
}

// WeaponDistribution summarizes labels by relative frequency of occurrence,
// e.g. "ARMA DE FUEGO: 66.67%, CONTUNDENTE: 33.33%". Counts are not
// weighted. Order is descending frequency, ties in first-seen order.
func WeaponDistribution(labels []string) string {
	if len(labels) == 0 {
		return ""
	}

	type tally struct {
		label string
		n     int
	}
	index := make(map[string]int)
	var tallies []tally
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(tallies)
			index[l] = i
			tallies = append(tallies, tally{label: l})
		}
		tallies[i].n++
	}
	slices.SortStableFunc(tallies, func(a, b tally) int { return cmp.Compare(b.n, a.n) })

	parts := make([]string, len(tallies))
	for i, t := range tallies {
		parts[i] = fmt.Sprintf("%s: %.2f%%", t.label, float64(t.n)/float64(len(labels))*100)
	}
	return strings.Join(parts, ", ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

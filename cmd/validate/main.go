// Command validate loads a homicide workbook the same way the dashboard does
// and checks that the map and trend aggregations conserve case counts and
// produce well-formed output for every year and department.
//
// Usage:
//
//	go run ./cmd/validate -source data/mock/homicidios.xlsx
//	go run ./cmd/validate -source https://github.com/rmejia41/open_datasets/raw/main/Cleaned_Homicidios_Accidentes_Trafico_C.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/homicide-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/couchcryptid/homicide-dashboard/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	source := flag.String("source", "", "workbook path or URL")
	sheet := flag.String("sheet", "", "worksheet name (default: first sheet)")
	timeout := flag.Duration("timeout", 2*time.Minute, "fetch timeout")
	flag.Parse()

	if *source == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*source, *sheet, *timeout); code != 0 {
		os.Exit(code)
	}
}

func run(source, sheet string, timeout time.Duration) int {
	fmt.Println("=== Homicide Dataset Integrity Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	loader := dataset.NewLoader(dataset.NewFetcher(timeout), sheet, nil, clockwork.NewRealClock(), logger, observability.NewMetrics())

	table, err := loader.Load(context.Background(), source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	total, located, unlocated := 0, 0, 0
	table.Each(func(r domain.Record) {
		total += r.Count
		if r.Located {
			located += r.Count
		} else {
			unlocated++
		}
	})

	// ── Run validation phases ──
	phases := []*phase{
		validateOptions(table),
		validateMapConservation(table, located, unlocated),
		validateMapGroups(table),
		validateTrend(table, total),
		validateDepartmentPartition(table, total),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d (%d without coordinates), cases: %d, years: %d, municipalities: %d, departments: %d\n",
		table.Len(), unlocated, total, len(table.Years()), len(table.Municipalities()), len(table.Departments()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateOptions(t *domain.Table) *phase {
	p := &phase{name: "Dropdown options sorted and distinct"}
	if t.Len() == 0 {
		p.errorf("table is empty")
	}
	if !slices.IsSorted(t.Years()) || len(slices.Compact(t.Years())) != len(t.Years()) {
		p.errorf("years not sorted/distinct: %v", t.Years())
	}
	for name, values := range map[string][]string{
		"municipalities": t.Municipalities(),
		"departments":    t.Departments(),
	} {
		if !slices.IsSorted(values) || len(slices.Compact(slices.Clone(values))) != len(values) {
			p.errorf("%s not sorted/distinct", name)
		}
		for _, v := range values {
			if v != domain.NormalizeRegion(v) {
				p.errorf("%s value %q is not normalized", name, v)
			}
		}
	}
	return p
}

// validateMapConservation checks map totals against located records only;
// rows without coordinates are reported in Unlocated instead.
func validateMapConservation(t *domain.Table, total, unlocated int) *phase {
	p := &phase{name: "Map totals conserve located case counts"}

	all := domain.ComputeMapView(t, domain.Filter{}, domain.Filter{})
	if all.Aggregated {
		p.errorf("unfiltered map is aggregated")
	}
	if len(all.Points)+all.Unlocated != t.Len() {
		p.errorf("unfiltered map has %d points and %d unlocated, want %d records", len(all.Points), all.Unlocated, t.Len())
	}
	if all.Unlocated != unlocated {
		p.errorf("unfiltered map reports %d unlocated, want %d", all.Unlocated, unlocated)
	}
	if all.TotalCases != total {
		p.errorf("unfiltered map total %d, want %d", all.TotalCases, total)
	}

	sum := 0
	for _, y := range t.Years() {
		v := domain.ComputeMapView(t, domain.YearFilter(y), domain.Filter{})
		if !v.Aggregated {
			p.errorf("year %d map is not aggregated", y)
		}
		sum += v.TotalCases
	}
	if sum != total {
		p.errorf("sum of per-year map totals %d, want %d", sum, total)
	}

	sum = 0
	for _, m := range t.Municipalities() {
		sum += domain.ComputeMapView(t, domain.Filter{}, domain.ParseFilter(m)).TotalCases
	}
	if sum != total {
		p.errorf("sum of per-municipality map totals %d, want %d", sum, total)
	}
	return p
}

func validateMapGroups(t *domain.Table) *phase {
	p := &phase{name: "Map groups unique with weapon shares"}
	for _, y := range t.Years() {
		v := domain.ComputeMapView(t, domain.YearFilter(y), domain.Filter{})
		seen := map[string]bool{}
		for _, pt := range v.Points {
			key := fmt.Sprintf("%g|%g|%s|%d|%s", pt.Lat, pt.Lon, pt.Municipality, pt.Year, pt.Gender)
			if seen[key] {
				p.errorf("year %d: duplicate group %s", y, key)
			}
			seen[key] = true

			pct, n, err := sumDistribution(pt.Weapons)
			if err != nil {
				p.errorf("year %d: %s: %v", y, key, err)
				continue
			}
			if math.Abs(pct-100) > 0.01*float64(n)+1e-9 {
				p.errorf("year %d: %s: weapon shares sum to %.2f", y, key, pct)
			}
		}
	}
	return p
}

func validateTrend(t *domain.Table, total int) *phase {
	p := &phase{name: "Trend daily totals and shares"}

	for _, y := range append([]int{0}, t.Years()...) {
		yf := domain.Filter{}
		label := "all years"
		want := total
		if y != 0 {
			yf = domain.YearFilter(y)
			label = strconv.Itoa(y)
			want = 0
			t.Each(func(r domain.Record) {
				if r.Year == y {
					want += r.Count
				}
			})
		}

		v := domain.ComputeTrendView(t, yf, domain.Filter{})
		daily, maxDaily := 0, 0
		for i, d := range v.Daily {
			daily += d.Count
			maxDaily = max(maxDaily, d.Count)
			if i > 0 && !v.Daily[i-1].Date.Before(d.Date) {
				p.errorf("%s: daily totals not strictly chronological at %s", label, d.Date.Format(domain.DateLayout))
			}
		}
		if daily != want || v.TotalCases != want {
			p.errorf("%s: daily sum %d, total %d, want %d", label, daily, v.TotalCases, want)
		}
		if v.MaxDaily != maxDaily {
			p.errorf("%s: max daily %d, want %d", label, v.MaxDaily, maxDaily)
		}
		if math.Abs(v.YAxisMax-1.1*float64(maxDaily)) > 1e-9 {
			p.errorf("%s: y-axis max %g, want %g", label, v.YAxisMax, 1.1*float64(maxDaily))
		}
		if got := sumShares(v.GenderShares); math.Abs(got-100) > 0.01*float64(len(v.GenderShares))+1e-9 {
			p.errorf("%s: gender shares sum to %.2f", label, got)
		}
		if got := sumShares(v.WeaponShares); math.Abs(got-100) > 0.01*float64(len(v.WeaponShares))+1e-9 {
			p.errorf("%s: weapon shares sum to %.2f", label, got)
		}
	}
	return p
}

func validateDepartmentPartition(t *domain.Table, total int) *phase {
	p := &phase{name: "Departments partition the trend"}
	sum := 0
	for _, d := range t.Departments() {
		v := domain.ComputeTrendView(t, domain.Filter{}, domain.ParseFilter(d))
		if v.TotalCases == 0 {
			p.errorf("department %s has no cases", d)
		}
		sum += v.TotalCases
	}
	if sum != total {
		p.errorf("sum of per-department totals %d, want %d", sum, total)
	}
	return p
}

// ── Helpers ──

// sumDistribution parses "LABEL: 12.34%, OTHER: 87.66%" and sums the percentages.
func sumDistribution(s string) (float64, int, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("empty weapon distribution")
	}
	parts := strings.Split(s, ", ")
	sum := 0.0
	for _, part := range parts {
		i := strings.LastIndex(part, ": ")
		if i < 0 || !strings.HasSuffix(part, "%") {
			return 0, 0, fmt.Errorf("malformed entry %q", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(part[i+2:], "%"), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("malformed entry %q: %w", part, err)
		}
		sum += v
	}
	return sum, len(parts), nil
}

func sumShares(shares []domain.Share) float64 {
	sum := 0.0
	for _, s := range shares {
		sum += s.Percent
	}
	return sum
}

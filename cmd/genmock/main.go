// Command genmock writes a synthetic homicide workbook with the same columns
// as the published dataset, for local runs and integration tests without
// network access.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/homicidios.xlsx -rows 2000 -seed 42
//
// Serve it with DATASET_URL=data/mock/homicidios.xlsx.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/homicide-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/homicide-dashboard/internal/domain"
)

type place struct {
	department   string
	municipality string
	geo          domain.Geo
}

var places = []place{
	{"CUNDINAMARCA", "BOGOTÁ D.C.", domain.Geo{Lat: 4.711, Lon: -74.0721}},
	{"CUNDINAMARCA", "SOACHA", domain.Geo{Lat: 4.5794, Lon: -74.2168}},
	{"ANTIOQUIA", "MEDELLÍN", domain.Geo{Lat: 6.2442, Lon: -75.5812}},
	{"ANTIOQUIA", "BELLO", domain.Geo{Lat: 6.3373, Lon: -75.5579}},
	{"VALLE", "CALI", domain.Geo{Lat: 3.4516, Lon: -76.532}},
	{"VALLE", "PALMIRA", domain.Geo{Lat: 3.5394, Lon: -76.3036}},
	{"ATLÁNTICO", "BARRANQUILLA", domain.Geo{Lat: 10.9685, Lon: -74.7813}},
	{"SANTANDER", "BUCARAMANGA", domain.Geo{Lat: 7.1193, Lon: -73.1227}},
	{"META", "VILLAVICENCIO", domain.Geo{Lat: 4.142, Lon: -73.6266}},
	{"AMAZONAS", "LETICIA", domain.Geo{Lat: -4.2153, Lon: -69.9406}},
}

var (
	genders   = []string{"MASCULINO", "MASCULINO", "MASCULINO", "FEMENINO", "NO REPORTADO", "NO REPOTADO"}
	weapons   = []string{"VEHICULO", "MOTO", "BICICLETA", "CONTUNDENTES", "NO REPORTADO"}
	ageGroups = []string{"ADULTOS", "ADULTOS", "ADOLESCENTES", "MENORES", "NO REPORTADO"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated .xlsx workbook")
	rows := flag.Int("rows", 1000, "number of data rows")
	seed := flag.Uint64("seed", 1, "random seed for reproducible output")
	fromYear := flag.Int("from", 2010, "first year")
	toYear := flag.Int("to", 2012, "last year")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows <= 0 || *toYear < *fromYear {
		return fmt.Errorf("invalid -rows or year range")
	}

	records := generate(rand.New(rand.NewPCG(*seed, *seed)), *rows, *fromYear, *toYear)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := dataset.WriteWorkbook(f, "", records); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	log.Printf("wrote %d rows to %s", len(records), *out)

	printStats(records)
	return nil
}

func generate(rng *rand.Rand, n, fromYear, toYear int) []domain.Record {
	start := time.Date(fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(time.Date(toYear+1, time.January, 1, 0, 0, 0, 0, time.UTC).Sub(start).Hours() / 24)

	records := make([]domain.Record, n)
	for i := range records {
		p := places[rng.IntN(len(places))]
		date := start.AddDate(0, 0, rng.IntN(days))
		records[i] = domain.Record{
			Date:         date,
			Year:         date.Year(),
			Department:   p.department,
			Municipality: p.municipality,
			Geo:          p.geo,
			Gender:       genders[rng.IntN(len(genders))],
			Weapon:       weapons[rng.IntN(len(weapons))],
			AgeGroup:     ageGroups[rng.IntN(len(ageGroups))],
			Count:        1 + rng.IntN(3),
			Located:      true,
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records
}

// printStats reports totals for updating test assertions.
func printStats(records []domain.Record) {
	total := 0
	byYear := map[int]int{}
	byDepartment := map[string]int{}
	for _, r := range records {
		total += r.Count
		byYear[r.Year] += r.Count
		byDepartment[r.Department] += r.Count
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Rows: %d, cases: %d\n", len(records), total)

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	fmt.Print("By year:")
	for _, y := range years {
		fmt.Printf(" %d=%d", y, byYear[y])
	}
	fmt.Println()

	departments := make([]string, 0, len(byDepartment))
	for d := range byDepartment {
		departments = append(departments, d)
	}
	sort.Strings(departments)
	fmt.Print("By department:")
	for _, d := range departments {
		fmt.Printf(" %s=%d", d, byDepartment[d])
	}
	fmt.Println()
}

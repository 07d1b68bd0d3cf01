package domain

import (
	"cmp"
	"slices"

	"github.com/twpayne/go-geom"
)

// MapPoint is one marker on the scatter map. Weapons holds the record's own
// weapon label for unaggregated points and a percentage summary for grouped
// ones.
type MapPoint struct {
	Geo
	Municipality string `json:"municipality"`
	Year         int    `json:"year"`
	Gender       string `json:"gender"`
	Count        int    `json:"count"`
	Weapons      string `json:"weapons"`
}

// Bounds is the bounding box of a set of points and its midpoint, used to
// fit the map viewport.
type Bounds struct {
	Min    Geo `json:"min"`
	Max    Geo `json:"max"`
	Center Geo `json:"center"`
}

// MapView is the scatter map payload.
type MapView struct {
	Points     []MapPoint `json:"points"`
	Aggregated bool       `json:"aggregated"`
	TotalCases int        `json:"total_cases"`
	Bounds     *Bounds    `json:"bounds,omitempty"`

	// Unlocated counts matching records left off the map for lack of
	// coordinates.
	Unlocated int `json:"unlocated"`
}

type mapKey struct {
	lat, lon     float64
	municipality string
	year         int
	gender       string
}

type mapGroup struct {
	count   int
	weapons []string
}

// ComputeMapView filters the table by year and municipality. With both
// filters inactive every record becomes its own point. Otherwise matching
// records are grouped by (lat, lon, municipality, year, gender) with summed
// counts and a weapon distribution per group, in ascending key order.
// Records without coordinates are never plotted; they only add to Unlocated.
func ComputeMapView(t *Table, year, municipality Filter) MapView {
	view := MapView{Points: []MapPoint{}}

	var matched []Record
	t.Each(func(r Record) {
		if !year.matchYear(r.Year) || !municipality.matchRegion(r.Municipality) {
			return
		}
		if !r.Located {
			view.Unlocated++
			return
		}
		matched = append(matched, r)
	})

	if !year.Active() && !municipality.Active() {
		for _, r := range matched {
			view.Points = append(view.Points, MapPoint{
				Geo:          r.Geo,
				Municipality: r.Municipality,
				Year:         r.Year,
				Gender:       r.Gender,
				Count:        r.Count,
				Weapons:      r.Weapon,
			})
		}
	} else {
		view.Aggregated = true
		view.Points = groupPoints(matched)
	}

	for _, p := range view.Points {
		view.TotalCases += p.Count
	}
	view.Bounds = boundsOf(view.Points)
	return view
}

func groupPoints(records []Record) []MapPoint {
	groups := make(map[mapKey]*mapGroup)
	for _, r := range records {
		k := mapKey{lat: r.Geo.Lat, lon: r.Geo.Lon, municipality: r.Municipality, year: r.Year, gender: r.Gender}
		g, ok := groups[k]
		if !ok {
			g = &mapGroup{}
			groups[k] = g
		}
		g.count += r.Count
		g.weapons = append(g.weapons, r.Weapon)
	}

	keys := make([]mapKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareMapKeys)

	points := make([]MapPoint, len(keys))
	for i, k := range keys {
		g := groups[k]
		points[i] = MapPoint{
			Geo:          Geo{Lat: k.lat, Lon: k.lon},
			Municipality: k.municipality,
			Year:         k.year,
			Gender:       k.gender,
			Count:        g.count,
			Weapons:      WeaponDistribution(g.weapons),
		}
	}
	return points
}

func compareMapKeys(a, b mapKey) int {
	if c := cmp.Compare(a.lat, b.lat); c != 0 {
		return c
	}
	if c := cmp.Compare(a.lon, b.lon); c != 0 {
		return c
	}
	if c := cmp.Compare(a.municipality, b.municipality); c != 0 {
		return c
	}
	if c := cmp.Compare(a.year, b.year); c != 0 {
		return c
	}
	return cmp.Compare(a.gender, b.gender)
}

// boundsOf returns nil for an empty point set.
func boundsOf(points []MapPoint) *Bounds {
	if len(points) == 0 {
		return nil
	}
	coords := make([]geom.Coord, len(points))
	for i, p := range points {
		coords[i] = geom.Coord{p.Lon, p.Lat}
	}
	b := geom.NewMultiPoint(geom.XY).MustSetCoords(coords).Bounds()

	minGeo := Geo{Lat: b.Min(1), Lon: b.Min(0)}
	maxGeo := Geo{Lat: b.Max(1), Lon: b.Max(0)}
	return &Bounds{
		Min: minGeo,
		Max: maxGeo,
		Center: Geo{
			Lat: (minGeo.Lat + maxGeo.Lat) / 2,
			Lon: (minGeo.Lon + maxGeo.Lon) / 2,
		},
	}
}

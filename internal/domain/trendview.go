package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// headroomRatio is the fraction of the daily peak added above it so the line
// never touches the top of the chart.
const headroomRatio = 0.1

// DailyTotal is the summed case count for one calendar day.
type DailyTotal struct {
	Date  time.Time
	Count int
}

// MarshalJSON renders the date as DateLayout.
func (d DailyTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}{d.Date.Format(DateLayout), d.Count})
}

// HoverRow annotates one filtered record with the share of total cases held
// by its gender and by its weapon category.
type HoverRow struct {
	Date        string  `json:"date"`
	Gender      string  `json:"gender"`
	GenderShare float64 `json:"gender_share"`
	Weapon      string  `json:"weapon"`
	WeaponShare float64 `json:"weapon_share"`
	AgeGroup    string  `json:"age_group"`
}

// TrendView is the line chart payload. Daily and Hover are independent:
// Daily has one entry per distinct date, Hover one entry per filtered record.
type TrendView struct {
	Daily        []DailyTotal `json:"daily"`
	Hover        []HoverRow   `json:"hover"`
	TotalCases   int          `json:"total_cases"`
	GenderShares []Share      `json:"gender_shares"`
	WeaponShares []Share      `json:"weapon_shares"`
	MaxDaily     int          `json:"max_daily"`
	Headroom     float64      `json:"headroom"`
	YAxisMax     float64      `json:"y_axis_max"`
}

// ComputeTrendView filters the table by year and department, sums counts per
// day, computes gender and weapon shares of the filtered total, and attaches
// those shares to every filtered record. An empty selection yields empty
// slices and a zero axis.
func ComputeTrendView(t *Table, year, department Filter) TrendView {
	var matched []Record
	t.Each(func(r Record) {
		if year.matchYear(r.Year) && department.matchRegion(r.Department) {
			matched = append(matched, r)
		}
	})

	view := TrendView{
		Daily:        dailyTotals(matched),
		Hover:        make([]HoverRow, 0, len(matched)),
		GenderShares: []Share{},
		WeaponShares: []Share{},
	}

	for _, r := range matched {
		view.TotalCases += r.Count
	}

	genderShare, genderOrdered := shareTable(matched, func(r Record) string { return r.Gender }, view.TotalCases)
	weaponShare, weaponOrdered := shareTable(matched, func(r Record) string { return r.Weapon }, view.TotalCases)
	view.GenderShares = genderOrdered
	view.WeaponShares = weaponOrdered

	for _, r := range matched {
		view.Hover = append(view.Hover, HoverRow{
			Date:        r.Date.Format(DateLayout),
			Gender:      r.Gender,
			GenderShare: genderShare[r.Gender],
			Weapon:      r.Weapon,
			WeaponShare: weaponShare[r.Weapon],
			AgeGroup:    r.AgeGroup,
		})
	}

	for _, d := range view.Daily {
		view.MaxDaily = max(view.MaxDaily, d.Count)
	}
	view.Headroom = float64(view.MaxDaily) * headroomRatio
	view.YAxisMax = float64(view.MaxDaily) + view.Headroom
	return view
}

// dailyTotals sums counts per calendar day in chronological order. Days
// without records are absent, not zero-filled.
func dailyTotals(records []Record) []DailyTotal {
	sums := make(map[time.Time]int)
	for _, r := range records {
		sums[r.Date] += r.Count
	}

	days := make([]time.Time, 0, len(sums))
	for d := range sums {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	out := make([]DailyTotal, len(days))
	for i, d := range days {
		out[i] = DailyTotal{Date: d, Count: sums[d]}
	}
	return out
}

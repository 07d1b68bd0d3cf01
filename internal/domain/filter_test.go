package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		selection string
		active    bool
		str       string
	}{
		{"", false, "all"},
		{"all", false, "all"},
		{"ALL", false, "all"},
		{AllCases, false, "all"},
		{"todos los casos", false, "all"},
		{AllYears, false, "all"},
		{"TODOS LOS AÑOS", false, "all"},
		{AllDepartments, false, "all"},
		{"2010", true, "2010"},
		{" ANTIOQUIA ", true, "ANTIOQUIA"},
	}
	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			f := ParseFilter(tt.selection)
			assert.Equal(t, tt.active, f.Active())
			assert.Equal(t, tt.str, f.String())
		})
	}
}

func TestFilterMatching(t *testing.T) {
	t.Run("inactive matches everything", func(t *testing.T) {
		var f Filter
		assert.True(t, f.matchYear(1999))
		assert.True(t, f.matchRegion("CALI"))
	})

	t.Run("year", func(t *testing.T) {
		f := ParseFilter("2010")
		assert.True(t, f.matchYear(2010))
		assert.False(t, f.matchYear(2011))
		assert.True(t, YearFilter(2011).matchYear(2011))
	})

	t.Run("non-numeric year matches nothing", func(t *testing.T) {
		f := ParseFilter("two thousand")
		assert.True(t, f.Active())
		assert.False(t, f.matchYear(2010))
	})

	t.Run("region compares normalized", func(t *testing.T) {
		f := ParseFilter("medellín")
		assert.True(t, f.matchRegion("MEDELLÍN"))
		assert.False(t, f.matchRegion("CALI"))
	})
}

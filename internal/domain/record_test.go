package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Options(t *testing.T) {
	table := testTable()

	assert.Equal(t, []int{2010, 2011}, table.Years())
	assert.Equal(t, []string{"BOGOTÁ D.C.", "CALI", "MEDELLÍN"}, table.Municipalities())
	assert.Equal(t, []string{"ANTIOQUIA", "CUNDINAMARCA", "VALLE"}, table.Departments())
}

func TestTable_IsReadOnly(t *testing.T) {
	records := testRecords()
	table := NewTable(records, "memory", day(2024, 1, 1))

	records[0].Count = 999
	assert.Equal(t, 2, table.Records()[0].Count, "table must not alias the input slice")

	out := table.Records()
	out[0].Count = 999
	assert.Equal(t, 2, table.Records()[0].Count, "Records must return a copy")

	assert.Equal(t, "memory", table.Source())
	assert.Equal(t, day(2024, 1, 1), table.LoadedAt())
}

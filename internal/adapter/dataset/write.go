package dataset

import (
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes records to a new workbook under the canonical header,
// one row per record, dates as domain.DateLayout text. Records that are not
// located get blank coordinate cells. An empty sheet name keeps the default
// first sheet.
func WriteWorkbook(w io.Writer, sheet string, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetList()[0]
	if sheet != "" && sheet != first {
		if err := f.SetSheetName(first, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		first = sheet
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.name
	}
	if err := f.SetSheetRow(first, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		var lat, lon any = "", ""
		if r.Located {
			lat, lon = r.Geo.Lat, r.Geo.Lon
		}
		row := []any{
			r.Date.Format(domain.DateLayout),
			r.Year,
			r.Department,
			r.Municipality,
			lat,
			lon,
			r.Gender,
			r.Weapon,
			r.AgeGroup,
			r.Count,
		}
		if err := f.SetSheetRow(first, "A"+strconv.Itoa(i+2), &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

package dataset

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrMissingColumn is returned when the header row lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// column identifies one required field and the header spellings it accepts,
// compared after trim and upper-case.
type column struct {
	name    string
	aliases []string
	set     func(*domain.RawRecord, string)
}

var columns = []column{
	{"FECHA HECHO", []string{"FECHA HECHO", "FECHA"}, func(r *domain.RawRecord, v string) { r.Date = v }},
	{"AÑO", []string{"AÑO", "ANO", "ANIO", "YEAR"}, func(r *domain.RawRecord, v string) { r.Year = v }},
	{"DEPARTAMENTO", []string{"DEPARTAMENTO"}, func(r *domain.RawRecord, v string) { r.Department = v }},
	{"MUNICIPIO", []string{"MUNICIPIO"}, func(r *domain.RawRecord, v string) { r.Municipality = v }},
	{"LATITUDE", []string{"LATITUDE", "LATITUD"}, func(r *domain.RawRecord, v string) { r.Latitude = v }},
	{"LONGITUDE", []string{"LONGITUDE", "LONGITUD"}, func(r *domain.RawRecord, v string) { r.Longitude = v }},
	{"GENERO", []string{"GENERO", "GÉNERO"}, func(r *domain.RawRecord, v string) { r.Gender = v }},
	{"ARMAS MEDIOS", []string{"ARMAS MEDIOS", "ARMAS/MEDIOS"}, func(r *domain.RawRecord, v string) { r.Weapon = v }},
	{"GRUPO ETARÍO", []string{"GRUPO ETARÍO", "GRUPO ETARIO"}, func(r *domain.RawRecord, v string) { r.AgeGroup = v }},
	{"CANTIDAD", []string{"CANTIDAD"}, func(r *domain.RawRecord, v string) { r.Count = v }},
}

// ReadWorkbook parses the header row and every non-blank data row of sheet
// into raw records. An empty sheet name selects the first worksheet. Cells
// are read unformatted; date cells stored as serial numbers are converted to
// domain.DateLayout text.
func ReadWorkbook(r io.Reader, sheet string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := domain.RawRecord{Row: i + 2}
		for c, col := range columns {
			col.set(&rec, cell(row, index[c]))
		}
		if rec.Date, err = serialToDate(rec.Date); err != nil {
			return nil, fmt.Errorf("%w: row %d, column FECHA HECHO: %w", domain.ErrMalformedCell, rec.Row, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// headerIndex maps each entry of columns to its position in the header row.
func headerIndex(header []string) ([]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToUpper(strings.TrimSpace(h))
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	index := make([]int, len(columns))
	var missing []string
	for c, col := range columns {
		index[c] = -1
		for _, alias := range col.aliases {
			if pos, ok := positions[alias]; ok {
				index[c] = pos
				break
			}
		}
		if index[c] < 0 {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

// serialToDate converts an Excel serial day number to DateLayout; text dates
// pass through for the domain parser.
func serialToDate(v string) (string, error) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return v, nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", err
	}
	return t.Format(domain.DateLayout), nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

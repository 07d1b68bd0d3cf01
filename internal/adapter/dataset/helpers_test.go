package dataset

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testHeader = []any{"FECHA HECHO", "Año", "DEPARTAMENTO", "MUNICIPIO", "LATITUDE", "LONGITUDE", "GENERO", "ARMAS MEDIOS", "GRUPO ETARÍO", "CANTIDAD"}

// buildWorkbook writes header and rows to the first sheet of a new workbook.
func buildWorkbook(t *testing.T, header []any, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	all := append([][]any{header}, rows...)
	for i, row := range all {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bytesOpener serves a fixed workbook regardless of source.
type bytesOpener struct {
	data []byte
	err  error
}

func (o bytesOpener) Open(_ context.Context, _ string) (io.ReadCloser, error) {
	if o.err != nil {
		return nil, o.err
	}
	return io.NopCloser(bytes.NewReader(o.data)), nil
}

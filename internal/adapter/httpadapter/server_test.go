package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/couchcryptid/homicide-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/homicide-dashboard/internal/dashboard"
	"github.com/couchcryptid/homicide-dashboard/internal/domain"
	"github.com/couchcryptid/homicide-dashboard/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T, records []domain.Record) *httpadapter.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table := domain.NewTable(records, "memory", day(2024, 1, 1))
	svc := dashboard.New(table, logger, observability.NewMetricsForTesting())
	return httpadapter.NewServer(":0", svc, []string{"https://example.org"}, logger)
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		{Date: day(2010, 1, 1), Year: 2010, Department: "CUNDINAMARCA", Municipality: "BOGOTÁ D.C.", Geo: domain.Geo{Lat: 4.57, Lon: -74.29}, Gender: "MASCULINO", Weapon: "VEHICULO", AgeGroup: "ADULTOS", Count: 2, Located: true},
		{Date: day(2010, 1, 1), Year: 2010, Department: "CUNDINAMARCA", Municipality: "BOGOTÁ D.C.", Geo: domain.Geo{Lat: 4.57, Lon: -74.29}, Gender: "MASCULINO", Weapon: "MOTO", AgeGroup: "ADULTOS", Count: 1, Located: true},
		{Date: day(2011, 5, 3), Year: 2011, Department: "ANTIOQUIA", Municipality: "MEDELLÍN", Geo: domain.Geo{Lat: 6.24, Lon: -75.58}, Gender: "FEMENINO", Weapon: "MOTO", AgeGroup: "MENORES", Count: 4, Located: true},
	}
}

func get(t *testing.T, srv http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func statusBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(t, sampleRecords())
	rec := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", statusBody(t, rec)["status"])
}

func TestReadyzReturns200WhenLoaded(t *testing.T) {
	srv := newTestServer(t, sampleRecords())
	rec := get(t, srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", statusBody(t, rec)["status"])
}

func TestReadyzReturns503WhenEmpty(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := statusBody(t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "dataset is empty", body["error"])
}

func TestAPIRespondsWithJSON(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	for _, path := range []string{"/api/options", "/api/map", "/api/trend"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, srv, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.True(t, json.Valid(rec.Body.Bytes()))
			assert.True(t, bytes.HasSuffix(rec.Body.Bytes(), []byte("\n")), "encoder terminates the document")
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, sampleRecords())
	assert.Equal(t, http.StatusOK, get(t, srv, "/metrics").Code)
}

func TestPages(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	for _, path := range []string{"/", "/tendencia-homicidios"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, srv, path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			body := rec.Body.String()
			assert.Contains(t, body, "Mapa Interactivo")
			assert.Contains(t, body, "Tendencia de Homicidios")
			assert.Contains(t, body, "MEDELLÍN")
		})
	}

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/no-existe").Code)
}

func TestAPIOptions(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	rec := get(t, srv, "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts dashboard.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []int{2010, 2011}, opts.Years)
	assert.Equal(t, []string{"ANTIOQUIA", "CUNDINAMARCA"}, opts.Departments)
	assert.Equal(t, domain.AllCases, opts.AllCases)
}

func TestAPIMap(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	tests := []struct {
		name       string
		query      url.Values
		points     int
		aggregated bool
		total      int
	}{
		{"no filter", url.Values{}, 3, false, 7},
		{"sentinels", url.Values{"year": {domain.AllCases}, "municipio": {domain.AllCases}}, 3, false, 7},
		{"year", url.Values{"year": {"2010"}}, 1, true, 3},
		{"municipality", url.Values{"municipio": {"medellín"}}, 1, true, 4},
		{"unknown", url.Values{"municipio": {"MACONDO"}}, 0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, "/api/map?"+tt.query.Encode())
			require.Equal(t, http.StatusOK, rec.Code)

			var view struct {
				Points     []map[string]any `json:"points"`
				Aggregated bool             `json:"aggregated"`
				TotalCases int              `json:"total_cases"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
			assert.Len(t, view.Points, tt.points)
			assert.Equal(t, tt.aggregated, view.Aggregated)
			assert.Equal(t, tt.total, view.TotalCases)
		})
	}
}

func TestAPIMap_GroupedWeapons(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	rec := get(t, srv, "/api/map?year=2010")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Points []struct {
			Lat     float64 `json:"lat"`
			Lon     float64 `json:"lon"`
			Count   int     `json:"count"`
			Weapons string  `json:"weapons"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Points, 1)
	assert.Equal(t, 3, view.Points[0].Count)
	assert.InDelta(t, 4.57, view.Points[0].Lat, 1e-9)
	assert.Equal(t, "VEHICULO: 50.00%, MOTO: 50.00%", view.Points[0].Weapons)
}

func TestAPITrend(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	rec := get(t, srv, "/api/trend?year=Todos+los+A%C3%B1os&departamento=CUNDINAMARCA")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Daily []struct {
			Date  string `json:"date"`
			Count int    `json:"count"`
		} `json:"daily"`
		Hover      []map[string]any `json:"hover"`
		TotalCases int              `json:"total_cases"`
		YAxisMax   float64          `json:"y_axis_max"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Daily, 1)
	assert.Equal(t, "2010-01-01", view.Daily[0].Date)
	assert.Equal(t, 3, view.Daily[0].Count)
	assert.Len(t, view.Hover, 2)
	assert.Equal(t, 3, view.TotalCases)
	assert.InDelta(t, 3.3, view.YAxisMax, 1e-9)
}

func TestAPITrendPNG(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	t.Run("renders", func(t *testing.T) {
		rec := get(t, srv, "/api/trend.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
	})

	t.Run("empty selection", func(t *testing.T) {
		rec := get(t, srv, "/api/trend.png?year=1999")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})
}

func TestAPICORS(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "https://example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/options", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIRejectsWrongMethod(t *testing.T) {
	srv := newTestServer(t, sampleRecords())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/map", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

package domain

import (
	"io"
	"log/slog"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	bogota   = Geo{Lat: 4.5709, Lon: -74.2973}
	medellin = Geo{Lat: 6.2442, Lon: -75.5812}
	cali     = Geo{Lat: 3.4516, Lon: -76.532}
)

// testRecords covers two years, three municipalities, and repeated
// (place, year, gender) keys so grouping has something to merge.
func testRecords() []Record {
	return []Record{
		{Date: day(2010, 1, 1), Year: 2010, Department: "CUNDINAMARCA", Municipality: "BOGOTÁ D.C.", Geo: bogota, Gender: "MASCULINO", Weapon: "VEHICULO", AgeGroup: "ADULTOS", Count: 2, Located: true},
		{Date: day(2010, 1, 1), Year: 2010, Department: "CUNDINAMARCA", Municipality: "BOGOTÁ D.C.", Geo: bogota, Gender: "MASCULINO", Weapon: "VEHICULO", AgeGroup: "ADULTOS", Count: 1, Located: true},
		{Date: day(2010, 1, 2), Year: 2010, Department: "CUNDINAMARCA", Municipality: "BOGOTÁ D.C.", Geo: bogota, Gender: "MASCULINO", Weapon: "MOTO", AgeGroup: "MENORES", Count: 1, Located: true},
		{Date: day(2010, 1, 2), Year: 2010, Department: "CUNDINAMARCA", Municipality: "BOGOTÁ D.C.", Geo: bogota, Gender: "FEMENINO", Weapon: "VEHICULO", AgeGroup: NotReported, Count: 1, Located: true},
		{Date: day(2010, 3, 5), Year: 2010, Department: "ANTIOQUIA", Municipality: "MEDELLÍN", Geo: medellin, Gender: "FEMENINO", Weapon: "MOTO", AgeGroup: "ADULTOS", Count: 3, Located: true},
		{Date: day(2011, 2, 1), Year: 2011, Department: "ANTIOQUIA", Municipality: "MEDELLÍN", Geo: medellin, Gender: "MASCULINO", Weapon: "VEHICULO", AgeGroup: "ADULTOS", Count: 1, Located: true},
		{Date: day(2011, 2, 1), Year: 2011, Department: "VALLE", Municipality: "CALI", Geo: cali, Gender: NotReported, Weapon: "BICICLETA", AgeGroup: "ADOLESCENTES", Count: 2, Located: true},
	}
}

func testTable() *Table {
	return NewTable(testRecords(), "memory", day(2024, 1, 1))
}

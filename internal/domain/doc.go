// Package domain models the Policía Nacional traffic-accident homicide records
// ("homicidio culposo en accidente de tránsito") and the two dashboard views
// computed over them.
//
// # Data Source
//
// The dataset is a cleaned export of the Datos Abiertos table published at
// https://www.datos.gov.co (Seguridad y Defensa, "Homicidios accidente de
// tránsito"). It is distributed as a single .xlsx workbook whose first sheet
// holds one header row followed by one row per (date, place, demographic) tuple.
//
// # Column Conventions
//
//	FECHA HECHO   date of the incident; Excel serial or text, day precision
//	AÑO           calendar year of the incident
//	DEPARTAMENTO  department name, inconsistent case and padding upstream
//	MUNICIPIO     municipality name, same caveats as DEPARTAMENTO
//	LATITUDE      WGS-84 latitude of the municipality seat
//	LONGITUDE     WGS-84 longitude of the municipality seat
//	GENERO        MASCULINO, FEMENINO, or a "not reported" label
//	ARMAS MEDIOS  weapon or means, e.g. "VEHICULO", "MOTO"
//	GRUPO ETARÍO  ADULTOS, MENORES, ADOLESCENTES, or a "not reported" label
//	CANTIDAD      number of victims aggregated in the row
//
// Region names are upper-cased and trimmed on load so that filters compare
// exactly. ARMAS MEDIOS gets the same treatment so weapon shares do not split
// on case; gender and age group are only trimmed. The "not reported" label appears upstream as "NO REPORTADO",
// "NO REPOTADO" (sic) and "NO REPORTA"; all collapse to [NotReported].
//
// # Views
//
// [ComputeMapView] feeds the scatter map. With no filter it returns one point
// per record; once any filter narrows the set it groups points by
// (lat, lon, municipality, year, gender) and summarizes the weapon mix of each
// group as occurrence percentages.
//
// [ComputeTrendView] feeds the line chart: a daily total series plus, for
// every filtered row, the share of total cases held by its gender and by its
// weapon category. The two are parallel structures; hover rows are not
// aligned with daily points.
//
// Both functions only read the [Table], so they are safe to call concurrently.
package domain

package domain

import "time"

// RawTable is one HTML <table> reduced to headers and string cells,
// in document order. Cells are untyped; rows may be ragged.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no data rows.
func (t RawTable) Empty() bool { return len(t.Rows) == 0 }

// Cell returns the cell at (row, col), or "" when the row is too short.
func (t RawTable) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// WeatherRecord is one classified surface-observation row. Measurement
// fields are nil when the source cell held no parseable number.
type WeatherRecord struct {
	Time                TimeOfDay
	TimeRaw             string
	TemperatureC        *float64
	RelativeHumidityPct *float64
	RainfallMM          *float64
}

// WeatherTable is a classified weather table. A zero value means
// "not a weather table"; callers treat it as a reportable miss,
// not an error.
type WeatherTable struct {
	Records []WeatherRecord
}

// Empty reports whether classification produced no records.
func (t WeatherTable) Empty() bool { return len(t.Records) == 0 }

// RadiationRecord is one classified ambient-radiation row, normalized to
// microsievert per hour.
type RadiationRecord struct {
	Time             TimeOfDay
	TimeRaw          string
	RadiationUSvPerH *float64
}

// RadiationTable is a classified radiation table. UnitAssumed is set when
// no sievert unit marker was found in the headers and the values were
// passed through as µSv/h on faith.
type RadiationTable struct {
	Records     []RadiationRecord
	UnitAssumed bool
}

// Empty reports whether classification produced no records.
func (t RadiationTable) Empty() bool { return len(t.Records) == 0 }

// MergedRecord is the outer join of a weather and a radiation row that
// share a canonical time. Fields absent on one side stay nil.
type MergedRecord struct {
	Time                TimeOfDay
	TimeRaw             string
	TemperatureC        *float64
	RelativeHumidityPct *float64
	RainfallMM          *float64
	RadiationUSvPerH    *float64
}

// MergedTable is the join result, sorted ascending by time with
// null-time rows last. GeneratedAt is stamped from the package clock so
// tests can freeze it.
type MergedTable struct {
	Records     []MergedRecord
	GeneratedAt time.Time
}

// Empty reports whether the merge produced no records.
func (t MergedTable) Empty() bool { return len(t.Records) == 0 }

// Float is a convenience for building optional measurement values in
// fixtures and tests.
func Float(v float64) *float64 { return &v }

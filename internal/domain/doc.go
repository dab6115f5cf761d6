// Package domain models the tabular data published on the Hong Kong
// Observatory (HKO) "yesterday's weather" page.
//
// # Data Source
//
// The page at https://www.hko.gov.hk/en/wxinfo/pastwx/ryes.htm embeds
// several HTML tables: hourly surface observations (temperature, relative
// humidity, rainfall) and ambient radiation readings, plus unrelated
// layout tables. Nothing about the page is stable: header wording, unit
// notation, and time formats all drift, so tables and columns are located
// by fuzzy keyword matching rather than fixed positions.
//
// # Header Conventions
//
// Column headers are normalized (lower-cased, whitespace collapsed,
// U+03BC folded to U+00B5) before matching. Roles are assigned by an
// ordered rule list; the first column matching a rule takes that role and
// later candidates are ignored:
//
//	time:        header is exactly "time", starts with "time", or contains "hour"
//	temperature: contains "temp", "temperature", or "t(°c)"
//	humidity:    contains "rh", "humidity", "rel hum", or "relative humidity"
//	rainfall:    contains "rain" or "rainfall"
//	radiation:   contains "radiation", "rad level", "µsv", "usv", or "nsv";
//	             failing those, any header containing "sv"
//
// A table with no time column is never classified. A weather table must
// keep at least one measurement column; a radiation table must keep the
// radiation column.
//
// # Units
//
// Radiation is normalized to microsievert per hour. When the joined
// header text carries a nanosievert marker ("nsv") values are scaled by
// 0.001; a microsievert marker passes through unscaled. With no marker at
// all, values are assumed to already be µSv/h. That assumption is a
// heuristic, flagged on the classified table via
// [RadiationTable.UnitAssumed] so callers can surface it. The conversion happens exactly once, at classification.
//
// # Time Formats
//
// Observed time-of-day formats, tried in order against the whole column
// (a layout is accepted only if every cell parses):
//
//	"15:04"    07:00
//	"1504"     0700
//	"15:04:05" 07:00:00
//	"3:04 PM"  7:00 AM
//	"15"       07
//
// If no layout fits the whole column, each cell is parsed leniently on
// its own; cells that still fail keep a null canonical time alongside
// their raw string.
//
// # Numbers
//
// Numeric cells are read by taking the first optionally-signed decimal
// substring, so "24.5°C" and "80%" parse while "--" and "N/A" become
// null. Nulls never abort a row or a table.
package domain

package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRe grabs the first optionally-signed decimal substring of a cell,
// which strips units like "24.5°C" or "80%" for free.
var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ExtractNumber parses the first decimal number found in a cell.
// Cells with no numeric substring yield nil, never zero.
func ExtractNumber(cell string) *float64 {
	match := numberRe.FindString(cell)
	if match == "" {
		return nil
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &v
}

// columnRole names what a matched column contributes to a classified table.
type columnRole int

const (
	roleTemperature columnRole = iota
	roleHumidity
	roleRainfall
	roleRadiation
)

// headerRule maps a predicate over a normalized header to a role.
// Rules are evaluated in fixed priority order; for each role the first
// matching column wins and later candidates are ignored.
type headerRule struct {
	role  columnRole
	match func(header string) bool
}

var weatherRules = []headerRule{
	{roleTemperature, containsAny("temp", "temperature", "t(°c)")},
	{roleHumidity, containsAny("rh", "humidity", "rel hum", "relative humidity")},
	{roleRainfall, containsAny("rain", "rainfall")},
}

var radiationRules = []headerRule{
	{roleRadiation, containsAny("radiation", "rad level", "µsv", "usv", "nsv")},
	// Unit-like fallback: any header mentioning sieverts at all.
	{roleRadiation, containsAny("sv")},
}

func containsAny(keywords ...string) func(string) bool {
	return func(header string) bool {
		for _, kw := range keywords {
			if strings.Contains(header, kw) {
				return true
			}
		}
		return false
	}
}

// normalizeHeader lowers, trims, collapses whitespace, and folds the
// Greek mu (U+03BC) into the micro sign (U+00B5) so both spellings of
// µSv match the same rules.
func normalizeHeader(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	header = strings.Join(strings.Fields(header), " ")
	return strings.ReplaceAll(header, "μ", "µ")
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = normalizeHeader(h)
	}
	return out
}

// findTimeColumn locates the time column: an exact "time" header, a
// header starting with "time", or one containing "hour". Returns -1 when
// the table has no identifiable time column.
func findTimeColumn(headers []string) int {
	for i, h := range headers {
		if h == "time" || strings.HasPrefix(h, "time") || strings.Contains(h, "hour") {
			return i
		}
	}
	return -1
}

// assignRoles walks the rule list and picks the first matching column per
// role. A column may serve more than one role; a role never gets a second
// column.
func assignRoles(headers []string, rules []headerRule) map[columnRole]int {
	assigned := make(map[columnRole]int)
	for _, rule := range rules {
		if _, done := assigned[rule.role]; done {
			continue
		}
		for i, h := range headers {
			if rule.match(h) {
				assigned[rule.role] = i
				break
			}
		}
	}
	return assigned
}

// ClassifyWeather decides whether a raw table is the surface-observation
// table and, if so, extracts its columns. An empty result means "not this
// kind of table": no time column, or none of the three measurement
// columns, or no rows.
func ClassifyWeather(raw RawTable) WeatherTable {
	headers := normalizeHeaders(raw.Headers)
	timeCol := findTimeColumn(headers)
	if timeCol < 0 || raw.Empty() {
		return WeatherTable{}
	}

	roles := assignRoles(headers, weatherRules)
	tempCol, hasTemp := roles[roleTemperature]
	rhCol, hasRH := roles[roleHumidity]
	rainCol, hasRain := roles[roleRainfall]
	if !hasTemp && !hasRH && !hasRain {
		return WeatherTable{}
	}

	times := NormalizeTimeColumn(rawColumn(raw, timeCol))

	records := make([]WeatherRecord, len(raw.Rows))
	for i := range raw.Rows {
		rec := WeatherRecord{
			Time:    times[i],
			TimeRaw: strings.TrimSpace(raw.Cell(i, timeCol)),
		}
		if hasTemp {
			rec.TemperatureC = ExtractNumber(raw.Cell(i, tempCol))
		}
		if hasRH {
			rec.RelativeHumidityPct = ExtractNumber(raw.Cell(i, rhCol))
		}
		if hasRain {
			rec.RainfallMM = ExtractNumber(raw.Cell(i, rainCol))
		}
		records[i] = rec
	}
	return WeatherTable{Records: records}
}

// ClassifyRadiation decides whether a raw table is the ambient-radiation
// table. Values are normalized to µSv/h here, exactly once: a "nsv"
// marker anywhere in the joined headers scales by 0.001, a "µsv" marker
// passes through, and no marker at all passes through with UnitAssumed
// set so callers can flag the guess.
func ClassifyRadiation(raw RawTable) RadiationTable {
	headers := normalizeHeaders(raw.Headers)
	timeCol := findTimeColumn(headers)
	if timeCol < 0 || raw.Empty() {
		return RadiationTable{}
	}

	roles := assignRoles(headers, radiationRules)
	radCol, hasRad := roles[roleRadiation]
	if !hasRad {
		return RadiationTable{}
	}

	scale, assumed := radiationScale(headers)
	times := NormalizeTimeColumn(rawColumn(raw, timeCol))

	records := make([]RadiationRecord, len(raw.Rows))
	for i := range raw.Rows {
		rec := RadiationRecord{
			Time:    times[i],
			TimeRaw: strings.TrimSpace(raw.Cell(i, timeCol)),
		}
		if v := ExtractNumber(raw.Cell(i, radCol)); v != nil {
			scaled := *v * scale
			rec.RadiationUSvPerH = &scaled
		}
		records[i] = rec
	}
	return RadiationTable{Records: records, UnitAssumed: assumed}
}

// radiationScale infers the unit scale from the joined header text.
// Returns the multiplier to µSv/h and whether the unit was assumed
// rather than detected.
func radiationScale(headers []string) (scale float64, assumed bool) {
	joined := strings.Join(headers, " ")
	switch {
	case strings.Contains(joined, "µsv"),
		strings.Contains(joined, "micro-sievert"),
		strings.Contains(joined, "micro sievert"):
		return 1.0, false
	case strings.Contains(joined, "nsv"):
		return 0.001, false
	default:
		return 1.0, true
	}
}

func rawColumn(raw RawTable, col int) []string {
	out := make([]string, len(raw.Rows))
	for i := range raw.Rows {
		out[i] = raw.Cell(i, col)
	}
	return out
}

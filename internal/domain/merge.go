package domain

import "sort"

// Merge outer-joins the weather and radiation tables on canonical time.
// A row appears in the output when it appears in either input; fields
// missing on one side stay nil. Fails soft: if either side is empty
// (which in this model means it had no time column), the result is empty.
//
// Sort order is ascending by minutes since midnight. Rows whose time
// failed to parse are kept, not dropped, and sort after all parseable
// rows, ordered among themselves by raw time string for determinism.
func Merge(weather WeatherTable, radiation RadiationTable) MergedTable {
	if weather.Empty() || radiation.Empty() {
		return MergedTable{GeneratedAt: clock.Now()}
	}

	records := make([]MergedRecord, 0, len(weather.Records)+len(radiation.Records))
	// Index of the first record per canonical time. Null times never
	// join, not even with each other.
	byTime := make(map[string]int)

	for _, w := range weather.Records {
		rec := MergedRecord{
			Time:                w.Time,
			TimeRaw:             w.TimeRaw,
			TemperatureC:        w.TemperatureC,
			RelativeHumidityPct: w.RelativeHumidityPct,
			RainfallMM:          w.RainfallMM,
		}
		if w.Time.Valid {
			if _, seen := byTime[w.Time.String()]; !seen {
				byTime[w.Time.String()] = len(records)
			}
		}
		records = append(records, rec)
	}

	for _, r := range radiation.Records {
		if r.Time.Valid {
			if i, ok := byTime[r.Time.String()]; ok && records[i].RadiationUSvPerH == nil {
				records[i].RadiationUSvPerH = r.RadiationUSvPerH
				continue
			}
		}
		records = append(records, MergedRecord{
			Time:             r.Time,
			TimeRaw:          r.TimeRaw,
			RadiationUSvPerH: r.RadiationUSvPerH,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case a.Time.Valid && b.Time.Valid:
			return a.Time.MinutesSinceMidnight() < b.Time.MinutesSinceMidnight()
		case a.Time.Valid:
			return true
		case b.Time.Valid:
			return false
		default:
			return a.TimeRaw < b.TimeRaw
		}
	})

	return MergedTable{Records: records, GeneratedAt: clock.Now()}
}

// Package csvstore persists classified tables as flat CSV files.
package csvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/hko-yesterday-etl/internal/domain"
)

// Output file names, fixed; each run overwrites the previous one.
const (
	WeatherFile   = "yesterday_weather.csv"
	RadiationFile = "yesterday_radiation.csv"
	MergedFile    = "yesterday_merged.csv"
)

// Store writes tables under a single data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// SaveWeather writes the weather table and returns the file path.
// An empty table still produces a header-only CSV.
func (s *Store) SaveWeather(t domain.WeatherTable) (string, error) {
	records := [][]string{{"time", "time_raw", "temperature_c", "relative_humidity_pct", "rainfall_mm"}}
	for _, rec := range t.Records {
		records = append(records, []string{
			rec.Time.String(),
			rec.TimeRaw,
			formatFloat(rec.TemperatureC),
			formatFloat(rec.RelativeHumidityPct),
			formatFloat(rec.RainfallMM),
		})
	}
	return s.write(WeatherFile, records)
}

// SaveRadiation writes the radiation table and returns the file path.
func (s *Store) SaveRadiation(t domain.RadiationTable) (string, error) {
	records := [][]string{{"time", "time_raw", "radiation_usv_per_h"}}
	for _, rec := range t.Records {
		records = append(records, []string{
			rec.Time.String(),
			rec.TimeRaw,
			formatFloat(rec.RadiationUSvPerH),
		})
	}
	return s.write(RadiationFile, records)
}

// SaveMerged writes the merged table and returns the file path.
func (s *Store) SaveMerged(t domain.MergedTable) (string, error) {
	records := [][]string{MergedHeader()}
	for _, rec := range t.Records {
		records = append(records, []string{
			rec.Time.String(),
			rec.TimeRaw,
			formatFloat(rec.TemperatureC),
			formatFloat(rec.RelativeHumidityPct),
			formatFloat(rec.RainfallMM),
			formatFloat(rec.RadiationUSvPerH),
		})
	}
	return s.write(MergedFile, records)
}

// MergedHeader is the merged CSV column order, shared with cmd/replot.
func MergedHeader() []string {
	return []string{"time", "time_raw", "temperature_c", "relative_humidity_pct", "rainfall_mm", "radiation_usv_per_h"}
}

// write materializes records as a CSV file via a gota dataframe. Type
// detection stays off so cell strings land in the file untouched.
func (s *Store) write(name string, records [][]string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	// gota rejects a frame with zero rows; a header-only file is still
	// the contract for an empty table.
	if len(records) == 1 {
		if _, err := f.WriteString(strings.Join(records[0], ",") + "\n"); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return "", fmt.Errorf("build frame for %s: %w", path, df.Err)
	}
	if err := df.WriteCSV(f); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

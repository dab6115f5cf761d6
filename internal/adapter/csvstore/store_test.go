package csvstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hko-yesterday-etl/internal/domain"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestSaveWeather(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data"))

	table := domain.WeatherTable{Records: []domain.WeatherRecord{
		{
			Time:                domain.ParseTimeOfDay("09:00"),
			TimeRaw:             "09:00",
			TemperatureC:        domain.Float(24.5),
			RelativeHumidityPct: domain.Float(80),
			RainfallMM:          domain.Float(0),
		},
		{
			Time:    domain.ParseTimeOfDay("10:00"),
			TimeRaw: "10:00",
			// temperature cell failed to parse upstream
			RelativeHumidityPct: domain.Float(78),
			RainfallMM:          domain.Float(0.2),
		},
	}}

	path, err := store.SaveWeather(table)
	require.NoError(t, err)
	assert.Equal(t, WeatherFile, filepath.Base(path))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.Equal(t, "time,time_raw,temperature_c,relative_humidity_pct,rainfall_mm", lines[0])
	assert.Equal(t, "09:00:00,09:00,24.5,80,0", lines[1])
	assert.Equal(t, "10:00:00,10:00,,78,0.2", lines[2])
}

func TestSaveRadiation(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data"))

	table := domain.RadiationTable{Records: []domain.RadiationRecord{
		{Time: domain.ParseTimeOfDay("09:00"), TimeRaw: "09:00", RadiationUSvPerH: domain.Float(0.12)},
	}}

	path, err := store.SaveRadiation(table)
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "time,time_raw,radiation_usv_per_h", lines[0])
	assert.Equal(t, "09:00:00,09:00,0.12", lines[1])
}

func TestSaveMerged(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data"))

	table := domain.MergedTable{Records: []domain.MergedRecord{
		{
			Time:             domain.ParseTimeOfDay("09:00"),
			TimeRaw:          "09:00",
			TemperatureC:     domain.Float(24.5),
			RadiationUSvPerH: domain.Float(0.12),
		},
	}}

	path, err := store.SaveMerged(table)
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(MergedHeader(), ","), lines[0])
	assert.Equal(t, "09:00:00,09:00,24.5,,,0.12", lines[1])
}

func TestSaveEmptyTableWritesHeaderOnly(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data"))

	path, err := store.SaveWeather(domain.WeatherTable{})
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "time,time_raw,temperature_c,relative_humidity_pct,rainfall_mm", lines[0])
}

func TestSaveOverwritesPreviousRun(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "data"))

	first := domain.WeatherTable{Records: []domain.WeatherRecord{
		{Time: domain.ParseTimeOfDay("09:00"), TimeRaw: "09:00", TemperatureC: domain.Float(24.5)},
	}}
	_, err := store.SaveWeather(first)
	require.NoError(t, err)

	path, err := store.SaveWeather(domain.WeatherTable{})
	require.NoError(t, err)

	lines := readLines(t, path)
	assert.Len(t, lines, 1)
}

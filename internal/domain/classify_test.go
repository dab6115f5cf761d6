package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumber(t *testing.T) {
	t.Run("plain decimal", func(t *testing.T) {
		v := ExtractNumber("24.5")
		require.NotNil(t, v)
		assert.Equal(t, 24.5, *v)
	})

	t.Run("unit suffix", func(t *testing.T) {
		v := ExtractNumber("24.5°C")
		require.NotNil(t, v)
		assert.Equal(t, 24.5, *v)
	})

	t.Run("signed", func(t *testing.T) {
		v := ExtractNumber("-0.3 mm")
		require.NotNil(t, v)
		assert.Equal(t, -0.3, *v)
	})

	t.Run("leading fraction", func(t *testing.T) {
		v := ExtractNumber(".5")
		require.NotNil(t, v)
		assert.Equal(t, 0.5, *v)
	})

	t.Run("no digits becomes nil not zero", func(t *testing.T) {
		assert.Nil(t, ExtractNumber("N/A"))
		assert.Nil(t, ExtractNumber("--"))
		assert.Nil(t, ExtractNumber(""))
	})

	t.Run("idempotent on clean input", func(t *testing.T) {
		first := ExtractNumber("80")
		require.NotNil(t, first)
		again := ExtractNumber("80")
		require.NotNil(t, again)
		assert.Equal(t, *first, *again)
	})
}

func TestClassifyWeather(t *testing.T) {
	t.Run("typical HKO table", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Temp(°C)", "RH%", " Rainfall(mm)"},
			Rows: [][]string{
				{"09:00", "24.5", "80", "0.0"},
				{"10:00", "25.1", "78", "0.2"},
			},
		}
		table := ClassifyWeather(raw)
		require.Len(t, table.Records, 2)

		rec := table.Records[0]
		assert.Equal(t, "09:00:00", rec.Time.String())
		assert.Equal(t, "09:00", rec.TimeRaw)
		require.NotNil(t, rec.TemperatureC)
		assert.Equal(t, 24.5, *rec.TemperatureC)
		require.NotNil(t, rec.RelativeHumidityPct)
		assert.Equal(t, 80.0, *rec.RelativeHumidityPct)
		require.NotNil(t, rec.RainfallMM)
		assert.Equal(t, 0.0, *rec.RainfallMM)
	})

	t.Run("no time column rejects table", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Station", "Temp(°C)"},
			Rows:    [][]string{{"HKO", "24.5"}},
		}
		assert.True(t, ClassifyWeather(raw).Empty())
	})

	t.Run("no measurement column rejects table", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Remarks"},
			Rows:    [][]string{{"09:00", "fine"}},
		}
		assert.True(t, ClassifyWeather(raw).Empty())
	})

	t.Run("no rows rejects table", func(t *testing.T) {
		raw := RawTable{Headers: []string{"Time", "Temp(°C)"}}
		assert.True(t, ClassifyWeather(raw).Empty())
	})

	t.Run("single measurement column is enough", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Hour", "Relative Humidity (%)"},
			Rows:    [][]string{{"0900", "82"}},
		}
		table := ClassifyWeather(raw)
		require.Len(t, table.Records, 1)
		assert.Equal(t, "09:00:00", table.Records[0].Time.String())
		require.NotNil(t, table.Records[0].RelativeHumidityPct)
		assert.Equal(t, 82.0, *table.Records[0].RelativeHumidityPct)
		assert.Nil(t, table.Records[0].TemperatureC)
	})

	t.Run("first matching column wins per role", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Temp (Victoria Peak)", "Temp (HKO)"},
			Rows:    [][]string{{"09:00", "22.0", "24.5"}},
		}
		table := ClassifyWeather(raw)
		require.Len(t, table.Records, 1)
		require.NotNil(t, table.Records[0].TemperatureC)
		assert.Equal(t, 22.0, *table.Records[0].TemperatureC)
	})

	t.Run("unparseable cell becomes nil and keeps the row", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Temp(°C)"},
			Rows: [][]string{
				{"09:00", "N/A"},
				{"10:00", "25.1"},
			},
		}
		table := ClassifyWeather(raw)
		require.Len(t, table.Records, 2)
		assert.Nil(t, table.Records[0].TemperatureC)
		require.NotNil(t, table.Records[1].TemperatureC)
		assert.Equal(t, 25.1, *table.Records[1].TemperatureC)
	})

	t.Run("ragged row reads missing cells as empty", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Temp(°C)", "RH%"},
			Rows:    [][]string{{"09:00", "24.5"}},
		}
		table := ClassifyWeather(raw)
		require.Len(t, table.Records, 1)
		require.NotNil(t, table.Records[0].TemperatureC)
		assert.Nil(t, table.Records[0].RelativeHumidityPct)
	})
}

func TestClassifyRadiation(t *testing.T) {
	t.Run("microsievert header passes through", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "µSv/h"},
			Rows:    [][]string{{"09:00", "0.12"}},
		}
		table := ClassifyRadiation(raw)
		require.Len(t, table.Records, 1)
		assert.False(t, table.UnitAssumed)
		assert.Equal(t, "09:00:00", table.Records[0].Time.String())
		require.NotNil(t, table.Records[0].RadiationUSvPerH)
		assert.Equal(t, 0.12, *table.Records[0].RadiationUSvPerH)
	})

	t.Run("greek mu header matches too", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "μSv/h"},
			Rows:    [][]string{{"09:00", "0.12"}},
		}
		table := ClassifyRadiation(raw)
		require.Len(t, table.Records, 1)
		assert.False(t, table.UnitAssumed)
	})

	t.Run("nanosievert header scales by 0.001", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Radiation (nSv/h)"},
			Rows:    [][]string{{"09:00", "120"}},
		}
		table := ClassifyRadiation(raw)
		require.Len(t, table.Records, 1)
		assert.False(t, table.UnitAssumed)
		require.NotNil(t, table.Records[0].RadiationUSvPerH)
		assert.InDelta(t, 0.12, *table.Records[0].RadiationUSvPerH, 1e-9)
	})

	t.Run("no unit marker passes through but flags the assumption", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Rad Level"},
			Rows:    [][]string{{"09:00", "0.14"}},
		}
		table := ClassifyRadiation(raw)
		require.Len(t, table.Records, 1)
		assert.True(t, table.UnitAssumed)
		require.NotNil(t, table.Records[0].RadiationUSvPerH)
		assert.Equal(t, 0.14, *table.Records[0].RadiationUSvPerH)
	})

	t.Run("sv fallback column", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Dose (Sv-derived)"},
			Rows:    [][]string{{"09:00", "0.11"}},
		}
		table := ClassifyRadiation(raw)
		require.Len(t, table.Records, 1)
		require.NotNil(t, table.Records[0].RadiationUSvPerH)
	})

	t.Run("no time column rejects table", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Station", "µSv/h"},
			Rows:    [][]string{{"King's Park", "0.12"}},
		}
		assert.True(t, ClassifyRadiation(raw).Empty())
	})

	t.Run("no radiation column rejects table", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Remarks"},
			Rows:    [][]string{{"09:00", "fine"}},
		}
		assert.True(t, ClassifyRadiation(raw).Empty())
	})

	t.Run("weather-only table rejected by radiation classifier", func(t *testing.T) {
		raw := RawTable{
			Headers: []string{"Time", "Temp(°C)", "RH%"},
			Rows:    [][]string{{"09:00", "24.5", "80"}},
		}
		assert.True(t, ClassifyRadiation(raw).Empty())
	})
}

// Package chartpng renders the merged table as a dual-axis PNG chart.
package chartpng

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/hko-yesterday-etl/internal/domain"
)

// ChartFile is the output file name, overwritten each run.
const ChartFile = "yesterday_weather_radiation.png"

const chartTitle = "Yesterday in Hong Kong: Weather and Radiation Level"

// Matplotlib's default palette, kept for continuity of the output chart.
var (
	temperatureColor = drawing.ColorFromHex("d62728")
	humidityColor    = drawing.ColorFromHex("1f77b4")
	radiationColor   = drawing.ColorFromHex("2ca02c")
)

// Renderer draws charts into an outputs directory.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// New creates a Renderer rooted at dir.
func New(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

// Render draws the merged table: left axis temperature if present,
// humidity otherwise; right axis radiation. Rows without a parseable
// time are not plottable and are skipped. When no series has enough
// points to draw (go-chart needs two), Render warns and returns an empty
// path with no error; a missing chart is a degraded outcome, not a
// failure.
func (r *Renderer) Render(t domain.MergedTable) (string, error) {
	temperature := seriesPoints(t, func(rec domain.MergedRecord) *float64 { return rec.TemperatureC })
	humidity := seriesPoints(t, func(rec domain.MergedRecord) *float64 { return rec.RelativeHumidityPct })
	radiation := seriesPoints(t, func(rec domain.MergedRecord) *float64 { return rec.RadiationUSvPerH })

	var series []chart.Series
	var primaryName string
	switch {
	case len(temperature.xs) >= 2:
		primaryName = "Temperature (°C)"
		series = append(series, chart.ContinuousSeries{
			Name:    primaryName,
			XValues: temperature.xs,
			YValues: temperature.ys,
			Style:   chart.Style{StrokeColor: temperatureColor, StrokeWidth: 2},
		})
	case len(humidity.xs) >= 2:
		primaryName = "Relative Humidity (%)"
		series = append(series, chart.ContinuousSeries{
			Name:    primaryName,
			XValues: humidity.xs,
			YValues: humidity.ys,
			Style:   chart.Style{StrokeColor: humidityColor, StrokeWidth: 2},
		})
	}

	if len(radiation.xs) >= 2 {
		radiationSeries := chart.ContinuousSeries{
			Name:    "Radiation (µSv/h)",
			YAxis:   chart.YAxisSecondary,
			XValues: radiation.xs,
			YValues: radiation.ys,
			Style:   chart.Style{StrokeColor: radiationColor, StrokeWidth: 2},
		}
		// go-chart cannot draw a chart whose primary axis has no series;
		// with no weather series, radiation takes the left axis.
		if len(series) == 0 {
			radiationSeries.YAxis = chart.YAxisPrimary
			primaryName = "Radiation (µSv/h)"
		}
		series = append(series, radiationSeries)
	}

	if len(series) == 0 {
		r.logger.Warn("nothing to plot, skipping chart")
		return "", nil
	}

	graph := chart.Chart{
		Title:  chartTitle,
		Width:  1280,
		Height: 640,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 32},
		},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: minutesFormatter,
		},
		YAxis:          chart.YAxis{Name: primaryName},
		YAxisSecondary: chart.YAxis{Name: "Radiation (µSv/h)"},
		Series:         series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create outputs dir: %w", err)
	}
	path := filepath.Join(r.dir, ChartFile)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}

// points pairs x (minutes since midnight) with measurement values.
type points struct {
	xs []float64
	ys []float64
}

func seriesPoints(t domain.MergedTable, pick func(domain.MergedRecord) *float64) points {
	var p points
	for _, rec := range t.Records {
		v := pick(rec)
		if !rec.Time.Valid || v == nil {
			continue
		}
		p.xs = append(p.xs, float64(rec.Time.MinutesSinceMidnight()))
		p.ys = append(p.ys, *v)
	}
	return p
}

func minutesFormatter(v any) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	minutes := int(f)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

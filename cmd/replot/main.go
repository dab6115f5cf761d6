// Command replot re-renders the chart from an existing merged CSV,
// without refetching the page. Useful after tweaking chart styling or
// when the HKO site is unreachable but yesterday's data is on disk.
//
// Usage:
//
//	go run ./cmd/replot -in data/yesterday_merged.csv -outputs outputs
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/hko-yesterday-etl/internal/adapter/chartpng"
	"github.com/couchcryptid/hko-yesterday-etl/internal/domain"
)

func main() {
	in := flag.String("in", "data/yesterday_merged.csv", "path to the merged CSV")
	outputs := flag.String("outputs", "outputs", "directory for the rendered chart")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	merged, err := readMerged(*in)
	if err != nil {
		logger.Error("read merged csv", "error", err)
		os.Exit(1)
	}

	path, err := chartpng.New(*outputs, logger).Render(merged)
	if err != nil {
		logger.Error("render chart", "error", err)
		os.Exit(1)
	}
	if path == "" {
		logger.Warn("nothing to plot")
		return
	}
	logger.Info("saved", "path", path)
}

// readMerged loads a merged CSV back into a MergedTable. All columns are
// read as strings; empty cells become nil measurements and times are
// reparsed from their canonical form.
func readMerged(path string) (domain.MergedTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.MergedTable{}, fmt.Errorf("open %s: %w", path, err)
	}
	// A miss day leaves a header-only CSV behind; that is an empty
	// table, not a parse error.
	if len(strings.Split(strings.TrimSpace(string(b)), "\n")) <= 1 {
		return domain.MergedTable{}, nil
	}

	df := dataframe.ReadCSV(strings.NewReader(string(b)),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return domain.MergedTable{}, fmt.Errorf("parse %s: %w", path, df.Err)
	}

	col := make(map[string]int)
	for i, name := range df.Names() {
		col[name] = i
	}
	if _, ok := col["time"]; !ok {
		return domain.MergedTable{}, fmt.Errorf("%s has no time column", path)
	}

	records := df.Records()[1:] // drop header row
	var merged domain.MergedTable
	for _, row := range records {
		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		merged.Records = append(merged.Records, domain.MergedRecord{
			Time:                domain.ParseTimeOfDay(cell("time")),
			TimeRaw:             cell("time_raw"),
			TemperatureC:        parseOptional(cell("temperature_c")),
			RelativeHumidityPct: parseOptional(cell("relative_humidity_pct")),
			RainfallMM:          parseOptional(cell("rainfall_mm")),
			RadiationUSvPerH:    parseOptional(cell("radiation_usv_per_h")),
		})
	}
	return merged, nil
}

func parseOptional(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &v
}

package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// scrape run. The tool is one-shot, so instead of serving /metrics it
// writes the registry to a textfile at exit (node-exporter textfile
// collector format) when configured.
type Metrics struct {
	registry *prometheus.Registry

	TablesScanned     prometheus.Counter
	TablesClassified  *prometheus.CounterVec // label: kind={weather,radiation}
	RowsExtracted     *prometheus.CounterVec // label: kind
	CellParseFailures *prometheus.CounterVec // label: kind
	ExtractionMisses  *prometheus.CounterVec // label: kind

	FetchDuration    prometheus.Histogram
	RunSuccess       prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
}

// NewMetrics creates all run metrics on a private registry, so repeated
// construction in tests never hits "already registered" panics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TablesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hko_etl",
			Name:      "tables_scanned_total",
			Help:      "Total HTML tables inspected on the page.",
		}),
		TablesClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hko_etl",
			Name:      "tables_classified_total",
			Help:      "Tables accepted by a classifier, by kind.",
		}, []string{"kind"}),
		RowsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hko_etl",
			Name:      "rows_extracted_total",
			Help:      "Data rows extracted from classified tables, by kind.",
		}, []string{"kind"}),
		CellParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hko_etl",
			Name:      "cell_parse_failures_total",
			Help:      "Cells that yielded null instead of a value, by kind.",
		}, []string{"kind"}),
		ExtractionMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hko_etl",
			Name:      "extraction_misses_total",
			Help:      "Runs where a table kind could not be located at all.",
		}, []string{"kind"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hko_etl",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the page fetch.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hko_etl",
			Name:      "run_success",
			Help:      "1 when the last run completed, 0 otherwise.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hko_etl",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}),
	}

	m.registry.MustRegister(
		m.TablesScanned,
		m.TablesClassified,
		m.RowsExtracted,
		m.CellParseFailures,
		m.ExtractionMisses,
		m.FetchDuration,
		m.RunSuccess,
		m.LastRunTimestamp,
	)

	return m
}

// WriteTextfile dumps the registry to path in Prometheus text format,
// creating parent directories as needed.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Command hkoetl fetches the HKO "yesterday's weather" page, extracts
// the weather and radiation tables, writes them (and their merge) as
// CSVs under the data directory, and renders a dual-axis chart under the
// outputs directory. It takes no arguments; configuration is environment
// variables (see internal/config).
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/hko-yesterday-etl/internal/adapter/chartpng"
	"github.com/couchcryptid/hko-yesterday-etl/internal/adapter/csvstore"
	"github.com/couchcryptid/hko-yesterday-etl/internal/adapter/hko"
	"github.com/couchcryptid/hko-yesterday-etl/internal/config"
	"github.com/couchcryptid/hko-yesterday-etl/internal/extract"
	"github.com/couchcryptid/hko-yesterday-etl/internal/observability"
	"github.com/couchcryptid/hko-yesterday-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := hko.NewClient(cfg.URL, cfg.UserAgent, cfg.HTTPTimeout, logger)
	extractor := extract.New(logger, metrics)
	store := csvstore.New(cfg.DataDir)
	renderer := chartpng.New(cfg.OutputsDir, logger)

	p := pipeline.New(fetcher, extractor, store, renderer, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := p.Run(ctx)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("write metrics textfile", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("done")
}

// Package pipeline orchestrates one fetch-extract-persist-render pass.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/hko-yesterday-etl/internal/domain"
	"github.com/couchcryptid/hko-yesterday-etl/internal/observability"
)

// Fetcher retrieves the page HTML.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Extractor locates and classifies the two tables within the page.
// Either table may come back empty; that is a miss, not an error.
type Extractor interface {
	Extract(pageHTML string) (domain.WeatherTable, domain.RadiationTable, error)
}

// Store persists tables as flat files and returns the written paths.
type Store interface {
	SaveWeather(domain.WeatherTable) (string, error)
	SaveRadiation(domain.RadiationTable) (string, error)
	SaveMerged(domain.MergedTable) (string, error)
}

// Renderer draws the merged table. An empty path with nil error means
// there was nothing to plot.
type Renderer interface {
	Render(domain.MergedTable) (string, error)
}

// Pipeline runs the whole tool once. It is single-threaded and
// stateless across runs; output files are overwritten, never appended.
type Pipeline struct {
	fetcher   Fetcher
	extractor Extractor
	store     Store
	renderer  Renderer
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, e Extractor, s Store, r Renderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		extractor: e,
		store:     s,
		renderer:  r,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes one pass. Only transport and file I/O failures are
// returned as errors; extraction misses degrade to warnings, empty CSVs,
// and a partial or missing chart.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	pageHTML, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch page: %w", err)
	}
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("parsing tables")
	weather, radiation, err := p.extractor.Extract(pageHTML)
	if err != nil {
		return fmt.Errorf("extract tables: %w", err)
	}

	if weather.Empty() {
		p.logger.Warn("could not parse weather table")
		p.metrics.ExtractionMisses.WithLabelValues("weather").Inc()
	}
	if radiation.Empty() {
		p.logger.Warn("could not parse radiation table")
		p.metrics.ExtractionMisses.WithLabelValues("radiation").Inc()
	}
	if radiation.UnitAssumed {
		p.logger.Warn("radiation headers carry no sievert unit marker, assuming µSv/h")
	}

	p.logger.Info("saving csvs")
	weatherPath, err := p.store.SaveWeather(weather)
	if err != nil {
		return fmt.Errorf("save weather csv: %w", err)
	}
	p.logger.Info("saved", "path", weatherPath)

	radiationPath, err := p.store.SaveRadiation(radiation)
	if err != nil {
		return fmt.Errorf("save radiation csv: %w", err)
	}
	p.logger.Info("saved", "path", radiationPath)

	p.logger.Info("merging and plotting")
	merged := domain.Merge(weather, radiation)
	if merged.Empty() {
		p.logger.Warn("merged table is empty")
	}

	mergedPath, err := p.store.SaveMerged(merged)
	if err != nil {
		return fmt.Errorf("save merged csv: %w", err)
	}
	p.logger.Info("saved", "path", mergedPath)

	chartPath, err := p.renderer.Render(merged)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	if chartPath != "" {
		p.logger.Info("saved", "path", chartPath)
	}

	p.metrics.RunSuccess.Set(1)
	p.metrics.LastRunTimestamp.Set(float64(merged.GeneratedAt.Unix()))
	return nil
}

// Package extract locates the weather and radiation tables within the
// fetched page HTML. It owns page-level structure (tables, headings);
// deciding what a table *is* belongs to the domain classifiers.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/couchcryptid/hko-yesterday-etl/internal/domain"
	"github.com/couchcryptid/hko-yesterday-etl/internal/observability"
)

// Heading keywords for the fallback scan, per category.
var (
	weatherHeadingKeywords   = []string{"weather", "yesterday", "temperature", "humidity", "rain"}
	radiationHeadingKeywords = []string{"radiation", "rad", "sievert"}
)

// Extractor turns page HTML into classified tables.
type Extractor struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Extractor.
func New(logger *slog.Logger, metrics *observability.Metrics) *Extractor {
	return &Extractor{logger: logger, metrics: metrics}
}

// Extract scans every <table> on the page in document order, attempting
// both classifications per table and keeping the first non-empty result
// per category. If a category is still unfilled it retries via headings:
// each h2/h3/h4/strong/b whose text mentions a category keyword has its
// nearest following table classified. Either result may come back empty;
// that is a reportable miss, not an error.
func (e *Extractor) Extract(pageHTML string) (domain.WeatherTable, domain.RadiationTable, error) {
	doc, err := htmlquery.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return domain.WeatherTable{}, domain.RadiationTable{}, fmt.Errorf("parse page html: %w", err)
	}

	var weather domain.WeatherTable
	var radiation domain.RadiationTable

	for _, node := range htmlquery.Find(doc, "//table") {
		e.metrics.TablesScanned.Inc()
		raw := parseTable(node)

		if weather.Empty() {
			if candidate := domain.ClassifyWeather(raw); !candidate.Empty() {
				weather = candidate
				e.observeWeather(candidate)
			}
		}
		if radiation.Empty() {
			if candidate := domain.ClassifyRadiation(raw); !candidate.Empty() {
				radiation = candidate
				e.observeRadiation(candidate)
			}
		}
		if !weather.Empty() && !radiation.Empty() {
			break
		}
	}

	if weather.Empty() || radiation.Empty() {
		weather, radiation = e.headingFallback(doc, weather, radiation)
	}

	return weather, radiation, nil
}

// headingFallback retries unfilled categories by looking at tables that
// immediately follow a heading mentioning the category.
func (e *Extractor) headingFallback(doc *html.Node, weather domain.WeatherTable, radiation domain.RadiationTable) (domain.WeatherTable, domain.RadiationTable) {
	for _, heading := range htmlquery.Find(doc, "//h2|//h3|//h4|//strong|//b") {
		text := strings.ToLower(collapseWhitespace(htmlquery.InnerText(heading)))
		table := htmlquery.FindOne(heading, "following::table[1]")
		if table == nil {
			continue
		}

		raw := parseTable(table)
		if weather.Empty() && containsAnyKeyword(text, weatherHeadingKeywords) {
			if candidate := domain.ClassifyWeather(raw); !candidate.Empty() {
				e.logger.Info("weather table found via heading fallback", "heading", text)
				weather = candidate
				e.observeWeather(candidate)
			}
		}
		if radiation.Empty() && containsAnyKeyword(text, radiationHeadingKeywords) {
			if candidate := domain.ClassifyRadiation(raw); !candidate.Empty() {
				e.logger.Info("radiation table found via heading fallback", "heading", text)
				radiation = candidate
				e.observeRadiation(candidate)
			}
		}
		if !weather.Empty() && !radiation.Empty() {
			break
		}
	}
	return weather, radiation
}

func (e *Extractor) observeWeather(t domain.WeatherTable) {
	e.metrics.TablesClassified.WithLabelValues("weather").Inc()
	e.metrics.RowsExtracted.WithLabelValues("weather").Add(float64(len(t.Records)))
	for _, rec := range t.Records {
		if !rec.Time.Valid {
			e.metrics.CellParseFailures.WithLabelValues("weather").Inc()
		}
		for _, v := range []*float64{rec.TemperatureC, rec.RelativeHumidityPct, rec.RainfallMM} {
			if v == nil {
				e.metrics.CellParseFailures.WithLabelValues("weather").Inc()
			}
		}
	}
}

func (e *Extractor) observeRadiation(t domain.RadiationTable) {
	e.metrics.TablesClassified.WithLabelValues("radiation").Inc()
	e.metrics.RowsExtracted.WithLabelValues("radiation").Add(float64(len(t.Records)))
	for _, rec := range t.Records {
		if !rec.Time.Valid || rec.RadiationUSvPerH == nil {
			e.metrics.CellParseFailures.WithLabelValues("radiation").Inc()
		}
	}
}

// parseTable flattens one <table> node into headers and string cells.
// The first row supplies the headers (th preferred, td otherwise);
// remaining rows become data.
func parseTable(table *html.Node) domain.RawTable {
	rows := htmlquery.Find(table, "//tr")
	if len(rows) == 0 {
		return domain.RawTable{}
	}

	raw := domain.RawTable{Headers: rowCells(rows[0])}
	for _, tr := range rows[1:] {
		raw.Rows = append(raw.Rows, rowCells(tr))
	}
	return raw
}

// rowCells extracts the cell texts of one <tr>, whitespace-collapsed.
// th and td cells are collected together in document order: HKO data
// rows lead with a th row header, and taking only one cell kind would
// drop every measurement on such rows.
func rowCells(tr *html.Node) []string {
	var out []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			out = append(out, collapseWhitespace(htmlquery.InnerText(c)))
		}
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

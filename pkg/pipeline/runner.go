package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterplot/pkg/cache"
	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/config"
	"github.com/matzehuels/scatterplot/pkg/dataset"
	"github.com/matzehuels/scatterplot/pkg/observability"
	"github.com/matzehuels/scatterplot/pkg/render/sink"
	"github.com/matzehuels/scatterplot/pkg/source"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher *source.Fetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: &source.Fetcher{Cache: c, Keyer: keyer},
	}
}

// Execute runs the complete load → parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := r.Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	// Stage 4: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Source.Hash, result.Chart, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.logger(opts).Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Prepare runs the load, parse and layout stages. The returned Result has
// no artifacts.
func (r *Runner) Prepare(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)
	cfg := *opts.Config
	hooks := observability.Pipeline()

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Source)
	src, err := r.Load(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Source, 0, result.Stats.LoadTime, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	hooks.OnLoadComplete(ctx, opts.Source, len(src.Data), result.Stats.LoadTime, nil)
	result.Source = src
	result.Stats.Bytes = len(src.Data)
	result.CacheInfo.SourceHit = src.Cached

	logger.Info("loaded source",
		"source", src.Location,
		"bytes", len(src.Data),
		"cached", src.Cached,
		"duration", result.Stats.LoadTime)

	// Stage 2: Parse
	parseStart := time.Now()
	records, err := Parse(src.Data, cfg)
	result.Stats.ParseTime = time.Since(parseStart)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, result.Stats.ParseTime, err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	summary := dataset.Summarize(records)
	result.Stats.Rows = summary.Total
	result.Stats.Valid = summary.Valid
	result.Stats.Invalid = summary.Invalid
	if cfg.Policy() == dataset.PolicyDrop {
		records = dataset.Valid(records)
		result.Stats.Dropped = summary.Invalid
	}
	result.Records = records
	result.Summary = dataset.Summarize(records)
	hooks.OnParseComplete(ctx, summary.Total, summary.Valid, result.Stats.ParseTime, nil)

	logger.Info("parsed records",
		"rows", summary.Total,
		"valid", summary.Valid,
		"duration", result.Stats.ParseTime)
	if summary.Invalid > 0 {
		logger.Warn("records with invalid values",
			"count", summary.Invalid,
			"policy", cfg.Policy())
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, len(records))
	c, err := Layout(records, cfg)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, result.Stats.LayoutTime, err)
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Chart = c
	hooks.OnLayoutComplete(ctx, len(c.Marks), result.Stats.LayoutTime, nil)

	logger.Info("computed layout",
		"marks", len(c.Marks),
		"visible", len(c.Visible()),
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Load fetches the source named by opts. With opts.Refresh a cached
// download is discarded first.
func (r *Runner) Load(ctx context.Context, opts Options) (*source.Source, error) {
	if opts.Refresh && source.IsRemote(opts.Source) {
		if err := r.Cache.Delete(ctx, r.Keyer.SourceKey(opts.Source)); err != nil {
			r.logger(opts).Debug("discard cached source", "error", err)
		}
	}
	f := r.Fetcher
	if f == nil {
		f = &source.Fetcher{Cache: r.Cache, Keyer: r.Keyer}
	}
	return f.Fetch(ctx, opts.Source)
}

// Parse reads CSV bytes into records using the columns and policy in cfg.
// Records are not filtered; the drop policy is applied by [Runner.Execute].
func Parse(data []byte, cfg config.Config) ([]*dataset.Record, error) {
	t, err := dataset.ReadCSVBytes(data)
	if err != nil {
		return nil, err
	}
	return dataset.Parse(t, cfg.Columns, cfg.Policy())
}

// Layout builds the chart for records.
func Layout(records []*dataset.Record, cfg config.Config) (*chart.Chart, error) {
	return chart.Build(records, cfg.ChartOptions())
}

// RenderWithCacheInfo renders every requested format, serving all of them
// from cache when possible, and reports whether it did.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dataHash string, c *chart.Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()
	useCache := !opts.NoCache && dataHash != ""

	if useCache && !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(c, *opts.Config, opts.Formats)
	if err != nil {
		return nil, false, err
	}

	if useCache {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
				r.logger(opts).Debug("cache artifact", "format", format, "error", err)
				continue
			}
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render generates artifacts for c in each format without caching.
func Render(c *chart.Chart, cfg config.Config, formats []string) (map[string][]byte, error) {
	var svgOpts []sink.SVGOption
	jsonOpts := []sink.JSONOption{sink.WithJSONPolicy(string(cfg.Policy()))}
	plotOpts := []sink.PlotOption{sink.WithScale(cfg.Export.Scale)}
	if cfg.Interaction.Tooltip {
		ic := cfg.InteractConfig()
		svgOpts = append(svgOpts, sink.WithInteraction(ic))
		jsonOpts = append(jsonOpts, sink.WithJSONInteraction(ic))
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(c, svgOpts...)
		case FormatHTML:
			data, err = sink.RenderHTML(c, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(c, jsonOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(c, plotOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(c, plotOpts...)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the logger set on opts, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.NewWithOptions(io.Discard, log.Options{})
}

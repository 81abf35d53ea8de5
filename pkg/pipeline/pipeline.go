// Package pipeline runs the load → parse → layout → render pipeline that
// turns a CSV dataset into chart artifacts.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read the CSV from a local path or download it (cached)
//  2. Parse: Derive typed records and apply the invalid-value policy
//  3. Layout: Build scales, axes and marks ([chart.Build])
//  4. Render: Produce artifacts in every requested format (cached)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "colleges.csv",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [Runner.Prepare] stops after layout. Stages can also be run on their own
// with [Runner.Load], [Parse], [Layout] and [Runner.Render].
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterplot/pkg/cache"
	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/config"
	"github.com/matzehuels/scatterplot/pkg/dataset"
	perrors "github.com/matzehuels/scatterplot/pkg/errors"
	"github.com/matzehuels/scatterplot/pkg/source"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatSVG

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options configures a pipeline run.
type Options struct {
	// Source is a local path or an http(s) URL.
	Source string

	// Formats lists the artifacts to render. Defaults to svg.
	Formats []string

	// Config holds chart, data and interaction settings. Nil selects
	// [config.Default].
	Config *config.Config

	// NoCache skips artifact cache lookups and writes.
	NoCache bool

	// Refresh re-downloads remote sources and re-renders artifacts, then
	// refreshes the cache with the new results.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Source    *source.Source
	Records   []*dataset.Record
	Summary   dataset.Summary
	Chart     *chart.Chart
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int // rows read from the CSV
	Valid      int
	Invalid    int // records with a non-finite earnings or debt value
	Dropped    int // removed by the drop policy
	Bytes      int
	LoadTime   time.Duration
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SourceHit bool // Whether the remote download came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, html, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg,json", dropping
// blanks and duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if strings.TrimSpace(o.Source) == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "source is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender applies config and format defaults and validates them.
// Unlike [Options.ValidateAndSetDefaults] it does not require a source.
func (o *Options) ValidateForRender() error {
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	return ValidateFormats(o.Formats)
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	cfg := o.config()
	return cache.ArtifactKeyOpts{
		Format:      format,
		Width:       cfg.Frame.Width,
		Height:      cfg.Frame.Height,
		Title:       cfg.Labels.Title,
		Policy:      string(cfg.Policy()),
		Tooltip:     cfg.Interaction.Tooltip,
		Fingerprint: fingerprint(cfg),
	}
}

func (o *Options) config() config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return *o.Config
}

// fingerprint hashes every setting that affects output. The cache section
// is excluded since it only decides where artifacts are stored.
func fingerprint(cfg config.Config) string {
	cfg.Cache = cache.Config{}
	data, err := cfg.Encode()
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

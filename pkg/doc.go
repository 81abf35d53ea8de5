// Package pkg provides the libraries behind the scatterplot command.
//
// # Overview
//
// Scatterplot reads a college dataset and charts median debt on graduation
// against median earnings eight years after entry. The pkg directory is
// organized by pipeline stage:
//
//  1. [dataset] - CSV decoding and record parsing
//  2. [scale] - linear scales and axis ticks
//  3. [mark] - binding records to positioned circles
//  4. [chart] - frame, axes and marks assembled into one layout
//  5. [interact] - hover emphasis and tooltip state
//  6. [render/sink] - SVG, HTML, JSON, PNG and PDF output
//  7. [pipeline] - orchestration (load → parse → layout → render)
//
// Supporting packages:
//
//   - [source]: local files and http(s) downloads
//   - [cache]: file, Redis and MongoDB caches for downloads and artifacts
//   - [config]: TOML configuration
//   - [errors]: error codes shared by every stage
//   - [observability]: hooks for logging and metrics
//
// # Architecture
//
//	CSV file or URL
//	      ↓
//	  [source] (fetch, cache by content hash)
//	      ↓
//	  [dataset] (records with NaN for unparseable values)
//	      ↓
//	  [chart] ([scale] + [mark])
//	      ↓
//	  [render/sink] (+ [interact] for hover)
//	      ↓
//	SVG/HTML/JSON/PNG/PDF
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "colleges.csv",
//	    Formats: []string{"svg", "html"},
//	})
//	os.WriteFile("chart.svg", result.Artifacts["svg"], 0o644)
//
// [dataset]: github.com/matzehuels/scatterplot/pkg/dataset
// [scale]: github.com/matzehuels/scatterplot/pkg/scale
// [mark]: github.com/matzehuels/scatterplot/pkg/mark
// [chart]: github.com/matzehuels/scatterplot/pkg/chart
// [interact]: github.com/matzehuels/scatterplot/pkg/interact
// [render/sink]: github.com/matzehuels/scatterplot/pkg/render/sink
// [pipeline]: github.com/matzehuels/scatterplot/pkg/pipeline
// [source]: github.com/matzehuels/scatterplot/pkg/source
// [cache]: github.com/matzehuels/scatterplot/pkg/cache
// [config]: github.com/matzehuels/scatterplot/pkg/config
// [errors]: github.com/matzehuels/scatterplot/pkg/errors
// [observability]: github.com/matzehuels/scatterplot/pkg/observability
package pkg

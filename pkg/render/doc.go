// Package render groups the output stages of the scatter plot pipeline.
//
// Rendering takes a laid-out chart and produces bytes. Layout never depends
// on the output format, so every format draws the same marks at the same
// positions.
//
// # Subpackages
//
//   - [sink]: SVG, HTML, JSON, PNG and PDF writers
//
// # Usage
//
//	c, err := chart.Build(records, chart.Options{})
//	svg, err := sink.RenderSVG(c, sink.WithInteraction(interact.DefaultConfig()))
//
// [sink]: github.com/matzehuels/scatterplot/pkg/render/sink
package render

// Package sink renders a laid-out [chart.Chart] into output formats.
//
// # Formats
//
//   - SVG: vector chart with axes, labels and one circle per visible mark
//   - HTML: standalone page embedding the SVG
//   - JSON: the layout as data, for external tools
//   - PNG and PDF: static renderings through gonum/plot
//
// # Interaction
//
// [WithInteraction] embeds a small script implementing the hover behavior of
// the interact package: a hovered mark grows to the emphasized radius and
// the shared tooltip fades in next to the pointer. Each circle carries its
// tooltip text in a data-tooltip attribute, produced by the same
// [interact.Content] the Go controller uses.
//
//	svg, err := sink.RenderSVG(c, sink.WithInteraction(interact.DefaultConfig()))
//	page, err := sink.RenderHTML(c, sink.WithInteraction(interact.DefaultConfig()))
//
// In SVG output the tooltip is a group inside the drawing. In HTML output it
// is a div.tooltip positioned at the pointer's page coordinates.
//
// PNG and PDF have no interactivity; hidden marks are skipped everywhere.
//
// [chart.Chart]: github.com/matzehuels/scatterplot/pkg/chart.Chart
// [interact.Content]: github.com/matzehuels/scatterplot/pkg/interact.Content
package sink

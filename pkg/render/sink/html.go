package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/scatterplot/pkg/chart"
)

const pageCSS = `
    body { margin: 0; padding: 16px; background: #fff; }
    div.tooltip {
      position: absolute;
      padding: 6px 8px;
      font: 12px sans-serif;
      background: #fff;
      border: 1px solid #999;
      border-radius: 4px;
      pointer-events: none;
      opacity: 0;
    }`

// RenderHTML renders a standalone page embedding the SVG. When interaction
// is enabled the tooltip is a page-level div positioned from the pointer's
// page coordinates.
func RenderHTML(c *chart.Chart, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(c, append(opts, withHTMLTooltip())...)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(c.Title))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n</head>\n<body>\n", pageCSS)
	fmt.Fprintf(&buf, "<div class=\"tooltip\" data-for=\"%s\"></div>\n", ElementID(c))
	buf.WriteString("<div id=\"scatterPlot\">\n")
	buf.Write(svg)
	buf.WriteString("</div>\n</body>\n</html>\n")
	return buf.Bytes(), nil
}

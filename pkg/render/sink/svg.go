package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/interact"
	"github.com/matzehuels/scatterplot/pkg/mark"
)

const (
	tickSize    = 6.0
	tickPadding = 3.0
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interaction *interact.Config
	htmlTooltip bool
}

// WithInteraction embeds hover emphasis and the tooltip using c.
func WithInteraction(c interact.Config) SVGOption {
	return func(r *svgRenderer) { r.interaction = &c }
}

// withHTMLTooltip drives a page-level div instead of the in-SVG tooltip.
func withHTMLTooltip() SVGOption { return func(r *svgRenderer) { r.htmlTooltip = true } }

// RenderSVG renders the chart as a standalone SVG document.
func RenderSVG(c *chart.Chart, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	f := c.Frame
	id := ElementID(c)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="scatterplot" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		id, num(f.Width), num(f.Height), num(f.Width), num(f.Height))

	renderStyle(&buf, r.interaction != nil)

	fmt.Fprintf(&buf, `  <g class="plot" transform="translate(%s,%s)">`+"\n", num(f.Margin.Left), num(f.Margin.Top))
	renderMarks(&buf, c.Marks, r.interaction != nil)
	renderXAxis(&buf, c)
	renderYAxis(&buf, c)
	renderLabels(&buf, c)
	buf.WriteString("  </g>\n")

	if r.interaction != nil {
		tipJS := htmlTooltipJS
		if !r.htmlTooltip {
			renderTooltip(&buf, id)
			tipJS = svgTooltipJS
		}
		if err := renderScript(&buf, id, *r.interaction, tipJS); err != nil {
			return nil, err
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// ElementID is the DOM id of the chart's root element.
func ElementID(c *chart.Chart) string { return "scatterplot-" + c.ShortID() }

func renderMarks(buf *bytes.Buffer, marks []mark.Mark, interactive bool) {
	buf.WriteString(`    <g class="marks">` + "\n")
	for _, m := range marks {
		if !m.Visible {
			continue
		}
		fmt.Fprintf(buf, `      <circle id="%s" class="mark" cx="%s" cy="%s" r="%s"`, m.ID, num(m.X), num(m.Y), num(m.R))
		if interactive {
			content := interact.ContentFor(m.Record)
			fmt.Fprintf(buf, ` data-name="%s" data-earnings="%s" data-debt="%s" data-tooltip="%s"`,
				EscapeXML(content.Name),
				interact.FormatAmount(content.Earnings),
				interact.FormatAmount(content.Debt),
				EscapeXML(content.Text()))
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderXAxis(buf *bytes.Buffer, c *chart.Chart) {
	h := c.Frame.InnerHeight()
	r := c.X.Scale.Range()
	fmt.Fprintf(buf, `    <g class="axis axis-x" transform="translate(0,%s)">`+"\n", num(h))
	fmt.Fprintf(buf, `      <path class="domain" fill="none" d="M%s,%sV0H%sV%s"/>`+"\n", num(r[0]), num(tickSize), num(r[1]), num(tickSize))
	for _, t := range c.X.Ticks {
		fmt.Fprintf(buf, `      <g class="tick" transform="translate(%s,0)"><line y2="%s"/><text y="%s" dy="0.71em" text-anchor="middle">%s</text></g>`+"\n",
			num(c.X.Scale.Map(t.Value)), num(tickSize), num(tickSize+tickPadding), EscapeXML(t.Label))
	}
	buf.WriteString("    </g>\n")
}

func renderYAxis(buf *bytes.Buffer, c *chart.Chart) {
	r := c.Y.Scale.Range()
	buf.WriteString(`    <g class="axis axis-y">` + "\n")
	fmt.Fprintf(buf, `      <path class="domain" fill="none" d="M%s,%sH0V%sH%s"/>`+"\n", num(-tickSize), num(r[0]), num(r[1]), num(-tickSize))
	for _, t := range c.Y.Ticks {
		fmt.Fprintf(buf, `      <g class="tick" transform="translate(0,%s)"><line x2="%s"/><text x="%s" dy="0.32em" text-anchor="end">%s</text></g>`+"\n",
			num(c.Y.Scale.Map(t.Value)), num(-tickSize), num(-(tickSize + tickPadding)), EscapeXML(t.Label))
	}
	buf.WriteString("    </g>\n")
}

func renderLabels(buf *bytes.Buffer, c *chart.Chart) {
	f := c.Frame
	w, h := f.InnerWidth(), f.InnerHeight()
	fmt.Fprintf(buf, `    <text class="title" text-anchor="middle" x="%s" y="%s">%s</text>`+"\n",
		num(w/2), num(-f.Margin.Top/2), EscapeXML(c.Title))
	fmt.Fprintf(buf, `    <text class="axis-label axis-label-x" text-anchor="middle" x="%s" y="%s">%s</text>`+"\n",
		num(w/2), num(h+f.Margin.Bottom*2/3), EscapeXML(c.X.Label))
	fmt.Fprintf(buf, `    <text class="axis-label axis-label-y" text-anchor="middle" transform="rotate(-90)" x="%s" y="%s">%s</text>`+"\n",
		num(-h/2), num(-f.Margin.Left/2), EscapeXML(c.Y.Label))
}

func renderTooltip(buf *bytes.Buffer, id string) {
	fmt.Fprintf(buf, `  <g id="%s-tooltip" class="tooltip">`+"\n", id)
	buf.WriteString(`    <rect x="0" y="0" width="0" height="0"/>` + "\n")
	buf.WriteString(`    <text x="6" y="4">`)
	for i := 0; i < 3; i++ {
		buf.WriteString(`<tspan x="6" dy="1.2em"></tspan>`)
	}
	buf.WriteString("</text>\n  </g>\n")
}

// EscapeXML escapes s for use in SVG text and attribute values. Newlines
// become character references so they survive attribute normalization.
func EscapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

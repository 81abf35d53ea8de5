package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/scale"
)

// markColor matches the fill of SVG marks (steelblue).
var markColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// screenDPI converts chart pixels to vg lengths.
const screenDPI = 96

// PlotOption configures [RenderPNG] and [RenderPDF].
type PlotOption func(*plotRenderer)

type plotRenderer struct {
	scale float64
}

// WithScale multiplies the output size (default 1). Non-positive values are
// ignored.
func WithScale(s float64) PlotOption {
	return func(r *plotRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG draws a static raster version of the chart.
func RenderPNG(c *chart.Chart, opts ...PlotOption) ([]byte, error) {
	return renderPlot(c, "png", opts)
}

// RenderPDF draws a static vector version of the chart.
func RenderPDF(c *chart.Chart, opts ...PlotOption) ([]byte, error) {
	return renderPlot(c, "pdf", opts)
}

func renderPlot(c *chart.Chart, format string, opts []PlotOption) ([]byte, error) {
	r := plotRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	p, err := buildPlot(c)
	if err != nil {
		return nil, err
	}

	w := pixels(c.Frame.Width, r.scale)
	h := pixels(c.Frame.Height, r.scale)
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("%s writer: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func buildPlot(c *chart.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.X.Label
	p.Y.Label.Text = c.Y.Label

	visible := c.Visible()
	if len(visible) > 0 {
		pts := make(plotter.XYs, len(visible))
		for i, m := range visible {
			pts[i].X = m.Record.Earnings()
			pts[i].Y = m.Record.Debt()
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = markColor
		s.GlyphStyle.Radius = vg.Points(visible[0].R)
		p.Add(s)
	}

	setAxis(&p.X, c.X)
	setAxis(&p.Y, c.Y)
	return p, nil
}

// setAxis pins the axis to the chart's domain and ticks. A degenerate domain
// is widened so the plot still has extent.
func setAxis(a *plot.Axis, ax chart.Axis) {
	d := ax.Scale.Domain()
	a.Min, a.Max = d[0], d[1]
	if ax.Scale.Degenerate() {
		a.Max = a.Min + 1
	}
	a.Tick.Marker = constantTicks(ax.Ticks)
}

func constantTicks(ts []scale.Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ts))
	for i, t := range ts {
		out[i] = plot.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

func pixels(px, scale float64) vg.Length {
	return vg.Length(px*scale) * vg.Inch / screenDPI
}

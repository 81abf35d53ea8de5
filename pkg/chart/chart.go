// Package chart assembles parsed records into a laid-out scatter plot.
//
// [Build] runs the scale builder and the mark binder over one record set and
// returns a [Chart]: the frame, both axes with their ticks, the labels, and
// one mark per record. Renderers in the sink package consume a Chart and
// never touch records or scales directly.
package chart

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/scatterplot/pkg/dataset"
	"github.com/matzehuels/scatterplot/pkg/mark"
	"github.com/matzehuels/scatterplot/pkg/scale"
)

// Default labels.
const (
	DefaultTitle  = "College Debt upon Graduation($) vs. Earnings after 8 years"
	DefaultXLabel = "Median Earnings ($)"
	DefaultYLabel = "Median Debt ($)"
)

// namespace scopes chart ids so equal data always yields equal ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/scatterplot/chart"))

// Labels are the texts drawn around the plot area.
type Labels struct {
	Title string `toml:"title"`
	X     string `toml:"x"`
	Y     string `toml:"y"`
}

// DefaultLabels returns the title and axis labels of the college chart.
func DefaultLabels() Labels {
	return Labels{Title: DefaultTitle, X: DefaultXLabel, Y: DefaultYLabel}
}

// Axis is a scale together with its label and ticks.
type Axis struct {
	Label string
	Scale scale.Linear
	Ticks []scale.Tick
}

// Chart is a fully positioned scatter plot.
type Chart struct {
	ID      string // Deterministic id derived from the plotted data
	Frame   Frame
	Title   string
	X       Axis // Earnings, left to right
	Y       Axis // Debt, bottom to top
	Marks   []mark.Mark
	Records []*dataset.Record
}

// Options configures [Build]. Zero values select the defaults.
type Options struct {
	Frame  Frame
	Labels Labels
	Radius float64
}

func (o *Options) applyDefaults() {
	if o.Frame == (Frame{}) {
		o.Frame = DefaultFrame()
	}
	if o.Labels == (Labels{}) {
		o.Labels = DefaultLabels()
	}
	if o.Radius <= 0 {
		o.Radius = mark.DefaultRadius
	}
}

// Build lays out records. Scale domains come from the full record set; an
// empty set yields degenerate scales, no marks and axes with a single tick.
func Build(records []*dataset.Record, opts Options) (*Chart, error) {
	opts.applyDefaults()
	if err := opts.Frame.Validate(); err != nil {
		return nil, err
	}

	w, h := opts.Frame.InnerWidth(), opts.Frame.InnerHeight()
	x := scale.Build(records, (*dataset.Record).Earnings, 0, w)
	y := scale.Build(records, (*dataset.Record).Debt, h, 0)

	return &Chart{
		ID:      ID(records),
		Frame:   opts.Frame,
		Title:   opts.Labels.Title,
		X:       Axis{Label: opts.Labels.X, Scale: x, Ticks: x.Ticks()},
		Y:       Axis{Label: opts.Labels.Y, Scale: y, Ticks: y.Ticks()},
		Marks:   mark.Bind(records, x, y, mark.WithRadius(opts.Radius)),
		Records: records,
	}, nil
}

// ID returns a name-based UUID over the names and values of records.
func ID(records []*dataset.Record) string {
	buf := make([]byte, 0, len(records)*32)
	for _, r := range records {
		buf = append(buf, r.Name()...)
		buf = append(buf, 0)
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(r.Earnings()))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(r.Debt()))
	}
	return uuid.NewSHA1(namespace, buf).String()
}

// Visible returns the marks that renderers draw.
func (c *Chart) Visible() []mark.Mark {
	out := make([]mark.Mark, 0, len(c.Marks))
	for _, m := range c.Marks {
		if m.Visible {
			out = append(out, m)
		}
	}
	return out
}

// ShortID is the first block of [Chart.ID], used to prefix element ids.
func (c *Chart) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

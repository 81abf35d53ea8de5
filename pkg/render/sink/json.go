package sink

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/interact"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	interaction *interact.Config
	policy      string
}

// WithJSONInteraction records the hover parameters in the output.
func WithJSONInteraction(c interact.Config) JSONOption {
	return func(r *jsonRenderer) { r.interaction = &c }
}

// WithJSONPolicy records the invalid-value policy the records were parsed with.
func WithJSONPolicy(p string) JSONOption { return func(r *jsonRenderer) { r.policy = p } }

type jsonOutput struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	Margin      jsonMargin       `json:"margin"`
	Policy      string           `json:"policy,omitempty"`
	X           jsonAxis         `json:"x"`
	Y           jsonAxis         `json:"y"`
	Marks       []jsonMark       `json:"marks"`
	Interaction *jsonInteraction `json:"interaction,omitempty"`
}

type jsonMargin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type jsonAxis struct {
	Label  string     `json:"label"`
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
	Ticks  []jsonTick `json:"ticks"`
}

type jsonTick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Coordinates and values are pointers so hidden marks encode as null.
type jsonMark struct {
	ID       string   `json:"id"`
	Index    int      `json:"index"`
	Name     string   `json:"name"`
	Earnings *float64 `json:"earnings"`
	Debt     *float64 `json:"debt"`
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	R        float64  `json:"r"`
	Visible  bool     `json:"visible"`
}

type jsonInteraction struct {
	RestRadius       float64    `json:"rest_radius"`
	EmphasizedRadius float64    `json:"emphasized_radius"`
	GrowMS           int64      `json:"grow_ms"`
	ShrinkMS         int64      `json:"shrink_ms"`
	TooltipShowMS    int64      `json:"tooltip_show_ms"`
	TooltipHideMS    int64      `json:"tooltip_hide_ms"`
	TooltipOpacity   float64    `json:"tooltip_opacity"`
	TooltipOffset    [2]float64 `json:"tooltip_offset"`
}

// RenderJSON exports the laid-out chart for external tools.
func RenderJSON(c *chart.Chart, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	m := c.Frame.Margin
	out := jsonOutput{
		ID:     c.ID,
		Title:  c.Title,
		Width:  c.Frame.Width,
		Height: c.Frame.Height,
		Margin: jsonMargin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
		Policy: r.policy,
		X:      buildJSONAxis(c.X),
		Y:      buildJSONAxis(c.Y),
		Marks:  make([]jsonMark, len(c.Marks)),
	}
	for i, mk := range c.Marks {
		jm := jsonMark{ID: mk.ID, Index: mk.Index, R: mk.R, Visible: mk.Visible}
		if mk.Record != nil {
			jm.Name = mk.Record.Name()
			jm.Earnings = finitePtr(mk.Record.Earnings())
			jm.Debt = finitePtr(mk.Record.Debt())
		}
		if mk.Visible {
			jm.X, jm.Y = finitePtr(mk.X), finitePtr(mk.Y)
		}
		out.Marks[i] = jm
	}
	if ic := r.interaction; ic != nil {
		out.Interaction = &jsonInteraction{
			RestRadius:       ic.RestRadius,
			EmphasizedRadius: ic.EmphasizedRadius,
			GrowMS:           ic.Grow.Milliseconds(),
			ShrinkMS:         ic.Shrink.Milliseconds(),
			TooltipShowMS:    ic.TooltipShow.Milliseconds(),
			TooltipHideMS:    ic.TooltipHide.Milliseconds(),
			TooltipOpacity:   ic.TooltipOpacity,
			TooltipOffset:    [2]float64{ic.Offset.X, ic.Offset.Y},
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONAxis(a chart.Axis) jsonAxis {
	ticks := make([]jsonTick, len(a.Ticks))
	for i, t := range a.Ticks {
		ticks[i] = jsonTick{Value: t.Value, Label: t.Label}
	}
	return jsonAxis{
		Label:  a.Label,
		Domain: a.Scale.Domain(),
		Range:  a.Scale.Range(),
		Ticks:  ticks,
	}
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

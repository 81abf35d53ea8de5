package chart

import (
	"math"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

// Default outer dimensions in pixels.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Margin is the space between the outer frame and the plot area.
type Margin struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// DefaultMargin leaves room for the title above and tick labels on the left.
func DefaultMargin() Margin {
	return Margin{Top: 50, Right: 30, Bottom: 60, Left: 100}
}

// Frame is the outer drawing surface.
type Frame struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Margin Margin  `toml:"margin"`
}

// DefaultFrame returns an 800x600 frame with [DefaultMargin], leaving a
// 670x490 plot area.
func DefaultFrame() Frame {
	return Frame{Width: DefaultWidth, Height: DefaultHeight, Margin: DefaultMargin()}
}

// InnerWidth is the width of the plot area.
func (f Frame) InnerWidth() float64 { return f.Width - f.Margin.Left - f.Margin.Right }

// InnerHeight is the height of the plot area.
func (f Frame) InnerHeight() float64 { return f.Height - f.Margin.Top - f.Margin.Bottom }

// Validate rejects frames whose plot area would be empty.
func (f Frame) Validate() error {
	m := f.Margin
	for _, v := range []float64{m.Top, m.Right, m.Bottom, m.Left} {
		if !(v >= 0) || math.IsInf(v, 0) {
			return perrors.New(perrors.ErrCodeInvalidConfig, "margins must be finite and not negative: %+v", m)
		}
	}
	if !finitePositive(f.InnerWidth()) || !finitePositive(f.InnerHeight()) {
		return perrors.New(perrors.ErrCodeInvalidConfig,
			"frame %gx%g leaves no plot area after margins", f.Width, f.Height)
	}
	return nil
}

// finitePositive rejects NaN along with zero, negative and infinite values.
func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

package interact

import (
	"time"

	"github.com/matzehuels/scatterplot/pkg/mark"
)

// Default interaction parameters.
const (
	DefaultEmphasizedRadius = 10.0
	DefaultGrow             = 100 * time.Millisecond
	DefaultShrink           = 100 * time.Millisecond
	DefaultTooltipShow      = 200 * time.Millisecond
	DefaultTooltipHide      = 500 * time.Millisecond
	DefaultTooltipOpacity   = 0.9
)

// DefaultOffset places the tooltip right of and above the pointer.
var DefaultOffset = Point{X: 5, Y: -28}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Config holds radii, animation durations and tooltip placement.
type Config struct {
	RestRadius       float64
	EmphasizedRadius float64
	Grow             time.Duration // rest → emphasized radius
	Shrink           time.Duration // emphasized → rest radius
	TooltipShow      time.Duration
	TooltipHide      time.Duration
	TooltipOpacity   float64
	Offset           Point
}

// DefaultConfig returns the parameters of the reference chart.
func DefaultConfig() Config {
	return Config{
		RestRadius:       mark.DefaultRadius,
		EmphasizedRadius: DefaultEmphasizedRadius,
		Grow:             DefaultGrow,
		Shrink:           DefaultShrink,
		TooltipShow:      DefaultTooltipShow,
		TooltipHide:      DefaultTooltipHide,
		TooltipOpacity:   DefaultTooltipOpacity,
		Offset:           DefaultOffset,
	}
}

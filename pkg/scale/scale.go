// Package scale maps data values to pixel coordinates.
//
// A [Linear] scale is a pure function from a numeric domain to a pixel
// range. Scales for the scatter plot always start their domain at zero and
// end it at the largest finite value observed in the data:
//
//	x := scale.Build(records, (*dataset.Record).Earnings, 0, width)
//	y := scale.Build(records, (*dataset.Record).Debt, height, 0) // inverted axis
//	px := x.Map(r.Earnings())
//
// Values outside the domain extrapolate linearly; nothing is clamped.
package scale

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"

	"github.com/matzehuels/scatterplot/pkg/dataset"
)

// Linear is an affine mapping from [Domain] to [Range]. The zero value maps
// everything to 0.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns the scale mapping domain[0]→rng[0] and domain[1]→rng[1].
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{d0: domain[0], d1: domain[1], r0: rng[0], r1: rng[1]}
}

// Build returns a scale with domain [0, max(field)] over records and range
// [r0, r1]. Non-finite field values are excluded from the maximum; with no
// finite values the domain degenerates to [0, 0].
func Build(records []*dataset.Record, field func(*dataset.Record) float64, r0, r1 float64) Linear {
	return NewLinear([2]float64{0, Max(records, field)}, [2]float64{r0, r1})
}

// Max returns the largest finite value of field over records, or 0 when
// there is none.
func Max(records []*dataset.Record, field func(*dataset.Record) float64) float64 {
	found := false
	m := 0.0
	for _, r := range records {
		v := field(r)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !found || v > m {
			m, found = v, true
		}
	}
	return m
}

// Domain returns the input interval.
func (s Linear) Domain() [2]float64 { return [2]float64{s.d0, s.d1} }

// Range returns the output interval.
func (s Linear) Range() [2]float64 { return [2]float64{s.r0, s.r1} }

// Degenerate reports whether the domain has zero width.
func (s Linear) Degenerate() bool { return s.d0 == s.d1 }

// Map converts a domain value to a range value. A degenerate domain maps
// every input to the middle of the range. NaN maps to NaN.
func (s Linear) Map(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if s.Degenerate() {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Invert converts a range value back to the domain. A degenerate range
// inverts to the start of the domain.
func (s Linear) Invert(px float64) float64 {
	if s.r0 == s.r1 {
		return s.d0
	}
	return s.d0 + (px-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

// Tick is an axis tick: a domain value and its display label.
type Tick struct {
	Value float64
	Label string
}

// Ticks returns labeled major ticks covering the domain, in ascending order.
// A degenerate domain yields a single tick at its only value.
func (s Linear) Ticks() []Tick {
	lo, hi := min(s.d0, s.d1), max(s.d0, s.d1)
	if !(hi > lo) {
		return []Tick{newTick(lo)}
	}

	span := hi - lo
	eps := span * 1e-9
	var ticks []Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.IsMinor() || t.Value < lo-eps || t.Value > hi+eps {
			continue
		}
		ticks = append(ticks, newTick(t.Value))
	}
	return ticks
}

func newTick(v float64) Tick {
	v = roundSignificant(v)
	return Tick{Value: v, Label: humanize.Commaf(v)}
}

// roundSignificant removes accumulated float noise (e.g. 0.30000000000000004).
func roundSignificant(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}

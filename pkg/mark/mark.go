// Package mark binds records to the circles that represent them.
//
// [Bind] creates exactly one [Mark] per record, in record order, positioned
// by applying the x and y scales to the record's earnings and debt. Order
// only affects drawing order: later marks are painted on top.
//
// A record whose derived fields are not finite still gets a Mark so the
// one-to-one correspondence holds, but the Mark is not [Mark.Visible] and
// renderers skip it.
package mark

import (
	"fmt"
	"math"

	"github.com/matzehuels/scatterplot/pkg/dataset"
	"github.com/matzehuels/scatterplot/pkg/scale"
)

// DefaultRadius is the resting radius of a mark in pixels.
const DefaultRadius = 3.0

// Mark is a circle bound to one record.
type Mark struct {
	ID      string          // Stable element id, "mark-<index>"
	Index   int             // Position in draw order
	X, Y    float64         // Center in plot-area pixels
	R       float64         // Resting radius
	Visible bool            // False when X or Y is not finite
	Record  *dataset.Record // Bound record (not owned)
}

// Option configures [Bind].
type Option func(*binder)

type binder struct {
	radius float64
}

// WithRadius overrides [DefaultRadius]. Non-positive values are ignored.
func WithRadius(r float64) Option {
	return func(b *binder) {
		if r > 0 {
			b.radius = r
		}
	}
}

// Bind returns one Mark per record with centers (x(earnings), y(debt)).
func Bind(records []*dataset.Record, x, y scale.Linear, opts ...Option) []Mark {
	b := binder{radius: DefaultRadius}
	for _, opt := range opts {
		opt(&b)
	}

	marks := make([]Mark, len(records))
	for i, r := range records {
		cx, cy := x.Map(r.Earnings()), y.Map(r.Debt())
		marks[i] = Mark{
			ID:      ID(i),
			Index:   i,
			X:       cx,
			Y:       cy,
			R:       b.radius,
			Visible: r.Valid() && finite(cx) && finite(cy),
			Record:  r,
		}
	}
	return marks
}

// ID returns the element id of the mark at index i.
func ID(i int) string { return fmt.Sprintf("mark-%d", i) }

// VisibleCount returns how many marks will be drawn.
func VisibleCount(marks []Mark) int {
	n := 0
	for _, m := range marks {
		if m.Visible {
			n++
		}
	}
	return n
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

package interact

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/matzehuels/scatterplot/pkg/mark"
)

// State is the hover state of one mark.
type State int

// Mark states.
const (
	Resting State = iota
	Emphasized
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Emphasized:
		return "emphasized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TooltipID is the [Transition.Target] of tooltip animations.
const TooltipID = "tooltip"

// Animated properties.
const (
	PropRadius  = "r"
	PropOpacity = "opacity"
)

// Transition is one fire-and-forget animation.
type Transition struct {
	Target   string // mark id or TooltipID
	Property string // PropRadius or PropOpacity
	From, To float64
	Duration time.Duration
}

// Sentinel errors for controller operations.
var (
	// ErrNoMark is returned for an index outside the bound marks.
	ErrNoMark = errors.New("no such mark")

	// ErrHidden is returned when hovering a mark that is not drawn.
	ErrHidden = errors.New("mark is not visible")
)

// Controller holds per-mark hover state and the shared tooltip.
// It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	marks   []mark.Mark
	states  []State
	radii   []float64
	tooltip Tooltip
	hovered int
}

// NewController returns a controller with every mark Resting and the tooltip
// hidden. A zero RestRadius in cfg falls back to each mark's own radius.
func NewController(marks []mark.Mark, cfg Config) *Controller {
	c := &Controller{
		cfg:     cfg,
		marks:   marks,
		states:  make([]State, len(marks)),
		radii:   make([]float64, len(marks)),
		tooltip: Tooltip{Owner: NoOwner},
		hovered: NoOwner,
	}
	for i, m := range marks {
		c.radii[i] = c.restRadius(m)
	}
	return c
}

func (c *Controller) restRadius(m mark.Mark) float64 {
	if c.cfg.RestRadius > 0 {
		return c.cfg.RestRadius
	}
	return m.R
}

// Enter handles pointer-enter on mark i at pointer position p. The mark
// becomes Emphasized and takes ownership of the tooltip.
func (c *Controller) Enter(i int, p Point) ([]Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enter(i, p)
}

func (c *Controller) enter(i int, p Point) ([]Transition, error) {
	if err := c.check(i); err != nil {
		return nil, err
	}
	m := c.marks[i]

	ts := []Transition{
		{Target: m.ID, Property: PropRadius, From: c.radii[i], To: c.cfg.EmphasizedRadius, Duration: c.cfg.Grow},
		{Target: TooltipID, Property: PropOpacity, From: c.tooltip.Opacity, To: c.cfg.TooltipOpacity, Duration: c.cfg.TooltipShow},
	}

	c.states[i] = Emphasized
	c.radii[i] = c.cfg.EmphasizedRadius
	c.hovered = i
	c.tooltip = Tooltip{
		Owner:    i,
		Opacity:  c.cfg.TooltipOpacity,
		Position: p.Add(c.cfg.Offset),
		Content:  ContentFor(m.Record),
	}
	return ts, nil
}

// Leave handles pointer-leave on mark i. The mark returns to Resting. The
// tooltip fades out only if mark i still owns it. Leaving a mark that is
// already Resting does nothing.
func (c *Controller) Leave(i int) ([]Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leave(i)
}

func (c *Controller) leave(i int) ([]Transition, error) {
	if err := c.check(i); err != nil {
		return nil, err
	}
	if c.states[i] == Resting {
		return nil, nil
	}
	m := c.marks[i]
	rest := c.restRadius(m)

	ts := []Transition{
		{Target: m.ID, Property: PropRadius, From: c.radii[i], To: rest, Duration: c.cfg.Shrink},
	}
	c.states[i] = Resting
	c.radii[i] = rest
	if c.hovered == i {
		c.hovered = NoOwner
	}

	if c.tooltip.Owner == i {
		ts = append(ts, Transition{Target: TooltipID, Property: PropOpacity, From: c.tooltip.Opacity, To: 0, Duration: c.cfg.TooltipHide})
		c.tooltip.Owner = NoOwner
		c.tooltip.Opacity = 0
	}
	return ts, nil
}

// Move delivers a pointer move: it hit-tests p and, when the hovered mark
// changes, emits Leave for the previous mark followed by Enter for the new
// one. Moving within the same mark only repositions the tooltip.
func (c *Controller) Move(p Point) []Transition {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := c.hitTest(p)
	if !ok {
		next = NoOwner
	}
	if next == c.hovered {
		if next != NoOwner && c.tooltip.Owner == next {
			c.tooltip.Position = p.Add(c.cfg.Offset)
		}
		return nil
	}

	var ts []Transition
	if c.hovered != NoOwner {
		out, _ := c.leave(c.hovered)
		ts = append(ts, out...)
	}
	if next != NoOwner {
		in, _ := c.enter(next, p)
		ts = append(ts, in...)
	}
	c.hovered = next
	return ts
}

// HitTest returns the topmost visible mark whose current circle contains p.
func (c *Controller) HitTest(p Point) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitTest(p)
}

func (c *Controller) hitTest(p Point) (int, bool) {
	for i := len(c.marks) - 1; i >= 0; i-- {
		m := c.marks[i]
		if !m.Visible {
			continue
		}
		if math.Hypot(p.X-m.X, p.Y-m.Y) <= c.radii[i] {
			return i, true
		}
	}
	return NoOwner, false
}

func (c *Controller) check(i int) error {
	if i < 0 || i >= len(c.marks) {
		return fmt.Errorf("%w: %d", ErrNoMark, i)
	}
	if !c.marks[i].Visible {
		return fmt.Errorf("%w: %s", ErrHidden, c.marks[i].ID)
	}
	return nil
}

// State returns the state of mark i (Resting for unknown indices).
func (c *Controller) State(i int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.states) {
		return Resting
	}
	return c.states[i]
}

// Radius returns the current radius of mark i (0 for unknown indices).
func (c *Controller) Radius(i int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.radii) {
		return 0
	}
	return c.radii[i]
}

// Tooltip returns a snapshot of the shared tooltip.
func (c *Controller) Tooltip() Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}

// Len returns the number of marks under control.
func (c *Controller) Len() int { return len(c.marks) }

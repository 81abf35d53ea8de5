// Package interact models hover interaction on scatter plot marks.
//
// # State Machine
//
// Every mark is either [Resting] or [Emphasized]. Pointer-enter moves a mark
// to Emphasized: its radius grows, and the shared tooltip fades in showing
// the mark's record. Pointer-leave moves it back to Resting. Marks start
// Resting and toggle for as long as the chart is displayed.
//
// # Tooltip Ownership
//
// All marks share one [Tooltip]. The tooltip remembers which mark owns it:
// Enter always takes ownership (last hover wins), and Leave hides the
// tooltip only when the leaving mark is still the owner. A late leave event
// from a previously hovered mark therefore shrinks that mark but leaves the
// newer hover's tooltip alone.
//
// # Transitions
//
// [Controller.Enter] and [Controller.Leave] update state immediately and
// return the animations a renderer should play as [Transition] values. They
// are fire-and-forget; nothing waits for them to finish.
//
//	c := interact.NewController(marks, interact.DefaultConfig())
//	ts, _ := c.Enter(0, interact.Point{X: 120, Y: 80})
//	// ts: mark-0 r 3→10 over 100ms, tooltip opacity 0→0.9 over 200ms
//
// The same rules are emitted as the embedded script of rendered charts (see
// the sink package), so the Go model and the browser behave alike.
package interact

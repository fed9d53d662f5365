package ink

import "math"

// ============================================================================
// Scroll Controller
// ============================================================================
//
// Unlike layout and interaction records, scroll state outlives the frame: a
// region's offset, sizes and momentum velocity live in a persistent id-keyed
// store, mutated only by the frame-driving goroutine. Explicit input always
// overrides inertia — any ScrollBy or StartDrag cancels in-flight momentum.

// ScrollPhysics holds the momentum tuning constants. Values are per-platform
// feel; DefaultTuning supplies the stock numbers.
type ScrollPhysics struct {
	// Decay is the per-frame velocity multiplier after a fling (< 1).
	Decay float32

	// VelocityEpsilon is the px/frame magnitude below which momentum snaps
	// to zero.
	VelocityEpsilon float32

	// DragDamping divides the release velocity seeded from a drag.
	DragDamping float32

	// MinDragDistance is the px a drag must travel before releasing it
	// seeds momentum.
	MinDragDistance float32
}

// ScrollState is the persistent state of one scroll region.
type ScrollState struct {
	// Offset is the viewport offset into the content, clamped to
	// [0, max(0, content-viewport)] per axis after every mutation.
	Offset Point

	content  Size
	viewport Size

	velocity Point

	dragging    bool
	dragOrigin  Point
	lastPointer Point
	dragElapsed float32
}

// ScrollController owns every scroll region's persistent state.
type ScrollController struct {
	states  map[WidgetID]*ScrollState
	physics ScrollPhysics
}

// NewScrollController creates a controller with the given physics constants.
func NewScrollController(physics ScrollPhysics) *ScrollController {
	return &ScrollController{
		states:  make(map[WidgetID]*ScrollState, 8),
		physics: physics,
	}
}

// State returns the persistent state for a region, creating it on first use.
func (c *ScrollController) State(id WidgetID) *ScrollState {
	st, ok := c.states[id]
	if !ok {
		st = &ScrollState{}
		c.states[id] = st
	}
	return st
}

// Tick advances momentum on every region. Called once per frame regardless
// of input.
func (c *ScrollController) Tick(dt float32) {
	for _, st := range c.states {
		st.tick(dt, &c.physics)
	}
}

// ScrollBy applies a wheel delta to a region, cancelling momentum.
func (c *ScrollController) ScrollBy(id WidgetID, dx, dy float32) {
	c.State(id).ScrollBy(dx, dy)
}

// StartDrag begins a pointer drag on a region.
func (c *ScrollController) StartDrag(id WidgetID, p Point) {
	c.State(id).StartDrag(p)
}

// UpdateDrag advances an in-progress drag.
func (c *ScrollController) UpdateDrag(id WidgetID, p Point, dt float32) {
	c.State(id).UpdateDrag(p, dt)
}

// EndDrag releases a drag, seeding momentum when it travelled far enough.
func (c *ScrollController) EndDrag(id WidgetID) {
	c.State(id).EndDrag(&c.physics)
}

// ============================================================================
// Per-region operations
// ============================================================================

// Layout records this frame's content and viewport sizes, then re-clamps the
// offset (content may have shrunk since last frame).
func (st *ScrollState) Layout(content, viewport Size) {
	st.content = content
	st.viewport = viewport
	st.ClampOffset()
}

// ClampOffset clamps the offset into [0, max(0, content-viewport)] per axis.
// Idempotent: a second call never changes the result of the first.
func (st *ScrollState) ClampOffset() {
	st.Offset.X = clamp(st.Offset.X, 0, maxf(0, st.content.Width-st.viewport.Width))
	st.Offset.Y = clamp(st.Offset.Y, 0, maxf(0, st.content.Height-st.viewport.Height))
}

// ScrollBy adds a wheel delta to the offset and clamps. Explicit input
// cancels any in-flight momentum.
func (st *ScrollState) ScrollBy(dx, dy float32) {
	st.velocity = Point{}
	st.Offset.X += dx
	st.Offset.Y += dy
	st.ClampOffset()
}

// StartDrag begins a pointer drag. Momentum is cancelled immediately; the
// content sticks to the finger from here on.
func (st *ScrollState) StartDrag(p Point) {
	st.velocity = Point{}
	st.dragging = true
	st.dragOrigin = p
	st.lastPointer = p
	st.dragElapsed = 0
}

// UpdateDrag translates the offset by the inverted pointer delta, so the
// content follows the finger.
func (st *ScrollState) UpdateDrag(p Point, dt float32) {
	if !st.dragging {
		return
	}
	st.Offset.X -= p.X - st.lastPointer.X
	st.Offset.Y -= p.Y - st.lastPointer.Y
	st.ClampOffset()
	st.lastPointer = p
	st.dragElapsed += dt
}

// EndDrag releases the drag. When the total travel exceeds the minimum drag
// distance, a momentum velocity is seeded from the mean drag speed, damped
// by the tuning constant; short taps release without inertia.
func (st *ScrollState) EndDrag(ph *ScrollPhysics) {
	if !st.dragging {
		return
	}
	st.dragging = false

	dx := st.lastPointer.X - st.dragOrigin.X
	dy := st.lastPointer.Y - st.dragOrigin.Y
	dist := float32(math.Hypot(float64(dx), float64(dy)))
	if dist < ph.MinDragDistance || st.dragElapsed <= 0 {
		return
	}
	// Offset moved by -delta during the drag; momentum continues in the
	// same direction.
	st.velocity.X = -dx / (st.dragElapsed * ph.DragDamping)
	st.velocity.Y = -dy / (st.dragElapsed * ph.DragDamping)
}

// Dragging reports whether a pointer drag is in progress.
func (st *ScrollState) Dragging() bool { return st.dragging }

// Velocity returns the current momentum velocity in px/frame.
func (st *ScrollState) Velocity() Point { return st.velocity }

// tick advances momentum by dt seconds: offset moves by the velocity, the
// velocity decays geometrically, and anything below the epsilon threshold
// snaps to zero so the loop terminates in bounded frames.
func (st *ScrollState) tick(dt float32, ph *ScrollPhysics) {
	if st.dragging || (st.velocity.X == 0 && st.velocity.Y == 0) {
		return
	}
	// Velocity and decay are expressed per 60 Hz frame; scale to dt so a
	// dropped frame doesn't slow the fling.
	frames := dt * 60
	if frames <= 0 {
		frames = 1
	}
	st.Offset.X += st.velocity.X * frames
	st.Offset.Y += st.velocity.Y * frames
	decay := float32(math.Pow(float64(ph.Decay), float64(frames)))
	st.velocity.X *= decay
	st.velocity.Y *= decay
	if abs(st.velocity.X) < ph.VelocityEpsilon {
		st.velocity.X = 0
	}
	if abs(st.velocity.Y) < ph.VelocityEpsilon {
		st.velocity.Y = 0
	}
	st.ClampOffset()
}

// PanIntoView adjusts the offset by the minimal amount that makes target
// (in content coordinates) fully visible in the viewport. Already-visible
// targets leave the offset untouched; a target larger than the viewport
// moves by the smaller of the two possible directions.
func (st *ScrollState) PanIntoView(target Rect) {
	st.Offset.X += panAdjust(target.X, target.Right(), st.Offset.X, st.viewport.Width)
	st.Offset.Y += panAdjust(target.Y, target.Bottom(), st.Offset.Y, st.viewport.Height)
	st.ClampOffset()
}

// panAdjust computes the 1-D offset delta that brings [lo, hi] into the
// visible window [offset, offset+view].
func panAdjust(lo, hi, offset, view float32) float32 {
	dLow := lo - offset          // negative: target starts above the window
	dHigh := hi - (offset + view) // positive: target ends below the window

	if dLow >= 0 && dHigh <= 0 {
		return 0 // fully visible
	}
	if hi-lo > view {
		// Target is larger than the window; take the shorter move.
		if abs(dLow) <= abs(dHigh) {
			return dLow
		}
		return dHigh
	}
	if dLow < 0 {
		return dLow
	}
	return dHigh
}

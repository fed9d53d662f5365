package ink

import "fmt"

// ============================================================================
// Frame Context
// ============================================================================
//
// Context owns the six core pieces and drives them through the per-frame
// protocol: BeginFrame resets the arena, swaps the interaction snapshots and
// derives last frame's hit state; the caller then declares widgets; EndFrame
// solves layout, materializes draw commands and interaction records at the
// solved bounds, and hands the command list to the renderer.
//
// Widgets cannot draw at final coordinates while declaring — layout is not
// solved until declarations are complete — so declaration appends lightweight
// render records that EndFrame resolves against the solved tree. Interaction
// queries during declaration read the previous frame's snapshot, which is the
// documented one-frame lag of the whole design.

// Config assembles a Context. Zero-value fields get working defaults.
type Config struct {
	Tuning        Tuning
	Text          TextBackend           // nil: FixedMetrics{}
	Renderer      Renderer              // nil: commands only retrievable via Commands()
	Accessibility AccessibilityReporter // nil: collection disabled
	ViewportW     float32               // zero: 800
	ViewportH     float32               // zero: 600
}

// Context is the runtime core for one UI surface. Single-threaded: every
// method must be called from the goroutine driving the frame loop.
type Context struct {
	arena    *FrameArena
	ids      IdentityStack
	exchange *InteractionExchange
	focus    FocusRing
	scroll   *ScrollController
	solver   *FlexSolver
	draw     *DrawList

	text     TextBackend
	renderer Renderer
	a11y     AccessibilityReporter

	viewport Size
	input    FrameInput
	open     bool

	// declaration state, reset every frame
	containers []nodeIndex
	records    []renderRecord
	rootNode   nodeIndex
	shift      Point   // accumulated scroll shift at the declaration point
	shiftStack []Point // saved shifts of enclosing scroll regions
	clipRects  []Rect  // effective scroll clips during record resolution

	// cross-frame input bookkeeping
	prevPointerDown bool
	dragRegion      WidgetID
	dragActive      bool
	activateKey     bool // Space/Enter pressed this frame
	a11yNodes       []AccessibilityNode
}

// recordKind discriminates renderRecord.
type recordKind uint8

const (
	recContainer recordKind = iota
	recButton
	recLabel
	recCheckbox
	recCustom
	recClipPush
	recClipPop
)

// renderRecord defers a widget's visual output until layout is solved.
type renderRecord struct {
	kind  recordKind
	node  nodeIndex
	id    WidgetID
	shift Point

	text     string
	fontSize float32
	bg       Color
	fg       Color
	radius   float32
	checked  bool

	clickKind ClickableKind
	clickable bool
	focusable bool
	role      AccessibilityRole

	custom CustomWidget

	// scroll-region plumbing (recClipPush/recClipPop)
	contentNode nodeIndex
}

// New creates a Context from cfg.
func New(cfg Config) *Context {
	tuning := cfg.Tuning
	if tuning == (Tuning{}) {
		tuning = DefaultTuning()
	}
	text := cfg.Text
	if text == nil {
		text = FixedMetrics{}
	}
	w, h := cfg.ViewportW, cfg.ViewportH
	if w == 0 {
		w = 800
	}
	if h == 0 {
		h = 600
	}
	arena := NewFrameArena(tuning.Arena.InitialCapacity)
	return &Context{
		arena:      arena,
		exchange:   NewInteractionExchange(),
		scroll:     NewScrollController(tuning.Scroll.physics()),
		solver:     NewFlexSolver(text),
		draw:       NewDrawList(arena),
		text:       text,
		renderer:   cfg.Renderer,
		a11y:       cfg.Accessibility,
		viewport:   Size{Width: w, Height: h},
		containers: make([]nodeIndex, 0, 16),
		records:    make([]renderRecord, 0, 128),
		shiftStack: make([]Point, 0, 4),
		clipRects:  make([]Rect, 0, 4),
	}
}

// Resize updates the root viewport size for subsequent frames.
func (c *Context) Resize(w, h float32) {
	c.viewport = Size{Width: w, Height: h}
}

// ============================================================================
// Frame protocol
// ============================================================================

// BeginFrame opens a frame: arena reset, snapshot swap, hit-state derivation
// from last frame's bounds and this frame's pointer, focus navigation, and
// scroll input routing. Everything declared afterwards belongs to this frame.
func (c *Context) BeginFrame(input FrameInput) {
	if c.open {
		panic("ink: BeginFrame called twice without EndFrame")
	}
	c.open = true
	c.input = input

	c.arena.Reset()
	c.exchange.beginFrame(&c.input)

	// Tab traversal walks the order declared last frame; the ring is
	// cleared only after navigation so the stale list is still usable.
	c.activateKey = false
	for _, k := range input.Keys {
		switch {
		case k.Key == KeyTab && k.Mods&ModShift != 0:
			c.focus.FocusPrev()
		case k.Key == KeyTab:
			c.focus.FocusNext()
		case k.Key == KeySpace || k.Key == KeyEnter:
			c.activateKey = true
		}
	}
	c.focus.beginFrame()

	c.routeScrollInput()
	c.scroll.Tick(c.dt())

	c.solver.beginFrame()
	c.draw.beginFrame()
	c.records = c.records[:0]
	c.a11yNodes = c.a11yNodes[:0]
	c.shift = Point{}
	c.shiftStack = c.shiftStack[:0]

	c.rootNode = c.solver.AddContainer(noNode, ContainerStyle{
		Axis:     Vertical,
		MustFill: true,
		Name:     "root",
	})
	c.containers = c.containers[:0]
	c.containers = append(c.containers, c.rootNode)

	c.prevPointerDown = input.PointerDown
}

// EndFrame closes the frame: layout is solved, render records resolve into
// draw commands and next-frame interaction records, and the command list is
// flushed to the renderer. A flex configuration error aborts the frame and
// is returned with the offending container named.
func (c *Context) EndFrame() error {
	if !c.open {
		panic("ink: EndFrame called without matching BeginFrame")
	}
	c.ids.checkBalanced()
	if len(c.containers) != 1 {
		panic(fmt.Sprintf("ink: %d container Begin(s) without matching End at end of frame", len(c.containers)-1))
	}

	if err := c.solver.Solve(c.rootNode, Point{}, c.viewport); err != nil {
		c.exchange.endFrame()
		c.open = false
		return err
	}

	c.resolveRecords()

	c.draw.checkBalanced()
	c.exchange.endFrame()
	c.open = false

	logger().Debug("frame closed",
		"arena_used", c.arena.Used(),
		"arena_peak", c.arena.Peak(),
		"commands", len(c.draw.Commands()))

	if c.renderer != nil {
		c.renderer.Flush(c.draw.Commands())
	}
	if c.a11y != nil && len(c.a11yNodes) > 0 {
		c.a11y.ReportNodes(c.a11yNodes)
	}
	return nil
}

// Commands returns the current frame's draw list, for callers that pull
// instead of being flushed to. Invalid after the next BeginFrame.
func (c *Context) Commands() []DrawCommand { return c.draw.Commands() }

// dt returns the frame delta, defaulting to a 60 Hz step.
func (c *Context) dt() float32 {
	if c.input.DeltaTime > 0 {
		return c.input.DeltaTime
	}
	return 1.0 / 60.0
}

// routeScrollInput feeds wheel and pointer-drag input into the scroll state
// of the region under the pointer (per last frame's recorded bounds).
func (c *Context) routeScrollInput() {
	p := c.input.Pointer()

	if c.input.WheelDeltaX != 0 || c.input.WheelDeltaY != 0 {
		if region, ok := c.exchange.hoveredScrollRegion(p); ok {
			c.scroll.ScrollBy(region.ID, c.input.WheelDeltaX, c.input.WheelDeltaY)
		}
	}

	switch {
	case c.input.PointerDown && !c.prevPointerDown:
		if region, ok := c.exchange.hoveredScrollRegion(p); ok {
			c.dragRegion = region.ID
			c.dragActive = true
			c.scroll.StartDrag(region.ID, p)
		}
	case c.input.PointerDown && c.dragActive:
		c.scroll.UpdateDrag(c.dragRegion, p, c.dt())
	case c.dragActive:
		c.scroll.EndDrag(c.dragRegion)
		c.dragActive = false
	}
}

// ============================================================================
// Declaration plumbing (used by widgets.go)
// ============================================================================

// currentContainer returns the layout node widgets attach to.
func (c *Context) currentContainer() nodeIndex {
	return c.containers[len(c.containers)-1]
}

func (c *Context) pushContainer(idx nodeIndex) {
	c.containers = append(c.containers, idx)
}

func (c *Context) popContainer() nodeIndex {
	if len(c.containers) <= 1 {
		panic("ink: End without matching Begin")
	}
	idx := c.containers[len(c.containers)-1]
	c.containers = c.containers[:len(c.containers)-1]
	return idx
}

func (c *Context) addRecord(r renderRecord) {
	r.shift = c.shift
	c.records = append(c.records, r)
}

func (c *Context) checkDeclaring(op string) {
	if !c.open {
		panic("ink: " + op + " outside BeginFrame/EndFrame")
	}
}

// ============================================================================
// Interaction queries (pass-throughs widgets and callers share)
// ============================================================================

// IsHovered reports whether id was the topmost clickable under the pointer,
// per last frame's layout.
func (c *Context) IsHovered(id WidgetID) bool { return c.exchange.IsHovered(id) }

// IsPressed reports whether id is hovered with the button held.
func (c *Context) IsPressed(id WidgetID) bool { return c.exchange.IsPressed(id) }

// WasClicked reports whether the pointer was released over id this frame.
func (c *Context) WasClicked(id WidgetID) bool { return c.exchange.WasClicked(id) }

// BoundingBox returns the bounds id occupied last frame.
func (c *Context) BoundingBox(id WidgetID) (Rect, bool) { return c.exchange.BoundingBox(id) }

// IsFocused reports whether id has keyboard focus.
func (c *Context) IsFocused(id WidgetID) bool { return c.focus.IsFocused(id) }

// SetFocus gives id keyboard focus.
func (c *Context) SetFocus(id WidgetID) { c.focus.SetFocus(id) }

// Focus exposes the focus ring for explicit navigation.
func (c *Context) Focus() *FocusRing { return &c.focus }

// Scroll exposes the persistent scroll store for inspection and explicit
// offset control.
func (c *Context) Scroll() *ScrollController { return c.scroll }

// PanIntoView scrolls regionID by the minimal amount that makes widgetID
// fully visible, using both bounds as recorded last frame. Recorded bounds
// are in root coordinates with the scroll offset already applied; they are
// converted back into the region's content space before delegating to the
// scroll state. It reports whether both bounds were available; a widget or
// region not declared last frame leaves the offset untouched.
func (c *Context) PanIntoView(regionID, widgetID WidgetID) bool {
	target, ok := c.exchange.BoundingBox(widgetID)
	if !ok {
		return false
	}
	region, ok := c.exchange.BoundingBox(regionID)
	if !ok {
		return false
	}
	st := c.scroll.State(regionID)
	st.PanIntoView(Rect{
		X:      target.X - region.X + st.Offset.X,
		Y:      target.Y - region.Y + st.Offset.Y,
		Width:  target.Width,
		Height: target.Height,
	})
	return true
}

// Arena exposes the frame arena for custom widgets that need frame-scoped
// scratch. The aliasing rule applies: nothing taken from it survives the
// next BeginFrame.
func (c *Context) Arena() *FrameArena { return c.arena }

// ============================================================================
// Record resolution (EndFrame)
// ============================================================================

// resolveRecords walks the declaration-order records against the solved
// tree: draw commands are emitted, clickable/scroll/bounding records are
// written into the next snapshot, accessibility nodes are collected.
//
// Hit rectangles are intersected with the enclosing scroll viewports: the
// renderer clips scrolled-out widgets visually, and the clickable record must
// match, or an invisible widget would steal hover from whatever is actually
// drawn at its shifted bounds. Bounding boxes stay unclipped — pan-into-view
// needs the true position of an off-screen widget.
func (c *Context) resolveRecords() {
	c.clipRects = c.clipRects[:0]
	for i := range c.records {
		r := &c.records[i]
		rect := c.solver.Rect(r.node).Offset(r.shift.X, r.shift.Y)

		hitRect := rect
		if n := len(c.clipRects); n > 0 {
			hitRect = rect.Intersect(c.clipRects[n-1])
		}

		switch r.kind {
		case recContainer:
			if r.bg.A > 0 {
				c.draw.RoundedRect(rect, r.bg, r.radius)
			}
		case recButton:
			c.resolveButton(r, rect)
		case recLabel:
			if r.bg.A > 0 {
				c.draw.Rect(rect, r.bg)
			}
			c.draw.Text(rect, r.text, r.fontSize, r.fg)
		case recCheckbox:
			c.resolveCheckbox(r, rect)
		case recCustom:
			r.custom.Render(c.draw, rect)
		case recClipPush:
			c.resolveScrollRegion(r, rect, hitRect)
			// Children clip against this viewport, already intersected
			// with any enclosing ones.
			c.clipRects = append(c.clipRects, hitRect)
		case recClipPop:
			c.clipRects = c.clipRects[:len(c.clipRects)-1]
			c.draw.PopClip()
		}

		if r.clickable && !hitRect.Empty() {
			c.exchange.RecordClickable(r.id, hitRect, r.clickKind)
		}
		if r.id != 0 {
			c.exchange.RecordBoundingBox(r.id, rect)
		}
		if r.focusable {
			c.focus.RegisterFocusable(r.id)
		}
		if c.a11y != nil && r.role != RoleNone {
			c.a11yNodes = append(c.a11yNodes, AccessibilityNode{
				ID:     r.id,
				Role:   r.role,
				Bounds: rect,
				Label:  r.text,
			})
		}
	}
}

// resolveScrollRegion records the viewport bounds, pushes the clip, and
// feeds the solved content/viewport sizes back into the persistent state.
// visible is the viewport intersected with enclosing clips; wheel and drag
// input only routes to the part of a nested region that can be seen.
func (c *Context) resolveScrollRegion(r *renderRecord, rect, visible Rect) {
	if r.bg.A > 0 {
		c.draw.Rect(rect, r.bg)
	}
	c.draw.PushClip(rect)
	if !visible.Empty() {
		c.exchange.RecordScrollRegion(r.id, visible)
	}

	content := c.solver.Rect(r.contentNode)
	st := c.scroll.State(r.id)
	st.Layout(Size{Width: content.Width, Height: content.Height},
		Size{Width: rect.Width, Height: rect.Height})
}

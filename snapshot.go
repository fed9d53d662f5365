package ink

// ============================================================================
// Interaction Exchange
// ============================================================================
//
// Hit testing needs final layout, and final layout is not known until a
// frame's declarations are complete. Widgets therefore read hover/press/click
// state that is exactly one frame stale: during frame N they write their
// solved bounds into the "next" snapshot, and during frame N+1 those records
// are hit-tested against the live pointer. The two snapshots swap roles at
// BeginFrame, so "this frame's writes" and "last frame's reads" never alias.
//
// A snapshot's records must survive one arena reset (they are written in
// frame N and read in frame N+1, after the reset that opens N+1), so each
// snapshot owns its record buffers and recycles them with a length reset when
// it becomes the write target again. Steady-state frames allocate nothing.

// ClickableKind tags what sort of widget a clickable record belongs to.
type ClickableKind uint8

const (
	KindButton ClickableKind = iota
	KindCheckbox
	KindTextInput
	KindScrollThumb
	KindCustom
)

// ClickableRecord is a hit-testable widget and its final bounds, written to
// the next snapshot during render and read from the previous snapshot during
// the following frame's hit-state derivation.
type ClickableRecord struct {
	ID     WidgetID
	Bounds Rect
	Kind   ClickableKind
}

// ScrollRegionRecord is a scrollable viewport and its final bounds.
type ScrollRegionRecord struct {
	ID     WidgetID
	Bounds Rect
}

// FrameSnapshot is one frame's worth of interaction output. It is the write
// target for exactly one frame, then the read source for exactly one frame,
// then recycled.
type FrameSnapshot struct {
	clickables    []ClickableRecord
	scrollRegions []ScrollRegionRecord
	boundingBoxes map[WidgetID]Rect

	// Derived at BeginFrame from the records above and the live pointer.
	hoveredID WidgetID
	pressedID WidgetID
	clickedID WidgetID
	hasHover  bool
	hasPress  bool
	hasClick  bool
}

func newFrameSnapshot() *FrameSnapshot {
	return &FrameSnapshot{
		clickables:    make([]ClickableRecord, 0, 64),
		scrollRegions: make([]ScrollRegionRecord, 0, 8),
		boundingBoxes: make(map[WidgetID]Rect, 64),
	}
}

// recycle clears the snapshot for reuse as the new write target without
// releasing its buffers.
func (s *FrameSnapshot) recycle() {
	s.clickables = s.clickables[:0]
	s.scrollRegions = s.scrollRegions[:0]
	clear(s.boundingBoxes)
	s.hasHover, s.hasPress, s.hasClick = false, false, false
}

// InteractionExchange owns the two snapshots and the swap/derive step.
// Single writer, single reader: the frame-driving goroutine.
type InteractionExchange struct {
	prev *FrameSnapshot
	next *FrameSnapshot

	// open is true between BeginFrame and EndFrame; records are only valid
	// inside that window.
	open bool
}

// NewInteractionExchange creates an exchange with two empty snapshots.
// Queries before the first frame report nothing hovered or clicked.
func NewInteractionExchange() *InteractionExchange {
	return &InteractionExchange{prev: newFrameSnapshot(), next: newFrameSnapshot()}
}

// beginFrame swaps the buffers (last frame's next becomes this frame's prev),
// recycles the new write target and derives hover/press/click state from the
// swapped-in snapshot and this frame's pointer input.
func (x *InteractionExchange) beginFrame(in *FrameInput) {
	if x.open {
		panic("ink: BeginFrame called twice without EndFrame")
	}
	x.prev, x.next = x.next, x.prev
	x.next.recycle()
	x.open = true
	x.derive(in)
}

// endFrame closes the record window. No swap happens here; the swap is part
// of the next beginFrame.
func (x *InteractionExchange) endFrame() {
	if !x.open {
		panic("ink: EndFrame called without matching BeginFrame")
	}
	x.open = false
}

// derive walks prev's clickables in reverse declaration order. Later
// declared means drawn on top, so the first record containing the pointer
// is the topmost and claims hover; iteration stops there. At most one id
// occupies each of the hover/press/click roles per frame.
func (x *InteractionExchange) derive(in *FrameInput) {
	s := x.prev
	s.hasHover, s.hasPress, s.hasClick = false, false, false

	for i := len(s.clickables) - 1; i >= 0; i-- {
		rec := &s.clickables[i]
		if !rec.Bounds.Contains(in.PointerX, in.PointerY) {
			continue
		}
		s.hoveredID = rec.ID
		s.hasHover = true
		if in.PointerDown {
			s.pressedID = rec.ID
			s.hasPress = true
		}
		if in.PointerReleased {
			s.clickedID = rec.ID
			s.hasClick = true
		}
		break
	}
}

// ============================================================================
// Writes (into next)
// ============================================================================

func (x *InteractionExchange) checkOpen(op string) {
	if !x.open {
		panic("ink: " + op + " outside BeginFrame/EndFrame")
	}
}

// RecordClickable appends a hit-testable widget to the frame being written.
// Valid only between BeginFrame and EndFrame.
func (x *InteractionExchange) RecordClickable(id WidgetID, bounds Rect, kind ClickableKind) {
	x.checkOpen("RecordClickable")
	x.next.clickables = append(x.next.clickables, ClickableRecord{ID: id, Bounds: bounds, Kind: kind})
}

// RecordScrollRegion appends a scrollable viewport to the frame being written.
func (x *InteractionExchange) RecordScrollRegion(id WidgetID, bounds Rect) {
	x.checkOpen("RecordScrollRegion")
	x.next.scrollRegions = append(x.next.scrollRegions, ScrollRegionRecord{ID: id, Bounds: bounds})
}

// RecordBoundingBox stores a widget's final bounds for next-frame queries
// (pan-into-view, accessibility, tooltip anchoring).
func (x *InteractionExchange) RecordBoundingBox(id WidgetID, bounds Rect) {
	x.checkOpen("RecordBoundingBox")
	x.next.boundingBoxes[id] = bounds
}

// ============================================================================
// Queries (against prev)
// ============================================================================
//
// All queries reflect the previous frame's final layout, never the current
// frame's in-progress one. Ids that were not recorded last frame (widget
// conditionally removed, first frame ever) simply answer false — a stale id
// is an expected condition, not an error.

// IsHovered reports whether id was the topmost clickable under the pointer.
func (x *InteractionExchange) IsHovered(id WidgetID) bool {
	return x.prev.hasHover && x.prev.hoveredID == id
}

// IsPressed reports whether id is hovered with the pointer button held.
func (x *InteractionExchange) IsPressed(id WidgetID) bool {
	return x.prev.hasPress && x.prev.pressedID == id
}

// WasClicked reports whether the pointer was released over id this frame.
func (x *InteractionExchange) WasClicked(id WidgetID) bool {
	return x.prev.hasClick && x.prev.clickedID == id
}

// HoveredID returns the topmost hovered clickable id, if any.
func (x *InteractionExchange) HoveredID() (WidgetID, bool) {
	return x.prev.hoveredID, x.prev.hasHover
}

// BoundingBox returns the bounds id occupied last frame.
func (x *InteractionExchange) BoundingBox(id WidgetID) (Rect, bool) {
	r, ok := x.prev.boundingBoxes[id]
	return r, ok
}

// hoveredScrollRegion returns the topmost scroll region under the pointer
// last frame. Wheel and drag input routes to it.
func (x *InteractionExchange) hoveredScrollRegion(p Point) (ScrollRegionRecord, bool) {
	regions := x.prev.scrollRegions
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Bounds.ContainsPoint(p) {
			return regions[i], true
		}
	}
	return ScrollRegionRecord{}, false
}

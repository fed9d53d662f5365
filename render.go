package ink

// ============================================================================
// Draw List
// ============================================================================
//
// Widgets render by appending commands at their solved bounds; the core never
// rasterizes. Commands are plain values: every variable-length payload (text)
// is copied into the frame arena when recorded, so a command can never dangle
// into caller-owned memory between declaration time and flush time.

// Color is straight-alpha RGBA in [0, 1].
type Color struct {
	R, G, B, A float32
}

// DrawCommandKind discriminates DrawCommand.
type DrawCommandKind uint8

const (
	CmdRect DrawCommandKind = iota
	CmdText
	CmdPushClip
	CmdPopClip
)

// DrawCommand is one renderer instruction. Fields beyond Kind are valid per
// kind: Bounds+Fill+CornerRadius for CmdRect, Bounds+Text+FontSize+Fill for
// CmdText, Bounds for CmdPushClip.
type DrawCommand struct {
	Kind         DrawCommandKind
	Bounds       Rect
	Fill         Color
	CornerRadius float32
	Text         string
	FontSize     float32
}

// Renderer consumes the ordered command list for one frame. Commands arrive
// in declaration order, which is z-order: later commands draw on top.
type Renderer interface {
	Flush(cmds []DrawCommand)
}

// DrawList accumulates one frame's commands. Storage is recycled across
// frames; text payloads live in the frame arena.
type DrawList struct {
	cmds  []DrawCommand
	arena *FrameArena
	clips int
}

// NewDrawList creates a draw list whose text payloads are copied into arena.
func NewDrawList(arena *FrameArena) *DrawList {
	return &DrawList{cmds: make([]DrawCommand, 0, 256), arena: arena}
}

// beginFrame discards last frame's commands. The arena reset has already
// invalidated their payloads.
func (l *DrawList) beginFrame() {
	l.cmds = l.cmds[:0]
	l.clips = 0
}

// Rect appends a filled rectangle.
func (l *DrawList) Rect(bounds Rect, fill Color) {
	l.cmds = append(l.cmds, DrawCommand{Kind: CmdRect, Bounds: bounds, Fill: fill})
}

// RoundedRect appends a filled rounded rectangle.
func (l *DrawList) RoundedRect(bounds Rect, fill Color, radius float32) {
	l.cmds = append(l.cmds, DrawCommand{
		Kind: CmdRect, Bounds: bounds, Fill: fill, CornerRadius: radius,
	})
}

// Text appends a text draw at bounds. The string is copied into the frame
// arena immediately; the caller may reuse its buffer afterwards.
func (l *DrawList) Text(bounds Rect, text string, fontSize float32, fill Color) {
	l.cmds = append(l.cmds, DrawCommand{
		Kind:     CmdText,
		Bounds:   bounds,
		Fill:     fill,
		Text:     l.arena.CopyString(text),
		FontSize: fontSize,
	})
}

// PushClip appends a clip push; subsequent commands are clipped to bounds
// until the matching PopClip. Scroll regions use this around their content.
func (l *DrawList) PushClip(bounds Rect) {
	l.cmds = append(l.cmds, DrawCommand{Kind: CmdPushClip, Bounds: bounds})
	l.clips++
}

// PopClip appends a clip pop. Popping without a matching push is a logic
// error in the calling UI code.
func (l *DrawList) PopClip() {
	if l.clips == 0 {
		panic("ink: DrawList.PopClip without matching PushClip")
	}
	l.cmds = append(l.cmds, DrawCommand{Kind: CmdPopClip})
	l.clips--
}

// Commands returns this frame's command list in declaration order. The slice
// and its text payloads are invalid after the next BeginFrame.
func (l *DrawList) Commands() []DrawCommand { return l.cmds }

// checkBalanced panics if clip pushes are still open at end of frame.
func (l *DrawList) checkBalanced() {
	if l.clips != 0 {
		panic("ink: clip stack not empty at end of frame")
	}
}

package ink

// Key identifies the handful of keys the core itself reacts to. Everything
// else passes through to the focused widget untouched.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyEnter
	KeySpace
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// KeyEvent is one key press delivered with the frame input.
type KeyEvent struct {
	Key  Key
	Rune rune // printable character, 0 for non-text keys
	Mods Modifiers
}

// FrameInput is the normalized input state for one frame, supplied by the
// platform layer. The core never touches OS APIs; whatever windowing system
// drives the loop fills this struct once per frame.
type FrameInput struct {
	PointerX float32
	PointerY float32

	// PointerDown is true while the primary button/touch is held.
	PointerDown bool

	// PointerReleased is true only on the frame the primary button/touch
	// was released.
	PointerReleased bool

	WheelDeltaX float32
	WheelDeltaY float32

	// DeltaTime is the seconds elapsed since the previous frame, used by
	// scroll momentum. Zero is treated as one 60 Hz frame.
	DeltaTime float32

	Keys []KeyEvent
}

// Pointer returns the pointer position as a Point.
func (in *FrameInput) Pointer() Point { return Point{X: in.PointerX, Y: in.PointerY} }

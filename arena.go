package ink

import (
	"fmt"
	"unsafe"
)

// ============================================================================
// Frame Arena
// ============================================================================
//
// All transient per-frame structures (the layout tree, interaction records,
// draw-list payloads) are carved from a single bump-pointer arena. Individual
// frees are no-ops; the only reclamation is Reset at BeginFrame, which rewinds
// the cursor without releasing the backing buffer. After the buffer stabilizes
// a steady-state frame allocates nothing from the Go heap.
//
// Aliasing rule: any pointer or slice obtained from the arena is invalid after
// the next Reset. Data that must outlive the frame (scroll state, focus, the
// caller's widget state) lives in ordinary heap maps keyed by WidgetID.

// FrameArena is a bump-pointer allocator over a reusable byte buffer.
// Not safe for concurrent use; it is owned by the frame-driving goroutine.
type FrameArena struct {
	buf    []byte
	cursor int
	peak   int // high-water mark across frames, for diagnostics
}

// NewFrameArena creates an arena with the given initial capacity in bytes.
// Capacities <= 0 fall back to a small default; the arena grows on demand.
func NewFrameArena(capacity int) *FrameArena {
	if capacity <= 0 {
		capacity = 16 * 1024
	}
	return &FrameArena{buf: make([]byte, capacity)}
}

// Reset rewinds the cursor to zero without freeing the backing buffer.
// Called once per frame from Context.BeginFrame. Every pointer previously
// handed out becomes invalid.
func (a *FrameArena) Reset() {
	if a.cursor > a.peak {
		a.peak = a.cursor
	}
	a.cursor = 0
}

// Allocate returns a zeroed byte slice of the given size and alignment,
// carved from the backing buffer. Growth is geometric (doubling), so the
// buffer stabilizes after the first few frames. Alignment must be a power
// of two.
func (a *FrameArena) Allocate(size, align int) []byte {
	if size < 0 || align <= 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("ink: bad arena request size=%d align=%d", size, align))
	}
	start := (a.cursor + align - 1) &^ (align - 1)
	if start+size > len(a.buf) {
		a.grow(start + size)
	}
	a.cursor = start + size
	b := a.buf[start : start+size : start+size]
	for i := range b {
		b[i] = 0
	}
	return b
}

// grow replaces the backing buffer with a larger one. Growth failure is an
// OS out-of-memory condition and is fatal: make panics and the arena makes
// no attempt at degraded operation mid-frame.
func (a *FrameArena) grow(need int) {
	newCap := len(a.buf) * 2
	if newCap < need {
		newCap = need
	}
	logger().Debug("arena grow", "from", len(a.buf), "to", newCap)
	nb := make([]byte, newCap)
	copy(nb, a.buf[:a.cursor])
	a.buf = nb
}

// Used returns the bytes consumed so far this frame.
func (a *FrameArena) Used() int { return a.cursor }

// Cap returns the current backing-buffer capacity.
func (a *FrameArena) Cap() int { return len(a.buf) }

// Peak returns the high-water mark of per-frame usage, updated at Reset.
func (a *FrameArena) Peak() int {
	if a.cursor > a.peak {
		return a.cursor
	}
	return a.peak
}

// CopyString copies s into the arena and returns a string view of the copy.
// This is the value-copy boundary for variable-length payloads crossing from
// declaration time to render time: the draw list never references
// caller-owned backing memory.
func (a *FrameArena) CopyString(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := a.Allocate(len(s), 1)
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}

// Alloc carves one zeroed T from the arena. T must not contain heap pointers
// the GC needs to trace beyond the frame; arena memory is treated as raw
// bytes. Strings placed in arena structs must themselves be arena copies.
func Alloc[T any](a *FrameArena) *T {
	var zero T
	b := a.Allocate(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
	return (*T)(unsafe.Pointer(&b[0]))
}

// AllocSlice carves a zeroed slice of n Ts with capacity n.
func AllocSlice[T any](a *FrameArena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	b := a.Allocate(n*int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

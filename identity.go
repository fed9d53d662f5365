package ink

import "fmt"

// WidgetID is the stable 64-bit identity of a declared widget. It is derived
// fresh every frame from the identity stack, so two frames that declare the
// same widget under the same ancestors produce the same id. IDs are only ever
// held as map keys across frames, never as references into frame memory.
type WidgetID uint64

// RootID is the sentinel identity at the bottom of the stack.
const RootID WidgetID = 0xcbf29ce484222325 // FNV-1a 64 offset basis

const fnvPrime = 0x100000001b3

// hashString folds s into the seed with FNV-1a. The seed makes the hash
// order-sensitive: the same label at different nesting depths yields a
// different id.
func hashString(seed WidgetID, s string) WidgetID {
	h := uint64(seed)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return WidgetID(h)
}

// hashIndex folds a numeric index into the seed, byte by byte.
func hashIndex(seed WidgetID, n int) WidgetID {
	h := uint64(seed)
	v := uint64(n)
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime
		v >>= 8
	}
	return WidgetID(h)
}

// IdentityStack derives stable widget identities from a push/pop stack of
// hashed labels and indices. It carries no state between frames beyond what
// the caller pushes; the hash is unseeded and stable across runs so ids can
// key persistent maps (scroll state, focus).
type IdentityStack struct {
	stack []WidgetID
}

// PushLabel derives a child id from the current top and the given label and
// pushes it.
func (s *IdentityStack) PushLabel(label string) WidgetID {
	id := hashString(s.Current(), label)
	s.stack = append(s.stack, id)
	return id
}

// PushIndex derives a child id from the current top and a loop index and
// pushes it. Use for homogeneous children generated in a loop, where labels
// would collide.
func (s *IdentityStack) PushIndex(i int) WidgetID {
	id := hashIndex(s.Current(), i)
	s.stack = append(s.stack, id)
	return id
}

// Pop removes the top of the stack. Popping an empty stack is a logic error
// in the calling UI code and panics rather than returning a bad id.
func (s *IdentityStack) Pop() {
	if len(s.stack) == 0 {
		panic("ink: IdentityStack.Pop on empty stack (unbalanced push/pop)")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// Current returns the top of the stack, or RootID if nothing is pushed.
func (s *IdentityStack) Current() WidgetID {
	if len(s.stack) == 0 {
		return RootID
	}
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of pushed entries.
func (s *IdentityStack) Depth() int { return len(s.stack) }

// checkBalanced panics if entries are still pushed at end of frame.
func (s *IdentityStack) checkBalanced() {
	if len(s.stack) != 0 {
		panic(fmt.Sprintf("ink: %d identity push(es) without matching pop at end of frame", len(s.stack)))
	}
}

// String implements fmt.Stringer for debug logging.
func (id WidgetID) String() string { return fmt.Sprintf("widget(%016x)", uint64(id)) }

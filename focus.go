package ink

// ============================================================================
// Focus Ring
// ============================================================================

// FocusRing tracks which identity has keyboard focus and the ordered list of
// focusable identities declared this frame. Declaration order is traversal
// order: FocusNext/FocusPrev walk the list cyclically. The list is rebuilt
// every frame as widgets call RegisterFocusable, so a widget that disappears
// simply drops out of the ring; if it was focused, the id is retained (a
// widget that is not declared asks no questions), and navigation restarts
// from the ends of the current list.
type FocusRing struct {
	focusedID  WidgetID
	hasFocus   bool
	focusables []WidgetID
}

// beginFrame clears the per-frame focusable list. The focused id persists.
func (f *FocusRing) beginFrame() {
	f.focusables = f.focusables[:0]
}

// RegisterFocusable appends id to this frame's tab order. Call once per
// focusable widget, in declaration order.
func (f *FocusRing) RegisterFocusable(id WidgetID) {
	f.focusables = append(f.focusables, id)
}

// IsFocused reports whether id currently has keyboard focus.
func (f *FocusRing) IsFocused(id WidgetID) bool {
	return f.hasFocus && f.focusedID == id
}

// FocusedID returns the focused identity, if any.
func (f *FocusRing) FocusedID() (WidgetID, bool) {
	return f.focusedID, f.hasFocus
}

// SetFocus gives id keyboard focus explicitly (e.g. on click).
func (f *FocusRing) SetFocus(id WidgetID) {
	f.focusedID = id
	f.hasFocus = true
}

// ClearFocus removes keyboard focus entirely.
func (f *FocusRing) ClearFocus() {
	f.hasFocus = false
}

// FocusNext moves focus to the next focusable in declaration order, wrapping
// at the end. From an unfocused state (or a focused id that was not declared
// this frame) it selects the first entry. With no focusables it is a no-op.
func (f *FocusRing) FocusNext() {
	n := len(f.focusables)
	if n == 0 {
		return
	}
	idx := f.currentIndex()
	if idx < 0 {
		f.SetFocus(f.focusables[0])
		return
	}
	f.SetFocus(f.focusables[(idx+1)%n])
}

// FocusPrev moves focus to the previous focusable, wrapping at the start.
// From an unfocused state it selects the last entry.
func (f *FocusRing) FocusPrev() {
	n := len(f.focusables)
	if n == 0 {
		return
	}
	idx := f.currentIndex()
	if idx < 0 {
		f.SetFocus(f.focusables[n-1])
		return
	}
	f.SetFocus(f.focusables[(idx-1+n)%n])
}

// currentIndex returns the focused id's position in this frame's list, or -1.
func (f *FocusRing) currentIndex() int {
	if !f.hasFocus {
		return -1
	}
	for i, id := range f.focusables {
		if id == f.focusedID {
			return i
		}
	}
	return -1
}

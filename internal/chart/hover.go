package chart

// NoHover is the index used when nothing is highlighted.
const NoHover = -1

// Hover tracks the highlighted slice. The zero value highlights nothing.
type Hover struct {
	// slot is the highlighted index plus one; 0 means none.
	slot int
}

// NewHover returns a hover state with nothing highlighted
func NewHover() Hover {
	return Hover{}
}

// Index returns the highlighted slice and whether there is one.
func (h Hover) Index() (int, bool) {
	if h.slot == 0 {
		return NoHover, false
	}
	return h.slot - 1, true
}

// Is reports whether slice i is highlighted
func (h Hover) Is(i int) bool {
	return h.slot > 0 && h.slot-1 == i
}

// Set highlights slice i. It reports whether the highlight changed, so
// repeated moves over the same slice do not trigger a redraw.
func (h *Hover) Set(i int) bool {
	slot := i + 1
	if i < 0 {
		slot = 0
	}
	if h.slot == slot {
		return false
	}
	h.slot = slot
	return true
}

// Clear removes the highlight
func (h *Hover) Clear() bool {
	return h.Set(NoHover)
}

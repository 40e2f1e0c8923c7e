package engine

// History is a fixed-capacity ring buffer of content indices actually shown
// to the user, plus a logical browse cursor.
//
// INVARIANTS:
//   - size is in [0, capacity].
//   - cursor is in [0, size-1] whenever size > 0.
//   - Append always snaps the cursor to the newest entry, and once full
//     overwrites the oldest slot. The oldest physical slot is computed from
//     head and size; there is no separate oldest pointer.
//
// Cursor movement for Prev/Next navigation is policy owned by the engine's
// operation code (same package), not by History methods.
type History struct {
	entries []uint16
	head    int // next write slot (wraps)
	size    int // valid entry count, 0..capacity
	cursor  int // logical browse position: 0 = oldest, size-1 = newest
}

// NewHistory creates an empty history with the given capacity.
func NewHistory(capacity int) *History {
	return &History{
		entries: make([]uint16, capacity),
	}
}

// Capacity returns the fixed slot count.
func (h *History) Capacity() int {
	return len(h.entries)
}

// Size returns the number of valid entries.
func (h *History) Size() int {
	return h.size
}

// Cursor returns the logical browse position.
func (h *History) Cursor() int {
	return h.cursor
}

// Append records an index as shown: write at head, advance head modulo
// capacity, grow size up to capacity, snap cursor to the newest entry.
// Appending to a zero-capacity history is a no-op.
func (h *History) Append(index uint16) {
	if len(h.entries) == 0 {
		return
	}

	h.entries[h.head] = index
	h.head = (h.head + 1) % len(h.entries)

	if h.size < len(h.entries) {
		h.size++
	}

	h.cursor = h.size - 1
}

// At returns the entry at a logical position (0 = oldest, size-1 = newest).
// The second return is false when the position is out of range.
func (h *History) At(logical int) (uint16, bool) {
	if len(h.entries) == 0 || h.size == 0 {
		return 0, false
	}
	if logical < 0 || logical >= h.size {
		return 0, false
	}

	physical := (h.oldest() + logical) % len(h.entries)
	return h.entries[physical], true
}

// Newest returns the most recently appended entry.
func (h *History) Newest() (uint16, bool) {
	return h.At(h.size - 1)
}

// Entries returns the valid entries oldest-first. Used for diagnostics and
// the history CLI; the returned slice is a copy.
func (h *History) Entries() []uint16 {
	out := make([]uint16, 0, h.size)
	for i := 0; i < h.size; i++ {
		v, _ := h.At(i)
		out = append(out, v)
	}
	return out
}

// oldest computes the physical slot of the oldest valid entry. When full,
// this is the slot the next Append will overwrite.
func (h *History) oldest() int {
	return (h.head + len(h.entries) - h.size) % len(h.entries)
}

package engine

// Engine is the owned aggregate for one device's selection state: the
// shuffle deck, the shown-content history, the current index, and at most
// one in-flight selection operation.
//
// Thread-safety model: none required. The engine is driven by a single
// cooperative tick loop (see package doc); there is no preemption and no
// second operator.
type Engine struct {
	count   int
	deck    *Deck
	history *History

	// current is the source of truth for "what the user is looking at
	// now". hasCurrent is false until the first selection finalizes (and
	// stays false forever when zero content is configured).
	current    uint16
	hasCurrent bool

	op operation
}

// New creates an engine over a catalog of `count` content items. The
// history capacity equals the catalog size: one slot per distinct item.
func New(count int, rng RandSource) *Engine {
	return &Engine{
		count:   count,
		deck:    NewDeck(count, rng),
		history: NewHistory(count),
	}
}

// Count returns the configured content item count.
func (e *Engine) Count() int {
	return e.count
}

// Current returns the most recently finalized content index. The second
// return is false before the first selection completes or when no content
// is configured.
func (e *Engine) Current() (int, bool) {
	if !e.hasCurrent {
		return 0, false
	}
	return int(e.current), true
}

// HistorySize returns the number of entries in the shown-content history.
func (e *Engine) HistorySize() int {
	return e.history.Size()
}

// HistoryCursor returns the logical browse position within history.
func (e *Engine) HistoryCursor() int {
	return e.history.Cursor()
}

// HistoryEntries returns the shown-content history oldest-first.
func (e *Engine) HistoryEntries() []uint16 {
	return e.history.Entries()
}

// ColdStart initializes fresh state: a newly shuffled deck, an empty
// history seeded with one freshly drawn item, and that item as current.
//
// Used on first boot and as the fallback when restoring a persisted
// snapshot fails. With zero content configured it only clears state and
// returns false.
func (e *Engine) ColdStart() (int, bool) {
	e.op = operation{}
	e.deck.Reset()
	e.history = NewHistory(e.count)
	e.hasCurrent = false

	if e.count == 0 {
		return 0, false
	}

	idx := e.deck.Draw()
	e.history.Append(idx)
	e.current = idx
	e.hasCurrent = true
	return int(idx), true
}

// SnapshotVersion is the persisted snapshot format marker. Bump on any
// incompatible layout change; unknown versions are rejected on restore.
const SnapshotVersion = 1

// Snapshot is the persistable selection state: the current index plus the
// raw history ring. The deck is deliberately absent - only already-shown
// history survives a sleep cycle, and the shuffle bag is rebuilt fresh on
// wake.
type Snapshot struct {
	Version    int      `json:"version"`
	Count      int      `json:"count"`
	Current    uint16   `json:"current"`
	HasCurrent bool     `json:"has_current"`
	Head       int      `json:"head"`
	Size       int      `json:"size"`
	Cursor     int      `json:"cursor"`
	Entries    []uint16 `json:"entries"` // raw ring slots, physical order
}

// Snapshot captures the state to persist before a sleep transition.
func (e *Engine) Snapshot() Snapshot {
	entries := make([]uint16, len(e.history.entries))
	copy(entries, e.history.entries)

	return Snapshot{
		Version:    SnapshotVersion,
		Count:      e.count,
		Current:    e.current,
		HasCurrent: e.hasCurrent,
		Head:       e.history.head,
		Size:       e.history.size,
		Cursor:     e.history.cursor,
		Entries:    entries,
	}
}

// Restore validates a persisted snapshot and, if sound, rehydrates history
// and the current index from it. The deck is reset fresh regardless: the
// no-repeat guarantee restarts at a resume boundary.
//
// On any validation failure the engine is left untouched and a
// *RestoreError describes the rejection; callers must fall back to
// ColdStart rather than keep partially-applied state.
func (e *Engine) Restore(snap Snapshot) error {
	if err := e.validateSnapshot(snap); err != nil {
		return err
	}

	e.op = operation{}
	e.deck.Reset()

	h := NewHistory(e.count)
	copy(h.entries, snap.Entries)
	h.head = snap.Head
	h.size = snap.Size
	h.cursor = snap.Cursor
	e.history = h

	e.current = snap.Current
	e.hasCurrent = snap.HasCurrent
	return nil
}

// validateSnapshot checks every invariant a sound snapshot must satisfy.
func (e *Engine) validateSnapshot(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return newRestoreError(ErrCodeVersionMismatch,
			"snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}

	if snap.Count != e.count {
		return newRestoreError(ErrCodeCountMismatch,
			"snapshot taken with %d items, catalog has %d", snap.Count, e.count)
	}

	if len(snap.Entries) != e.count {
		return newRestoreError(ErrCodeRingCorrupt,
			"ring has %d slots, want %d", len(snap.Entries), e.count)
	}

	if snap.Size < 0 || snap.Size > e.count {
		return newRestoreError(ErrCodeRingCorrupt,
			"size %d outside [0, %d]", snap.Size, e.count)
	}

	if e.count > 0 {
		if snap.Head < 0 || snap.Head >= e.count {
			return newRestoreError(ErrCodeRingCorrupt,
				"head %d outside [0, %d)", snap.Head, e.count)
		}
	} else if snap.Head != 0 {
		return newRestoreError(ErrCodeRingCorrupt,
			"head %d with empty catalog", snap.Head)
	}

	if snap.Size > 0 {
		if snap.Cursor < 0 || snap.Cursor > snap.Size-1 {
			return newRestoreError(ErrCodeCursorOutOfRange,
				"cursor %d outside [0, %d]", snap.Cursor, snap.Size-1)
		}
	} else if snap.Cursor != 0 {
		return newRestoreError(ErrCodeCursorOutOfRange,
			"cursor %d with empty history", snap.Cursor)
	}

	if snap.HasCurrent && int(snap.Current) >= e.count {
		return newRestoreError(ErrCodeIndexOutOfRange,
			"current index %d with %d items", snap.Current, e.count)
	}

	for i, entry := range snap.Entries {
		if int(entry) >= e.count {
			return newRestoreError(ErrCodeIndexOutOfRange,
				"ring slot %d holds index %d with %d items", i, entry, e.count)
		}
	}

	return nil
}

package engine

// RandSource is the uniform integer generator used by the deck's shuffle
// step. It is seeded once at boot by the host (from hardware entropy in
// production, from a fixed seed in tests).
//
// *math/rand/v2.Rand satisfies this interface.
type RandSource interface {
	// IntN returns a uniform integer in [0, n). Panics if n <= 0.
	IntN(n int) int
}

// Deck produces a non-repeating random permutation of content indices,
// reshuffling in place when exhausted.
//
// INVARIANTS:
//   - position is always in [0, n]; position == n means exhausted.
//   - Every value 0..n-1 appears exactly once per shuffle cycle. This is
//     the mechanism guaranteeing no content repeats until all others have
//     been shown once.
type Deck struct {
	order    []uint16
	position int
	rng      RandSource
}

// NewDeck creates a freshly shuffled deck over indices 0..n-1.
func NewDeck(n int, rng RandSource) *Deck {
	d := &Deck{
		order: make([]uint16, n),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset refills the deck with 0..n-1, applies a uniform Fisher-Yates
// shuffle, and rewinds the draw position.
func (d *Deck) Reset() {
	for i := range d.order {
		d.order[i] = uint16(i)
	}

	// Fisher-Yates: swap each position, last to first, with a uniformly
	// chosen position at or before it.
	for i := len(d.order) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.order[i], d.order[j] = d.order[j], d.order[i]
	}

	d.position = 0
}

// Draw returns the next index from the shuffled deck, reshuffling first if
// the deck is exhausted.
//
// With zero content configured, Draw returns the sentinel 0; callers must
// treat an empty deck as "no content available" and avoid drawing.
func (d *Deck) Draw() uint16 {
	if len(d.order) == 0 {
		return 0
	}

	if d.position >= len(d.order) {
		d.Reset()
	}

	idx := d.order[d.position]
	d.position++
	return idx
}

// Remaining returns how many draws are left in the current cycle.
func (d *Deck) Remaining() int {
	return len(d.order) - d.position
}

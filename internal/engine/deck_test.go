package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zeroSource always picks position 0, making shuffle order computable by
// hand. For n=3 the order is [1 2 0]; for n=4 it is [1 2 3 0].
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

// Compile-time check: the production generator satisfies RandSource.
var _ RandSource = (*rand.Rand)(nil)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func TestDeck_DrawIsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 5, 16} {
		d := NewDeck(n, newTestRand())

		seen := make(map[uint16]bool, n)
		for i := 0; i < n; i++ {
			idx := d.Draw()
			assert.Less(t, int(idx), n, "n=%d draw %d out of range", n, i)
			assert.False(t, seen[idx], "n=%d index %d drawn twice in one cycle", n, idx)
			seen[idx] = true
		}
		assert.Len(t, seen, n, "n=%d cycle must cover every index", n)
	}
}

func TestDeck_ReshuffleOnExhaustion(t *testing.T) {
	const n = 5
	d := NewDeck(n, newTestRand())

	for i := 0; i < n; i++ {
		d.Draw()
	}
	require.Equal(t, 0, d.Remaining(), "deck exhausted after n draws")

	// The (n+1)-th draw reshuffles in place and starts a fresh cycle.
	first := d.Draw()
	assert.Less(t, int(first), n)
	assert.Equal(t, n-1, d.Remaining(), "exactly one reshuffle happened")

	seen := map[uint16]bool{first: true}
	for i := 1; i < n; i++ {
		idx := d.Draw()
		assert.False(t, seen[idx], "fresh cycle repeated index %d", idx)
		seen[idx] = true
	}
}

func TestDeck_ZeroContentSentinel(t *testing.T) {
	d := NewDeck(0, newTestRand())

	assert.Equal(t, uint16(0), d.Draw(), "empty deck returns the sentinel")
	assert.Equal(t, uint16(0), d.Draw())
	assert.Equal(t, 0, d.Remaining())
}

func TestDeck_DeterministicWithFixedSource(t *testing.T) {
	d := NewDeck(3, zeroSource{})

	assert.Equal(t, uint16(1), d.Draw())
	assert.Equal(t, uint16(2), d.Draw())
	assert.Equal(t, uint16(0), d.Draw())
}

func TestDeck_ResetRewinds(t *testing.T) {
	d := NewDeck(4, newTestRand())
	d.Draw()
	d.Draw()

	d.Reset()
	assert.Equal(t, 4, d.Remaining())
}

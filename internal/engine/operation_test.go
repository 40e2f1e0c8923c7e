package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeOp drives one accepted operation to completion and returns the
// finalized index.
func completeOp(t *testing.T, e *Engine, intent Intent, now Ticks) int {
	t.Helper()
	require.True(t, e.Begin(intent, now), "intent %s should be accepted", intent)
	require.False(t, e.Poll(now+WorkLatency-1), "must still be waiting one tick early")
	require.True(t, e.Poll(now+WorkLatency), "must complete at the latency boundary")
	idx, ok := e.Current()
	require.True(t, ok)
	return idx
}

func TestEngine_NewRandomEndToEnd(t *testing.T) {
	// Content count 3, deterministically seeded deck: first draw is 1.
	e := New(3, zeroSource{})

	require.True(t, e.Begin(IntentNewRandom, 0))
	assert.True(t, e.Busy())

	pending, ok := e.Pending()
	require.True(t, ok)
	assert.Equal(t, 1, pending)
	assert.Equal(t, IntentNewRandom, e.PendingIntent())

	assert.False(t, e.Poll(799), "work is not done before the latency elapses")
	assert.True(t, e.Poll(800), "work completes exactly once the latency elapses")

	idx, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, 1, idx, "current equals the first deck draw")
	assert.Equal(t, 1, e.HistorySize())
	assert.False(t, e.Busy())
}

func TestEngine_PollCompletesExactlyOnce(t *testing.T) {
	e := New(3, zeroSource{})

	require.True(t, e.Begin(IntentNewRandom, 0))
	require.True(t, e.Poll(WorkLatency))

	assert.False(t, e.Poll(WorkLatency+1), "a completed operation never completes again")
	assert.False(t, e.Poll(WorkLatency+5000))
}

func TestEngine_BeginRejectedWhileBusy(t *testing.T) {
	e := New(3, zeroSource{})

	require.True(t, e.Begin(IntentNewRandom, 0))
	assert.False(t, e.Begin(IntentNewRandom, 10), "second begin while waiting is rejected")
	assert.False(t, e.Begin(IntentStepBackward, 10))

	// The original operation still completes normally.
	assert.True(t, e.Poll(WorkLatency))
}

func TestEngine_StepBackwardRejectedOnEmptyHistory(t *testing.T) {
	e := New(3, zeroSource{})

	assert.False(t, e.Begin(IntentStepBackward, 0))
	assert.False(t, e.Busy(), "rejection leaves no operation in flight")
	assert.Equal(t, 0, e.HistorySize())
}

func TestEngine_StepBackwardRejectedAtOldest(t *testing.T) {
	e := New(3, zeroSource{})

	// History = [A], cursor = 0.
	completeOp(t, e, IntentNewRandom, 0)
	require.Equal(t, 0, e.HistoryCursor())

	assert.False(t, e.Begin(IntentStepBackward, 1000), "already at oldest entry")
	assert.Equal(t, 0, e.HistoryCursor(), "rejection mutates nothing")
	assert.Equal(t, 1, e.HistorySize())
}

func TestEngine_StepBackwardWalksToOldestThenRejects(t *testing.T) {
	e := New(3, zeroSource{})

	// Build history of size 3: draws 1, 2, 0.
	completeOp(t, e, IntentNewRandom, 0)
	completeOp(t, e, IntentNewRandom, 1000)
	completeOp(t, e, IntentNewRandom, 2000)
	require.Equal(t, 3, e.HistorySize())
	require.Equal(t, 2, e.HistoryCursor())

	idx := completeOp(t, e, IntentStepBackward, 3000)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 1, e.HistoryCursor())

	idx = completeOp(t, e, IntentStepBackward, 4000)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, e.HistoryCursor())

	// Size-th consecutive backward step is rejected; cursor never goes
	// below zero.
	assert.False(t, e.Begin(IntentStepBackward, 5000))
	assert.Equal(t, 0, e.HistoryCursor())
	assert.Equal(t, 3, e.HistorySize(), "backward navigation never appends")
}

func TestEngine_StepForwardNavigatesWithoutAppending(t *testing.T) {
	e := New(3, zeroSource{})

	completeOp(t, e, IntentNewRandom, 0)
	completeOp(t, e, IntentNewRandom, 1000)
	completeOp(t, e, IntentStepBackward, 2000)
	require.Equal(t, 0, e.HistoryCursor())

	idx := completeOp(t, e, IntentStepForward, 3000)
	assert.Equal(t, 2, idx, "forward replays the existing newer entry")
	assert.Equal(t, 1, e.HistoryCursor())
	assert.Equal(t, 2, e.HistorySize(), "pure navigation never appends")
}

func TestEngine_StepForwardAtNewestDrawsFresh(t *testing.T) {
	e := New(3, zeroSource{})

	completeOp(t, e, IntentNewRandom, 0)
	require.Equal(t, 0, e.HistoryCursor())

	require.True(t, e.Begin(IntentStepForward, 1000))
	require.True(t, e.Poll(1000+WorkLatency))

	assert.Equal(t, 2, e.HistorySize(), "fresh forward draw appends")
	assert.Equal(t, 1, e.HistoryCursor())

	idx, _ := e.Current()
	assert.Equal(t, 2, idx, "second deterministic deck draw")
}

func TestEngine_StepForwardOnEmptyHistoryActsLikeNewRandom(t *testing.T) {
	e := New(3, zeroSource{})

	idx := completeOp(t, e, IntentStepForward, 0)
	assert.Equal(t, 1, idx, "first deck draw, same as NewRandom")
	assert.Equal(t, 1, e.HistorySize())
}

func TestEngine_StepForwardAtCapacityReplacesOldest(t *testing.T) {
	e := New(3, zeroSource{})

	completeOp(t, e, IntentNewRandom, 0)     // 1
	completeOp(t, e, IntentNewRandom, 1000)  // 2
	completeOp(t, e, IntentNewRandom, 2000)  // 0
	require.Equal(t, 3, e.HistorySize())

	// Deck is exhausted; the fresh forward draw reshuffles and evicts the
	// oldest history entry.
	completeOp(t, e, IntentStepForward, 3000)
	assert.Equal(t, 3, e.HistorySize(), "size stays at capacity")
	first := e.HistoryEntries()[0]
	assert.Equal(t, uint16(2), first, "oldest entry was replaced")
}

func TestEngine_ZeroContentRejectsEverything(t *testing.T) {
	e := New(0, zeroSource{})

	assert.False(t, e.Begin(IntentNewRandom, 0))
	assert.False(t, e.Begin(IntentStepForward, 0))
	assert.False(t, e.Begin(IntentStepBackward, 0))

	_, ok := e.Current()
	assert.False(t, ok, "no content, no current index")
}

func TestEngine_NoRepeatAcrossFullCycle(t *testing.T) {
	const n = 7
	e := New(n, newTestRand())

	seen := make(map[int]bool, n)
	now := Ticks(0)
	for i := 0; i < n; i++ {
		idx := completeOp(t, e, IntentNewRandom, now)
		assert.False(t, seen[idx], "index %d repeated before the cycle completed", idx)
		seen[idx] = true
		now += 10_000
	}
	assert.Len(t, seen, n)
}

func TestEngine_LatencyAcrossTickWraparound(t *testing.T) {
	e := New(3, zeroSource{})
	start := Ticks(0xFFFFFFFF - 100)

	require.True(t, e.Begin(IntentNewRandom, start))
	assert.False(t, e.Poll(start+WorkLatency-1))
	assert.True(t, e.Poll(start+WorkLatency), "latency math survives counter wrap")
}

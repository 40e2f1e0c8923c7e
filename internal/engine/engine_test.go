package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_ColdStartSeedsSingleEntryHistory(t *testing.T) {
	e := New(3, zeroSource{})

	idx, ok := e.ColdStart()
	require.True(t, ok)
	assert.Equal(t, 1, idx, "first deterministic deck draw")

	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, idx, cur)
	assert.Equal(t, 1, e.HistorySize())
	assert.Equal(t, 0, e.HistoryCursor())
}

func TestEngine_ColdStartWithZeroContent(t *testing.T) {
	e := New(0, zeroSource{})

	_, ok := e.ColdStart()
	assert.False(t, ok)
	_, ok = e.Current()
	assert.False(t, ok)
}

func TestEngine_SnapshotRestoreRoundtrip(t *testing.T) {
	src := New(4, zeroSource{})
	completeOp(t, src, IntentNewRandom, 0)
	completeOp(t, src, IntentNewRandom, 1000)
	completeOp(t, src, IntentNewRandom, 2000)
	completeOp(t, src, IntentStepBackward, 3000)

	snap := src.Snapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)

	dst := New(4, zeroSource{})
	require.NoError(t, dst.Restore(snap))

	srcCur, _ := src.Current()
	dstCur, _ := dst.Current()
	assert.Equal(t, srcCur, dstCur)
	assert.Equal(t, src.HistoryEntries(), dst.HistoryEntries())
	assert.Equal(t, src.HistoryCursor(), dst.HistoryCursor())
	assert.Equal(t, src.HistorySize(), dst.HistorySize())
}

func TestEngine_RestoreResetsDeckFresh(t *testing.T) {
	src := New(4, zeroSource{})
	completeOp(t, src, IntentNewRandom, 0)
	completeOp(t, src, IntentNewRandom, 1000)

	dst := New(4, zeroSource{})
	dst.deck.Draw()
	dst.deck.Draw()
	dst.deck.Draw()

	require.NoError(t, dst.Restore(src.Snapshot()))

	// The shuffle bag is not persisted; it restarts a full cycle on wake.
	assert.Equal(t, 4, dst.deck.Remaining())
}

func TestEngine_RestoreRejectsCorruptedSnapshots(t *testing.T) {
	base := func() Snapshot {
		src := New(3, zeroSource{})
		completeOp(t, src, IntentNewRandom, 0)
		completeOp(t, src, IntentNewRandom, 1000)
		return src.Snapshot()
	}

	cases := []struct {
		name    string
		mutate  func(*Snapshot)
		code    RestoreErrorCode
	}{
		{
			name:   "version mismatch",
			mutate: func(s *Snapshot) { s.Version = 99 },
			code:   ErrCodeVersionMismatch,
		},
		{
			name:   "count mismatch",
			mutate: func(s *Snapshot) { s.Count = 8 },
			code:   ErrCodeCountMismatch,
		},
		{
			name:   "cursor beyond newest",
			mutate: func(s *Snapshot) { s.Cursor = s.Size },
			code:   ErrCodeCursorOutOfRange,
		},
		{
			name:   "negative cursor",
			mutate: func(s *Snapshot) { s.Cursor = -1 },
			code:   ErrCodeCursorOutOfRange,
		},
		{
			name:   "head out of range",
			mutate: func(s *Snapshot) { s.Head = 3 },
			code:   ErrCodeRingCorrupt,
		},
		{
			name:   "size above capacity",
			mutate: func(s *Snapshot) { s.Size = 4 },
			code:   ErrCodeRingCorrupt,
		},
		{
			name:   "truncated ring",
			mutate: func(s *Snapshot) { s.Entries = s.Entries[:1] },
			code:   ErrCodeRingCorrupt,
		},
		{
			name:   "current index out of range",
			mutate: func(s *Snapshot) { s.Current = 3 },
			code:   ErrCodeIndexOutOfRange,
		},
		{
			name:   "ring entry out of range",
			mutate: func(s *Snapshot) { s.Entries[0] = 7 },
			code:   ErrCodeIndexOutOfRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := base()
			tc.mutate(&snap)

			e := New(3, zeroSource{})
			err := e.Restore(snap)
			require.Error(t, err)
			require.True(t, IsRestoreError(err))

			var re *RestoreError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tc.code, re.Code)

			// Rejection leaves the engine untouched.
			_, ok := e.Current()
			assert.False(t, ok)
			assert.Equal(t, 0, e.HistorySize())
		})
	}
}

func TestEngine_RestoreFailureFallsBackToColdStart(t *testing.T) {
	snap := func() Snapshot {
		src := New(3, zeroSource{})
		completeOp(t, src, IntentNewRandom, 0)
		s := src.Snapshot()
		s.Cursor = s.Size // corrupted: cursor > size-1
		return s
	}()

	e := New(3, zeroSource{})
	require.Error(t, e.Restore(snap))

	// Caller policy: seed fresh state instead of keeping partial state.
	_, ok := e.ColdStart()
	require.True(t, ok)
	assert.Equal(t, 1, e.HistorySize(), "fallback is a single-entry history")
}

func TestEngine_RestoredHistoryNavigates(t *testing.T) {
	src := New(3, zeroSource{})
	completeOp(t, src, IntentNewRandom, 0)    // 1
	completeOp(t, src, IntentNewRandom, 1000) // 2

	dst := New(3, zeroSource{})
	require.NoError(t, dst.Restore(src.Snapshot()))

	idx := completeOp(t, dst, IntentStepBackward, 0)
	assert.Equal(t, 1, idx, "restored history supports backward navigation")
}

func TestEngine_SnapshotIsDetached(t *testing.T) {
	e := New(3, zeroSource{})
	completeOp(t, e, IntentNewRandom, 0)

	snap := e.Snapshot()
	snap.Entries[0] = 9

	// Mutating the snapshot must not reach the live ring.
	assert.NotEqual(t, uint16(9), e.history.entries[0])
}

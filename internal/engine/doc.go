// Package engine implements the Bard's Assistant interaction core.
//
// The engine is the heart of the device - it turns debounced button
// gestures into content-selection intents, picks the next content index
// (fresh draw or history navigation), and finalizes the result after a
// simulated asynchronous delay.
//
// ARCHITECTURE:
//
// Single-Writer Tick Loop:
// All engine state is mutated from a single cooperative tick loop. Every
// tick the host updates each Button, translates qualifying gestures into
// intents, and drives at most one in-flight operation. This ensures:
//   - Predictable gesture-to-intent ordering
//   - Reproducible selection sequences given a fixed random source
//   - Simple reasoning about the history cursor
//
// Two-Phase Operations:
// A selection is Begin()'d and then Poll()'d to completion. Poll suspends
// by returning false rather than blocking, so the host can show a busy
// indication while the (future) render/fetch step runs. History is mutated
// only at the single completion point inside Poll, never at request time.
//
// CRITICAL PATTERNS:
//
// Tick Arithmetic:
// All elapsed-time comparisons use wraparound-safe Ticks arithmetic. The
// tick counter is expected to wrap after a long uptime; NEVER compare two
// Ticks values with < or > directly.
//
// Owned Aggregate:
// Deck, history, current index, and the in-flight operation live inside an
// Engine value passed explicitly to callers. No package-level mutable state.
package engine

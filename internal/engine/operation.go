package engine

// WorkLatency is the simulated duration of one selection operation. It
// models a future asynchronous render/fetch step without blocking the tick
// loop: Poll reports false until this many ticks have elapsed since Begin.
const WorkLatency Ticks = 800

// Intent is a user-driven request to change the displayed content.
type Intent int

const (
	// IntentNone means no request.
	IntentNone Intent = iota
	// IntentNewRandom requests a fresh draw from the shuffle deck.
	IntentNewRandom
	// IntentStepForward requests the next history entry, or a fresh draw
	// when already at the newest entry (or when history is empty).
	IntentStepForward
	// IntentStepBackward requests the previous history entry.
	IntentStepBackward
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case IntentNewRandom:
		return "NewRandom"
	case IntentStepForward:
		return "StepForward"
	case IntentStepBackward:
		return "StepBackward"
	default:
		return "None"
	}
}

type phase int

const (
	phaseIdle phase = iota
	phaseWaiting
)

// operation is the transient per-request state of one selection. It is
// created by Begin, destroyed (zeroed) on completion or rejection, and
// owned exclusively by the engine.
type operation struct {
	intent    Intent
	phase     phase
	target    uint16 // index to apply on completion
	isNew     bool   // fresh draw vs history replay
	startedAt Ticks
}

// Begin starts a selection operation for the given intent.
//
// Acceptance rules:
//   - NewRandom: always accepted (unless zero content is configured).
//   - StepBackward: rejected when history is empty or the cursor is
//     already at the oldest entry. Otherwise the cursor moves back one and
//     the entry there becomes the target.
//   - StepForward: with empty history, behaves exactly like NewRandom.
//     Below the newest entry, the cursor moves forward one (pure
//     navigation). At the newest entry, behaves like NewRandom.
//
// A rejected intent mutates nothing; the caller receives false and must
// not change any outward-facing application mode. Begin while a previous
// operation is still Waiting is rejected; hosts are expected to gate
// intents on their own busy mode.
func (e *Engine) Begin(intent Intent, now Ticks) bool {
	if e.op.phase == phaseWaiting {
		return false
	}
	if e.count == 0 {
		return false
	}

	switch intent {
	case IntentNewRandom:
		e.startFresh(intent, now)
		return true

	case IntentStepBackward:
		if e.history.size == 0 || e.history.cursor == 0 {
			return false
		}
		e.history.cursor--
		target, ok := e.history.At(e.history.cursor)
		if !ok {
			// Unreachable while the cursor invariant holds.
			e.history.cursor++
			return false
		}
		e.op = operation{
			intent:    intent,
			phase:     phaseWaiting,
			target:    target,
			startedAt: now,
		}
		return true

	case IntentStepForward:
		if e.history.size == 0 {
			// Nothing to step forward from: treat as a fresh draw.
			e.startFresh(intent, now)
			return true
		}
		if e.history.cursor < e.history.size-1 {
			e.history.cursor++
			target, ok := e.history.At(e.history.cursor)
			if !ok {
				e.history.cursor--
				return false
			}
			e.op = operation{
				intent:    intent,
				phase:     phaseWaiting,
				target:    target,
				startedAt: now,
			}
			return true
		}
		// Already at the newest entry: forward means a fresh draw.
		e.startFresh(intent, now)
		return true

	default:
		return false
	}
}

// startFresh draws a new index from the deck and stages it as new content.
func (e *Engine) startFresh(intent Intent, now Ticks) {
	e.op = operation{
		intent:    intent,
		phase:     phaseWaiting,
		target:    e.deck.Draw(),
		isNew:     true,
		startedAt: now,
	}
}

// Poll advances the in-flight operation and returns true exactly once when
// it completes. Call once per tick; Poll never blocks.
//
// On completion the target becomes the current index, and - only for fresh
// draws - is appended to history. Navigation completions do not append:
// the cursor already points at the correct existing entry.
func (e *Engine) Poll(now Ticks) bool {
	if e.op.phase != phaseWaiting {
		return false
	}

	if Elapsed(now, e.op.startedAt) < WorkLatency {
		return false
	}

	e.current = e.op.target
	e.hasCurrent = true

	if e.op.isNew {
		e.history.Append(e.current)
	}

	e.op = operation{}
	return true
}

// Busy reports whether an operation is in flight.
func (e *Engine) Busy() bool {
	return e.op.phase == phaseWaiting
}

// Pending returns the staged target index while an operation is in flight.
// Hosts use it for the operation-start render frame.
func (e *Engine) Pending() (int, bool) {
	if e.op.phase != phaseWaiting {
		return 0, false
	}
	return int(e.op.target), true
}

// PendingIntent returns the intent of the in-flight operation.
func (e *Engine) PendingIntent() Intent {
	if e.op.phase != phaseWaiting {
		return IntentNone
	}
	return e.op.intent
}

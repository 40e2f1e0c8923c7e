package engine

// Debounce and gesture classification thresholds. These are configuration
// constants shared by every button, not per-instance state.
const (
	// DebounceWindow is the minimum stable-signal duration before a raw
	// reading is trusted. Every bounce restarts the window.
	DebounceWindow Ticks = 30

	// HoldThreshold is the minimum press duration before a press is
	// classified as a hold rather than a tap.
	HoldThreshold Ticks = 800
)

// ButtonState is the debounced state of a physical input.
type ButtonState int

const (
	// StateReleased means the debounced signal reads "not pressed".
	StateReleased ButtonState = iota
	// StatePressed means the debounced signal reads "pressed".
	StatePressed
)

// Gesture is the classified user intent for one press-release cycle.
//
// A cycle emits exactly one Tap, OR one HoldStart followed later by exactly
// one HoldEnd - never both Tap and Hold for the same physical press.
type Gesture int

const (
	// GestureNone means no qualifying gesture this tick.
	GestureNone Gesture = iota
	// GestureTap is a press-release shorter than HoldThreshold.
	GestureTap
	// GestureHoldStart fires once when a press crosses HoldThreshold.
	GestureHoldStart
	// GestureHoldEnd fires on release of a press that already emitted
	// GestureHoldStart.
	GestureHoldEnd
)

// String returns the gesture name for logging.
func (g Gesture) String() string {
	switch g {
	case GestureTap:
		return "Tap"
	case GestureHoldStart:
		return "HoldStart"
	case GestureHoldEnd:
		return "HoldEnd"
	default:
		return "None"
	}
}

// Button converts a raw noisy boolean signal into a stable state and
// classifies gestures. One Button exists per physical input and lives for
// the process lifetime; only Update mutates it.
//
// The raw level passed to Update is true when the input reads "pressed".
// Electrical polarity (active-low wiring, pull-ups) is the host's concern.
type Button struct {
	pin int // opaque identity, used only for logging

	lastRaw    bool  // last sampled raw level
	state      ButtonState
	lastChange Ticks // debounce window anchor
	pressedAt  Ticks // start of the current press
	holdFired  bool  // prevents duplicate HoldStart, distinguishes Tap from HoldEnd
}

// NewButton initializes a button to a known baseline: the current raw level
// is recorded, the debounce window restarts at `now`, and the debounced
// state starts Released so the first real press is observed normally.
func NewButton(pin int, raw bool, now Ticks) *Button {
	return &Button{
		pin:        pin,
		lastRaw:    raw,
		state:      StateReleased,
		lastChange: now,
	}
}

// Pin returns the button's input identity.
func (b *Button) Pin() int {
	return b.pin
}

// State returns the current debounced state.
func (b *Button) State() ButtonState {
	return b.state
}

// Update samples one raw reading and returns the gesture, if any, for this
// tick. Call once per tick.
//
// Classification:
//   - Any raw change restarts the settle window and emits None.
//   - A reading stable for less than DebounceWindow emits None.
//   - Released->Pressed records the press start; tap vs hold is decided
//     later, so this transition emits None.
//   - Pressed->Released emits HoldEnd if HoldStart already fired, else Tap.
//   - A press still held past HoldThreshold emits HoldStart exactly once.
//
// Pure function of its inputs and time: there are no error states.
func (b *Button) Update(raw bool, now Ticks) Gesture {
	if raw != b.lastRaw {
		// Unstable signal: restart the settle window on every bounce.
		b.lastChange = now
		b.lastRaw = raw
		return GestureNone
	}

	if Elapsed(now, b.lastChange) < DebounceWindow {
		return GestureNone
	}

	// From here on the raw reading is trusted.
	pressed := raw

	if pressed && b.state == StateReleased {
		b.state = StatePressed
		b.pressedAt = now
		b.holdFired = false
		return GestureNone
	}

	if !pressed && b.state == StatePressed {
		b.state = StateReleased
		if b.holdFired {
			return GestureHoldEnd
		}
		return GestureTap
	}

	if b.state == StatePressed && !b.holdFired {
		if Elapsed(now, b.pressedAt) >= HoldThreshold {
			b.holdFired = true
			return GestureHoldStart
		}
	}

	return GestureNone
}

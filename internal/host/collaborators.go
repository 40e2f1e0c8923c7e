package host

import (
	"context"

	"github.com/brownbearcreative/bard/internal/engine"
)

// Mode is the coarse device mode reported to the status indicator.
type Mode int

const (
	// ModeBooting is the boot splash window right after power-on or wake.
	ModeBooting Mode = iota
	// ModeIdle means the device is ready for button input.
	ModeIdle
	// ModeBusy means a selection operation is in flight.
	ModeBusy
	// ModeArmedForSleep means a sleep hold is in progress; releasing the
	// button will enter deep sleep.
	ModeArmedForSleep
)

// String returns the mode name for logging.
func (m Mode) String() string {
	switch m {
	case ModeBooting:
		return "Booting"
	case ModeIdle:
		return "Idle"
	case ModeBusy:
		return "Busy"
	case ModeArmedForSleep:
		return "ArmedForSleep"
	default:
		return "Unknown"
	}
}

// Role identifies which physical button a gesture came from.
type Role int

const (
	RoleSleep Role = iota
	RoleRandom
	RoleNext
	RolePrev
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case RoleSleep:
		return "Sleep"
	case RoleRandom:
		return "Random"
	case RoleNext:
		return "Next"
	case RolePrev:
		return "Prev"
	default:
		return "Unknown"
	}
}

// roleOrder is the fixed per-tick evaluation order.
var roleOrder = [...]Role{RoleSleep, RoleRandom, RoleNext, RolePrev}

// Levels carries one raw sample per button role; true means "pressed".
// Electrical polarity is resolved by whoever samples the hardware.
type Levels map[Role]bool

// RenderReason tells the renderer why content is being presented. The
// engine never hardcodes presentation text; reasons are passed through
// opaquely.
type RenderReason int

const (
	// ReasonBoot is the initial frame of a cold start.
	ReasonBoot RenderReason = iota
	// ReasonWake is the restored frame after waking from deep sleep.
	ReasonWake
	// ReasonOperationStart is shown when a selection begins.
	ReasonOperationStart
	// ReasonOperationComplete is shown when a selection finalizes.
	ReasonOperationComplete
	// ReasonUserTap is reserved for tap-to-refresh display UX.
	ReasonUserTap
)

// String returns the reason name for logging.
func (r RenderReason) String() string {
	switch r {
	case ReasonBoot:
		return "Boot"
	case ReasonWake:
		return "Wake"
	case ReasonOperationStart:
		return "OperationStart"
	case ReasonOperationComplete:
		return "OperationComplete"
	case ReasonUserTap:
		return "UserTap"
	default:
		return "Unknown"
	}
}

// Renderer presents content to the user. The host resolves indices to
// catalog lines before calling it; everything else about presentation is
// the renderer's business.
type Renderer interface {
	// Title renders the boot banner once per boot.
	Title()

	// Render presents one content line.
	Render(index int, line string, intent engine.Intent, reason RenderReason)

	// Unavailable renders the "nothing available" state used when zero
	// content is configured or an index cannot be resolved.
	Unavailable()
}

// StatusIndicator receives coarse mode signals (the device's RGB LED).
type StatusIndicator interface {
	SetMode(Mode)

	// Off extinguishes the indicator; called right before deep sleep.
	Off()
}

// Blobs is the narrow persistence surface the host needs: a key/value
// blob store surviving sleep. Implemented by *store.Store and by the
// in-memory fake in tests.
type Blobs interface {
	Write(ctx context.Context, namespace, key string, value []byte) error
	Read(ctx context.Context, namespace, key string) ([]byte, bool, error)
}

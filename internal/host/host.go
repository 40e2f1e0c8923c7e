// Package host wires the interaction engine to its external collaborators:
// buttons, renderer, status indicator, and the persistent save slot.
//
// The host owns the device-level mode machine (Booting -> Idle <-> Busy,
// with an armed-for-sleep overlay) and the sleep/wake choreography. It is
// driven by Tick from a single goroutine; nothing here blocks.
package host

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brownbearcreative/bard/internal/content"
	"github.com/brownbearcreative/bard/internal/engine"
	"github.com/brownbearcreative/bard/internal/store"
)

// Options are the host-level tunables (see internal/config).
type Options struct {
	// BootSplash is how long ModeBooting is held before input is accepted.
	BootSplash engine.Ticks

	// IgnoreInput suppresses gestures for this long after Start, so a
	// button held through reset or startup jitter cannot trigger work.
	IgnoreInput engine.Ticks

	// Pins are the input identities per role, used only for logging.
	Pins map[Role]int
}

// Host drives one device: it polls buttons, translates gestures into
// engine intents, reports mode changes, and persists state across sleep.
type Host struct {
	eng      *engine.Engine
	catalog  *content.Catalog
	renderer Renderer
	status   StatusIndicator
	blobs    Blobs
	log      *slog.Logger

	buttons map[Role]*engine.Button
	opts    Options

	// session correlates one boot's log records and save-slot writes.
	session uuid.UUID

	mode          Mode
	modeEnteredAt engine.Ticks
	ignoreUntil   engine.Ticks
	sleepArmed    bool

	// The slept marker is cleared only after the boot splash, so a reset
	// right after wake cannot misclassify the next boot.
	needsSleptClear bool
}

// New assembles a host. The engine, catalog, and collaborators are owned
// by the caller and must outlive the host.
func New(
	eng *engine.Engine,
	catalog *content.Catalog,
	renderer Renderer,
	status StatusIndicator,
	blobs Blobs,
	log *slog.Logger,
	opts Options,
) *Host {
	return &Host{
		eng:      eng,
		catalog:  catalog,
		renderer: renderer,
		status:   status,
		blobs:    blobs,
		log:      log,
		buttons:  make(map[Role]*engine.Button, len(roleOrder)),
		opts:     opts,
	}
}

// Session returns this boot's correlation token.
func (h *Host) Session() uuid.UUID {
	return h.session
}

// Mode returns the current device mode.
func (h *Host) Mode() Mode {
	if h.sleepArmed {
		return ModeArmedForSleep
	}
	return h.mode
}

// Start initializes the device for this boot: classifies cold boot vs
// wake-from-sleep, baselines every button from its current raw level,
// renders the title, and either restores the persisted state or seeds
// fresh state.
func (h *Host) Start(ctx context.Context, raw Levels, now engine.Ticks) error {
	h.session = uuid.New()
	h.log = h.log.With("session", h.session.String())

	woke := h.readSleptMarker(ctx)
	h.needsSleptClear = woke

	if err := h.blobs.Write(ctx, store.Namespace, store.KeySession, []byte(h.session.String())); err != nil {
		return err
	}

	for _, role := range roleOrder {
		h.buttons[role] = engine.NewButton(h.opts.Pins[role], raw[role], now)
	}

	h.ignoreUntil = now + h.opts.IgnoreInput
	h.enterMode(ModeBooting, now)
	h.renderer.Title()

	if woke {
		if h.restore(ctx) {
			h.log.Info("woke from sleep, state restored")
			h.renderCurrent(engine.IntentNone, ReasonWake)
			return nil
		}
		h.log.Warn("woke from sleep but restore failed, falling back to cold start")
	}

	if _, ok := h.eng.ColdStart(); ok {
		h.log.Info("cold start", "items", h.eng.Count())
		h.renderCurrent(engine.IntentNewRandom, ReasonBoot)
	} else {
		h.log.Warn("no content configured")
		h.renderer.Unavailable()
	}
	return nil
}

// Tick runs one polling cycle: every button is updated in a fixed order,
// qualifying gestures are routed, and the mode machine advances. Returns
// true when the device should enter deep sleep; by then state has already
// been persisted.
func (h *Host) Tick(ctx context.Context, raw Levels, now engine.Ticks) bool {
	for _, role := range roleOrder {
		gesture := h.buttons[role].Update(raw[role], now)
		if gesture == engine.GestureNone {
			continue
		}
		if h.handleGesture(ctx, role, gesture, now) {
			return true
		}
	}

	switch h.mode {
	case ModeBooting:
		if engine.Elapsed(now, h.modeEnteredAt) >= h.opts.BootSplash {
			h.clearSleptMarker(ctx)
			h.enterMode(ModeIdle, now)
		}

	case ModeBusy:
		intent := h.eng.PendingIntent()
		if h.eng.Poll(now) {
			h.renderCurrent(intent, ReasonOperationComplete)
			h.enterMode(ModeIdle, now)
		}
	}

	return false
}

// handleGesture applies app-level behavior for one debounced gesture.
// Returns true when the gesture triggered deep sleep.
func (h *Host) handleGesture(ctx context.Context, role Role, gesture engine.Gesture, now engine.Ticks) bool {
	// Ignore all gestures for a short window after boot/wake.
	if engine.Before(now, h.ignoreUntil) {
		h.log.Debug("gesture suppressed in ignore window", "role", role.String(), "gesture", gesture.String())
		h.disarmSleep()
		return false
	}

	// The sleep button is special: honored in any mode.
	if role == RoleSleep {
		switch gesture {
		case engine.GestureHoldStart:
			h.sleepArmed = true
			h.status.SetMode(ModeArmedForSleep)
			h.log.Info("sleep armed, release to sleep")
		case engine.GestureHoldEnd:
			if h.sleepArmed {
				h.sleepArmed = false
				h.log.Info("entering deep sleep")
				h.persistForSleep(ctx)
				h.status.Off()
				return true
			}
		case engine.GestureTap:
			h.disarmSleep()
		}
		return false
	}

	// Random/Next/Prev only start work from Idle.
	if h.mode != ModeIdle || gesture != engine.GestureTap {
		return false
	}

	var intent engine.Intent
	switch role {
	case RoleRandom:
		intent = engine.IntentNewRandom
	case RoleNext:
		intent = engine.IntentStepForward
	case RolePrev:
		intent = engine.IntentStepBackward
	default:
		return false
	}

	if !h.eng.Begin(intent, now) {
		// Rejected intent: nothing to do, outward mode must not change.
		h.log.Info("intent rejected", "intent", intent.String(),
			"historySize", h.eng.HistorySize(), "cursor", h.eng.HistoryCursor())
		return false
	}

	h.enterMode(ModeBusy, now)
	if idx, ok := h.eng.Pending(); ok {
		h.renderIndex(idx, intent, ReasonOperationStart)
	}
	return false
}

// enterMode switches the device mode and reports it to the status
// indicator.
func (h *Host) enterMode(mode Mode, now engine.Ticks) {
	h.mode = mode
	h.modeEnteredAt = now
	h.status.SetMode(mode)
}

// disarmSleep cancels a pending sleep arming and restores the status
// indication for the current mode.
func (h *Host) disarmSleep() {
	if !h.sleepArmed {
		return
	}
	h.sleepArmed = false
	h.status.SetMode(h.mode)
	h.log.Info("sleep disarmed")
}

// persistForSleep writes the engine snapshot and the slept marker. Persist
// failures are logged and swallowed: losing a save slot degrades to a cold
// start on the next boot, which is always safe.
func (h *Host) persistForSleep(ctx context.Context) {
	blob, err := store.MarshalSnapshot(h.eng.Snapshot())
	if err != nil {
		h.log.Error("snapshot marshal failed", "error", err)
		return
	}
	if err := h.blobs.Write(ctx, store.Namespace, store.KeySnapshot, blob); err != nil {
		h.log.Error("snapshot persist failed", "error", err)
		return
	}
	if err := h.blobs.Write(ctx, store.Namespace, store.KeySlept, []byte{1}); err != nil {
		h.log.Error("slept marker persist failed", "error", err)
	}
}

// restore tries to rehydrate the engine from the persisted snapshot.
// Any failure reports false; the caller cold-starts instead.
func (h *Host) restore(ctx context.Context) bool {
	blob, ok, err := h.blobs.Read(ctx, store.Namespace, store.KeySnapshot)
	if err != nil {
		h.log.Error("snapshot read failed", "error", err)
		return false
	}
	if !ok {
		h.log.Warn("slept marker set but no snapshot present")
		return false
	}

	snap, err := store.UnmarshalSnapshot(blob)
	if err != nil {
		h.log.Warn("snapshot blob rejected", "error", err)
		return false
	}

	if err := h.eng.Restore(snap); err != nil {
		h.log.Warn("snapshot validation rejected", "error", err)
		return false
	}
	return true
}

// readSleptMarker classifies this boot as wake-from-sleep.
func (h *Host) readSleptMarker(ctx context.Context) bool {
	blob, ok, err := h.blobs.Read(ctx, store.Namespace, store.KeySlept)
	if err != nil {
		h.log.Error("slept marker read failed", "error", err)
		return false
	}
	return ok && len(blob) == 1 && blob[0] == 1
}

// clearSleptMarker resets the wake classification once the device is
// safely running.
func (h *Host) clearSleptMarker(ctx context.Context) {
	if !h.needsSleptClear {
		return
	}
	if err := h.blobs.Write(ctx, store.Namespace, store.KeySlept, []byte{0}); err != nil {
		h.log.Error("slept marker clear failed", "error", err)
		return
	}
	h.needsSleptClear = false
}

// renderCurrent renders the engine's current index.
func (h *Host) renderCurrent(intent engine.Intent, reason RenderReason) {
	idx, ok := h.eng.Current()
	if !ok {
		h.renderer.Unavailable()
		return
	}
	h.renderIndex(idx, intent, reason)
}

// renderIndex resolves an index to its catalog line and hands it to the
// renderer.
func (h *Host) renderIndex(idx int, intent engine.Intent, reason RenderReason) {
	line, ok := h.catalog.Line(idx)
	if !ok {
		h.log.Warn("index outside catalog", "index", idx)
		h.renderer.Unavailable()
		return
	}
	h.renderer.Render(idx, line, intent, reason)
}

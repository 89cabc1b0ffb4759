// Package engine is the key-event router: it tracks modifier, symbol-mode,
// and navigation-mode state, consults the layer tables, and decides exactly
// one resulting action for every key-down and key-up event, in a fixed
// precedence order among simultaneously active modes.
//
// The host delivers events serially on one logical thread; every handler
// runs to completion before the next event, and deferred work (long-press
// thresholds, multi-tap windows) fires through the same serialized
// scheduler. State mutations are applied before any dependent side effect
// is dispatched, so no routing decision ever observes stale mode state.
package engine

import (
	"time"

	"github.com/arlem/hardkey/internal/config"
	"github.com/arlem/hardkey/internal/engine/longpress"
	"github.com/arlem/hardkey/internal/engine/multitap"
	"github.com/arlem/hardkey/internal/event"
	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/keymap"
	"github.com/arlem/hardkey/internal/logger"
	"github.com/arlem/hardkey/internal/modifier"
	"github.com/arlem/hardkey/internal/sched"
	"github.com/arlem/hardkey/internal/surface"
	"github.com/arlem/hardkey/internal/types"
)

// Result is the router's verdict for one event.
type Result struct {
	// Consumed means the engine claimed the event; a false value asks the
	// host to apply its default handling.
	Consumed bool
}

var (
	consumed    = Result{Consumed: true}
	passthrough = Result{}
)

// Config holds dependencies for the Engine.
type Config struct {
	Surface   surface.TextSurface
	Layout    *keymap.Layout
	Scheduler sched.Scheduler
	Events    *event.Manager

	LongPressTimeout time.Duration // Clamped to the supported range
	DoubleTapWindow  time.Duration
	MultiTapWindow   time.Duration
}

// Engine routes key events. It exclusively owns all global mode state; the
// per-key transient state lives in the long-press resolver and the
// multi-tap cycler it owns.
type Engine struct {
	surface surface.TextSurface
	layout  *keymap.Layout
	events  *event.Manager

	shift *modifier.Tracker
	ctrl  *modifier.Tracker
	alt   *modifier.Tracker

	symbolMode      bool
	navActive       bool
	editableFocused bool

	resolver *longpress.Resolver
	cycler   *multitap.Cycler
}

// New creates an Engine.
func New(cfg Config) *Engine {
	if cfg.Surface == nil || cfg.Scheduler == nil || cfg.Events == nil {
		panic("engine.New: Missing required dependencies in Config")
	}
	if cfg.Layout == nil {
		cfg.Layout = keymap.NewLayout()
	}
	if cfg.LongPressTimeout <= 0 {
		cfg.LongPressTimeout = config.DefaultLongPressTimeout
	}
	if cfg.LongPressTimeout < config.MinLongPressTimeout {
		cfg.LongPressTimeout = config.MinLongPressTimeout
	}
	if cfg.LongPressTimeout > config.MaxLongPressTimeout {
		cfg.LongPressTimeout = config.MaxLongPressTimeout
	}
	if cfg.DoubleTapWindow <= 0 {
		cfg.DoubleTapWindow = config.DefaultDoubleTapWindow
	}
	if cfg.MultiTapWindow <= 0 {
		cfg.MultiTapWindow = config.DefaultMultiTapWindow
	}

	e := &Engine{
		surface: cfg.Surface,
		layout:  cfg.Layout,
		events:  cfg.Events,
		shift:   modifier.NewTracker(modifier.Shift, cfg.DoubleTapWindow),
		ctrl:    modifier.NewTracker(modifier.Ctrl, cfg.DoubleTapWindow),
		alt:     modifier.NewTracker(modifier.Alt, cfg.DoubleTapWindow),
	}
	e.resolver = longpress.NewResolver(cfg.Scheduler, cfg.LongPressTimeout, e.onLongPressFire)
	e.cycler = multitap.NewCycler(cfg.Scheduler, cfg.MultiTapWindow)
	return e
}

// HandleKey routes one physical key transition and returns the verdict.
func (e *Engine) HandleKey(ev keyev.Event) Result {
	if ev.IsDown() {
		return e.handleDown(ev)
	}
	return e.handleUp(ev)
}

// SetEditableFocused updates the host focus signal. Navigation mode exits
// only when a genuinely editable surface gains focus; the host is
// responsible for filtering out input-adjacent UI before asserting this.
func (e *Engine) SetEditableFocused(focused bool) {
	if focused == e.editableFocused {
		return
	}
	e.editableFocused = focused
	if focused && e.navActive {
		logger.Debugf("Engine: editable surface focused, exiting nav mode")
		e.exitNav(false)
	}
}

// Snapshot returns an immutable view of the global mode state.
func (e *Engine) Snapshot() types.Snapshot {
	return types.Snapshot{
		Shift:      e.shift.DisplayState(),
		Ctrl:       e.ctrl.DisplayState(),
		Alt:        e.alt.DisplayState(),
		CapsLock:   e.shift.CapsLock(),
		SymbolMode: e.symbolMode,
		NavMode:    e.navActive,
	}
}

// NavActive reports whether navigation mode is active.
func (e *Engine) NavActive() bool {
	return e.navActive
}

// PendingTimers returns the number of long-press timers in flight.
func (e *Engine) PendingTimers() int {
	return e.resolver.PendingCount()
}

// --- Key-down routing ---

func (e *Engine) handleDown(ev keyev.Event) Result {
	// Navigation-mode exit via Back comes first. Ctrl-tap exit and
	// double-tap entry are folded into the modifier step below so the latch
	// and the mode transition happen inside one event.
	if e.navActive && ev.Code == keyev.CodeBack {
		e.exitNav(false)
		return consumed
	}

	// The modifier keys themselves.
	if keyev.IsModifier(ev.Code) {
		return e.handleModifierDown(ev)
	}

	// The symbol-mode toggle key, consumed unconditionally.
	if ev.Code == keyev.CodeSym {
		e.symbolMode = !e.symbolMode
		e.events.Dispatch(event.TypeSymbolModeChanged, event.SymbolModeData{Active: e.symbolMode})
		e.emitSnapshot()
		return consumed
	}

	// Any other key-down finalizes an open multi-tap cycle on a different
	// key before routing proceeds.
	e.cycler.NoteOtherKey(ev.Code)

	ctrlActive := e.ctrl.EffectiveActive(ev.Mods.Has(keyev.ModCtrl))
	altActive := e.alt.EffectiveActive(ev.Mods.Has(keyev.ModAlt))
	upper := e.shift.EffectiveActive(ev.Mods.Has(keyev.ModShift))

	// Symbol-mode dispatch, bypassed whenever Ctrl is effectively active:
	// Ctrl's editing commands are never swallowed by symbol mode.
	if e.symbolMode && !ctrlActive {
		if out, ok := e.layout.SymbolFor(ev.Code); ok {
			e.surface.InsertText(out)
			return consumed
		}
		// Unbound in the symbol layer: fall through.
	}

	// Ctrl-shortcut dispatch. Enter and Back fall through to default
	// handling even under Ctrl.
	if ctrlActive && ev.Code != keyev.CodeEnter && ev.Code != keyev.CodeBack {
		return e.dispatchCtrl(ev)
	}

	// Explicit Alt dispatch commits the alternate directly.
	if altActive {
		if out, ok := e.layout.AltFor(ev.Code); ok {
			e.surface.InsertText(out)
			if e.alt.ConsumeOneShot() {
				e.emitSnapshot()
			}
			return consumed
		}
		// No alternate mapping: fall through to normal handling.
	}

	base, printable := keyev.BaseRune(ev.Code)
	if !printable {
		// Unhandled special keys go back to the host.
		return passthrough
	}

	// Dual-mapped key: commit the base immediately, arm the long-press
	// substitution.
	if alt, ok := e.layout.AltFor(ev.Code); ok {
		text := caseText(base, upper)
		e.surface.InsertText(text)
		e.resolver.Begin(ev.Code, text, alt)
		e.consumeShiftOneShot()
		return consumed
	}

	// Multi-tap cycle.
	if variants, ok := e.layout.VariantsFor(ev.Code); ok {
		tap := e.cycler.OnTap(ev.Code, variants, upper)
		if tap.Retract > 0 {
			e.surface.ReplaceBefore(tap.Retract, tap.Text)
		} else {
			e.surface.InsertText(tap.Text)
		}
		e.consumeShiftOneShot()
		return consumed
	}

	// Plain printable insert; shift one-shot, shift held, latch, and caps
	// lock all force the case the same way.
	e.surface.InsertText(caseText(base, upper))
	e.consumeShiftOneShot()
	return consumed
}

func (e *Engine) handleModifierDown(ev keyev.Event) Result {
	t := e.trackerFor(ev.Code)
	eff := t.OnPress(ev.Time)

	if t == e.ctrl {
		if eff.Disarmed && e.navActive {
			// Ctrl tap while navigating: the tap disarmed the latch, the
			// exit transition follows within the same event, and the host
			// is asked to hide any transient input surface.
			e.exitNav(true)
		} else if eff.Promoted && !e.editableFocused && !e.navActive {
			e.enterNav()
		}
	}

	if eff.CapsToggled {
		e.events.Dispatch(event.TypeCapsLockChanged, event.CapsLockData{Active: e.shift.CapsLock()})
	}
	if eff.Changed {
		// An open multi-tap cycle re-reads its case on the next tap.
		e.cycler.NoteModifierChange()
		e.emitSnapshot()
	}

	// Self-consuming only for the toggle; ordinary presses pass through so
	// native modifier semantics still apply.
	if eff.Promoted || eff.Disarmed || eff.CapsToggled {
		return consumed
	}
	return passthrough
}

// --- Key-up routing ---

func (e *Engine) handleUp(ev keyev.Event) Result {
	if keyev.IsModifier(ev.Code) {
		t := e.trackerFor(ev.Code)
		if eff := t.OnRelease(ev.Time); eff.Changed {
			e.cycler.NoteModifierChange()
			e.emitSnapshot()
		}
		return passthrough
	}
	if ev.Code == keyev.CodeSym {
		return consumed
	}

	// Long-press bookkeeping: a release before the threshold cancels the
	// timer and the base stands; a release after firing suppresses normal
	// key-up handling for this press.
	pending := e.resolver.Pending(ev.Code)
	if fired := e.resolver.OnRelease(ev.Code); fired || pending {
		return consumed
	}

	// Multi-tap window runs from this release to the next press.
	if e.cycler.Active() && e.cycler.ActiveCode() == ev.Code {
		e.cycler.OnRelease(ev.Code)
		return consumed
	}

	return passthrough
}

// --- Shared helpers ---

func (e *Engine) trackerFor(code keyev.Code) *modifier.Tracker {
	switch code {
	case keyev.CodeShift:
		return e.shift
	case keyev.CodeCtrl:
		return e.ctrl
	default:
		return e.alt
	}
}

// onLongPressFire retracts the committed base and substitutes the alternate.
func (e *Engine) onLongPressFire(code keyev.Code, retract int, alternate string) {
	e.surface.ReplaceBefore(retract, alternate)
}

func (e *Engine) consumeShiftOneShot() {
	if e.shift.ConsumeOneShot() {
		e.emitSnapshot()
	}
}

func (e *Engine) emitSnapshot() {
	e.events.Dispatch(event.TypeSnapshotUpdated, event.SnapshotData{Snapshot: e.Snapshot()})
}

func caseText(r rune, upper bool) string {
	if upper && r >= 'a' && r <= 'z' {
		return string(r - 'a' + 'A')
	}
	return string(r)
}

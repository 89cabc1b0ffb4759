// Package modifier implements the per-modifier state machine for Shift,
// Ctrl, and Alt: Off / OneShot / Latch armed state driven by tap and
// double-tap timing, plus independent physically-held bookkeeping and Caps
// Lock on the Shift tracker.
//
// All transitions are total functions of current state and event timing;
// nothing here can fail. Each transition returns an Effect struct that the
// router consumes, instead of invoking callbacks across layers.
package modifier

import (
	"time"

	"github.com/arlem/hardkey/internal/types"
)

// ID identifies one of the tracked modifiers.
type ID int

const (
	Shift ID = iota
	Ctrl
	Alt
)

// String returns the modifier name.
func (id ID) String() string {
	switch id {
	case Shift:
		return "Shift"
	case Ctrl:
		return "Ctrl"
	case Alt:
		return "Alt"
	default:
		return "Unknown"
	}
}

// Mode is the armed state of a modifier. The physically-held indicator is
// tracked separately; see Tracker.Held.
type Mode int

const (
	// Off means the modifier is not armed.
	Off Mode = iota
	// OneShot means the modifier applies to exactly the next qualifying key
	// use, then auto-clears.
	OneShot
	// Latch means the modifier stays active until explicitly toggled off,
	// independent of physical key state.
	Latch
)

// Source tags who owns a Ctrl latch, so navigation-mode latches are never
// silently disarmed by ordinary key use.
type Source int

const (
	SourceUser Source = iota
	SourceNav
)

// Effect reports what a transition did. The router uses it to decide
// snapshot dispatch and nav-mode entry.
type Effect struct {
	Changed     bool // Any state the snapshot reflects changed
	Promoted    bool // This press promoted the modifier to Latch
	Disarmed    bool // This press disarmed a Latch
	CapsToggled bool // Caps lock flipped (Shift tracker only)
}

// Tracker is the state machine for a single modifier.
type Tracker struct {
	id     ID
	mode   Mode
	source Source

	physicallyHeld bool
	lastRelease    time.Time
	// releaseQualified records whether the most recent release happened with
	// a one-shot still armed; only such releases count toward double-tap
	// promotion.
	releaseQualified bool

	capsLock bool // Shift only

	doubleTapWindow time.Duration
}

// NewTracker creates a tracker for the given modifier.
func NewTracker(id ID, doubleTapWindow time.Duration) *Tracker {
	return &Tracker{
		id:              id,
		doubleTapWindow: doubleTapWindow,
	}
}

// OnPress applies a physical key-down of this modifier. Auto-repeat presses
// while the key is already held are ignored.
func (t *Tracker) OnPress(now time.Time) Effect {
	if t.physicallyHeld {
		return Effect{}
	}
	t.physicallyHeld = true

	withinWindow := !t.lastRelease.IsZero() && now.Sub(t.lastRelease) <= t.doubleTapWindow

	switch t.mode {
	case Latch:
		// Single tap disarms. A caps-lock latch on Shift also clears caps,
		// and the release after this press will not qualify for promotion,
		// so a quick follow-up tap cannot flip caps straight back on.
		t.mode = Off
		t.source = SourceUser
		eff := Effect{Changed: true, Disarmed: true}
		if t.id == Shift && t.capsLock {
			t.capsLock = false
			eff.CapsToggled = true
		}
		return eff

	case OneShot:
		if withinWindow && t.releaseQualified {
			return t.promote()
		}
		// A slow second tap reads as an ordinary first tap: the stale
		// one-shot is cancelled without use and this press arms a fresh one.
		return Effect{Changed: true}

	default: // Off
		if withinWindow && t.releaseQualified {
			return t.promote()
		}
		t.mode = OneShot
		return Effect{Changed: true}
	}
}

// promote escalates to Latch; on Shift the latch is Caps Lock.
func (t *Tracker) promote() Effect {
	t.mode = Latch
	t.source = SourceUser
	eff := Effect{Changed: true, Promoted: true}
	if t.id == Shift {
		t.capsLock = true
		eff.CapsToggled = true
	}
	return eff
}

// OnRelease applies a physical key-up. The armed mode is unaffected by
// release alone; a one-shot is only consumed by subsequent use.
func (t *Tracker) OnRelease(now time.Time) Effect {
	if !t.physicallyHeld {
		return Effect{}
	}
	t.physicallyHeld = false
	t.lastRelease = now
	t.releaseQualified = t.mode == OneShot
	return Effect{Changed: true}
}

// ConsumeOneShot clears an armed one-shot after it shaped a key's output.
// Returns true if a one-shot was consumed. Latches are never consumed.
func (t *Tracker) ConsumeOneShot() bool {
	if t.mode != OneShot {
		return false
	}
	t.mode = Off
	t.releaseQualified = false
	return true
}

// DisarmLatch clears a latch without going through a press, used by the
// navigation-mode exit transition. Returns true if a latch was cleared.
func (t *Tracker) DisarmLatch() bool {
	if t.mode != Latch {
		return false
	}
	t.mode = Off
	t.source = SourceUser
	if t.id == Shift && t.capsLock {
		t.capsLock = false
	}
	return true
}

// SetLatchSource tags the current latch. Only meaningful while Mode() is
// Latch.
func (t *Tracker) SetLatchSource(s Source) {
	t.source = s
}

// LatchSource returns the latch ownership tag.
func (t *Tracker) LatchSource() Source {
	return t.source
}

// Mode returns the armed state.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// Held reports whether the physical key is currently depressed.
func (t *Tracker) Held() bool {
	return t.physicallyHeld
}

// CapsLock reports the caps lock state (always false for Ctrl/Alt).
func (t *Tracker) CapsLock() bool {
	return t.capsLock
}

// EffectiveActive reports whether the modifier should apply to a key event:
// physically held (either per our bookkeeping or per the event's hardware
// flag), one-shot armed, or latched.
func (t *Tracker) EffectiveActive(hwHeld bool) bool {
	return hwHeld || t.physicallyHeld || t.mode != Off
}

// DisplayState maps the tracker to its presentation state.
func (t *Tracker) DisplayState() types.DisplayState {
	switch {
	case t.mode == Latch:
		return types.DisplayLatch
	case t.physicallyHeld:
		return types.DisplayPhysical
	case t.mode == OneShot:
		return types.DisplayOneShot
	default:
		return types.DisplayOff
	}
}

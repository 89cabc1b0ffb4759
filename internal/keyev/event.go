// internal/keyev/event.go
package keyev

import (
	"strings"
	"time"
)

// Action distinguishes key-down from key-up events.
type Action int

const (
	ActionDown Action = iota
	ActionUp
)

func (a Action) String() string {
	if a == ActionUp {
		return "up"
	}
	return "down"
}

// Mod is a bitmask of hardware modifier flags reported by the host alongside
// an event. These reflect keys physically held at event time; the engine's
// own one-shot/latch state is tracked separately.
type Mod uint8

const (
	ModNone Mod = 0

	// ModShift indicates a physically held Shift.
	ModShift Mod = 1 << iota

	// ModCtrl indicates a physically held Ctrl.
	ModCtrl

	// ModAlt indicates a physically held Alt.
	ModAlt
)

// Has returns true if m contains the specified modifier flag.
func (m Mod) Has(mod Mod) bool { return m&mod != 0 }

// With returns m with the specified flag added.
func (m Mod) With(mod Mod) Mod { return m | mod }

// Without returns m with the specified flag removed.
func (m Mod) Without(mod Mod) Mod { return m &^ mod }

// String returns a representation like "Ctrl+Shift".
func (m Mod) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// Event is a single physical key transition delivered by the host.
type Event struct {
	Code   Code
	Action Action
	Mods   Mod
	Time   time.Time
}

// Down constructs a key-down event.
func Down(code Code, mods Mod, t time.Time) Event {
	return Event{Code: code, Action: ActionDown, Mods: mods, Time: t}
}

// Up constructs a key-up event.
func Up(code Code, mods Mod, t time.Time) Event {
	return Event{Code: code, Action: ActionUp, Mods: mods, Time: t}
}

// IsDown reports whether the event is a key press.
func (e Event) IsDown() bool { return e.Action == ActionDown }

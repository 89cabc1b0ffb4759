// internal/event/event.go
package event

import (
	"github.com/arlem/hardkey/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// TypeSnapshotUpdated fires after every state-affecting transition and
	// carries the fresh mode snapshot for status-indicator consumers.
	TypeSnapshotUpdated

	// TypeNavModeChanged fires when navigation mode is entered or exited.
	TypeNavModeChanged

	// TypeSymbolModeChanged fires when symbol mode is toggled.
	TypeSymbolModeChanged

	// TypeCapsLockChanged fires when caps lock is toggled.
	TypeCapsLockChanged

	// TypeHideRequested fires when exiting navigation mode via a Ctrl tap,
	// which additionally asks the host to hide any transient input surface.
	TypeHideRequested
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// SnapshotData carries the immutable post-transition mode snapshot.
type SnapshotData struct {
	Snapshot types.Snapshot
}

// NavModeData reports a navigation mode transition.
type NavModeData struct {
	Active bool
}

// SymbolModeData reports a symbol mode toggle.
type SymbolModeData struct {
	Active bool
}

// CapsLockData reports a caps lock toggle.
type CapsLockData struct {
	Active bool
}

// HideRequestedData is empty; the event itself is the request.
type HideRequestedData struct{}

// internal/types/snapshot.go
package types

// DisplayState is the presentation-level state of a single modifier.
// Physical means the key is currently held; OneShot and Latch mean the
// modifier is armed without the key being down.
type DisplayState int

const (
	DisplayOff DisplayState = iota
	DisplayPhysical
	DisplayOneShot
	DisplayLatch
)

// String returns a short indicator suitable for a status line.
func (d DisplayState) String() string {
	switch d {
	case DisplayPhysical:
		return "held"
	case DisplayOneShot:
		return "one-shot"
	case DisplayLatch:
		return "latch"
	default:
		return "off"
	}
}

// Snapshot is an immutable view of the engine's global mode state, emitted
// after every state-affecting transition for status-indicator consumers.
type Snapshot struct {
	Shift DisplayState
	Ctrl  DisplayState
	Alt   DisplayState

	CapsLock   bool
	SymbolMode bool
	NavMode    bool
}

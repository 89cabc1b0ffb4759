// Package surface defines the text-surface boundary the routing engine
// emits editing commands into, plus a concrete line-buffer implementation
// used by the harness and the tests.
//
// Counts are in grapheme clusters throughout: a committed emoji retracts as
// one character, exactly as the user sees it.
package surface

import (
	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/types"
)

// SyntheticKey is a key event the engine forwards to the focused UI instead
// of inserting text, e.g. a navigation-mode arrow.
type SyntheticKey struct {
	Code keyev.Code
	Down bool
}

// TextSurface is the editing contract the engine writes through. All calls
// are synchronous and non-blocking; implementations own selection state.
type TextSurface interface {
	// InsertText commits text at the cursor, replacing any selection.
	InsertText(text string)

	// DeleteBefore removes count grapheme clusters before the cursor.
	DeleteBefore(count int)

	// ReplaceBefore atomically substitutes the count clusters before the
	// cursor with text, as one indivisible edit.
	ReplaceBefore(count int, text string)

	// DeleteSelection removes the selection. Returns false if none exists.
	DeleteSelection() bool

	// MoveCursor moves the cursor, clearing any selection.
	MoveCursor(dir types.Direction)

	// ExtendSelection moves the cursor while anchoring/growing a selection.
	ExtendSelection(dir types.Direction)

	// PerformNamedAction executes a whole editing command.
	PerformNamedAction(action types.NamedAction)

	// SendSyntheticKey forwards a synthetic key transition to the host UI.
	SendSyntheticKey(code keyev.Code, down bool)

	// HasSelection reports whether a selection exists.
	HasSelection() bool

	// TextBeforeCursor returns up to n grapheme clusters before the cursor,
	// crossing line boundaries as "\n".
	TextBeforeCursor(n int) string
}

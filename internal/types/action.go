// internal/types/action.go
package types

// Direction identifies a cursor or selection movement on the text surface.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
	DirPageUp
	DirPageDown
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirHome:
		return "home"
	case DirEnd:
		return "end"
	case DirPageUp:
		return "pageup"
	case DirPageDown:
		return "pagedown"
	default:
		return "unknown"
	}
}

// NamedAction is an editing command the text surface performs as a unit.
type NamedAction int

const (
	ActionCopy NamedAction = iota
	ActionCut
	ActionPaste
	ActionUndo
	ActionSelectAll
)

// String returns the lowercase action name.
func (a NamedAction) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionCut:
		return "cut"
	case ActionPaste:
		return "paste"
	case ActionUndo:
		return "undo"
	case ActionSelectAll:
		return "select-all"
	default:
		return "unknown"
	}
}

// Package keymap holds the layer tables the routing engine dispatches
// against: alternate characters (Alt layer), symbol/emoji outputs (Symbol
// layer), Ctrl shortcuts (editing commands and synthetic key substitutions),
// and ordered multi-tap variant lists for compact layouts.
//
// Tables are data, not behavior: a key-code absent from a table means "no
// mapping", never an error, and empty or partial tables are legal.
package keymap

import (
	"github.com/arlem/hardkey/internal/keyev"
)

// Command is an editing command bound in the Ctrl layer.
type Command int

const (
	CmdNone Command = iota
	CmdCopy
	CmdCut
	CmdPaste
	CmdUndo
	CmdSelectAll
	CmdSelectLeft  // Expand selection one step left
	CmdSelectRight // Expand selection one step right
	CmdDeleteWord  // Delete the word before the cursor
	CmdDeleteSel   // Delete the current selection
)

var commandNames = map[string]Command{
	"copy":             CmdCopy,
	"cut":              CmdCut,
	"paste":            CmdPaste,
	"undo":             CmdUndo,
	"select-all":       CmdSelectAll,
	"select-left":      CmdSelectLeft,
	"select-right":     CmdSelectRight,
	"delete-word":      CmdDeleteWord,
	"delete-selection": CmdDeleteSel,
}

// CommandByName resolves a layout-file command name. Returns CmdNone when
// the name is not a known command.
func CommandByName(name string) Command {
	return commandNames[name]
}

// CtrlBinding is one Ctrl-layer entry: either an editing command or a
// synthetic key substitution, never both.
type CtrlBinding struct {
	Command Command
	Key     keyev.Code // Synthetic substitution when != CodeNone
}

// Layout is the full set of layer tables. A nil map behaves as empty.
type Layout struct {
	Alt      map[keyev.Code]string
	Symbol   map[keyev.Code]string
	Ctrl     map[keyev.Code]CtrlBinding
	MultiTap map[keyev.Code][]string
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{
		Alt:      make(map[keyev.Code]string),
		Symbol:   make(map[keyev.Code]string),
		Ctrl:     make(map[keyev.Code]CtrlBinding),
		MultiTap: make(map[keyev.Code][]string),
	}
}

// AltFor returns the alternate-character output for a code.
func (l *Layout) AltFor(code keyev.Code) (string, bool) {
	if l == nil || l.Alt == nil {
		return "", false
	}
	s, ok := l.Alt[code]
	return s, ok
}

// SymbolFor returns the symbol-layer output for a code.
func (l *Layout) SymbolFor(code keyev.Code) (string, bool) {
	if l == nil || l.Symbol == nil {
		return "", false
	}
	s, ok := l.Symbol[code]
	return s, ok
}

// CtrlFor returns the Ctrl-layer binding for a code.
func (l *Layout) CtrlFor(code keyev.Code) (CtrlBinding, bool) {
	if l == nil || l.Ctrl == nil {
		return CtrlBinding{}, false
	}
	b, ok := l.Ctrl[code]
	return b, ok
}

// VariantsFor returns the multi-tap variant list for a code.
func (l *Layout) VariantsFor(code keyev.Code) ([]string, bool) {
	if l == nil || l.MultiTap == nil {
		return nil, false
	}
	v, ok := l.MultiTap[code]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

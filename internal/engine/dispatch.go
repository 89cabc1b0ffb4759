// internal/engine/dispatch.go
package engine

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/arlem/hardkey/internal/keyev"
	"github.com/arlem/hardkey/internal/keymap"
	"github.com/arlem/hardkey/internal/logger"
	"github.com/arlem/hardkey/internal/types"
)

// dispatchCtrl handles a key-down with Ctrl effectively active. The mapping
// table yields either an editing command or a synthetic key substitution;
// a key with no entry is swallowed as a no-op so ordinary character input
// never leaks while the user intends a shortcut.
func (e *Engine) dispatchCtrl(ev keyev.Event) Result {
	if binding, ok := e.layout.CtrlFor(ev.Code); ok {
		if binding.Key != keyev.CodeNone {
			// Directional/page/tab/escape substitutions are forwarded to
			// whatever has focus, in and out of navigation mode.
			e.surface.SendSyntheticKey(binding.Key, true)
			e.surface.SendSyntheticKey(binding.Key, false)
		} else if !e.navActive {
			e.runCommand(binding.Command)
		} else {
			// Editing commands are no-ops while navigating: there is no
			// text context for them to act on.
			logger.Debugf("Engine: ctrl command %d ignored in nav mode", binding.Command)
		}
	}

	// One-shot Ctrl is consumed by the dispatch. A latch is never consumed
	// by ordinary key use, which also keeps the navigation-mode latch safe.
	if e.ctrl.ConsumeOneShot() {
		e.emitSnapshot()
	}
	return consumed
}

func (e *Engine) runCommand(cmd keymap.Command) {
	switch cmd {
	case keymap.CmdCopy:
		e.surface.PerformNamedAction(types.ActionCopy)
	case keymap.CmdCut:
		e.surface.PerformNamedAction(types.ActionCut)
	case keymap.CmdPaste:
		e.surface.PerformNamedAction(types.ActionPaste)
	case keymap.CmdUndo:
		e.surface.PerformNamedAction(types.ActionUndo)
	case keymap.CmdSelectAll:
		e.surface.PerformNamedAction(types.ActionSelectAll)
	case keymap.CmdSelectLeft:
		e.surface.ExtendSelection(types.DirLeft)
	case keymap.CmdSelectRight:
		e.surface.ExtendSelection(types.DirRight)
	case keymap.CmdDeleteSel:
		e.surface.DeleteSelection()
	case keymap.CmdDeleteWord:
		e.deleteLastWord()
	}
}

// deleteLastWord removes trailing whitespace plus the word before the
// cursor, counted in grapheme clusters.
func (e *Engine) deleteLastWord() {
	text := e.surface.TextBeforeCursor(64)
	if text == "" {
		return
	}
	trimmed := strings.TrimRight(text, " \t")
	idx := strings.LastIndexAny(trimmed, " \t\n")
	word := trimmed[idx+1:]

	count := uniseg.GraphemeClusterCount(word) +
		uniseg.GraphemeClusterCount(text[len(trimmed):])
	if count > 0 {
		e.surface.DeleteBefore(count)
	}
}

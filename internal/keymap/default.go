// internal/keymap/default.go
package keymap

import (
	"github.com/arlem/hardkey/internal/keyev"
)

// DefaultLayout returns the compiled-in layer tables, used when no layout
// file is configured. The Alt layer puts the digit row on the top letter
// row, the Symbol layer covers common punctuation plus a few emoji, the
// Ctrl layer binds the standard editing shortcuts and an ijkl directional
// cluster, and the multi-tap layer is a phone-style keypad on the digits.
func DefaultLayout() *Layout {
	l := NewLayout()

	// --- Alt layer: top row digits, punctuation on the home/bottom rows ---
	altTable := map[keyev.Code]string{
		keyev.CodeQ: "1", keyev.CodeW: "2", keyev.CodeE: "3",
		keyev.CodeR: "4", keyev.CodeT: "5", keyev.CodeY: "6",
		keyev.CodeU: "7", keyev.CodeI: "8", keyev.CodeO: "9",
		keyev.CodeP: "0",
		keyev.CodeA: "!", keyev.CodeS: "?", keyev.CodeD: ";",
		keyev.CodeF: ":", keyev.CodeG: "'", keyev.CodeH: "\"",
		keyev.CodeJ: "-", keyev.CodeK: "_", keyev.CodeL: "/",
		keyev.CodeZ: "(", keyev.CodeX: ")", keyev.CodeC: ",",
		keyev.CodeV: ".", keyev.CodeB: "+", keyev.CodeN: "=",
		keyev.CodeM: "*",
	}
	for code, out := range altTable {
		l.Alt[code] = out
	}

	// --- Symbol layer ---
	symTable := map[keyev.Code]string{
		keyev.CodeA: "@", keyev.CodeS: "#", keyev.CodeD: "$",
		keyev.CodeF: "%", keyev.CodeG: "&", keyev.CodeH: "^",
		keyev.CodeJ: "~", keyev.CodeK: "`", keyev.CodeL: "|",
		keyev.CodeQ: "[", keyev.CodeW: "]", keyev.CodeE: "{",
		keyev.CodeR: "}", keyev.CodeT: "<", keyev.CodeY: ">",
		keyev.CodeU: "\\", keyev.CodeZ: "€", keyev.CodeX: "£",
		keyev.CodeC: "¢", keyev.CodeV: "¥",
		keyev.CodeB: "😀", keyev.CodeN: "👍", keyev.CodeM: "❤️",
	}
	for code, out := range symTable {
		l.Symbol[code] = out
	}

	// --- Ctrl layer: editing commands ---
	l.Ctrl[keyev.CodeC] = CtrlBinding{Command: CmdCopy}
	l.Ctrl[keyev.CodeX] = CtrlBinding{Command: CmdCut}
	l.Ctrl[keyev.CodeV] = CtrlBinding{Command: CmdPaste}
	l.Ctrl[keyev.CodeZ] = CtrlBinding{Command: CmdUndo}
	l.Ctrl[keyev.CodeA] = CtrlBinding{Command: CmdSelectAll}
	l.Ctrl[keyev.CodeLeft] = CtrlBinding{Command: CmdSelectLeft}
	l.Ctrl[keyev.CodeRight] = CtrlBinding{Command: CmdSelectRight}
	l.Ctrl[keyev.CodeBackspace] = CtrlBinding{Command: CmdDeleteWord}
	l.Ctrl[keyev.CodeDelete] = CtrlBinding{Command: CmdDeleteSel}

	// --- Ctrl layer: synthetic key substitutions (ijkl cluster) ---
	l.Ctrl[keyev.CodeI] = CtrlBinding{Key: keyev.CodeUp}
	l.Ctrl[keyev.CodeJ] = CtrlBinding{Key: keyev.CodeLeft}
	l.Ctrl[keyev.CodeK] = CtrlBinding{Key: keyev.CodeDown}
	l.Ctrl[keyev.CodeL] = CtrlBinding{Key: keyev.CodeRight}
	l.Ctrl[keyev.CodeU] = CtrlBinding{Key: keyev.CodePageUp}
	l.Ctrl[keyev.CodeO] = CtrlBinding{Key: keyev.CodePageDown}
	l.Ctrl[keyev.CodeT] = CtrlBinding{Key: keyev.CodeTab}
	l.Ctrl[keyev.CodeE] = CtrlBinding{Key: keyev.CodeEscape}

	// --- Multi-tap layer: phone keypad on the digit keys ---
	l.MultiTap[keyev.Code2] = []string{"a", "b", "c"}
	l.MultiTap[keyev.Code3] = []string{"d", "e", "f"}
	l.MultiTap[keyev.Code4] = []string{"g", "h", "i"}
	l.MultiTap[keyev.Code5] = []string{"j", "k", "l"}
	l.MultiTap[keyev.Code6] = []string{"m", "n", "o"}
	l.MultiTap[keyev.Code7] = []string{"p", "q", "r", "s"}
	l.MultiTap[keyev.Code8] = []string{"t", "u", "v"}
	l.MultiTap[keyev.Code9] = []string{"w", "x", "y", "z"}

	return l
}

// internal/keyev/code.go
package keyev

import "strings"

// Code identifies a physical key delivered by the host. Values are stable
// but arbitrary; hosts translate their native scan/key codes into these
// before handing events to the engine.
type Code int

const (
	CodeNone Code = iota

	// Letters
	CodeA
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	// Digits
	Code0
	Code1
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9

	// Editing / whitespace
	CodeSpace
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete

	// Modifiers and mode keys
	CodeShift
	CodeCtrl
	CodeAlt
	CodeSym

	// Navigation
	CodeBack
	CodeEscape
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodePageUp
	CodePageDown
	CodeHome
	CodeEnd
)

// baseRunes maps printable codes to the character they produce with no
// modifier or layer involved.
var baseRunes = map[Code]rune{
	CodeA: 'a', CodeB: 'b', CodeC: 'c', CodeD: 'd', CodeE: 'e',
	CodeF: 'f', CodeG: 'g', CodeH: 'h', CodeI: 'i', CodeJ: 'j',
	CodeK: 'k', CodeL: 'l', CodeM: 'm', CodeN: 'n', CodeO: 'o',
	CodeP: 'p', CodeQ: 'q', CodeR: 'r', CodeS: 's', CodeT: 't',
	CodeU: 'u', CodeV: 'v', CodeW: 'w', CodeX: 'x', CodeY: 'y',
	CodeZ: 'z',
	Code0: '0', Code1: '1', Code2: '2', Code3: '3', Code4: '4',
	Code5: '5', Code6: '6', Code7: '7', Code8: '8', Code9: '9',
	CodeSpace: ' ',
}

// BaseRune returns the unmodified character a code produces, if any.
func BaseRune(c Code) (rune, bool) {
	r, ok := baseRunes[c]
	return r, ok
}

// IsModifier reports whether the code is one of the tracked modifier keys.
func IsModifier(c Code) bool {
	return c == CodeShift || c == CodeCtrl || c == CodeAlt
}

var codeNames = map[Code]string{
	CodeSpace: "space", CodeEnter: "enter", CodeTab: "tab",
	CodeBackspace: "backspace", CodeDelete: "delete",
	CodeShift: "shift", CodeCtrl: "ctrl", CodeAlt: "alt", CodeSym: "sym",
	CodeBack: "back", CodeEscape: "escape",
	CodeUp: "up", CodeDown: "down", CodeLeft: "left", CodeRight: "right",
	CodePageUp: "pageup", CodePageDown: "pagedown",
	CodeHome: "home", CodeEnd: "end",
}

var namesToCode map[string]Code

func init() {
	namesToCode = make(map[string]Code, len(codeNames)+len(baseRunes))
	for c, name := range codeNames {
		namesToCode[name] = c
	}
	for c, r := range baseRunes {
		namesToCode[string(r)] = c
	}
}

// String returns the canonical lowercase name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if r, ok := baseRunes[c]; ok {
		return string(r)
	}
	return "none"
}

// CodeByName resolves a layout-file key name ("a", "enter", "right") to a
// Code. Returns CodeNone when the name is not recognized.
func CodeByName(name string) Code {
	if c, ok := namesToCode[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return CodeNone
}

package twidge

import "strings"

// Key represents a keyboard key.
type Key uint16

const (
	// KeyNone represents no key (zero value).
	KeyNone Key = iota

	// KeyRune represents a printable character. Check KeyEvent.Rune for the character.
	KeyRune

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Control keys (Ctrl+A through Ctrl+Z). Ctrl+H, Ctrl+I and Ctrl+M share
	// their bytes with Backspace, Tab and Enter and decode as those keys.
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// KeyCtrlSpace represents Ctrl+Space (NUL character, 0x00)
	KeyCtrlSpace
)

// keyNames holds the conventional lower-case name of every key.
// Names match the ones accepted by ParseKeyPattern.
var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyCtrlSpace: "ctrl+space",
}

func init() {
	for k := KeyCtrlA; k <= KeyCtrlZ; k++ {
		keyNames[k] = "ctrl+" + string(rune('a'+int(k-KeyCtrlA)))
	}
}

// String returns the conventional name of the key, e.g. "enter" or "ctrl+a".
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kind classifies a key by how the terminal delivers it.
type Kind uint8

const (
	// KindPrintable is a printable character.
	KindPrintable Kind = iota
	// KindControl is a key sent as a single C0 control byte (enter, tab, ctrl+x).
	KindControl
	// KindEscape is a key sent as an escape sequence (arrows, function keys).
	KindEscape
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrintable:
		return "printable"
	case KindControl:
		return "control"
	case KindEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// kind reports the delivery class of the key.
func (k Key) kind() Kind {
	switch {
	case k == KeyRune:
		return KindPrintable
	case k == KeyEscape, k == KeyEnter, k == KeyTab, k == KeyBackspace, k == KeyCtrlSpace:
		return KindControl
	case k >= KeyCtrlA && k <= KeyCtrlZ:
		return KindControl
	default:
		return KindEscape
	}
}

// Modifier represents keyboard modifier flags.
type Modifier uint8

const (
	// ModNone represents no modifiers.
	ModNone Modifier = 0
	// ModCtrl represents the Ctrl modifier.
	ModCtrl Modifier = 1 << iota
	// ModAlt represents the Alt modifier.
	ModAlt
	// ModShift represents the Shift modifier.
	ModShift
)

// Has checks if the modifier set includes the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the modifiers joined in ctrl, alt, shift order, e.g. "ctrl+shift".
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

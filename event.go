package twidge

import (
	"fmt"
	"unicode"
)

// Event is the base interface for all terminal events.
// Use type switch to handle specific event types.
type Event interface {
	// isEvent is a marker method to prevent external implementations.
	isEvent()
}

// KeyEvent represents a keyboard input event.
type KeyEvent struct {
	// Key is the key pressed. For printable characters, this is KeyRune.
	// For special keys (arrows, function keys), this is the specific constant.
	Key Key

	// Rune is the character for KeyRune events. Zero for special keys.
	Rune rune

	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier

	// Raw holds the input bytes the event was decoded from.
	// Empty for synthesized events.
	Raw string
}

func (KeyEvent) isEvent() {}

// IsRune returns true if this is a printable character event.
func (e KeyEvent) IsRune() bool {
	return e.Key == KeyRune
}

// Is checks if the event matches a specific key with optional modifiers.
// Example: event.Is(KeyEnter) or event.Is(KeyTab, ModShift)
func (e KeyEvent) Is(key Key, mods ...Modifier) bool {
	if e.Key != key {
		return false
	}
	if len(mods) == 0 {
		return true
	}
	var combined Modifier
	for _, m := range mods {
		combined |= m
	}
	return e.Mod == combined
}

// Char returns the rune if this is a KeyRune event, or 0 otherwise.
func (e KeyEvent) Char() rune {
	if e.Key == KeyRune {
		return e.Rune
	}
	return 0
}

// Kind reports whether the event is a printable character, a control key
// or a key delivered as an escape sequence.
func (e KeyEvent) Kind() Kind {
	if e.Key == KeyRune && e.Mod.Has(ModAlt) {
		return KindEscape
	}
	return e.Key.kind()
}

// Name returns the conventional name of the key with its modifiers,
// e.g. "a", "space", "enter", "shift+tab", "ctrl+left", "alt+x".
func (e KeyEvent) Name() string {
	var base string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		base = "space"
	case e.Key == KeyRune:
		base = string(e.Rune)
	default:
		base = e.Key.String()
	}
	if e.Mod == ModNone {
		return base
	}
	return e.Mod.String() + "+" + base
}

// String implements fmt.Stringer.
func (e KeyEvent) String() string {
	return e.Name()
}

// Printable reports whether the event inserts text: an unmodified rune
// that is a graphic character.
func (e KeyEvent) Printable() bool {
	return e.Key == KeyRune && e.Mod == ModNone && unicode.IsGraphic(e.Rune)
}

// ResizeEvent is emitted when the terminal is resized.
type ResizeEvent struct {
	Rows int
	Cols int
}

func (ResizeEvent) isEvent() {}

// String implements fmt.Stringer.
func (e ResizeEvent) String() string {
	return fmt.Sprintf("resize(%dx%d)", e.Cols, e.Rows)
}

// UnknownEvent carries input bytes the decoder did not recognize.
// Widgets treat it as a no-op.
type UnknownEvent struct {
	Raw string
}

func (UnknownEvent) isEvent() {}

// String implements fmt.Stringer.
func (e UnknownEvent) String() string {
	return fmt.Sprintf("unknown(%q)", e.Raw)
}

// eventName returns a human-readable name for any event.
func eventName(ev Event) string {
	switch e := ev.(type) {
	case KeyEvent:
		return e.Name()
	case ResizeEvent:
		return e.String()
	case UnknownEvent:
		return e.String()
	default:
		return fmt.Sprintf("%T", ev)
	}
}

// rawBytes returns the input bytes an event was decoded from.
func rawBytes(ev Event) string {
	switch e := ev.(type) {
	case KeyEvent:
		return e.Raw
	case UnknownEvent:
		return e.Raw
	default:
		return ""
	}
}

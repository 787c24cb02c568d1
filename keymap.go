package twidge

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyMap is an ordered list of key bindings. The first matching binding wins.
type KeyMap []KeyBinding

// KeyBinding associates a key pattern with a handler.
type KeyBinding struct {
	Pattern KeyPattern
	Handler func(KeyEvent) Response
}

// KeyPattern identifies which key events match a binding.
type KeyPattern struct {
	Key     Key      // Specific key (KeyCtrlB, KeyEscape, etc.), or 0
	Rune    rune     // Specific rune, or 0
	AnyRune bool     // Match any printable character without modifiers
	Mod     Modifier // Modifiers the event must carry exactly
}

// Matches reports whether the key event matches the pattern.
func (p KeyPattern) Matches(ke KeyEvent) bool {
	if p.AnyRune {
		return ke.Printable()
	}
	if ke.Mod != p.Mod {
		return false
	}
	if p.Rune != 0 {
		return ke.Key == KeyRune && ke.Rune == p.Rune
	}
	return p.Key != KeyNone && ke.Key == p.Key
}

// String returns the conventional name of the pattern.
func (p KeyPattern) String() string {
	if p.AnyRune {
		return "<any>"
	}
	if p.Rune != 0 {
		return KeyEvent{Key: KeyRune, Rune: p.Rune, Mod: p.Mod}.Name()
	}
	return KeyEvent{Key: p.Key, Mod: p.Mod}.Name()
}

// OnKey creates a binding for a specific key without modifiers.
func OnKey(key Key, handler func(KeyEvent) Response) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{Key: key}, Handler: handler}
}

// OnKeyMod creates a binding for a key with an exact modifier set.
func OnKeyMod(key Key, mod Modifier, handler func(KeyEvent) Response) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{Key: key, Mod: mod}, Handler: handler}
}

// OnRune creates a binding for a specific printable character.
func OnRune(r rune, handler func(KeyEvent) Response) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{Rune: r}, Handler: handler}
}

// OnRunes creates a binding for all printable characters.
// Use this for text inputs that need every character key.
func OnRunes(handler func(KeyEvent) Response) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{AnyRune: true}, Handler: handler}
}

// Handle runs the first binding matching the event.
// Returns Ignored when the event is not a key or nothing matches.
func (km KeyMap) Handle(ev Event) Response {
	ke, ok := ev.(KeyEvent)
	if !ok {
		return Ignored
	}
	for _, binding := range km {
		if binding.Pattern.Matches(ke) {
			return binding.Handler(ke)
		}
	}
	return Ignored
}

// KeySet is a set of key patterns bound to one action.
type KeySet []KeyPattern

// Keys builds a KeySet from key constants without modifiers.
func Keys(keys ...Key) KeySet {
	set := make(KeySet, 0, len(keys))
	for _, k := range keys {
		set = append(set, KeyPattern{Key: k})
	}
	return set
}

// Match reports whether ev is a key event matching any pattern in the set.
func (s KeySet) Match(ev Event) bool {
	ke, ok := ev.(KeyEvent)
	if !ok {
		return false
	}
	for _, p := range s {
		if p.Matches(ke) {
			return true
		}
	}
	return false
}

// ParseKeySet parses key names such as "ctrl+c", "shift+tab" or "f5".
func ParseKeySet(names []string) (KeySet, error) {
	set := make(KeySet, 0, len(names))
	for _, name := range names {
		p, err := ParseKeyPattern(name)
		if err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	return set, nil
}

// namedKeys is the reverse of keyNames.
var namedKeys = map[string]Key{}

func init() {
	for k, name := range keyNames {
		namedKeys[name] = k
	}
	// These share their byte with another key and decode as that key.
	namedKeys["ctrl+h"] = KeyBackspace
	namedKeys["ctrl+i"] = KeyTab
	namedKeys["ctrl+m"] = KeyEnter
	namedKeys["esc"] = KeyEscape
	namedKeys["return"] = KeyEnter
	namedKeys["del"] = KeyDelete
}

// ParseKeyPattern parses a key name as produced by KeyEvent.Name.
// Modifiers are written before the key and joined with "+": "ctrl+left",
// "alt+x", "shift+tab". Single characters name themselves and keep their
// case, so "Q" and "q" are different keys; "space" is ' '. Modifier and
// key names are case-insensitive.
func ParseKeyPattern(name string) (KeyPattern, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return KeyPattern{}, fmt.Errorf("empty key name")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return KeyPattern{Rune: r}, nil
	}
	if k, ok := namedKeys[strings.ToLower(s)]; ok {
		return KeyPattern{Key: k}, nil
	}

	parts := strings.Split(s, "+")
	base := parts[len(parts)-1]
	var mod Modifier
	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mod |= ModCtrl
		case "alt", "meta":
			mod |= ModAlt
		case "shift":
			mod |= ModShift
		default:
			return KeyPattern{}, fmt.Errorf("unknown modifier %q in key %q", part, name)
		}
	}

	if utf8.RuneCountInString(base) != 1 {
		lower := strings.ToLower(base)
		if lower == "space" {
			return KeyPattern{Rune: ' ', Mod: mod}, nil
		}
		if k, ok := namedKeys[lower]; ok {
			return KeyPattern{Key: k, Mod: mod}, nil
		}
		return KeyPattern{}, fmt.Errorf("unknown key %q", name)
	}

	r, _ := utf8.DecodeRuneInString(base)
	if mod == ModCtrl {
		// Control letters are case-insensitive: the terminal sends the same byte.
		if lr := unicode.ToLower(r); lr >= 'a' && lr <= 'z' {
			return KeyPattern{Key: controlToKey(byte(lr-'a') + 1)}, nil
		}
	}
	return KeyPattern{Rune: r, Mod: mod}, nil
}

package twidge

import "unicode/utf8"

const esc = 0x1b

// Decoder turns raw terminal input into events, one event per call.
//
// Handles:
//   - Printable characters (including multi-byte UTF-8) -> KeyEvent{Key: KeyRune}
//   - Control characters (0x00-0x1F, 0x7F) -> control keys
//   - CSI sequences (ESC [ ...) -> arrows, navigation and function keys with modifiers
//   - SS3 sequences (ESC O x) -> F1-F4, arrows, home, end
//   - ESC + printable -> KeyRune with ModAlt
//   - Anything else -> UnknownEvent
//
// The zero value is ready to use. A Decoder holds no state between calls, so a
// malformed sequence never affects the next decode.
type Decoder struct{}

// Decode decodes the first event in data and returns it together with the
// number of bytes it consumed.
//
// When data holds an incomplete prefix (a lone ESC, a partial CSI sequence or a
// partial UTF-8 rune) and flush is false, Decode returns (nil, 0) to ask for
// more bytes. With flush set, Decode always consumes at least one byte of
// non-empty input: a lone ESC becomes the escape key and other partial input
// becomes an UnknownEvent.
func (Decoder) Decode(data []byte, flush bool) (Event, int) {
	if len(data) == 0 {
		return nil, 0
	}

	b := data[0]
	switch {
	case b == esc:
		return decodeEscape(data, flush)
	case b < 0x20:
		key := controlToKey(b)
		if key == KeyNone {
			return UnknownEvent{Raw: string(data[:1])}, 1
		}
		return KeyEvent{Key: key, Raw: string(data[:1])}, 1
	case b == 0x7f:
		// DEL character (0x7F) is backspace on most terminals
		return KeyEvent{Key: KeyBackspace, Raw: string(data[:1])}, 1
	}

	return decodeRune(data, flush, ModNone, 0)
}

// DecodeAll decodes every complete event in data and returns the events and
// any trailing bytes that need more input. With flush set nothing is left over.
func (d Decoder) DecodeAll(data []byte, flush bool) ([]Event, []byte) {
	var events []Event
	for len(data) > 0 {
		ev, n := d.Decode(data, flush)
		if n == 0 {
			break
		}
		events = append(events, ev)
		data = data[n:]
	}
	return events, data
}

// decodeRune decodes a UTF-8 rune starting at data[offset].
func decodeRune(data []byte, flush bool, mod Modifier, offset int) (Event, int) {
	rest := data[offset:]
	if !utf8.FullRune(rest) {
		if !flush {
			return nil, 0
		}
		return UnknownEvent{Raw: string(data)}, len(data)
	}
	r, size := utf8.DecodeRune(rest)
	if r == utf8.RuneError && size == 1 {
		return UnknownEvent{Raw: string(data[:offset+1])}, offset + 1
	}
	n := offset + size
	return KeyEvent{Key: KeyRune, Rune: r, Mod: mod, Raw: string(data[:n])}, n
}

// decodeEscape decodes input starting with ESC.
func decodeEscape(data []byte, flush bool) (Event, int) {
	if len(data) == 1 {
		if !flush {
			return nil, 0
		}
		// Lone escape with nothing following inside the timeout window
		return KeyEvent{Key: KeyEscape, Raw: string(data[:1])}, 1
	}

	next := data[1]
	switch {
	case next == '[':
		return decodeCSI(data, flush)
	case next == 'O':
		return decodeSS3(data, flush)
	case next == esc || next < 0x20 || next == 0x7f:
		// Escape followed by another key; the second key is decoded next.
		return KeyEvent{Key: KeyEscape, Raw: string(data[:1])}, 1
	default:
		// Alt+key combination
		return decodeRune(data, flush, ModAlt, 1)
	}
}

// decodeSS3 decodes ESC O x.
func decodeSS3(data []byte, flush bool) (Event, int) {
	if len(data) < 3 {
		if !flush {
			return nil, 0
		}
		return KeyEvent{Key: KeyRune, Rune: 'O', Mod: ModAlt, Raw: string(data[:2])}, 2
	}
	key := parseSS3(data[2])
	if key == KeyNone {
		return UnknownEvent{Raw: string(data[:3])}, 3
	}
	return KeyEvent{Key: key, Raw: string(data[:3])}, 3
}

// decodeCSI decodes ESC [ params intermediates final.
//
// Parameter bytes are 0x30-0x3F, intermediate bytes 0x20-0x2F and the final
// byte 0x40-0x7E. Any other byte ends the sequence early: the bytes before it
// become an UnknownEvent and the offending byte is decoded on the next call.
func decodeCSI(data []byte, flush bool) (Event, int) {
	var params []int
	currentParam := 0
	hasParam := false
	private := false

	for i := 2; i < len(data); i++ {
		b := data[i]

		switch {
		case b >= '0' && b <= '9':
			currentParam = currentParam*10 + int(b-'0')
			hasParam = true
		case b == ';':
			params = append(params, currentParam)
			currentParam = 0
			hasParam = false
		case b >= 0x3c && b <= 0x3f:
			// Private parameter markers (<, =, >, ?) are never keys.
			private = true
		case b == ':' || (b >= 0x20 && b <= 0x2f):
			private = true
		case b >= 0x40 && b <= 0x7e:
			n := i + 1
			raw := string(data[:n])
			if private {
				return UnknownEvent{Raw: raw}, n
			}
			if hasParam {
				params = append(params, currentParam)
			}
			key, mod := parseCSI(params, b)
			if key == KeyNone {
				return UnknownEvent{Raw: raw}, n
			}
			return KeyEvent{Key: key, Mod: mod, Raw: raw}, n
		default:
			// Unexpected character, resynchronize on it
			return UnknownEvent{Raw: string(data[:i])}, i
		}
	}

	// Incomplete sequence
	if !flush {
		return nil, 0
	}
	if len(data) == 2 {
		return KeyEvent{Key: KeyRune, Rune: '[', Mod: ModAlt, Raw: string(data)}, 2
	}
	return UnknownEvent{Raw: string(data)}, len(data)
}

// controlToKey converts a control character (0x00-0x1F) to a Key.
func controlToKey(b byte) Key {
	switch b {
	case 0x00: // Ctrl+Space or Ctrl+@
		return KeyCtrlSpace
	case 0x08: // Ctrl+H (backspace on some terminals)
		return KeyBackspace
	case 0x09: // Ctrl+I (tab)
		return KeyTab
	case 0x0d: // Ctrl+M (carriage return/enter)
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	// 0x1c-0x1f: Ctrl+\ Ctrl+] Ctrl+^ Ctrl+_
	return KeyNone
}

// parseCSI parses a complete CSI sequence given parameters and final byte.
func parseCSI(params []int, final byte) (Key, Modifier) {
	mod := ModNone

	// Extract modifier from params (xterm-style: CSI 1;mod X)
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case 'Z':
		// Backtab (Shift+Tab)
		return KeyTab, ModShift
	case '~':
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		if key, ok := tildeKeys[params[0]]; ok {
			return key, mod
		}
	}

	return KeyNone, ModNone
}

// tildeKeys maps the first parameter of CSI n ~ to its key (VT220/xterm).
var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// parseSS3 parses an SS3 function key sequence.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter.
// The parameter is encoded as: 1 + (shift ? 1 : 0) + (alt ? 2 : 0) + (ctrl ? 4 : 0)
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}

	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

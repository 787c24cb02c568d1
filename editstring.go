package twidge

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// EditString is a single-line text input with a cursor.
// It carries its text as a string value and returns Submitted on enter.
type EditString struct {
	buf     []rune
	cursor  int // 0 <= cursor <= len(buf)
	focused bool
	keys    KeyMap
}

// Interface assertions
var (
	_ Valuer[string] = (*EditString)(nil)
	_ Focusable      = (*EditString)(nil)
)

// NewEditString creates an input holding initial with the cursor at its end.
// Newlines are removed from the initial text. A new input is focused; Form
// moves focus between its fields.
func NewEditString(initial string) *EditString {
	initial = strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(initial)
	e := &EditString{
		buf:     []rune(initial),
		focused: true,
	}
	e.cursor = len(e.buf)
	e.keys = e.keyMap()
	return e
}

// --- State Access ---

// Value returns the current text.
func (e *EditString) Value() string {
	return string(e.buf)
}

// Cursor returns the cursor position as a rune index.
func (e *EditString) Cursor() int {
	return e.cursor
}

// SetText replaces the text and moves the cursor to the end.
func (e *EditString) SetText(s string) {
	e.buf = []rune(s)
	e.cursor = len(e.buf)
}

// SetCursor moves the cursor, clamped to the text.
func (e *EditString) SetCursor(pos int) {
	e.cursor = max(0, min(pos, len(e.buf)))
}

// --- Focusable Interface ---

// Focus is called when the input gains focus.
func (e *EditString) Focus() {
	e.focused = true
}

// Blur is called when the input loses focus.
func (e *EditString) Blur() {
	e.focused = false
}

// Focused reports whether the input has focus.
func (e *EditString) Focused() bool {
	return e.focused
}

// HandleEvent processes keyboard events.
func (e *EditString) HandleEvent(ev Event) Response {
	resp := e.keys.Handle(ev)
	checkInvariant(e.cursor >= 0 && e.cursor <= len(e.buf),
		"edit cursor %d outside [0, %d]", e.cursor, len(e.buf))
	return resp
}

// keyMap returns the key bindings for the input.
func (e *EditString) keyMap() KeyMap {
	return KeyMap{
		// Text input
		OnRunes(e.insertChar),

		// Editing
		OnKey(KeyBackspace, e.backspace),
		OnKey(KeyDelete, e.delete),
		OnKey(KeyCtrlW, e.deleteWord),
		OnKey(KeyCtrlU, e.deleteToStart),
		OnKey(KeyCtrlK, e.deleteToEnd),

		// Navigation
		OnKey(KeyLeft, e.moveLeft),
		OnKey(KeyRight, e.moveRight),
		OnKey(KeyHome, e.moveHome),
		OnKey(KeyEnd, e.moveEnd),
		OnKey(KeyCtrlA, e.moveHome),
		OnKey(KeyCtrlE, e.moveEnd),
		OnKeyMod(KeyLeft, ModCtrl, e.prevWord),
		OnKeyMod(KeyRight, ModCtrl, e.nextWord),

		// Submit
		OnKey(KeyEnter, e.submit),
	}
}

// --- Key Handlers ---

// insertChar inserts a character at the cursor position.
func (e *EditString) insertChar(ke KeyEvent) Response {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = ke.Rune
	e.cursor++
	return Handled
}

// backspace deletes the character before the cursor.
func (e *EditString) backspace(KeyEvent) Response {
	if e.cursor == 0 {
		return Handled
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
	return Handled
}

// delete deletes the character at the cursor.
func (e *EditString) delete(KeyEvent) Response {
	if e.cursor < len(e.buf) {
		e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
	}
	return Handled
}

// deleteWord deletes from the start of the previous word to the cursor.
func (e *EditString) deleteWord(KeyEvent) Response {
	start := e.prevWordStart()
	e.buf = append(e.buf[:start], e.buf[e.cursor:]...)
	e.cursor = start
	return Handled
}

// deleteToStart deletes everything before the cursor.
func (e *EditString) deleteToStart(KeyEvent) Response {
	e.buf = append(e.buf[:0], e.buf[e.cursor:]...)
	e.cursor = 0
	return Handled
}

// deleteToEnd deletes everything from the cursor on.
func (e *EditString) deleteToEnd(KeyEvent) Response {
	e.buf = e.buf[:e.cursor]
	return Handled
}

// moveLeft moves cursor left.
func (e *EditString) moveLeft(KeyEvent) Response {
	if e.cursor > 0 {
		e.cursor--
	}
	return Handled
}

// moveRight moves cursor right.
func (e *EditString) moveRight(KeyEvent) Response {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
	return Handled
}

// moveHome moves cursor to the start of the line.
func (e *EditString) moveHome(KeyEvent) Response {
	e.cursor = 0
	return Handled
}

// moveEnd moves cursor to the end of the line.
func (e *EditString) moveEnd(KeyEvent) Response {
	e.cursor = len(e.buf)
	return Handled
}

// prevWord moves the cursor to the start of the previous word.
func (e *EditString) prevWord(KeyEvent) Response {
	e.cursor = e.prevWordStart()
	return Handled
}

// nextWord moves the cursor past the next word and the spaces after it.
func (e *EditString) nextWord(KeyEvent) Response {
	i := e.cursor
	for i < len(e.buf) && !unicode.IsSpace(e.buf[i]) {
		i++
	}
	for i < len(e.buf) && unicode.IsSpace(e.buf[i]) {
		i++
	}
	e.cursor = i
	return Handled
}

// submit reports completion.
func (e *EditString) submit(KeyEvent) Response {
	return Submitted
}

// prevWordStart returns the index of the start of the word before the cursor,
// skipping any spaces directly before it.
func (e *EditString) prevWordStart() int {
	i := e.cursor
	for i > 0 && unicode.IsSpace(e.buf[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.buf[i-1]) {
		i--
	}
	return i
}

// --- Rendering ---

// Render draws the text on one line. When focused, the cell under the cursor
// is drawn with the theme's cursor style, and the line is windowed so the
// cursor is always visible.
func (e *EditString) Render(ctx RenderContext) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
	}
	width := max(ctx.Width, 1)

	if !e.focused {
		return theme.Text.Render(runewidth.Truncate(string(e.buf), width, ""))
	}

	before, cell, after := e.window(width, theme)
	return theme.FocusedText.Render(before) + theme.Cursor.Render(cell) + theme.FocusedText.Render(after)
}

// window splits the text around the cursor so that the part before it, the
// cursor cell and the part after it fit in width cells together. The cursor
// cell is a space when the cursor is at the end of the text.
func (e *EditString) window(width int, theme *Theme) (before, cell, after string) {
	cell = " "
	if e.cursor < len(e.buf) {
		cell = string(e.buf[e.cursor])
	}
	avail := width - ansi.StringWidth(theme.Cursor.Render(cell))

	// Keep the text closest to the cursor on the left.
	left := e.buf[:e.cursor]
	start := len(left)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(left[start-1])
		if used+w > avail {
			break
		}
		used += w
		start--
	}
	before = string(left[start:])

	if e.cursor < len(e.buf) && start == 0 {
		after = runewidth.Truncate(string(e.buf[e.cursor+1:]), max(avail-used, 0), "")
	}
	return before, cell, after
}

package twidge

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
)

// MockTerminal is a mock implementation of Terminal for testing.
// It records every write and replays the output on a simple screen model
// so tests can check what a user would see.
type MockTerminal struct {
	width, height int
	profile       termenv.Profile
	out           bytes.Buffer

	screen  [][]rune
	row     int
	col     int
	pending []byte // Incomplete escape sequence or rune from the last write

	cursorHidden bool
	inRawMode    bool
	rawErr       error

	// Transition counters for testing mode switches
	rawEnterCount int
	rawExitCount  int
}

// Ensure MockTerminal implements Terminal.
var _ Terminal = (*MockTerminal)(nil)

// NewMockTerminal creates a new mock terminal with the given dimensions.
func NewMockTerminal(width, height int) *MockTerminal {
	return &MockTerminal{
		width:   width,
		height:  height,
		profile: termenv.Ascii,
		screen:  [][]rune{nil},
	}
}

// Size returns the terminal dimensions.
func (m *MockTerminal) Size() (width, height int) {
	return m.width, m.height
}

// SetSize changes the reported dimensions.
func (m *MockTerminal) SetSize(width, height int) {
	m.width, m.height = width, height
}

// Write records p and applies it to the screen model.
func (m *MockTerminal) Write(p []byte) (int, error) {
	m.out.Write(p)
	m.apply(p)
	return len(p), nil
}

// HideCursor makes the cursor invisible.
func (m *MockTerminal) HideCursor() {
	m.cursorHidden = true
}

// ShowCursor makes the cursor visible.
func (m *MockTerminal) ShowCursor() {
	m.cursorHidden = false
}

// EnterRawMode simulates entering raw mode.
// Returns the error set with FailRawMode, if any.
func (m *MockTerminal) EnterRawMode() error {
	if m.rawErr != nil {
		return m.rawErr
	}
	m.inRawMode = true
	m.rawEnterCount++
	return nil
}

// ExitRawMode simulates exiting raw mode.
func (m *MockTerminal) ExitRawMode() error {
	if m.inRawMode {
		m.rawExitCount++
	}
	m.inRawMode = false
	return nil
}

// ColorProfile returns termenv.Ascii unless changed with SetColorProfile.
func (m *MockTerminal) ColorProfile() termenv.Profile {
	return m.profile
}

// --- Test helper methods ---

// SetColorProfile sets the reported colour profile.
func (m *MockTerminal) SetColorProfile(p termenv.Profile) {
	m.profile = p
}

// FailRawMode makes EnterRawMode return err.
func (m *MockTerminal) FailRawMode(err error) {
	m.rawErr = err
}

// InRawMode reports whether the terminal is in raw mode.
func (m *MockTerminal) InRawMode() bool {
	return m.inRawMode
}

// CursorHidden reports whether the cursor is hidden.
func (m *MockTerminal) CursorHidden() bool {
	return m.cursorHidden
}

// RawModeTransitions returns how often raw mode was entered and left.
func (m *MockTerminal) RawModeTransitions() (enter, exit int) {
	return m.rawEnterCount, m.rawExitCount
}

// Output returns every byte written so far.
func (m *MockTerminal) Output() string {
	return m.out.String()
}

// Row returns the cursor row relative to the first line written.
func (m *MockTerminal) Row() int {
	return m.row
}

// Lines returns the screen content with trailing spaces removed from each
// line and trailing empty lines dropped.
func (m *MockTerminal) Lines() []string {
	lines := make([]string, len(m.screen))
	for i, r := range m.screen {
		lines[i] = strings.TrimRight(string(r), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// String returns Lines joined with newlines, for snapshot testing.
func (m *MockTerminal) String() string {
	return strings.Join(m.Lines(), "\n")
}

// apply interprets the subset of output the renderer produces: CR, LF,
// cursor up, erase line and SGR (ignored).
func (m *MockTerminal) apply(p []byte) {
	data := append(m.pending, p...)
	m.pending = nil

	for len(data) > 0 {
		switch b := data[0]; {
		case b == '\r':
			m.col = 0
			data = data[1:]
		case b == '\n':
			m.row++
			for len(m.screen) <= m.row {
				m.screen = append(m.screen, nil)
			}
			data = data[1:]
		case b == esc:
			n := m.applyEscape(data)
			if n == 0 {
				m.pending = append([]byte(nil), data...)
				return
			}
			data = data[n:]
		case b < 0x20:
			data = data[1:]
		default:
			if !utf8.FullRune(data) {
				m.pending = append([]byte(nil), data...)
				return
			}
			r, size := utf8.DecodeRune(data)
			m.put(r)
			data = data[size:]
		}
	}
}

// applyEscape handles one CSI sequence and returns its length, or 0 if it is
// incomplete.
func (m *MockTerminal) applyEscape(data []byte) int {
	if len(data) < 2 {
		return 0
	}
	if data[1] != '[' {
		return 2
	}
	for i := 2; i < len(data); i++ {
		if data[i] < 0x40 || data[i] > 0x7e {
			continue
		}
		params := string(data[2:i])
		switch data[i] {
		case 'A':
			n := 1
			if v, err := strconv.Atoi(params); err == nil && v > 0 {
				n = v
			}
			m.row = max(0, m.row-n)
		case 'K':
			if params == "2" {
				m.screen[m.row] = nil
			}
		case 'l':
			if params == "?25" {
				m.cursorHidden = true
			}
		case 'h':
			if params == "?25" {
				m.cursorHidden = false
			}
		}
		return i + 1
	}
	return 0
}

// put writes r at the cursor and advances it.
func (m *MockTerminal) put(r rune) {
	line := m.screen[m.row]
	for len(line) < m.col {
		line = append(line, ' ')
	}
	if m.col < len(line) {
		line[m.col] = r
	} else {
		line = append(line, r)
	}
	m.screen[m.row] = line
	m.col++
}

package twidge

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal abstracts the terminal operations the run loop needs.
// Implementations are ANSITerminal for real ttys and MockTerminal for tests.
type Terminal interface {
	io.Writer

	// Size returns the terminal dimensions (width, height) in cells.
	Size() (width, height int)

	// HideCursor makes the cursor invisible.
	HideCursor()

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// EnterRawMode switches the input to unbuffered, unechoed mode with
	// signal generation disabled. Returns an error if raw mode cannot be enabled.
	EnterRawMode() error

	// ExitRawMode restores the mode saved by EnterRawMode.
	// Calling it without a matching EnterRawMode is a no-op.
	ExitRawMode() error

	// ColorProfile reports the colour support of the output.
	ColorProfile() termenv.Profile
}

// ANSITerminal implements Terminal on a tty using ANSI escape sequences.
type ANSITerminal struct {
	out      *termenv.Output
	inFd     int           // Input fd, put into raw mode
	outFd    int           // Output fd, used for size queries (-1 if not a file)
	rawState *rawModeState // Platform-specific raw mode state
}

// Ensure ANSITerminal implements Terminal.
var _ Terminal = (*ANSITerminal)(nil)

// NewANSITerminal creates a terminal that reads from in and draws on out.
// Returns ErrNotTerminal if in is not a tty.
func NewANSITerminal(out io.Writer, in *os.File) (*ANSITerminal, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, ErrNotTerminal
	}

	t := &ANSITerminal{
		out:   termenv.NewOutput(out),
		inFd:  inFd,
		outFd: -1,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.outFd = int(f.Fd())
	}
	return t, nil
}

// Write writes p to the output.
func (t *ANSITerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the terminal dimensions.
// The output is queried first, then the input.
// Returns a default of 80x24 if the size cannot be determined.
func (t *ANSITerminal) Size() (width, height int) {
	for _, fd := range []int{t.outFd, t.inFd} {
		if fd < 0 {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil && w > 0 {
			return w, h
		}
	}
	return 80, 24
}

// HideCursor makes the cursor invisible.
func (t *ANSITerminal) HideCursor() {
	t.out.HideCursor()
}

// ShowCursor makes the cursor visible.
func (t *ANSITerminal) ShowCursor() {
	t.out.ShowCursor()
}

// EnterRawMode puts the input into raw mode.
// This is implemented in platform-specific files.
func (t *ANSITerminal) EnterRawMode() error {
	if t.rawState != nil {
		return nil
	}
	state, err := enableRawMode(t.inFd)
	if err != nil {
		return err
	}
	t.rawState = state
	return nil
}

// ExitRawMode restores the input to its previous mode.
func (t *ANSITerminal) ExitRawMode() error {
	if t.rawState == nil {
		return nil
	}
	err := disableRawMode(t.rawState)
	t.rawState = nil
	return err
}

// ColorProfile reports the colour profile detected from the environment.
// NO_COLOR yields termenv.Ascii.
func (t *ANSITerminal) ColorProfile() termenv.Profile {
	return t.out.EnvColorProfile()
}

//go:build unix

package twidge

import (
	"golang.org/x/sys/unix"
)

// rawModeState stores the original terminal state for restoration.
type rawModeState struct {
	fd      int
	termios unix.Termios
}

// enableRawMode puts the terminal into raw mode and returns the previous state.
func enableRawMode(fd int) (*rawModeState, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}

	state := &rawModeState{fd: fd, termios: *termios}

	// Turn off:
	// - ECHO: don't echo input characters
	// - ICANON: read byte-by-byte instead of line-by-line
	// - ISIG: Ctrl+C, Ctrl+Z arrive as keys instead of signals
	// - IEXTEN: disable extended input processing (Ctrl+V)
	termios.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN

	// Turn off:
	// - IXON: Ctrl+S, Ctrl+Q arrive as keys
	// - ICRNL: Enter stays CR
	// - BRKINT, INPCK, ISTRIP
	termios.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP

	// Output is written with explicit "\r\n".
	termios.Oflag &^= unix.OPOST

	termios.Cflag |= unix.CS8

	// VMIN = 1, VTIME = 0: read returns as soon as one byte is available.
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, termios); err != nil {
		return nil, err
	}

	return state, nil
}

// disableRawMode restores the terminal to its previous state.
func disableRawMode(state *rawModeState) error {
	if state == nil {
		return nil
	}
	return unix.IoctlSetTermios(state.fd, ioctlWriteTermios, &state.termios)
}

// getTerminalSize returns the terminal dimensions.
func getTerminalSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

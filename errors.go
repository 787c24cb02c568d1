package twidge

import "errors"

var (
	// ErrNotTerminal is returned when the input is not an interactive terminal.
	ErrNotTerminal = errors.New("twidge: input is not a terminal")

	// ErrTerminalSetup is returned when raw mode cannot be entered.
	ErrTerminalSetup = errors.New("twidge: terminal setup failed")

	// ErrInterrupted is returned by Run when the run was interrupted by an
	// interrupt key or context cancellation.
	ErrInterrupted = errors.New("twidge: interrupted")

	// ErrAborted is returned by Run when the widget was ended by an abort
	// key sequence. See Abort.
	ErrAborted = errors.New("twidge: aborted")

	// ErrAlreadyRunning is returned when Run is called while another Run on
	// the same App is in progress.
	ErrAlreadyRunning = errors.New("twidge: app is already running")

	// ErrNoFields is returned when a form is built without fields.
	ErrNoFields = errors.New("twidge: form needs at least one field")

	// ErrDuplicateLabel is returned when two form fields share a label.
	ErrDuplicateLabel = errors.New("twidge: duplicate form label")
)

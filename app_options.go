package twidge

import (
	"errors"
	"io"
	"os"
	"time"
)

// AppOption is a functional option for configuring an App.
type AppOption func(*App) error

// WithEscapeTimeout sets how long a lone ESC waits for the rest of an escape
// sequence. Default is 50ms. Must be positive.
func WithEscapeTimeout(d time.Duration) AppOption {
	return func(a *App) error {
		if d <= 0 {
			return errors.New("escape timeout must be positive")
		}
		a.escapeTimeout = d
		return nil
	}
}

// WithInterruptKeys sets the keys that abort a run with ErrInterrupted.
// Default is ctrl+c. An empty set disables interrupt keys; the run then ends
// only when the widget finishes, the input closes or the context is cancelled.
func WithInterruptKeys(keys KeySet) AppOption {
	return func(a *App) error {
		a.interruptKeys = keys
		return nil
	}
}

// WithInterruptSignals sets the signals that abort a run with ErrInterrupted.
// Default is os.Interrupt. The signals are caught only while a run is in
// progress, so the terminal is restored before the run returns. Passing no
// signals leaves signal handling to the caller.
func WithInterruptSignals(sigs ...os.Signal) AppOption {
	return func(a *App) error {
		a.signals = sigs
		return nil
	}
}

// WithTheme sets the theme widgets are rendered with.
func WithTheme(t *Theme) AppOption {
	return func(a *App) error {
		if t == nil {
			return errors.New("theme must not be nil")
		}
		a.theme = t
		return nil
	}
}

// WithColors builds the theme from colours, using the colour profile of the
// terminal. Ignored when WithTheme is also given.
func WithColors(c ThemeColors) AppOption {
	return func(a *App) error {
		a.colors = c
		return nil
	}
}

// WithInput sets the terminal input. Default is os.Stdin.
func WithInput(in *os.File) AppOption {
	return func(a *App) error {
		if in == nil {
			return errors.New("input must not be nil")
		}
		a.in = in
		return nil
	}
}

// WithOutput sets where widgets are drawn. Default is os.Stdout.
// Use os.Stderr to keep stdout free for results.
func WithOutput(out io.Writer) AppOption {
	return func(a *App) error {
		if out == nil {
			return errors.New("output must not be nil")
		}
		a.out = out
		return nil
	}
}

// WithTerminal replaces the terminal created from the input and output.
func WithTerminal(t Terminal) AppOption {
	return func(a *App) error {
		a.terminal = t
		return nil
	}
}

// WithReader replaces the event reader created from the input.
func WithReader(r EventReader) AppOption {
	return func(a *App) error {
		a.reader = r
		return nil
	}
}

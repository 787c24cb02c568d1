package twidge

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
)

// App runs widgets on a terminal.
//
// An App owns one terminal and one event reader. It runs one widget at a
// time: Run refuses to start while another Run on the same App is active.
// Running widgets on the same terminal device through different Apps at the
// same time is undefined behaviour.
type App struct {
	terminal      Terminal
	reader        EventReader
	renderer      *Renderer
	theme         *Theme
	colors        ThemeColors
	interruptKeys KeySet
	signals       []os.Signal
	escapeTimeout time.Duration

	in  *os.File
	out io.Writer

	running atomic.Bool
}

// NewApp creates an application on the process terminal.
// Options can be passed to configure the app (e.g., WithEscapeTimeout, WithOutput).
//
// The terminal is not touched until Run: raw mode is entered and left around
// each run. Returns ErrNotTerminal if the input is not a tty.
func NewApp(opts ...AppOption) (*App, error) {
	a := &App{
		colors:        DefaultColors(),
		interruptKeys: Keys(KeyCtrlC),
		signals:       []os.Signal{os.Interrupt},
		escapeTimeout: DefaultEscapeTimeout,
		in:            os.Stdin,
		out:           os.Stdout,
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.terminal == nil {
		t, err := NewANSITerminal(a.out, a.in)
		if err != nil {
			return nil, err
		}
		a.terminal = t
	}

	if a.reader == nil {
		r, err := NewEventReader(a.in, a.escapeTimeout)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTerminalSetup, err)
		}
		a.reader = r
	}

	if a.theme == nil {
		a.theme = ThemeFor(a.terminal, a.terminal.ColorProfile(), a.colors)
	}

	width, height := a.terminal.Size()
	a.renderer = NewRenderer(a.terminal, width)
	a.renderer.SetSize(width, height)
	return a, nil
}

// NewAppWithReader creates an App with a custom EventReader and Terminal.
// This is useful for testing or custom input handling.
func NewAppWithReader(reader EventReader, terminal Terminal, opts ...AppOption) (*App, error) {
	return NewApp(append([]AppOption{WithReader(reader), WithTerminal(terminal)}, opts...)...)
}

// Terminal returns the terminal the app draws on.
func (a *App) Terminal() Terminal {
	return a.terminal
}

// Theme returns the theme widgets are rendered with.
func (a *App) Theme() *Theme {
	return a.theme
}

// Running reports whether a Run is in progress.
func (a *App) Running() bool {
	return a.running.Load()
}

// Close releases the event reader. The terminal mode is already restored
// when Run returns.
func (a *App) Close() error {
	return a.reader.Close()
}

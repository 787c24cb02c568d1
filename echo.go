package twidge

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Echo displays the name of every event it receives.
// It never completes on its own; wrap it or interrupt the run to stop it.
type Echo struct {
	entries []string
}

var _ Valuer[[]string] = (*Echo)(nil)

// NewEcho creates an empty Echo.
func NewEcho() *Echo {
	return &Echo{}
}

// HandleEvent appends the quoted event name.
func (e *Echo) HandleEvent(ev Event) Response {
	e.entries = append(e.entries, strconv.Quote(eventName(ev)))
	return Handled
}

// Value returns the quoted names received so far, oldest first.
func (e *Echo) Value() []string {
	return slices.Clone(e.entries)
}

// Render draws the entries space-separated, wrapped to the width. Only the
// most recent lines that fit the height are drawn.
func (e *Echo) Render(ctx RenderContext) string {
	return renderEcho(ctx, strings.Join(e.entries, " "))
}

// EchoBytes displays the raw input bytes it receives as a quoted byte string.
// It never completes on its own.
type EchoBytes struct {
	data []byte
}

var _ Valuer[[]byte] = (*EchoBytes)(nil)

// NewEchoBytes creates an empty EchoBytes.
func NewEchoBytes() *EchoBytes {
	return &EchoBytes{}
}

// HandleEvent appends the bytes the event was decoded from.
func (e *EchoBytes) HandleEvent(ev Event) Response {
	raw := rawBytes(ev)
	if raw == "" {
		return Ignored
	}
	e.data = append(e.data, raw...)
	return Handled
}

// Value returns every byte received so far.
func (e *EchoBytes) Value() []byte {
	return slices.Clone(e.data)
}

// Render draws the bytes as a Go quoted string, wrapped to the width. Only
// the most recent lines that fit the height are drawn.
func (e *EchoBytes) Render(ctx RenderContext) string {
	return renderEcho(ctx, strconv.Quote(string(e.data)))
}

func renderEcho(ctx RenderContext, text string) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
	}
	if ctx.Width > 0 {
		text = ansi.Wrap(text, ctx.Width, " ")
	}
	if ctx.Height > 0 {
		if lines := strings.Split(text, "\n"); len(lines) > ctx.Height {
			text = strings.Join(lines[len(lines)-ctx.Height:], "\n")
		}
	}
	return theme.Echo.Render(text)
}

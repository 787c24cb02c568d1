package twidge

import (
	"github.com/charmbracelet/lipgloss"
)

// Framed draws a border around a widget. Events, focus and the value are
// passed through unchanged.
type Framed[T any] struct {
	inner   Valuer[T]
	focused bool
}

var (
	_ Valuer[string] = (*Framed[string])(nil)
	_ Focusable      = (*Framed[string])(nil)
)

// NewFramed wraps w in a border.
func NewFramed[T any](w Valuer[T]) *Framed[T] {
	return &Framed[T]{inner: w, focused: true}
}

// HandleEvent forwards the event.
func (f *Framed[T]) HandleEvent(ev Event) Response {
	return f.inner.HandleEvent(ev)
}

// Value returns the wrapped widget's value.
func (f *Framed[T]) Value() T {
	return f.inner.Value()
}

// Aborted reports whether the wrapped widget was aborted.
func (f *Framed[T]) Aborted() bool {
	return isAborted(f.inner)
}

// Focus highlights the border and focuses the wrapped widget.
func (f *Framed[T]) Focus() {
	f.focused = true
	if fw, ok := f.inner.(Focusable); ok {
		fw.Focus()
	}
}

// Blur dims the border and blurs the wrapped widget.
func (f *Framed[T]) Blur() {
	f.focused = false
	if fw, ok := f.inner.(Focusable); ok {
		fw.Blur()
	}
}

// Render draws the wrapped widget inside the border.
func (f *Framed[T]) Render(ctx RenderContext) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
		ctx.Theme = theme
	}
	style := theme.Frame
	if f.focused {
		style = theme.FocusFrame
	}
	inner := f.inner.Render(ctx.withWidth(ctx.Width - style.GetHorizontalFrameSize()).
		withHeight(ctx.Height - style.GetVerticalFrameSize()))
	return style.Render(inner)
}

// Labelled draws a label to the left of a widget. Events, focus and the value
// are passed through unchanged.
type Labelled[T any] struct {
	label string
	inner Valuer[T]
}

var (
	_ Valuer[string] = (*Labelled[string])(nil)
	_ Focusable      = (*Labelled[string])(nil)
)

// NewLabelled wraps w with a label.
func NewLabelled[T any](label string, w Valuer[T]) *Labelled[T] {
	return &Labelled[T]{label: label, inner: w}
}

// HandleEvent forwards the event.
func (l *Labelled[T]) HandleEvent(ev Event) Response {
	return l.inner.HandleEvent(ev)
}

// Value returns the wrapped widget's value.
func (l *Labelled[T]) Value() T {
	return l.inner.Value()
}

// Aborted reports whether the wrapped widget was aborted.
func (l *Labelled[T]) Aborted() bool {
	return isAborted(l.inner)
}

// Focus focuses the wrapped widget.
func (l *Labelled[T]) Focus() {
	if fw, ok := l.inner.(Focusable); ok {
		fw.Focus()
	}
}

// Blur blurs the wrapped widget.
func (l *Labelled[T]) Blur() {
	if fw, ok := l.inner.(Focusable); ok {
		fw.Blur()
	}
}

// Render draws the label, a space, then the wrapped widget.
func (l *Labelled[T]) Render(ctx RenderContext) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
		ctx.Theme = theme
	}
	label := theme.Label.Render(l.label) + " "
	inner := l.inner.Render(ctx.withWidth(ctx.Width - lipgloss.Width(label)))
	return lipgloss.JoinHorizontal(lipgloss.Top, label, inner)
}

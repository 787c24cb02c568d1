package twidge

// Response reports what a widget did with an event.
type Response uint8

const (
	// Ignored means the event did not change the widget. No redraw is needed.
	Ignored Response = iota
	// Handled means the widget consumed the event and may have changed.
	Handled
	// Submitted is the widget's completion signal: the user finished
	// interacting and Value holds the result. Outside a Close wrapper it is
	// treated like Handled.
	Submitted
	// Done asks the run loop to stop. Only Close returns it.
	Done
)

// String returns a human-readable representation of the response.
func (r Response) String() string {
	switch r {
	case Ignored:
		return "ignored"
	case Handled:
		return "handled"
	case Submitted:
		return "submitted"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Widget is a stateful unit that consumes events and renders itself.
//
// The set of widgets is small and fixed: Echo, EchoBytes, EditString, Form,
// SearchList, SelectList and the Close, Abort, Framed and Labelled wrappers.
type Widget interface {
	// HandleEvent processes one event and reports the outcome.
	HandleEvent(ev Event) Response

	// Render returns the widget's display content for the given width in
	// cells. Lines are separated by "\n".
	Render(ctx RenderContext) string
}

// Valuer is a widget that carries a result value when it completes.
type Valuer[T any] interface {
	Widget
	Value() T
}

// Focusable is implemented by widgets whose rendering depends on focus.
// Composite widgets call Focus and Blur when focus moves between children.
type Focusable interface {
	Widget

	// Focus is called when this widget gains focus.
	Focus()

	// Blur is called when this widget loses focus.
	Blur()
}

// RenderContext carries what a widget needs to render itself.
type RenderContext struct {
	// Width is the number of terminal cells available for each line.
	Width int

	// Height is the number of lines available, or 0 when unbounded. Lines
	// past it are cut from the top of the frame.
	Height int

	// Theme holds the styles widgets render with.
	Theme *Theme
}

// withWidth returns a copy of the context with a narrower width.
func (c RenderContext) withWidth(width int) RenderContext {
	if width < 1 {
		width = 1
	}
	c.Width = width
	return c
}

// withHeight returns a copy of the context with fewer lines. An unbounded
// height stays unbounded.
func (c RenderContext) withHeight(height int) RenderContext {
	if c.Height <= 0 {
		return c
	}
	if height < 1 {
		height = 1
	}
	c.Height = height
	return c
}

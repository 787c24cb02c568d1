package twidge

// Close wraps a widget and stops the run loop when the widget submits.
//
// On the first Submitted response Close captures the widget's value and
// returns Done. Every later event returns Done without reaching the widget,
// so the value cannot change after it was captured.
type Close[T any] struct {
	inner  Valuer[T]
	value  T
	closed bool
}

var _ Valuer[string] = (*Close[string])(nil)

// NewClose wraps w.
func NewClose[T any](w Valuer[T]) *Close[T] {
	return &Close[T]{inner: w}
}

// HandleEvent forwards the event until the wrapped widget submits.
func (c *Close[T]) HandleEvent(ev Event) Response {
	if c.closed {
		return Done
	}
	resp := c.inner.HandleEvent(ev)
	if resp != Submitted {
		return resp
	}
	c.value = c.inner.Value()
	c.closed = true
	return Done
}

// Render draws the wrapped widget.
func (c *Close[T]) Render(ctx RenderContext) string {
	return c.inner.Render(ctx)
}

// Value returns the captured value, or the zero value before submission.
func (c *Close[T]) Value() T {
	return c.value
}

// Closed reports whether the wrapped widget has submitted.
func (c *Close[T]) Closed() bool {
	return c.closed
}

// Aborted reports whether the wrapped widget ended the run without a result.
func (c *Close[T]) Aborted() bool {
	return isAborted(c.inner)
}

// Unwrap returns the wrapped widget.
func (c *Close[T]) Unwrap() Valuer[T] {
	return c.inner
}

package twidge

// DefaultAbortSequence is the key sequence NewAbort uses when none is given:
// escape pressed three times in a row.
var DefaultAbortSequence = []KeyPattern{{Key: KeyEscape}, {Key: KeyEscape}, {Key: KeyEscape}}

// Aborter is implemented by widgets that can end a run without a result.
// The run loop returns ErrAborted when the root widget reports Aborted after
// asking to stop.
type Aborter interface {
	Aborted() bool
}

// Abort wraps a widget and ends the run when a key sequence is typed.
//
// Keys of the sequence reach the wrapped widget until the last one, which
// is swallowed. Any other event between them starts the sequence over.
type Abort[T any] struct {
	inner   Valuer[T]
	seq     []KeyPattern
	matched int
	aborted bool
}

var (
	_ Valuer[string] = (*Abort[string])(nil)
	_ Aborter        = (*Abort[string])(nil)
)

// NewAbort wraps w. An empty seq selects DefaultAbortSequence.
func NewAbort[T any](w Valuer[T], seq []KeyPattern) *Abort[T] {
	if len(seq) == 0 {
		seq = DefaultAbortSequence
	}
	return &Abort[T]{inner: w, seq: seq}
}

// HandleEvent tracks the sequence and forwards everything else.
func (a *Abort[T]) HandleEvent(ev Event) Response {
	if a.aborted {
		return Done
	}
	if _, ok := ev.(ResizeEvent); !ok {
		a.advance(ev)
	}
	if a.matched == len(a.seq) {
		a.aborted = true
		return Done
	}
	return a.inner.HandleEvent(ev)
}

// advance updates how much of the sequence the recent keys complete.
func (a *Abort[T]) advance(ev Event) {
	ke, ok := ev.(KeyEvent)
	if !ok {
		a.matched = 0
		return
	}
	if a.seq[a.matched].Matches(ke) {
		a.matched++
		return
	}
	// Restart, keeping the longest suffix of the typed keys that is still a
	// prefix of the sequence. The typed keys so far were seq[:matched].
	for n := a.matched; n > 0; n-- {
		if a.suffixIsPrefix(n, ke) {
			a.matched = n
			return
		}
	}
	a.matched = 0
}

// suffixIsPrefix reports whether seq[matched-n+1:matched] followed by ke
// equals seq[:n].
func (a *Abort[T]) suffixIsPrefix(n int, ke KeyEvent) bool {
	start := a.matched - n + 1
	for i := 0; i < n-1; i++ {
		if a.seq[start+i] != a.seq[i] {
			return false
		}
	}
	return a.seq[n-1].Matches(ke)
}

// Render draws the wrapped widget.
func (a *Abort[T]) Render(ctx RenderContext) string {
	return a.inner.Render(ctx)
}

// Value returns the wrapped widget's value.
func (a *Abort[T]) Value() T {
	return a.inner.Value()
}

// Aborted reports whether the sequence was typed.
func (a *Abort[T]) Aborted() bool {
	return a.aborted
}

// Unwrap returns the wrapped widget.
func (a *Abort[T]) Unwrap() Valuer[T] {
	return a.inner
}

// isAborted reports whether w, or the widget it wraps, was aborted.
func isAborted(w Widget) bool {
	ab, ok := w.(Aborter)
	return ok && ab.Aborted()
}

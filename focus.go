package twidge

import "github.com/grindlemire/twidge/internal/debug"

// FocusManager tracks focus for an ordered set of widgets.
// Exactly one registered widget is focused at a time; the first one
// registered receives focus. It does NOT handle Tab navigation itself;
// the owner moves focus by calling Next, Prev or SetFocus.
type FocusManager struct {
	widgets []Focusable // Registered widgets in order
	current int         // Index of the focused widget (-1 = none)
}

// NewFocusManager creates an empty FocusManager.
// Use Register to add widgets.
func NewFocusManager() *FocusManager {
	return &FocusManager{current: -1}
}

// Register adds a widget to the manager.
func (f *FocusManager) Register(w Focusable) {
	f.widgets = append(f.widgets, w)

	if f.current == -1 {
		f.current = len(f.widgets) - 1
		w.Focus()
	} else {
		w.Blur()
	}
}

// Len returns the number of registered widgets.
func (f *FocusManager) Len() int {
	return len(f.widgets)
}

// Index returns the index of the focused widget, or -1 if none.
func (f *FocusManager) Index() int {
	return f.current
}

// Focused returns the focused widget, or nil if none.
func (f *FocusManager) Focused() Focusable {
	if f.current < 0 || f.current >= len(f.widgets) {
		return nil
	}
	return f.widgets[f.current]
}

// SetFocus moves focus to the widget at index i.
// Does nothing if i is out of range.
func (f *FocusManager) SetFocus(i int) {
	if i < 0 || i >= len(f.widgets) || i == f.current {
		return
	}
	if cur := f.Focused(); cur != nil {
		cur.Blur()
	}
	f.current = i
	f.widgets[i].Focus()
	debug.Log("focus moved", "index", i)
}

// Next moves focus to the next widget, wrapping to the first.
func (f *FocusManager) Next() {
	if len(f.widgets) == 0 {
		return
	}
	f.SetFocus((f.current + 1) % len(f.widgets))
}

// Prev moves focus to the previous widget, wrapping to the last.
func (f *FocusManager) Prev() {
	if len(f.widgets) == 0 {
		return
	}
	i := f.current - 1
	if i < 0 {
		i = len(f.widgets) - 1
	}
	f.SetFocus(i)
}

// IsLast reports whether the last widget is focused.
func (f *FocusManager) IsLast() bool {
	return len(f.widgets) > 0 && f.current == len(f.widgets)-1
}

// Dispatch sends an event to the focused widget only.
// Returns Ignored if nothing is focused.
func (f *FocusManager) Dispatch(ev Event) Response {
	focused := f.Focused()
	if focused == nil {
		return Ignored
	}
	return focused.HandleEvent(ev)
}

package twidge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormKeys holds the keys a Form reacts to itself. Every other key goes to
// the focused field.
type FormKeys struct {
	Submit    KeySet // Submit the whole form
	NextField KeySet // Focus the next field, wrapping to the first
	PrevField KeySet // Focus the previous field, wrapping to the last
}

// DefaultFormKeys returns ctrl+s to submit, tab and down for the next field,
// shift+tab and up for the previous one.
func DefaultFormKeys() FormKeys {
	return FormKeys{
		Submit:    Keys(KeyCtrlS),
		NextField: Keys(KeyTab, KeyDown),
		PrevField: KeySet{{Key: KeyTab, Mod: ModShift}, {Key: KeyUp}},
	}
}

// formField is one labelled input of a form.
type formField struct {
	label string
	input *EditString
}

// Form is an ordered set of labelled text inputs with one focused field.
//
// Enter in a field moves to the next one; enter in the last field, or the
// submit key anywhere, submits the form with all values.
type Form struct {
	fields []formField
	focus  *FocusManager
	keys   FormKeys
}

var _ Valuer[Values] = (*Form)(nil)

// NewForm creates a form with one empty field per label. The first field
// is focused.
// Returns ErrNoFields without labels and ErrDuplicateLabel when a label repeats.
func NewForm(labels ...string) (*Form, error) {
	initial := make(Values, len(labels))
	for i, label := range labels {
		initial[i] = Field{Label: label}
	}
	return NewFormValues(initial)
}

// NewFormValues creates a form with one field per entry of initial, in order,
// each starting with the entry's value and the cursor at its end. The first
// field is focused.
// Returns ErrNoFields when initial is empty and ErrDuplicateLabel when a label
// repeats.
func NewFormValues(initial Values) (*Form, error) {
	if len(initial) == 0 {
		return nil, ErrNoFields
	}

	f := &Form{
		focus: NewFocusManager(),
		keys:  DefaultFormKeys(),
	}
	seen := make(map[string]bool, len(initial))
	for _, fld := range initial {
		if seen[fld.Label] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, fld.Label)
		}
		seen[fld.Label] = true

		input := NewEditString(fld.Value)
		f.fields = append(f.fields, formField{label: fld.Label, input: input})
		f.focus.Register(input)
	}
	return f, nil
}

// SetKeys replaces the form's own key bindings.
func (f *Form) SetKeys(keys FormKeys) {
	f.keys = keys
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focus.Index()
}

// Field returns the input for label, or nil if the form has no such field.
func (f *Form) Field(label string) *EditString {
	for _, fld := range f.fields {
		if fld.label == label {
			return fld.input
		}
	}
	return nil
}

// Value returns every field's text in label order.
func (f *Form) Value() Values {
	values := make(Values, len(f.fields))
	for i, fld := range f.fields {
		values[i] = Field{Label: fld.label, Value: fld.input.Value()}
	}
	return values
}

// HandleEvent moves focus, submits, or forwards the event to the focused field.
func (f *Form) HandleEvent(ev Event) Response {
	var resp Response
	switch {
	case f.keys.Submit.Match(ev):
		resp = Submitted
	case f.keys.NextField.Match(ev):
		f.focus.Next()
		resp = Handled
	case f.keys.PrevField.Match(ev):
		f.focus.Prev()
		resp = Handled
	default:
		resp = f.focus.Dispatch(ev)
		if resp == Submitted && !f.focus.IsLast() {
			f.focus.Next()
			resp = Handled
		}
	}

	checkInvariant(f.focus.Index() >= 0 && f.focus.Index() < len(f.fields),
		"form focus %d outside [0, %d)", f.focus.Index(), len(f.fields))
	return resp
}

// Render draws one row per field: the label padded to the widest label,
// then the field.
func (f *Form) Render(ctx RenderContext) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
	}

	labelWidth := 0
	for _, fld := range f.fields {
		labelWidth = max(labelWidth, lipgloss.Width(fld.label))
	}
	fieldCtx := RenderContext{Theme: theme}.withWidth(ctx.Width - labelWidth - 1)
	label := theme.Label.Width(labelWidth)

	rows := make([]string, len(f.fields))
	for i, fld := range f.fields {
		rows[i] = label.Render(fld.label) + " " + fld.input.Render(fieldCtx)
	}
	return strings.Join(rows, "\n")
}

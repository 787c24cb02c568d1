package twidge

import (
	"errors"
	"testing"
)

func TestNewForm_Errors(t *testing.T) {
	if _, err := NewForm(); !errors.Is(err, ErrNoFields) {
		t.Errorf("NewForm() error = %v, want ErrNoFields", err)
	}
	if _, err := NewForm("Name", "Age", "Name"); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("NewForm(dup) error = %v, want ErrDuplicateLabel", err)
	}
}

func TestForm_HandleEvent(t *testing.T) {
	type tc struct {
		labels    []string
		events    []Event
		wantValue Values
		wantFocus int
		wantResp  Response
	}

	enter := KeyEvent{Key: KeyEnter}

	tests := map[string]tc{
		"fill two fields with enter": {
			labels:    []string{"Name", "EMail"},
			events:    append(append(keyEvents("A"), enter), append(keyEvents("B"), enter)...),
			wantValue: Values{{Label: "Name", Value: "A"}, {Label: "EMail", Value: "B"}},
			wantFocus: 1,
			wantResp:  Submitted,
		},
		"enter in first field advances": {
			labels:    []string{"Name", "EMail"},
			events:    []Event{enter},
			wantValue: Values{{Label: "Name", Value: ""}, {Label: "EMail", Value: ""}},
			wantFocus: 1,
			wantResp:  Handled,
		},
		"tab wraps around": {
			labels:    []string{"a", "b", "c"},
			events:    []Event{KeyEvent{Key: KeyTab}, KeyEvent{Key: KeyTab}, KeyEvent{Key: KeyTab}},
			wantValue: Values{{Label: "a"}, {Label: "b"}, {Label: "c"}},
			wantFocus: 0,
			wantResp:  Handled,
		},
		"shift+tab wraps to last": {
			labels:    []string{"a", "b", "c"},
			events:    []Event{KeyEvent{Key: KeyTab, Mod: ModShift}},
			wantValue: Values{{Label: "a"}, {Label: "b"}, {Label: "c"}},
			wantFocus: 2,
			wantResp:  Handled,
		},
		"up and down": {
			labels:    []string{"a", "b", "c"},
			events:    []Event{KeyEvent{Key: KeyDown}, KeyEvent{Key: KeyDown}, KeyEvent{Key: KeyUp}},
			wantValue: Values{{Label: "a"}, {Label: "b"}, {Label: "c"}},
			wantFocus: 1,
			wantResp:  Handled,
		},
		"typing reaches only focused field": {
			labels:    []string{"a", "b"},
			events:    append([]Event{KeyEvent{Key: KeyTab}}, keyEvents("xy")...),
			wantValue: Values{{Label: "a", Value: ""}, {Label: "b", Value: "xy"}},
			wantFocus: 1,
			wantResp:  Handled,
		},
		"ctrl+s submits from any field": {
			labels:    []string{"a", "b"},
			events:    append(keyEvents("q"), KeyEvent{Key: KeyCtrlS}),
			wantValue: Values{{Label: "a", Value: "q"}, {Label: "b", Value: ""}},
			wantFocus: 0,
			wantResp:  Submitted,
		},
		"single field enter submits": {
			labels:    []string{"only"},
			events:    append(keyEvents("z"), enter),
			wantValue: Values{{Label: "only", Value: "z"}},
			wantFocus: 0,
			wantResp:  Submitted,
		},
		"unbound key ignored": {
			labels:    []string{"a"},
			events:    []Event{KeyEvent{Key: KeyF3}},
			wantValue: Values{{Label: "a"}},
			wantFocus: 0,
			wantResp:  Ignored,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := NewForm(tt.labels...)
			if err != nil {
				t.Fatalf("NewForm() error: %v", err)
			}

			var resp Response
			for _, ev := range tt.events {
				resp = f.HandleEvent(ev)
			}

			got := f.Value()
			if len(got) != len(tt.wantValue) {
				t.Fatalf("Value() = %v, want %v", got, tt.wantValue)
			}
			for i := range got {
				if got[i] != tt.wantValue[i] {
					t.Errorf("field %d = %+v, want %+v", i, got[i], tt.wantValue[i])
				}
			}
			if f.Focused() != tt.wantFocus {
				t.Errorf("Focused() = %d, want %d", f.Focused(), tt.wantFocus)
			}
			if resp != tt.wantResp {
				t.Errorf("last response = %v, want %v", resp, tt.wantResp)
			}
		})
	}
}

func TestForm_SetKeys(t *testing.T) {
	f, err := NewForm("a", "b")
	if err != nil {
		t.Fatalf("NewForm() error: %v", err)
	}
	f.SetKeys(FormKeys{Submit: Keys(KeyF2), NextField: Keys(KeyPageDown)})

	if got := f.HandleEvent(KeyEvent{Key: KeyTab}); got != Ignored {
		t.Errorf("tab after SetKeys = %v, want Ignored", got)
	}
	f.HandleEvent(KeyEvent{Key: KeyPageDown})
	if f.Focused() != 1 {
		t.Errorf("Focused() = %d, want 1", f.Focused())
	}
	if got := f.HandleEvent(KeyEvent{Key: KeyF2}); got != Submitted {
		t.Errorf("F2 = %v, want Submitted", got)
	}
}

func TestForm_Field(t *testing.T) {
	f, err := NewForm("Name", "EMail")
	if err != nil {
		t.Fatalf("NewForm() error: %v", err)
	}
	f.Field("EMail").SetText("me@example.com")

	if got, ok := f.Value().Get("EMail"); !ok || got != "me@example.com" {
		t.Errorf("Get(EMail) = %q, %v", got, ok)
	}
	if f.Field("Phone") != nil {
		t.Error("Field(Phone) should be nil")
	}
}

func TestForm_Render(t *testing.T) {
	f, err := NewForm("Name", "EMail")
	if err != nil {
		t.Fatalf("NewForm() error: %v", err)
	}
	for _, ev := range keyEvents("Al") {
		f.HandleEvent(ev)
	}

	got := f.Render(RenderContext{Width: 40, Theme: PlainTheme()})
	want := "Name  Al[ ]\nEMail "
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestNewFormValues(t *testing.T) {
	type tc struct {
		initial Values
		events  []Event
		want    string
		wantErr error
	}

	tests := map[string]tc{
		"keeps initial values": {
			initial: Values{{Label: "Name", Value: "Ann"}, {Label: "EMail", Value: "a@b"}},
			events:  []Event{KeyEvent{Key: KeyCtrlS}},
			want:    "Name=Ann\nEMail=a@b",
		},
		"edits at the end": {
			initial: Values{{Label: "Name", Value: "Ann"}, {Label: "EMail"}},
			events:  append(append(keyEvents("e"), KeyEvent{Key: KeyEnter}), keyEvents("x")...),
			want:    "Name=Anne\nEMail=x",
		},
		"empty": {
			initial: Values{},
			wantErr: ErrNoFields,
		},
		"duplicate": {
			initial: Values{{Label: "A", Value: "1"}, {Label: "A", Value: "2"}},
			wantErr: ErrDuplicateLabel,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := NewFormValues(tt.initial)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewFormValues() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFormValues() error: %v", err)
			}
			for _, ev := range tt.events {
				f.HandleEvent(ev)
			}
			if got := f.Value().String(); got != tt.want {
				t.Errorf("Value() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFormValues_DoesNotAliasInput(t *testing.T) {
	initial := Values{{Label: "Name", Value: "Ann"}}
	f, err := NewFormValues(initial)
	if err != nil {
		t.Fatalf("NewFormValues() error: %v", err)
	}
	f.HandleEvent(KeyEvent{Key: KeyRune, Rune: 'e'})
	if initial[0].Value != "Ann" {
		t.Errorf("initial changed to %q", initial[0].Value)
	}
}

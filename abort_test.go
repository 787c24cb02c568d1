package twidge

import (
	"context"
	"errors"
	"testing"
)

func TestAbort(t *testing.T) {
	esc := KeyEvent{Key: KeyEscape}
	key := func(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r} }

	type tc struct {
		seq         []KeyPattern
		events      []Event
		wantAborted bool
		wantInner   int
	}

	tests := map[string]tc{
		"three escapes": {
			events:      []Event{esc, esc, esc},
			wantAborted: true,
			wantInner:   2,
		},
		"broken sequence": {
			events:    []Event{esc, esc, key('x'), esc},
			wantInner: 4,
		},
		"restart after other key": {
			events:      []Event{esc, key('x'), esc, esc, esc},
			wantAborted: true,
			wantInner:   4,
		},
		"resize does not break": {
			events:      []Event{esc, ResizeEvent{Rows: 5, Cols: 5}, esc, esc},
			wantAborted: true,
			wantInner:   3,
		},
		"unknown bytes break": {
			events:    []Event{esc, esc, UnknownEvent{Raw: "\xff"}, esc},
			wantInner: 4,
		},
		"custom sequence": {
			seq:         []KeyPattern{{Rune: 'q'}, {Rune: 'q'}},
			events:      []Event{key('a'), key('q'), key('q')},
			wantAborted: true,
			wantInner:   2,
		},
		"overlapping prefix": {
			seq:         []KeyPattern{{Rune: 'a'}, {Rune: 'b'}, {Rune: 'a'}, {Rune: 'c'}},
			events:      []Event{key('a'), key('b'), key('a'), key('b'), key('a'), key('c')},
			wantAborted: true,
			wantInner:   5,
		},
		"case sensitive": {
			seq:       []KeyPattern{{Rune: 'Q'}},
			events:    []Event{key('q')},
			wantInner: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			echo := NewEcho()
			a := NewAbort[[]string](echo, tt.seq)

			var resp Response
			for _, ev := range tt.events {
				resp = a.HandleEvent(ev)
			}

			if a.Aborted() != tt.wantAborted {
				t.Errorf("Aborted() = %v, want %v", a.Aborted(), tt.wantAborted)
			}
			if tt.wantAborted && resp != Done {
				t.Errorf("last response = %v, want Done", resp)
			}
			if got := len(echo.Value()); got != tt.wantInner {
				t.Errorf("wrapped widget got %d events %q, want %d", got, echo.Value(), tt.wantInner)
			}
		})
	}
}

func TestAbort_StaysDone(t *testing.T) {
	echo := NewEcho()
	a := NewAbort[[]string](echo, []KeyPattern{{Key: KeyCtrlX}})
	a.HandleEvent(KeyEvent{Key: KeyCtrlX})
	if got := a.HandleEvent(KeyEvent{Key: KeyRune, Rune: 'z'}); got != Done {
		t.Errorf("HandleEvent after abort = %v, want Done", got)
	}
	if len(echo.Value()) != 0 {
		t.Errorf("wrapped widget got %q after abort", echo.Value())
	}
}

func TestAbort_ThroughWrappers(t *testing.T) {
	a := NewAbort[string](NewEditString("x"), []KeyPattern{{Key: KeyCtrlX}})
	wrapped := NewClose[string](NewLabelled[string]("L", NewFramed[string](a)))

	if isAborted(wrapped) {
		t.Fatal("aborted before the sequence")
	}
	if got := wrapped.HandleEvent(KeyEvent{Key: KeyCtrlX}); got != Done {
		t.Fatalf("HandleEvent(ctrl+x) = %v, want Done", got)
	}
	if !isAborted(wrapped) {
		t.Error("abort not reported through Close, Labelled and Framed")
	}
	if wrapped.Closed() {
		t.Error("Close captured a value after an abort")
	}
}

func TestRun_Abort(t *testing.T) {
	reader := NewMockEventReader(
		KeyEvent{Key: KeyRune, Rune: 'a'},
		KeyEvent{Key: KeyEscape},
		KeyEvent{Key: KeyEscape},
		KeyEvent{Key: KeyEscape},
		KeyEvent{Key: KeyEnter},
	)
	app, mt := newTestApp(t, reader)

	got, err := Run[string](context.Background(), app, NewAbort[string](NewEditString(""), nil))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
	if got != "" {
		t.Errorf("Run() = %q, want zero value", got)
	}
	if reader.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", reader.Remaining())
	}
	checkRestored(t, mt)
}

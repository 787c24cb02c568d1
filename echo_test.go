package twidge

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestEcho(t *testing.T) {
	e := NewEcho()

	events := []Event{
		KeyEvent{Key: KeyRune, Rune: 'x', Raw: "x"},
		KeyEvent{Key: KeyEnter, Raw: "\r"},
	}
	for _, ev := range events {
		if got := e.HandleEvent(ev); got != Handled {
			t.Errorf("HandleEvent(%v) = %v, want Handled", ev, got)
		}
	}

	want := []string{`"x"`, `"enter"`}
	got := e.Value()
	if len(got) != len(want) {
		t.Fatalf("Value() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}

	if r := e.Render(RenderContext{Width: 80, Theme: PlainTheme()}); r != `"x" "enter"` {
		t.Errorf("Render() = %q", r)
	}
}

func TestEcho_NeverCompletes(t *testing.T) {
	c := NewClose[[]string](NewEcho())
	for _, ev := range []Event{
		KeyEvent{Key: KeyEnter},
		KeyEvent{Key: KeyCtrlS},
		KeyEvent{Key: KeyEscape},
		ResizeEvent{Rows: 5, Cols: 5},
	} {
		if got := c.HandleEvent(ev); got == Done {
			t.Fatalf("HandleEvent(%v) = Done", ev)
		}
	}
	if c.Closed() {
		t.Error("Echo wrapped in Close should never close")
	}
}

func TestEcho_RenderWraps(t *testing.T) {
	e := NewEcho()
	for _, ev := range keyEvents("abcdef") {
		e.HandleEvent(ev)
	}

	got := e.Render(RenderContext{Width: 8, Theme: PlainTheme()})
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("Render() = %q, want several lines", got)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > 8 {
			t.Errorf("line %d %q is %d cells wide, want <= 8", i, line, w)
		}
	}
	if fields := strings.Fields(got); strings.Join(fields, " ") != strings.Join(e.Value(), " ") {
		t.Errorf("wrapped entries = %q, want %q", fields, e.Value())
	}
}

func TestEchoBytes(t *testing.T) {
	type tc struct {
		events     []Event
		wantValue  string
		wantRender string
		wantResp   Response
	}

	tests := map[string]tc{
		"printable": {
			events:     []Event{KeyEvent{Key: KeyRune, Rune: 'h', Raw: "h"}, KeyEvent{Key: KeyRune, Rune: 'i', Raw: "i"}},
			wantValue:  "hi",
			wantRender: `"hi"`,
			wantResp:   Handled,
		},
		"escape sequence": {
			events:     []Event{KeyEvent{Key: KeyUp, Raw: "\x1b[A"}},
			wantValue:  "\x1b[A",
			wantRender: `"\x1b[A"`,
			wantResp:   Handled,
		},
		"unknown bytes": {
			events:     []Event{UnknownEvent{Raw: "\xff"}},
			wantValue:  "\xff",
			wantRender: `"\xff"`,
			wantResp:   Handled,
		},
		"resize has no bytes": {
			events:     []Event{ResizeEvent{Rows: 1, Cols: 2}},
			wantValue:  "",
			wantRender: `""`,
			wantResp:   Ignored,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewEchoBytes()
			var resp Response
			for _, ev := range tt.events {
				resp = e.HandleEvent(ev)
			}

			if got := string(e.Value()); got != tt.wantValue {
				t.Errorf("Value() = %q, want %q", got, tt.wantValue)
			}
			if got := e.Render(RenderContext{Width: 80, Theme: PlainTheme()}); got != tt.wantRender {
				t.Errorf("Render() = %q, want %q", got, tt.wantRender)
			}
			if resp != tt.wantResp {
				t.Errorf("response = %v, want %v", resp, tt.wantResp)
			}
		})
	}
}

func TestEcho_ValueIsCopy(t *testing.T) {
	e := NewEcho()
	e.HandleEvent(KeyEvent{Key: KeyRune, Rune: 'x', Raw: "x"})
	got := e.Value()
	got[0] = "changed"
	if e.Value()[0] != `"x"` {
		t.Errorf("Echo.Value() shares storage: %q", e.Value())
	}

	b := NewEchoBytes()
	b.HandleEvent(KeyEvent{Key: KeyRune, Rune: 'x', Raw: "x"})
	raw := b.Value()
	raw[0] = 'y'
	if string(b.Value()) != "x" {
		t.Errorf("EchoBytes.Value() shares storage: %q", b.Value())
	}
}

func TestEcho_RenderKeepsTail(t *testing.T) {
	type tc struct {
		height    int
		wantLines int
	}

	tests := map[string]tc{
		"unbounded":   {height: 0, wantLines: 4},
		"taller":      {height: 10, wantLines: 4},
		"cut to two":  {height: 2, wantLines: 2},
		"single line": {height: 1, wantLines: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewEcho()
			for _, ev := range keyEvents("abcdefgh") {
				e.HandleEvent(ev)
			}

			// Eight entries of three cells, two per eight-cell line.
			got := e.Render(RenderContext{Width: 8, Height: tt.height, Theme: PlainTheme()})
			lines := strings.Split(got, "\n")
			if len(lines) != tt.wantLines {
				t.Fatalf("Render() = %q, want %d lines", got, tt.wantLines)
			}
			if last := lines[len(lines)-1]; !strings.Contains(last, `"h"`) {
				t.Errorf("last line %q does not hold the newest entry", last)
			}
		})
	}
}

func TestRun_EchoFitsTerminal(t *testing.T) {
	events := make([]Event, 60)
	for i := range events {
		events[i] = KeyEvent{Key: KeyRune, Rune: 'a', Raw: "a"}
	}
	mt := NewMockTerminal(20, 5)
	app, err := NewAppWithReader(NewMockEventReader(events...), mt)
	if err != nil {
		t.Fatalf("NewAppWithReader() error: %v", err)
	}

	most := 0
	w := &hookWidget[[]string]{
		Valuer: NewEcho(),
		onEvent: func(Event) {
			most = max(most, len(mt.Lines()))
		},
	}
	if _, err := Run[[]string](context.Background(), app, w); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if most != 5 {
		t.Errorf("tallest frame = %d lines, want 5", most)
	}
}

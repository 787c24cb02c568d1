package twidge

import "testing"

func TestFramed(t *testing.T) {
	e := NewEditString("ab")
	f := NewFramed[string](e)

	got := f.Render(RenderContext{Width: 10, Theme: PlainTheme()})
	want := "┌─────┐\n│ab[ ]│\n└─────┘"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if resp := f.HandleEvent(KeyEvent{Key: KeyRune, Rune: 'c'}); resp != Handled {
		t.Errorf("HandleEvent() = %v, want Handled", resp)
	}
	if f.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", f.Value(), "abc")
	}

	f.Blur()
	if e.Focused() {
		t.Error("Blur() did not reach the wrapped input")
	}
	f.Focus()
	if !e.Focused() {
		t.Error("Focus() did not reach the wrapped input")
	}
}

func TestLabelled(t *testing.T) {
	e := NewEditString("ab")
	l := NewLabelled[string]("Name:", e)

	if got := l.Render(RenderContext{Width: 20, Theme: PlainTheme()}); got != "Name: ab[ ]" {
		t.Errorf("Render() = %q, want %q", got, "Name: ab[ ]")
	}

	l.HandleEvent(KeyEvent{Key: KeyBackspace})
	if l.Value() != "a" {
		t.Errorf("Value() = %q, want %q", l.Value(), "a")
	}

	l.Blur()
	if e.Focused() {
		t.Error("Blur() did not reach the wrapped input")
	}
}

func TestClose_Framed(t *testing.T) {
	c := NewClose[string](NewFramed[string](NewEditString("")))
	c.HandleEvent(KeyEvent{Key: KeyRune, Rune: 'q'})
	if got := c.HandleEvent(KeyEvent{Key: KeyEnter}); got != Done {
		t.Fatalf("enter = %v, want Done", got)
	}
	if c.Value() != "q" {
		t.Errorf("Value() = %q, want %q", c.Value(), "q")
	}
}

// ctxWidget records the context it was last rendered with.
type ctxWidget struct {
	*EditString
	last RenderContext
}

func (c *ctxWidget) Render(ctx RenderContext) string {
	c.last = ctx
	return c.EditString.Render(ctx)
}

func TestFramed_RenderContext(t *testing.T) {
	type tc struct {
		width, height         int
		wantWidth, wantHeight int
	}

	tests := map[string]tc{
		"unbounded height": {width: 10, height: 0, wantWidth: 8, wantHeight: 0},
		"border removed":   {width: 10, height: 6, wantWidth: 8, wantHeight: 4},
		"at least a line":  {width: 10, height: 2, wantWidth: 8, wantHeight: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inner := &ctxWidget{EditString: NewEditString("")}
			f := NewFramed[string](inner)
			f.Render(RenderContext{Width: tt.width, Height: tt.height, Theme: PlainTheme()})
			if inner.last.Width != tt.wantWidth || inner.last.Height != tt.wantHeight {
				t.Errorf("inner context = %dx%d, want %dx%d",
					inner.last.Width, inner.last.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

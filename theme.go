package twidge

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeColors names the colours of a theme. Values are anything
// lipgloss.Color accepts: ANSI numbers ("6") or hex ("#00ffff").
// An empty value leaves the terminal default.
type ThemeColors struct {
	Label  string `toml:"label"`
	Text   string `toml:"text"`
	Focus  string `toml:"focus"`
	Cursor string `toml:"cursor"`
	Echo   string `toml:"echo"`
	Frame  string `toml:"frame"`
}

// DefaultColors returns the built-in palette.
func DefaultColors() ThemeColors {
	return ThemeColors{
		Label:  "3",
		Focus:  "6",
		Cursor: "6",
		Echo:   "6",
		Frame:  "8",
	}
}

// Theme holds the styles widgets render with.
type Theme struct {
	Label       lipgloss.Style // Form and Labelled labels
	Text        lipgloss.Style // Unfocused input text
	FocusedText lipgloss.Style // Focused input text
	Cursor      lipgloss.Style // The cell under the edit cursor
	Echo        lipgloss.Style // Echo and EchoBytes output
	Frame       lipgloss.Style // Framed border
	FocusFrame  lipgloss.Style // Framed border around a focused widget

	renderer *lipgloss.Renderer
}

// NewTheme builds a theme from colours for the given renderer.
//
// Without colour support the cursor cannot be shown by reversing the cell, so
// it is drawn in brackets instead.
func NewTheme(r *lipgloss.Renderer, c ThemeColors) *Theme {
	t := &Theme{
		Label:       r.NewStyle().Bold(true),
		Text:        r.NewStyle(),
		FocusedText: r.NewStyle().Bold(true),
		Cursor:      r.NewStyle().Reverse(true),
		Echo:        r.NewStyle(),
		Frame:       r.NewStyle().Border(lipgloss.NormalBorder()),
		FocusFrame:  r.NewStyle().Border(lipgloss.NormalBorder()),
		renderer:    r,
	}
	if c.Label != "" {
		t.Label = t.Label.Foreground(lipgloss.Color(c.Label))
	}
	if c.Text != "" {
		t.Text = t.Text.Foreground(lipgloss.Color(c.Text))
	}
	if c.Focus != "" {
		t.FocusedText = t.FocusedText.Foreground(lipgloss.Color(c.Focus))
		t.FocusFrame = t.FocusFrame.BorderForeground(lipgloss.Color(c.Focus))
	}
	if c.Cursor != "" {
		t.Cursor = t.Cursor.Foreground(lipgloss.Color(c.Cursor))
	}
	if c.Echo != "" {
		t.Echo = t.Echo.Foreground(lipgloss.Color(c.Echo))
	}
	if c.Frame != "" {
		t.Frame = t.Frame.BorderForeground(lipgloss.Color(c.Frame))
	}

	if r.ColorProfile() == termenv.Ascii {
		t.Cursor = r.NewStyle().Transform(func(s string) string {
			return "[" + s + "]"
		})
	}
	return t
}

// DefaultTheme builds the default theme for the given renderer.
func DefaultTheme(r *lipgloss.Renderer) *Theme {
	return NewTheme(r, DefaultColors())
}

// PlainTheme returns a theme that emits no escape sequences.
// Rendered output is plain text, which makes it suitable for tests and for
// terminals without colour.
func PlainTheme() *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return DefaultTheme(r)
}

// ThemeFor builds a theme rendering to out with the given colour profile.
func ThemeFor(out io.Writer, profile termenv.Profile, c ThemeColors) *Theme {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(profile)
	return NewTheme(r, c)
}

// Renderer returns the lipgloss renderer the theme's styles belong to.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// Plain reports whether the theme renders without colour or attributes.
func (t *Theme) Plain() bool {
	return t.renderer == nil || t.renderer.ColorProfile() == termenv.Ascii
}

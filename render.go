package twidge

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Renderer draws widget output into a transient region below the cursor.
//
// The region starts on the line the cursor was on when the first frame was
// drawn and grows downwards. Each frame rewrites only the lines that changed
// since the previous one; Clear erases the region and leaves the cursor at
// its top, so nothing remains in the scrollback once a run ends.
//
// With a height set, a frame taller than the terminal keeps only its last
// height lines, so the region never scrolls off the top of the screen.
type Renderer struct {
	out    io.Writer
	width  int
	height int

	lines []string // Lines currently on screen
	row   int      // Cursor row relative to the region top
	full  bool     // Next frame redraws every line
}

// NewRenderer creates a renderer writing to out. Lines are clipped to width
// cells; a width < 1 disables clipping.
func NewRenderer(out io.Writer, width int) *Renderer {
	return &Renderer{out: out, width: width, full: true}
}

// SetWidth changes the clipping width and forces a full redraw.
func (r *Renderer) SetWidth(width int) {
	if width != r.width {
		r.width = width
		r.Invalidate()
	}
}

// SetSize changes the clipping width and the height bound, forcing a full
// redraw when either changes. A height < 1 disables the bound.
func (r *Renderer) SetSize(width, height int) {
	if height < 0 {
		height = 0
	}
	if width != r.width || height != r.height {
		r.width = width
		r.height = height
		r.Invalidate()
	}
}

// Width returns the clipping width.
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the height bound, 0 when unbounded.
func (r *Renderer) Height() int {
	return r.height
}

// Invalidate makes the next frame redraw every line.
func (r *Renderer) Invalidate() {
	r.full = true
}

// Lines returns the lines drawn by the last frame.
func (r *Renderer) Lines() []string {
	return r.lines
}

// Frame draws content, a "\n" separated block, over the previous frame.
func (r *Renderer) Frame(content string) error {
	lines := r.split(content)

	var seq strings.Builder
	appendMoveToTop(&seq, r.row)
	for i, line := range lines {
		if i > 0 {
			seq.WriteString("\r\n")
		}
		if !r.full && i < len(r.lines) && r.lines[i] == line {
			continue
		}
		seq.WriteString(ansi.EraseEntireLine)
		seq.WriteString(line)
	}

	// Region shrank: blank the leftover lines, then come back up.
	if extra := len(r.lines) - len(lines); extra > 0 {
		for i := 0; i < extra; i++ {
			seq.WriteString("\r\n")
			seq.WriteString(ansi.EraseEntireLine)
		}
		seq.WriteString(ansi.CursorUp(extra))
	}

	r.lines = lines
	r.row = len(lines) - 1
	r.full = false

	_, err := io.WriteString(r.out, seq.String())
	return err
}

// Clear erases the region and leaves the cursor at the start of its first line.
func (r *Renderer) Clear() error {
	if len(r.lines) == 0 {
		return nil
	}

	var seq strings.Builder
	appendMoveToTop(&seq, r.row)
	for i := range r.lines {
		if i > 0 {
			seq.WriteString("\r\n")
		}
		seq.WriteString(ansi.EraseEntireLine)
	}
	appendMoveToTop(&seq, len(r.lines)-1)

	r.lines = nil
	r.row = 0
	r.full = true

	_, err := io.WriteString(r.out, seq.String())
	return err
}

// split breaks content into lines, keeps the last height of them and clips
// each to the width.
func (r *Renderer) split(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if r.height > 0 && len(lines) > r.height {
		lines = lines[len(lines)-r.height:]
	}
	if r.width > 0 {
		for i, line := range lines {
			if ansi.StringWidth(line) > r.width {
				lines[i] = ansi.Truncate(line, r.width, "")
			}
		}
	}
	return lines
}

// appendMoveToTop moves the cursor up n rows to column 0.
func appendMoveToTop(seq *strings.Builder, n int) {
	seq.WriteByte('\r')
	if n > 0 {
		seq.WriteString(ansi.CursorUp(n))
	}
}

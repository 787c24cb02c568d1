package twidge

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// selectNumbers finds the option numbers in a SelectList query.
var selectNumbers = regexp.MustCompile(`[0-9]+`)

// SelectList picks options by number.
//
// Every option is shown with its 1-based number. The query is free text and
// each run of digits in it selects the option with that number, so "1 3",
// "1,3" and "1-3" all select the first and the third. Selecting the same
// number twice repeats the option. If any number is out of range nothing is
// selected. Enter submits the selection.
type SelectList struct {
	options  []string
	query    []rune
	selected []string
	chosen   map[int]bool
	keys     KeyMap
}

var _ Valuer[[]string] = (*SelectList)(nil)

// NewSelectList creates a list over options with nothing selected.
func NewSelectList(options []string) *SelectList {
	s := &SelectList{options: options}
	s.keys = KeyMap{
		OnRunes(s.appendQuery),
		OnKey(KeyBackspace, s.backspace),
		OnKey(KeyCtrlD, s.clear),
		OnKey(KeyEnter, func(KeyEvent) Response { return Submitted }),
	}
	s.refresh()
	return s
}

// Query returns the current query.
func (s *SelectList) Query() string {
	return string(s.query)
}

// Value returns the selected options in the order they were typed.
func (s *SelectList) Value() []string {
	return slices.Clone(s.selected)
}

// HandleEvent edits the query or submits.
func (s *SelectList) HandleEvent(ev Event) Response {
	return s.keys.Handle(ev)
}

func (s *SelectList) appendQuery(ke KeyEvent) Response {
	s.query = append(s.query, ke.Rune)
	s.refresh()
	return Handled
}

func (s *SelectList) backspace(KeyEvent) Response {
	if len(s.query) == 0 {
		return Ignored
	}
	s.query = s.query[:len(s.query)-1]
	s.refresh()
	return Handled
}

func (s *SelectList) clear(KeyEvent) Response {
	s.query = s.query[:0]
	s.refresh()
	return Handled
}

// refresh recomputes the selection from the query.
func (s *SelectList) refresh() {
	s.selected = nil
	s.chosen = nil

	nums := selectNumbers.FindAllString(string(s.query), -1)
	selected := make([]string, 0, len(nums))
	chosen := make(map[int]bool, len(nums))
	for _, num := range nums {
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 || n > len(s.options) {
			return
		}
		selected = append(selected, s.options[n-1])
		chosen[n-1] = true
	}
	s.selected = selected
	s.chosen = chosen
}

// Render draws the query, then every option with its number. Selected
// options are marked with "*".
func (s *SelectList) Render(ctx RenderContext) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
	}

	lines := []string{theme.Label.Render("# ") + theme.FocusedText.Render(string(s.query)) + theme.Cursor.Render(" ")}
	digits := len(strconv.Itoa(len(s.options)))
	for i, opt := range s.options {
		prefix := fmt.Sprintf("%*d ", digits, i+1)
		style := theme.Text
		if s.chosen[i] {
			prefix += "* "
			style = theme.FocusedText
		} else {
			prefix += "  "
		}
		if ctx.Width > 0 {
			opt = ansi.Truncate(opt, max(ctx.Width-len(prefix), 1), "…")
		}
		lines = append(lines, theme.Label.Render(prefix)+style.Render(opt))
	}
	return strings.Join(lines, "\n")
}

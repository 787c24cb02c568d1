package twidge

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DefaultSearchListRows is how many matches SearchList shows at once.
const DefaultSearchListRows = 10

// SearchList filters a list of options by a typed query.
//
// The query is a case-insensitive regular expression. While it does not
// compile (for example while typing "a[") it is matched literally.
// Enter submits the options that currently match.
type SearchList struct {
	options []string
	query   []rune
	matches []string
	rows    int
	keys    KeyMap
}

var _ Valuer[[]string] = (*SearchList)(nil)

// NewSearchList creates a list over options with an empty query, which
// matches everything.
func NewSearchList(options []string) *SearchList {
	s := &SearchList{
		options: options,
		rows:    DefaultSearchListRows,
	}
	s.keys = KeyMap{
		OnRunes(s.appendQuery),
		OnKey(KeyBackspace, s.backspace),
		OnKey(KeyCtrlD, s.clear),
		OnKey(KeyEnter, func(KeyEvent) Response { return Submitted }),
	}
	s.refresh()
	return s
}

// SetRows sets how many matches are shown. Values < 1 are ignored.
func (s *SearchList) SetRows(n int) {
	if n > 0 {
		s.rows = n
	}
}

// Query returns the current query.
func (s *SearchList) Query() string {
	return string(s.query)
}

// Value returns the options matching the query, in their original order.
func (s *SearchList) Value() []string {
	return slices.Clone(s.matches)
}

// HandleEvent edits the query or submits.
func (s *SearchList) HandleEvent(ev Event) Response {
	return s.keys.Handle(ev)
}

func (s *SearchList) appendQuery(ke KeyEvent) Response {
	s.query = append(s.query, ke.Rune)
	s.refresh()
	return Handled
}

func (s *SearchList) backspace(KeyEvent) Response {
	if len(s.query) == 0 {
		return Ignored
	}
	s.query = s.query[:len(s.query)-1]
	s.refresh()
	return Handled
}

func (s *SearchList) clear(KeyEvent) Response {
	s.query = s.query[:0]
	s.refresh()
	return Handled
}

// refresh recomputes the matches from all options.
func (s *SearchList) refresh() {
	match := queryMatcher(string(s.query))
	matches := make([]string, 0, len(s.options))
	for _, opt := range s.options {
		if match(opt) {
			matches = append(matches, opt)
		}
	}
	s.matches = matches
}

// queryMatcher compiles a query into a case-insensitive predicate.
func queryMatcher(query string) func(string) bool {
	if query == "" {
		return func(string) bool { return true }
	}
	if re, err := regexp.Compile("(?i)" + query); err == nil {
		return re.MatchString
	}
	lower := strings.ToLower(query)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), lower)
	}
}

// Render draws the query on the first line and the matches below it.
func (s *SearchList) Render(ctx RenderContext) string {
	theme := ctx.Theme
	if theme == nil {
		theme = PlainTheme()
	}

	lines := []string{theme.Label.Render("> ") + theme.FocusedText.Render(string(s.query)) + theme.Cursor.Render(" ")}
	if len(s.matches) == 0 {
		lines = append(lines, theme.Text.Render("No matches."))
		return strings.Join(lines, "\n")
	}

	shown := s.matches
	if len(shown) > s.rows {
		shown = shown[:s.rows]
	}
	for _, opt := range shown {
		if ctx.Width > 0 {
			opt = ansi.Truncate(opt, ctx.Width, "…")
		}
		lines = append(lines, theme.Text.Render(opt))
	}
	if more := len(s.matches) - len(shown); more > 0 {
		lines = append(lines, theme.Label.Render(fmt.Sprintf("… %d more", more)))
	}
	return strings.Join(lines, "\n")
}

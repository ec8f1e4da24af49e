package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/blog"
	"folio/internal/theme"
)

// SearchBox is the search palette: a query input over a result list.
type SearchBox struct {
	input   textinput.Model
	query   string
	results []blog.Post
	cursor  int
	err     error
}

func NewSearchBox() *SearchBox {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search posts..."
	ti.CharLimit = 100
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &SearchBox{input: ti}
}

// Open clears the box and focuses the input.
func (s *SearchBox) Open() {
	s.input.Reset()
	s.input.Focus()
	s.query = ""
	s.results = nil
	s.cursor = 0
	s.err = nil
}

func (s *SearchBox) Close() { s.input.Blur() }

func (s *SearchBox) Focused() bool { return s.input.Focused() }

// Query is the current input value.
func (s *SearchBox) Query() string { return s.input.Value() }

// Update feeds a key to the input and reports whether the query changed.
func (s *SearchBox) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// SetResults stores the answer for query. Answers to an older query are
// dropped and SetResults returns false.
func (s *SearchBox) SetResults(query string, posts []blog.Post, err error) bool {
	if query != s.input.Value() {
		return false
	}
	s.query = query
	s.results = posts
	s.err = err
	s.cursor = 0
	return true
}

func (s *SearchBox) Results() []blog.Post { return s.results }

func (s *SearchBox) Cursor() int { return s.cursor }

func (s *SearchBox) Up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *SearchBox) Down() {
	if s.cursor < len(s.results)-1 {
		s.cursor++
	}
}

func (s *SearchBox) Selected() (blog.Post, bool) {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return blog.Post{}, false
	}
	return s.results[s.cursor], true
}

func (s *SearchBox) View(st theme.Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(st.Title.Render("Search"))
	sb.WriteString("\n")
	sb.WriteString(s.input.View())
	sb.WriteString("\n\n")

	switch {
	case s.err != nil:
		sb.WriteString(st.Error.Render(s.err.Error()))
	case len(s.results) == 0:
		sb.WriteString(st.Subtle.Render("No matching posts"))
	default:
		for i, p := range s.results {
			line := fmt.Sprintf("%s  %s", p.Date.Format(blog.DateLayout), p.Title)
			if i == s.cursor {
				sb.WriteString(st.Selected.Render("> " + line))
			} else {
				sb.WriteString(st.Text.Render("  " + line))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(st.Help.Render("↑/↓ select · enter open · esc close"))
	return st.Box.Width(width - 2).Render(sb.String())
}

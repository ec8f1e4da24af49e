package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/palette"
	"folio/internal/theme"
)

// StatusBar is the bottom line: mode badge and location on the left, an
// optional message in the middle, the theme on the right.
type StatusBar struct {
	text    string
	isErr   bool
	spinner spinner.Model
	loading bool
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &StatusBar{spinner: s}
}

// SetLoading starts or stops the spinner. Starting returns its first tick.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	wasLoading := s.loading
	s.loading = loading
	if loading && !wasLoading {
		return s.spinner.Tick
	}
	return nil
}

func (s *StatusBar) Loading() bool { return s.loading }

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isErr = false
}

func (s *StatusBar) SetError(err error) {
	s.text = err.Error()
	s.isErr = true
}

func (s *StatusBar) Text() string { return s.text }

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

// View renders the bar at width.
func (s *StatusBar) View(st theme.Styles, t theme.Theme, mode palette.Mode, location string, width int) string {
	left := st.ModeBadge(mode) + " " + location

	middle := s.text
	if s.isErr {
		middle = st.Error.Render(middle)
	}
	if s.loading {
		s.spinner.Style = st.Accent
		middle = s.spinner.View() + " " + middle
	}
	if middle != "" {
		left += "  " + middle
	}

	right := t.Icon + " " + t.Label
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return st.Status.Render(left + strings.Repeat(" ", gap) + right)
}

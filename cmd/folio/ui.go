package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	emphasisStyle = lipgloss.NewStyle().Bold(true)
)

func successText(s string) string  { return successStyle.Render("✓ " + s) }
func errorText(s string) string    { return errorStyle.Render("✗ " + s) }
func warningText(s string) string  { return warningStyle.Render("! " + s) }
func infoText(s string) string     { return infoStyle.Render(s) }
func emphasisText(s string) string { return emphasisStyle.Render(s) }

// headerText renders a title underlined to its width.
func headerText(s string) string {
	return headerStyle.Render(s) + "\n" + strings.Repeat("─", lipgloss.Width(s))
}

const logo = `
  ___     _ _
 | __|__ | (_)___
 | _/ _ \| | / _ \
 |_|\___/|_|_\___/
`

package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/blog"
	"folio/internal/config"
	"folio/internal/keymap"
	"folio/internal/palette"
	"folio/internal/theme"
	"folio/internal/tui/common"
	"folio/pkg/testutils"
)

// Mock model for testing
type mockModel struct {
	screen   common.Screen
	mode     palette.Mode
	body     string
	search   string
	registry *keymap.Registry
}

func (m *mockModel) Screen() common.Screen      { return m.screen }
func (m *mockModel) Mode() palette.Mode         { return m.mode }
func (m *mockModel) Styles() theme.Styles       { return theme.NewStyles(m.Theme()) }
func (m *mockModel) Theme() theme.Theme         { t, _ := theme.Lookup(theme.Mocha); return t }
func (m *mockModel) Width() int                 { return 120 }
func (m *mockModel) CurrentSection() string     { return "hero" }
func (m *mockModel) Body() string               { return m.body }
func (m *mockModel) Registry() *keymap.Registry { return m.registry }
func (m *mockModel) SearchView() string         { return m.search }
func (m *mockModel) StatusView() string         { return "STATUS" }

func testRegistry() *keymap.Registry {
	noop := func() {}
	return keymap.NewRegistry(keymap.Set{
		{Chord: keymap.Key(keymap.Space), Description: "Leader", Category: keymap.CategoryPalette,
			Modes: []palette.Mode{palette.Idle}, Execute: noop},
		{Chord: keymap.Key("?"), Description: "Show keybindings", Category: keymap.CategoryPalette,
			Modes: []palette.Mode{palette.Idle}, Execute: noop},
		{Chord: keymap.Key("j"), Description: "Next page", Category: keymap.CategoryNavigation,
			Modes: []palette.Mode{palette.Idle, palette.Help}, Execute: noop},
		{Chord: keymap.Ctrl("d"), Description: "Half page down", Category: keymap.CategoryScroll,
			Modes: []palette.Mode{palette.Idle, palette.Help}, Execute: noop},
		{Chord: keymap.Key("t"), Description: "Cycle theme", Category: keymap.CategoryLeader,
			Modes: []palette.Mode{palette.Leader}, Execute: noop},
	})
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "idle shows the page and palette hints",
			model:    &mockModel{mode: palette.Idle, body: "PAGE BODY"},
			contains: []string{"PAGE BODY", "space", "Leader", "Show keybindings", "STATUS"},
			excludes: []string{"Next page", "Cycle theme", "Keybindings"},
		},
		{
			name:     "help replaces the page",
			model:    &mockModel{mode: palette.Help, body: "PAGE BODY"},
			contains: []string{"Keybindings", "Navigation", "Scroll", "Leader", "ctrl+d", "Half page down", "Cycle theme"},
			excludes: []string{"PAGE BODY"},
		},
		{
			name:     "search replaces the page",
			model:    &mockModel{mode: palette.Search, body: "PAGE BODY", search: "SEARCH BOX"},
			contains: []string{"SEARCH BOX", "STATUS"},
			excludes: []string{"PAGE BODY"},
		},
		{
			name:     "leader hints",
			model:    &mockModel{mode: palette.Leader, body: "PAGE BODY"},
			contains: []string{"PAGE BODY", "Cycle theme"},
			excludes: []string{"Show keybindings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.model.registry = testRegistry()
			output := testutils.StripANSI(RenderMainView(tt.model))

			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func renderDefault(t *testing.T, cfg *config.Config, posts []blog.Post) (string, map[string]int) {
	t.Helper()
	th, ok := theme.Lookup(theme.Frappe)
	require.True(t, ok)
	content, offsets := RenderPortfolio(cfg, theme.NewStyles(th), 100, posts)
	return testutils.StripANSI(content), offsets
}

func TestRenderPortfolioOffsets(t *testing.T) {
	cfg := config.New()
	content, offsets := renderDefault(t, cfg, nil)
	lines := strings.Split(content, "\n")

	require.Len(t, offsets, len(cfg.Sections))
	prev := -1
	for _, name := range cfg.Sections {
		off, ok := offsets[name]
		require.True(t, ok, name)
		assert.Greater(t, off, prev, "%s starts after the previous section", name)
		require.Less(t, off, len(lines))
		prev = off
	}

	assert.Equal(t, 0, offsets["hero"])
	assert.Contains(t, lines[offsets["hero"]], cfg.Profile.Name)
	assert.Contains(t, lines[offsets["experience"]], "Experience")
	assert.Contains(t, lines[offsets["tech"]], "Tech Stack")
	assert.Contains(t, lines[offsets["tools"]], "Tools")
	assert.Contains(t, lines[offsets["contact"]], "Contact")
}

func TestRenderPortfolioContent(t *testing.T) {
	cfg := config.New()
	cfg.Jobs = []config.Job{{Company: "Acme", Role: "Engineer", Period: "2020 - now", Summary: "Built things"}}
	content, _ := renderDefault(t, cfg, nil)

	for _, s := range []string{
		cfg.Profile.Title,
		"6+ years",
		"Engineer · Acme",
		"Built things",
		"Node.js",
		"Neovim",
		"https://neovim.io",
		cfg.Contact.Email,
		"utm_source=hong4rc",
		"utm_content=contact",
	} {
		assert.Contains(t, content, s)
	}
}

func TestRenderPortfolioOptionalSections(t *testing.T) {
	cfg := config.New()
	cfg.Sections = []string{"hero", "blog", "projects"}

	content, offsets := renderDefault(t, cfg, nil)
	assert.Contains(t, content, "No posts yet")
	assert.Contains(t, content, "Projects")
	assert.Len(t, offsets, 3)

	posts := []blog.Post{
		{Slug: "d", Title: "Fourth", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "c", Title: "Third", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "b", Title: "Second", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "a", Title: "First", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	content, _ = renderDefault(t, cfg, posts)
	assert.Contains(t, content, "2024-04-01  Fourth")
	assert.Contains(t, content, "Second")
	assert.NotContains(t, content, "First", "only the latest posts are listed")
}

func TestRenderPlaceholderTitle(t *testing.T) {
	cfg := config.New()
	cfg.Sections = []string{"hero", "écrits", "talks"}

	content, offsets := renderDefault(t, cfg, nil)
	lines := strings.Split(content, "\n")
	require.Contains(t, offsets, "écrits")

	title := lines[offsets["écrits"]]
	assert.Contains(t, title, "Écrits")
	assert.Contains(t, lines[offsets["écrits"]+1], strings.Repeat("─", 6))
	assert.NotContains(t, lines[offsets["écrits"]+1], strings.Repeat("─", 7))
	assert.Contains(t, lines[offsets["talks"]], "Talks")
}

func TestRenderHelpGroups(t *testing.T) {
	th, _ := theme.Lookup(theme.Latte)
	out := testutils.StripANSI(RenderHelp(testRegistry().ByCategory(), theme.NewStyles(th)))

	palettePos := strings.Index(out, keymap.CategoryPalette)
	navPos := strings.Index(out, keymap.CategoryNavigation)
	require.NotEqual(t, -1, palettePos)
	require.NotEqual(t, -1, navPos)
	assert.Less(t, palettePos, navPos, "groups keep registration order")
	assert.Contains(t, out, "space")
}

package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/analytics"
	"folio/internal/blog"
	"folio/internal/config"
	"folio/internal/keymap"
	"folio/internal/kv"
	"folio/internal/palette"
	"folio/internal/theme"
	"folio/internal/tui/common"
	"folio/internal/tui/messages"
	"folio/pkg/testutils"
)

type eventLog struct {
	names []string
}

func (e *eventLog) Name() string { return "test" }

func (e *eventLog) Init(context.Context) error { return nil }

func (e *eventLog) Track(_ context.Context, ev analytics.Event) error {
	e.names = append(e.names, ev.Name)
	return nil
}

type fixture struct {
	t      *testing.T
	m      *Model
	sched  *palette.ManualScheduler
	state  *kv.MemoryStore
	events *eventLog
}

func newFixture(t *testing.T, height int) *fixture {
	t.Helper()
	repo, err := blog.NewMarkdownRepository(context.Background(), testutils.PostsDir(t), "")
	require.NoError(t, err)

	cfg := config.New()
	cfg.Features.ShowBlog = true

	f := &fixture{
		t:      t,
		sched:  palette.NewManualScheduler(),
		state:  kv.NewMemoryStore(),
		events: &eventLog{},
	}
	mgr := analytics.NewManager(true)
	mgr.Register(f.events)

	f.m = New(Options{
		Config:    cfg,
		Blog:      repo,
		Themes:    theme.NewStore(f.state),
		Tracker:   analytics.NewTracker(mgr),
		Scheduler: f.sched,
	})
	t.Cleanup(f.m.Close)

	f.run(f.m.Init())
	f.send(tea.WindowSizeMsg{Width: 100, Height: height})
	return f
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func (f *fixture) send(msg tea.Msg) {
	f.t.Helper()
	_, cmd := f.m.Update(msg)
	f.run(cmd)
}

func (f *fixture) press(keys ...string) {
	f.t.Helper()
	for _, k := range keys {
		f.send(keyMsg(k))
	}
}

// run executes cmd and feeds its messages back, breadth first. Commands that
// block (reload waits, ticks) are abandoned after a short wait; spinner
// frames are dropped.
func (f *fixture) run(cmd tea.Cmd) {
	f.t.Helper()
	queue := collect(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		_, next := f.m.Update(msg)
		queue = append(queue, collect(next)...)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func (f *fixture) view() string {
	return testutils.StripANSI(f.m.View())
}

func TestModelInitialization(t *testing.T) {
	f := newFixture(t, 5)

	assert.Equal(t, palette.Idle, f.m.Mode())
	assert.Equal(t, common.Portfolio, f.m.Screen())
	assert.Equal(t, "hero", f.m.CurrentSection())
	assert.Len(t, f.m.Posts(), 3, "posts load on init")
	assert.Equal(t, theme.Default, f.m.Theme().Name)

	view := f.view()
	assert.Contains(t, view, "Hong4rc")
	assert.Contains(t, view, "IDLE")
	assert.Contains(t, view, "Frappé")
	assert.Contains(t, f.events.names, analytics.EventSectionView)
}

func TestSectionNavigation(t *testing.T) {
	f := newFixture(t, 5)

	steps := []struct {
		keys []string
		want string
	}{
		{[]string{"j"}, "experience"},
		{[]string{"j"}, "tech"},
		{[]string{"k"}, "experience"},
		{[]string{"tab"}, "tech"},
		{[]string{"g", "4"}, "tools"},
		{[]string{"g", "g"}, "hero"},
		{[]string{"G"}, "contact"},
		{[]string{"k"}, "tools"},
		{[]string{"0"}, "hero"},
		{[]string{"down"}, "experience"},
	}
	for _, step := range steps {
		f.press(step.keys...)
		assert.Equal(t, step.want, f.m.CurrentSection(), "after %v", step.keys)
		assert.Equal(t, palette.Idle, f.m.Mode())
	}

	assert.Contains(t, f.events.names, analytics.EventNavigate)
	assert.Contains(t, f.events.names, analytics.EventShortcutUse)
	assert.Contains(t, f.view(), "experience", "status bar shows the section")
}

func TestPrevFromFirstSectionScrollsToTop(t *testing.T) {
	f := newFixture(t, 5)

	f.send(keyMsg("j"))
	f.m.vp.SetYOffset(2)
	f.press("k")
	assert.Equal(t, 0, f.m.ScrollOffset())
}

func TestLeaderTimeout(t *testing.T) {
	f := newFixture(t, 5)

	f.press("space")
	require.Equal(t, palette.Leader, f.m.Mode())
	assert.Contains(t, f.view(), "LEADER")
	assert.Contains(t, f.events.names, analytics.EventPaletteOpen)

	f.sched.Advance(palette.LeaderTimeout - time.Millisecond)
	assert.Equal(t, palette.Leader, f.m.Mode())
	f.sched.Advance(time.Millisecond)
	assert.Equal(t, palette.Idle, f.m.Mode())
}

func TestUnboundKeyInLeaderKeepsMode(t *testing.T) {
	f := newFixture(t, 5)

	f.press("space", "z")
	assert.Equal(t, palette.Leader, f.m.Mode())
	f.press("esc")
	assert.Equal(t, palette.Idle, f.m.Mode())
}

func TestHelpOverlay(t *testing.T) {
	f := newFixture(t, 40)

	f.press("?")
	require.Equal(t, palette.Help, f.m.Mode())
	view := f.view()
	for _, s := range []string{"Keybindings", keymap.CategoryNavigation, keymap.CategoryScroll, keymap.CategoryLeader, "Next page", "Cycle theme"} {
		assert.Contains(t, view, s)
	}

	// Navigation stays live under the overlay and closes it.
	f.press("j")
	assert.Equal(t, palette.Idle, f.m.Mode())
	assert.NotContains(t, f.view(), "Keybindings")

	f.press("?")
	f.sched.Advance(palette.HelpTimeout)
	assert.Equal(t, palette.Idle, f.m.Mode())

	f.press("?", "?")
	assert.Equal(t, palette.Idle, f.m.Mode())
}

func TestLeaderCycleTheme(t *testing.T) {
	f := newFixture(t, 5)

	f.press("space", "t")
	assert.Equal(t, palette.Idle, f.m.Mode())
	assert.Equal(t, theme.Macchiato, f.m.Theme().Name)

	stored, ok := f.state.Get(theme.StorageKey)
	require.True(t, ok)
	assert.Equal(t, theme.Macchiato, stored)
	assert.Contains(t, f.events.names, analytics.EventThemeChange)
	assert.Contains(t, f.events.names, analytics.EventPaletteCommand)
	assert.Contains(t, f.view(), "Macchiato")
}

func TestBlogFlow(t *testing.T) {
	f := newFixture(t, 30)

	f.press("space", "b")
	require.Equal(t, common.BlogList, f.m.Screen())
	assert.Contains(t, f.view(), "Building Terminal UIs")
	assert.Contains(t, f.events.names, analytics.EventNavigate, "opening the blog is a navigation")

	f.press("enter")
	require.Equal(t, common.BlogPost, f.m.Screen())
	post, ok := f.m.CurrentPost()
	require.True(t, ok)
	assert.Equal(t, "terminal-uis", post.Slug)
	assert.Contains(t, f.view(), "Model, Update, View.")
	assert.Contains(t, f.events.names, analytics.EventBlogView)

	slug := func() string {
		p, _ := f.m.CurrentPost()
		return p.Slug
	}
	f.press("h")
	assert.Equal(t, "go-concurrency", slug())
	f.press("h")
	assert.Equal(t, "hello-world", slug())
	f.press("h")
	assert.Equal(t, "hello-world", slug(), "oldest post has no previous")
	f.press("l")
	assert.Equal(t, "go-concurrency", slug())

	f.press("esc")
	assert.Equal(t, common.BlogList, f.m.Screen())
	f.press("esc")
	assert.Equal(t, common.Portfolio, f.m.Screen())
}

func TestGotoFromBlogReturnsToPortfolio(t *testing.T) {
	f := newFixture(t, 5)

	f.press("space", "b")
	require.Equal(t, common.BlogList, f.m.Screen())
	f.press("g", "3")
	assert.Equal(t, common.Portfolio, f.m.Screen())
	assert.Equal(t, "tech", f.m.CurrentSection())
}

func TestSearchFlow(t *testing.T) {
	f := newFixture(t, 30)

	f.press("/")
	require.Equal(t, palette.Search, f.m.Mode())
	assert.Len(t, f.m.SearchResults(), 3, "empty query lists every post")

	f.press("g", "o")
	results := f.m.SearchResults()
	require.Len(t, results, 2)
	assert.Equal(t, "terminal-uis", results[0].Slug)
	assert.Equal(t, palette.Search, f.m.Mode(), "typed keys do not leave search")
	assert.Contains(t, f.view(), "Go Concurrency Patterns")

	f.press("down", "enter")
	assert.Equal(t, palette.Idle, f.m.Mode())
	assert.Equal(t, common.BlogPost, f.m.Screen())
	post, _ := f.m.CurrentPost()
	assert.Equal(t, "go-concurrency", post.Slug)
	assert.Contains(t, f.events.names, analytics.EventBlogSelect)
}

func TestSearchEscapeAndStaleResults(t *testing.T) {
	f := newFixture(t, 30)

	f.press("/", "r", "u", "s", "t")
	assert.Empty(t, f.m.SearchResults())

	f.send(messages.SearchResultsMsg{Query: "old", Posts: []blog.Post{{Slug: "stale"}}})
	assert.Empty(t, f.m.SearchResults(), "answers to an older query are dropped")

	f.press("esc")
	assert.Equal(t, palette.Idle, f.m.Mode())
	assert.Equal(t, common.Portfolio, f.m.Screen())
}

func TestQuit(t *testing.T) {
	t.Run("ctrl+c", func(t *testing.T) {
		f := newFixture(t, 5)
		_, cmd := f.m.Update(keyMsg("ctrl+c"))
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
		assert.True(t, f.m.Quitting())
		assert.Empty(t, f.m.View())
	})

	t.Run("leader q", func(t *testing.T) {
		f := newFixture(t, 5)
		f.press("space")
		_, cmd := f.m.Update(keyMsg("q"))
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	})
}

func TestReloadMessage(t *testing.T) {
	f := newFixture(t, 5)

	f.send(messages.ReloadMsg{Event: blog.ReloadEvent{Path: "posts/new.md"}})
	assert.Contains(t, f.view(), "Posts reloaded")

	f.send(messages.ErrorMsg{Err: assert.AnError})
	assert.Contains(t, f.view(), assert.AnError.Error())
}

func TestWithoutBlog(t *testing.T) {
	m := New(Options{Scheduler: palette.NewManualScheduler()})
	defer m.Close()

	_, ok := m.Registry().Lookup(keymap.Key("b"), palette.Leader)
	assert.False(t, ok, "open blog is not bound without a repository")
	_, ok = m.Registry().Lookup(keymap.Key("t"), palette.Leader)
	assert.True(t, ok)
	assert.Nil(t, m.Init())
}

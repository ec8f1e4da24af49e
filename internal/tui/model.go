package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/analytics"
	"folio/internal/blog"
	"folio/internal/config"
	"folio/internal/keymap"
	"folio/internal/log"
	"folio/internal/nav"
	"folio/internal/palette"
	"folio/internal/theme"
	"folio/internal/tui/common"
	"folio/internal/tui/components"
	"folio/internal/tui/messages"
	"folio/internal/tui/views"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeHeight is the hint line plus the status bar.
	chromeHeight = 2
)

// Options wires the model to the rest of the application.
type Options struct {
	Config *config.Config
	// Blog is nil when the blog is disabled.
	Blog    blog.Repository
	Themes  *theme.Store
	Tracker *analytics.Tracker
	// Reloads delivers watcher events; may be nil.
	Reloads <-chan blog.ReloadEvent
	// Scheduler drives palette timeouts. Nil uses tea.Tick.
	Scheduler palette.Scheduler
}

// teaScheduler turns palette timeouts into tea.Tick commands. Schedule is
// only called from inside Update, so the queued commands are returned by
// the same Update call.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) Schedule(after time.Duration, fire func()) {
	s.pending = append(s.pending, tea.Tick(after, func(time.Time) tea.Msg {
		return messages.TimerMsg{Fire: fire}
	}))
}

func (s *teaScheduler) drain() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}

type Model struct {
	cfg     *config.Config
	repo    blog.Repository
	themes  *theme.Store
	tracker *analytics.Tracker
	reloads <-chan blog.ReloadEvent

	width  int
	height int
	screen common.Screen
	styles theme.Styles

	vp         viewport.Model
	lines      *nav.LineViewport
	nav        *nav.Navigator
	store      *palette.Store
	ticks      *teaScheduler
	dispatcher *keymap.Dispatcher

	status *components.StatusBar
	search *components.SearchBox
	posts  *components.PostList
	reader *components.PostReader

	section     string
	havePosts   bool
	quitting    bool
	cmds        []tea.Cmd
	unsubscribe []func()
}

// New builds the model. The portfolio is rendered at a default size until
// the first tea.WindowSizeMsg arrives.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewStore(nil)
	}

	m := &Model{
		cfg:     cfg,
		repo:    opts.Blog,
		themes:  themes,
		tracker: opts.Tracker,
		reloads: opts.Reloads,
		width:   defaultWidth,
		height:  defaultHeight,
		vp:      viewport.New(defaultWidth, defaultHeight-chromeHeight),
		status:  components.NewStatusBar(),
		search:  components.NewSearchBox(),
		posts:   components.NewPostList(defaultWidth, defaultHeight-chromeHeight),
		reader:  components.NewPostReader(defaultWidth, defaultHeight-chromeHeight),
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		m.ticks = &teaScheduler{}
		scheduler = m.ticks
	}
	m.store = palette.NewStore(scheduler)
	m.lines = nav.NewLineViewport(&m.vp)
	m.nav = nav.New(nav.PageIndex(cfg.Sections), m.lines)

	hooks := keymap.PaletteHooks{
		CycleTheme: m.cycleTheme,
		Quit:       m.quit,
	}
	if m.repo != nil {
		hooks.OpenBlog = m.tracker.WrapNavigation(common.BlogList.String(), analytics.MethodKeyboard)(m.openBlog)
	}
	registry := keymap.NewRegistry(
		keymap.PaletteCommands(m.nav, m.store, hooks),
		keymap.NavigationCommands(m.nav, m.store),
		keymap.ScrollCommands(m.nav, m.store),
	)
	m.dispatcher = keymap.NewDispatcher(registry, m.store)
	m.dispatcher.OnExecute(m.afterCommand)

	m.applyTheme(themes.Init())
	m.unsubscribe = append(m.unsubscribe,
		m.store.Subscribe(m.modeChanged),
		themes.Subscribe(m.applyTheme),
	)
	m.section = m.nav.Current()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.repo != nil {
		cmds = append(cmds, m.status.SetLoading(true), m.loadPosts())
	}
	if m.reloads != nil {
		cmds = append(cmds, m.waitForReload())
	}
	m.tracker.SectionView(m.section)
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit()
			break
		}
		m.handleKey(msg)
	case messages.TimerMsg:
		msg.Fire()
	case messages.PostsLoadedMsg:
		m.postsLoaded(msg)
	case messages.PostLoadedMsg:
		m.postLoaded(msg)
	case messages.SearchResultsMsg:
		m.search.SetResults(msg.Query, msg.Posts, msg.Err)
	case messages.ReloadMsg:
		m.reloaded(msg)
	case messages.ErrorMsg:
		m.status.SetError(msg.Err)
	default:
		m.queue(m.status.Update(msg))
		if m.screen == common.BlogList {
			m.queue(m.posts.Update(msg))
		}
	}
	return m, m.flush()
}

// Close releases the store and theme subscriptions.
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) flush() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	if m.ticks != nil {
		cmds = append(cmds, m.ticks.drain()...)
	}
	return tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	bodyHeight := max(height-chromeHeight, 1)

	m.vp.Width = width
	m.vp.Height = bodyHeight
	m.posts.SetSize(width, bodyHeight)
	m.reader.SetSize(width, bodyHeight)
	m.reader.Restyle(m.styles)
	m.renderPortfolio()
}

func (m *Model) renderPortfolio() {
	content, offsets := views.RenderPortfolio(m.cfg, m.styles, m.vp.Width, m.posts.Posts())
	m.vp.SetContent(content)
	m.lines.SetSections(offsets)
}

func (m *Model) applyTheme(t theme.Theme) {
	m.styles = theme.NewStyles(t)
	m.posts.SetTheme(t)
	m.reader.Restyle(m.styles)
	m.renderPortfolio()
}

// handleKey routes a key. Search mode owns the keyboard except for the
// commands bound in it. On the blog screens the screen gets idle keys that
// do not open the palette.
func (m *Model) handleKey(msg tea.KeyMsg) {
	chord := keymap.ChordFromKey(msg)
	mode := m.store.Mode()

	if mode == palette.Search {
		if !m.dispatcher.Dispatch(chord) {
			m.handleSearchKey(msg)
		}
		return
	}

	if m.screen != common.Portfolio && mode == palette.Idle {
		if cmd, ok := m.dispatcher.Registry().Lookup(chord, mode); !ok || cmd.Category != keymap.CategoryPalette {
			m.handleScreenKey(msg)
			return
		}
	}

	m.dispatcher.Dispatch(chord)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		post, ok := m.search.Selected()
		if !ok {
			return
		}
		m.store.Reset()
		m.tracker.BlogSelect(post.Slug, post.Title)
		m.queue(m.loadPost(post.Slug))
	case tea.KeyUp:
		m.search.Up()
	case tea.KeyDown:
		m.search.Down()
	default:
		changed, cmd := m.search.Update(msg)
		m.queue(cmd)
		if changed {
			m.queue(m.runSearch(m.search.Query()))
		}
	}
}

func (m *Model) handleScreenKey(msg tea.KeyMsg) {
	switch m.screen {
	case common.BlogList:
		switch msg.String() {
		case "esc":
			m.showPortfolio()
		case "enter":
			if post, ok := m.posts.Selected(); ok {
				m.tracker.BlogSelect(post.Slug, post.Title)
				m.queue(m.loadPost(post.Slug))
			}
		default:
			m.queue(m.posts.Update(msg))
		}
	case common.BlogPost:
		adj := m.reader.Adjacent()
		switch msg.String() {
		case "esc":
			if post, ok := m.reader.Post(); ok {
				m.posts.Select(post.Slug)
			}
			m.screen = common.BlogList
		case "h", "left":
			if adj.Prev != nil {
				m.queue(m.loadPost(adj.Prev.Slug))
			}
		case "l", "right":
			if adj.Next != nil {
				m.queue(m.loadPost(adj.Next.Slug))
			}
		default:
			m.queue(m.reader.Update(msg))
		}
	}
}

// afterCommand runs after every dispatched command.
func (m *Model) afterCommand(cmd keymap.Command, mode palette.Mode) {
	m.tracker.Shortcut(cmd.Chord.String(), cmd.Description)

	switch cmd.Category {
	case keymap.CategoryLeader:
		m.tracker.PaletteCommand(cmd.Chord.String(), cmd.Description)
	case keymap.CategoryNavigation, keymap.CategoryScroll, keymap.CategoryGoto:
		m.showPortfolio()
		m.tracker.Navigate(m.nav.Current(), analytics.MethodKeyboard)
	}

	if current := m.nav.Current(); current != m.section {
		m.section = current
		m.tracker.SectionView(current)
	}
	log.LogWithFields(log.F("mode", mode.String()), log.F("section", m.section)).Debug("Command executed")
}

func (m *Model) modeChanged(from, to palette.Mode) {
	if from == palette.Search {
		m.search.Close()
	}
	if to == palette.Idle {
		return
	}
	m.tracker.PaletteOpen(to.String())
	if to == palette.Search {
		m.search.Open()
		m.queue(m.runSearch(""))
	}
}

func (m *Model) cycleTheme() {
	t, err := m.themes.Cycle()
	if err != nil {
		m.status.SetError(err)
		return
	}
	m.tracker.ThemeChange(t.Name, "palette")
}

func (m *Model) openBlog() {
	m.screen = common.BlogList
	if !m.havePosts {
		m.queue(m.loadPosts())
	}
}

func (m *Model) showPortfolio() {
	m.screen = common.Portfolio
}

func (m *Model) quit() {
	m.quitting = true
	m.queue(tea.Quit)
}

func (m *Model) loadPosts() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		posts, err := repo.All(context.Background())
		return messages.PostsLoadedMsg{Posts: posts, Err: err}
	}
}

func (m *Model) loadPost(slug string) tea.Cmd {
	if m.repo == nil {
		return nil
	}
	repo := m.repo
	return func() tea.Msg {
		ctx := context.Background()
		post, err := repo.BySlug(ctx, slug)
		if err != nil {
			return messages.PostLoadedMsg{Err: err}
		}
		content, err := repo.Content(ctx, slug)
		if err != nil {
			return messages.PostLoadedMsg{Err: err}
		}
		adj, err := repo.Adjacent(ctx, slug)
		return messages.PostLoadedMsg{Post: post, Content: content, Adjacent: adj, Err: err}
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	if m.repo == nil {
		return nil
	}
	repo := m.repo
	return func() tea.Msg {
		posts, err := repo.Search(context.Background(), query)
		return messages.SearchResultsMsg{Query: query, Posts: posts, Err: err}
	}
}

func (m *Model) waitForReload() tea.Cmd {
	ch := m.reloads
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return messages.ReloadMsg{Event: ev}
	}
}

func (m *Model) postsLoaded(msg messages.PostsLoadedMsg) {
	m.status.SetLoading(false)
	if msg.Err != nil {
		log.LogWithError(msg.Err).Warn("Failed to load posts")
		m.status.SetError(msg.Err)
		return
	}
	m.havePosts = true
	m.posts.SetPosts(msg.Posts)
	m.renderPortfolio()
}

func (m *Model) postLoaded(msg messages.PostLoadedMsg) {
	if msg.Err != nil {
		m.status.SetError(msg.Err)
		return
	}
	m.reader.SetPost(msg.Post, msg.Content, msg.Adjacent, m.styles)
	m.screen = common.BlogPost
	m.status.SetText("")
	m.tracker.BlogView(msg.Post.Slug, msg.Post.Title)
}

func (m *Model) reloaded(msg messages.ReloadMsg) {
	if msg.Event.Err != nil {
		m.status.SetError(msg.Event.Err)
	} else {
		m.status.SetText("Posts reloaded")
	}
	if m.repo != nil {
		m.queue(m.loadPosts())
	}
	if m.reloads != nil {
		m.queue(m.waitForReload())
	}
}

// Getters

func (m *Model) Screen() common.Screen { return m.screen }

func (m *Model) Mode() palette.Mode { return m.store.Mode() }

func (m *Model) Store() *palette.Store { return m.store }

func (m *Model) Styles() theme.Styles { return m.styles }

func (m *Model) Theme() theme.Theme { return m.themes.Current() }

func (m *Model) Width() int { return m.width }

func (m *Model) CurrentSection() string { return m.nav.Current() }

func (m *Model) ScrollOffset() int { return m.vp.YOffset }

func (m *Model) Registry() *keymap.Registry { return m.dispatcher.Registry() }

func (m *Model) Posts() []blog.Post { return m.posts.Posts() }

func (m *Model) SearchResults() []blog.Post { return m.search.Results() }

func (m *Model) Quitting() bool { return m.quitting }

// CurrentPost is the post open in the reader.
func (m *Model) CurrentPost() (blog.Post, bool) { return m.reader.Post() }

func (m *Model) Body() string {
	switch m.screen {
	case common.BlogList:
		return m.posts.View()
	case common.BlogPost:
		return m.reader.View(m.styles)
	default:
		return m.vp.View()
	}
}

func (m *Model) SearchView() string {
	return m.search.View(m.styles, m.width)
}

func (m *Model) StatusView() string {
	location := m.screen.String()
	switch m.screen {
	case common.Portfolio:
		location = m.nav.Current()
	case common.BlogPost:
		if post, ok := m.reader.Post(); ok {
			location = post.Slug
		}
	}
	return m.status.View(m.styles, m.themes.Current(), m.store.Mode(), location, m.width)
}

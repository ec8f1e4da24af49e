// Package analytics fans tracked events out to pluggable providers.
package analytics

import (
	"context"
	"io"
	"sync"
	"time"

	"folio/internal/log"
)

// Event names.
const (
	EventNavigate       = "navigate"
	EventSectionView    = "section_view"
	EventThemeChange    = "theme_change"
	EventPaletteOpen    = "palette_open"
	EventPaletteCommand = "palette_command"
	EventSocialClick    = "social_click"
	EventBlogView       = "blog_view"
	EventBlogSelect     = "blog_select"
	EventExternalClick  = "external_click"
	EventShortcutUse    = "shortcut_use"
	EventPageView       = "page_view"
)

// Properties are event parameters.
type Properties map[string]any

// Event is one tracked occurrence.
type Event struct {
	Name       string
	Properties Properties
	Time       time.Time
}

// Plugin is an analytics provider.
type Plugin interface {
	Name() string
	Init(ctx context.Context) error
	Track(ctx context.Context, event Event) error
}

// Identifier is implemented by plugins that can attach a user id.
type Identifier interface {
	Identify(ctx context.Context, userID string, traits Properties) error
}

// Manager dispatches events to the registered plugins. A disabled manager
// accepts registrations but never initializes plugins or tracks events.
type Manager struct {
	mu          sync.Mutex
	plugins     []Plugin
	enabled     bool
	initialized bool
	now         func() time.Time
}

// NewManager creates a manager.
func NewManager(enabled bool) *Manager {
	return &Manager{enabled: enabled, now: time.Now}
}

// Enabled reports whether events are tracked.
func (m *Manager) Enabled() bool { return m.enabled }

// Plugins returns the registered plugins in registration order.
func (m *Manager) Plugins() []Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Plugin, len(m.plugins))
	copy(out, m.plugins)
	return out
}

// Register adds a plugin. Plugins registered after Init are initialized
// immediately.
func (m *Manager) Register(p Plugin) {
	m.mu.Lock()
	m.plugins = append(m.plugins, p)
	initNow := m.initialized
	m.mu.Unlock()

	if initNow {
		initPlugin(context.Background(), p)
	}
}

// Init initializes every plugin once. It does nothing when the manager is
// disabled or already initialized.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	if !m.enabled || m.initialized {
		m.mu.Unlock()
		return
	}
	m.initialized = true
	plugins := make([]Plugin, len(m.plugins))
	copy(plugins, m.plugins)
	m.mu.Unlock()

	for _, p := range plugins {
		initPlugin(ctx, p)
	}
}

func initPlugin(ctx context.Context, p Plugin) {
	if err := p.Init(ctx); err != nil {
		log.LogWithFields(log.F("plugin", p.Name())).WithError(err).Warn("Analytics plugin init failed")
	}
}

// Track sends an event to every plugin. Plugin errors are logged, never
// returned.
func (m *Manager) Track(name string, props Properties) {
	if !m.enabled {
		return
	}
	event := Event{Name: name, Properties: props, Time: m.now()}
	for _, p := range m.Plugins() {
		if err := p.Track(context.Background(), event); err != nil {
			log.LogWithFields(log.F("plugin", p.Name()), log.F("event", name)).WithError(err).Error("Analytics plugin error")
		}
	}
}

// PageView tracks a page_view event for path.
func (m *Manager) PageView(path string, props Properties) {
	merged := Properties{"path": path}
	for k, v := range props {
		merged[k] = v
	}
	m.Track(EventPageView, merged)
}

// Identify attaches userID on every plugin that supports it.
func (m *Manager) Identify(userID string, traits Properties) {
	for _, p := range m.Plugins() {
		id, ok := p.(Identifier)
		if !ok {
			continue
		}
		if err := id.Identify(context.Background(), userID, traits); err != nil {
			log.LogWithFields(log.F("plugin", p.Name())).WithError(err).Warn("Analytics identify failed")
		}
	}
}

// Close releases plugins that hold resources.
func (m *Manager) Close() error {
	var firstErr error
	for _, p := range m.Plugins() {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

package analytics

import (
	"net/url"
	"strings"
)

// NavigateMethod is how a navigation was triggered.
type NavigateMethod string

const (
	MethodClick    NavigateMethod = "click"
	MethodKeyboard NavigateMethod = "keyboard"
	MethodScroll   NavigateMethod = "scroll"
)

// Social platforms.
const (
	PlatformGitHub   = "github"
	PlatformLinkedIn = "linkedin"
	PlatformEmail    = "email"
)

// External link kinds.
const (
	LinkTool     = "tool"
	LinkTech     = "tech"
	LinkRepo     = "repo"
	LinkCampaign = "campaign"
)

var socialHosts = map[string]string{
	"github.com":       PlatformGitHub,
	"www.github.com":   PlatformGitHub,
	"linkedin.com":     PlatformLinkedIn,
	"www.linkedin.com": PlatformLinkedIn,
}

// PlatformOf reports the social platform rawURL points at: a profile host
// or a mailto link.
func PlatformOf(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if strings.EqualFold(u.Scheme, "mailto") {
		return PlatformEmail, true
	}
	platform, ok := socialHosts[strings.ToLower(u.Hostname())]
	return platform, ok
}

// Tracker is the typed tracking API over a Manager.
type Tracker struct {
	m *Manager
}

// NewTracker creates a tracker. A nil manager tracks nothing.
func NewTracker(m *Manager) *Tracker {
	return &Tracker{m: m}
}

func (t *Tracker) track(name string, props Properties) {
	if t == nil || t.m == nil {
		return
	}
	t.m.Track(name, props)
}

// withOptional adds key only when value is set.
func withOptional(props Properties, key, value string) Properties {
	if value != "" {
		props[key] = value
	}
	return props
}

// PageView tracks a page_view for path.
func (t *Tracker) PageView(path string, props Properties) {
	if t == nil || t.m == nil {
		return
	}
	t.m.PageView(path, props)
}

// Wrap returns a decorator that tracks event before calling the handler. A
// nil handler only tracks.
func (t *Tracker) Wrap(event string, props Properties) func(handler func()) func() {
	return func(handler func()) func() {
		return func() {
			t.track(event, props)
			if handler != nil {
				handler()
			}
		}
	}
}

// WrapNavigation is Wrap for navigate events.
func (t *Tracker) WrapNavigation(section string, method NavigateMethod) func(handler func()) func() {
	return t.Wrap(EventNavigate, Properties{"section": section, "method": string(method)})
}

func (t *Tracker) Navigate(section string, method NavigateMethod) {
	t.track(EventNavigate, Properties{"section": section, "method": string(method)})
}

func (t *Tracker) SectionView(section string) {
	t.track(EventSectionView, Properties{"section": section})
}

func (t *Tracker) ThemeChange(theme, source string) {
	t.track(EventThemeChange, withOptional(Properties{"theme": theme}, "source", source))
}

func (t *Tracker) PaletteOpen(mode string) {
	t.track(EventPaletteOpen, Properties{"mode": mode})
}

func (t *Tracker) PaletteCommand(command, label string) {
	t.track(EventPaletteCommand, withOptional(Properties{"command": command}, "label", label))
}

func (t *Tracker) Social(platform, source string) {
	t.track(EventSocialClick, withOptional(Properties{"platform": platform}, "source", source))
}

func (t *Tracker) BlogView(slug, title string) {
	t.track(EventBlogView, withOptional(Properties{"slug": slug}, "title", title))
}

func (t *Tracker) BlogSelect(slug, title string) {
	t.track(EventBlogSelect, withOptional(Properties{"slug": slug}, "title", title))
}

func (t *Tracker) ExternalLink(kind, name, url string) {
	t.track(EventExternalClick, Properties{"type": kind, "name": name, "url": url})
}

func (t *Tracker) Shortcut(key, action string) {
	t.track(EventShortcutUse, Properties{"key": key, "action": action})
}

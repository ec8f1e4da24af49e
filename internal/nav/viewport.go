package nav

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// LineViewport adapts a bubbles viewport to the Viewport interface. Offsets
// are line numbers in the rendered document. Scrolling is immediate: a second
// scroll simply replaces the first.
type LineViewport struct {
	vp       *viewport.Model
	sections map[string]int
}

// NewLineViewport wraps vp. The caller keeps ownership of vp and must call
// SetSections whenever the document is re-rendered.
func NewLineViewport(vp *viewport.Model) *LineViewport {
	return &LineViewport{vp: vp, sections: map[string]int{}}
}

// SetSections records the first line of each rendered section.
func (l *LineViewport) SetSections(offsets map[string]int) {
	l.sections = make(map[string]int, len(offsets))
	for name, line := range offsets {
		l.sections[name] = line
	}
}

func (l *LineViewport) ScrollOffset() int { return l.vp.YOffset }

func (l *LineViewport) Height() int { return l.vp.Height }

func (l *LineViewport) ContentHeight() int { return l.vp.TotalLineCount() }

func (l *LineViewport) SectionOffset(name string) (int, bool) {
	line, ok := l.sections[name]
	return line, ok
}

// ScrollTo moves to offset; the viewport clamps to its scrollable range.
func (l *LineViewport) ScrollTo(offset int) { l.vp.SetYOffset(offset) }

// ScrollToSection is a no-op for sections that are not rendered.
func (l *LineViewport) ScrollToSection(name string) {
	if line, ok := l.sections[name]; ok {
		l.vp.SetYOffset(line)
	}
}

func (l *LineViewport) ScrollBy(delta int) { l.vp.SetYOffset(l.vp.YOffset + delta) }

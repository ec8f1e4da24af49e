// Package nav computes the visible section of the portfolio and issues scroll
// commands. It owns no state beyond the static page index; everything else is
// read from the Viewport on each call.
package nav

// PageIndex is the ordered list of navigable sections.
type PageIndex []string

// DefaultPageIndex is the reference section order.
func DefaultPageIndex() PageIndex {
	return PageIndex{"hero", "experience", "tech", "tools", "contact"}
}

// Len returns the number of sections.
func (p PageIndex) Len() int { return len(p) }

// IndexOf returns the position of name, or -1.
func (p PageIndex) IndexOf(name string) int {
	for i, s := range p {
		if s == name {
			return i
		}
	}
	return -1
}

// Viewport is the scroll capability the navigator drives. Offsets are in the
// viewport's own unit (lines for the terminal).
type Viewport interface {
	ScrollOffset() int
	Height() int
	ContentHeight() int
	// SectionOffset reports the top offset of a section, false when the
	// section is not rendered.
	SectionOffset(name string) (int, bool)
	ScrollTo(offset int)
	ScrollToSection(name string)
	ScrollBy(delta int)
}

// Navigator implements the page and scroll primitives over a page index.
type Navigator struct {
	pages    PageIndex
	viewport Viewport
}

// New creates a navigator.
func New(pages PageIndex, viewport Viewport) *Navigator {
	return &Navigator{pages: pages, viewport: viewport}
}

// Pages returns the page index.
func (n *Navigator) Pages() PageIndex { return n.pages }

// CurrentIndex returns the last section whose top is at or above the
// viewport's vertical midpoint, or 0 when none is.
func (n *Navigator) CurrentIndex() int {
	mid := n.viewport.ScrollOffset() + n.viewport.Height()/2
	for i := len(n.pages) - 1; i >= 0; i-- {
		top, ok := n.viewport.SectionOffset(n.pages[i])
		if ok && top <= mid {
			return i
		}
	}
	return 0
}

// Current returns the name of the current section, "" for an empty index.
func (n *Navigator) Current() string {
	if len(n.pages) == 0 {
		return ""
	}
	return n.pages[n.CurrentIndex()]
}

// Next scrolls to the section after the current one, staying on the last.
func (n *Navigator) Next() {
	if len(n.pages) == 0 {
		return
	}
	n.viewport.ScrollToSection(n.pages[clamp(n.CurrentIndex()+1, 0, len(n.pages)-1)])
}

// Prev scrolls to the section before the current one. From the first section
// it scrolls to the absolute top.
func (n *Navigator) Prev() {
	current := n.CurrentIndex()
	if current == 0 || len(n.pages) == 0 {
		n.viewport.ScrollTo(0)
		return
	}
	n.viewport.ScrollToSection(n.pages[current-1])
}

// GoTo scrolls to section i, clamped to the index.
func (n *Navigator) GoTo(i int) {
	if len(n.pages) == 0 {
		return
	}
	n.viewport.ScrollToSection(n.pages[clamp(i, 0, len(n.pages)-1)])
}

// CenterCurrent re-aligns the viewport on the current section's top.
func (n *Navigator) CenterCurrent() {
	if len(n.pages) == 0 {
		return
	}
	n.viewport.ScrollToSection(n.pages[n.CurrentIndex()])
}

// Top scrolls to the start of the document.
func (n *Navigator) Top() { n.viewport.ScrollTo(0) }

// Bottom scrolls to the end of the document.
func (n *Navigator) Bottom() { n.viewport.ScrollTo(n.viewport.ContentHeight()) }

func (n *Navigator) HalfDown() { n.viewport.ScrollBy(n.viewport.Height() / 2) }

func (n *Navigator) HalfUp() { n.viewport.ScrollBy(-n.viewport.Height() / 2) }

func (n *Navigator) FullDown() { n.viewport.ScrollBy(n.viewport.Height()) }

func (n *Navigator) FullUp() { n.viewport.ScrollBy(-n.viewport.Height()) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

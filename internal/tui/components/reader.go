package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/blog"
	"folio/internal/theme"
)

// PostReader shows one post in a scrollable viewport with links to its
// neighbours.
type PostReader struct {
	vp      viewport.Model
	post    blog.Post
	content string
	adj     blog.Adjacent
	loaded  bool
}

func NewPostReader(width, height int) *PostReader {
	return &PostReader{vp: viewport.New(width, height-1)}
}

// SetPost replaces the displayed post and scrolls to its top.
func (r *PostReader) SetPost(post blog.Post, content string, adj blog.Adjacent, st theme.Styles) {
	r.post = post
	r.content = content
	r.adj = adj
	r.loaded = true
	r.Restyle(st)
	r.vp.GotoTop()
}

// Restyle re-renders the current post, keeping the scroll position.
func (r *PostReader) Restyle(st theme.Styles) {
	if !r.loaded {
		return
	}
	var sb strings.Builder
	sb.WriteString(st.Title.Render(r.post.Title))
	sb.WriteString("\n")

	meta := r.post.Date.Format(blog.DateLayout)
	if r.post.ReadTime != "" {
		meta += " · " + r.post.ReadTime
	}
	sb.WriteString(st.Subtle.Render(meta))
	if len(r.post.Tags) > 0 {
		tags := make([]string, len(r.post.Tags))
		for i, t := range r.post.Tags {
			tags[i] = st.Tag.Render(t)
		}
		sb.WriteString("  " + strings.Join(tags, " "))
	}
	sb.WriteString("\n\n")
	sb.WriteString(RenderMarkdown(r.content, st, r.vp.Width))
	r.vp.SetContent(sb.String())
}

func (r *PostReader) Post() (blog.Post, bool) { return r.post, r.loaded }

func (r *PostReader) Adjacent() blog.Adjacent { return r.adj }

// SetSize reserves the last line for the neighbour links.
func (r *PostReader) SetSize(width, height int) {
	r.vp.Width = width
	r.vp.Height = max(height-1, 1)
}

func (r *PostReader) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return cmd
}

func (r *PostReader) View(st theme.Styles) string {
	var prev, next string
	if r.adj.Prev != nil {
		prev = "← h " + r.adj.Prev.Title
	}
	if r.adj.Next != nil {
		next = r.adj.Next.Title + " l →"
	}
	gap := max(r.vp.Width-lipgloss.Width(prev)-lipgloss.Width(next), 1)
	footer := st.Help.Render(prev + strings.Repeat(" ", gap) + next)
	return r.vp.View() + "\n" + footer
}

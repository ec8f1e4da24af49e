package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/blog"
	"folio/internal/theme"
)

type postItem struct {
	post blog.Post
}

func (i postItem) Title() string { return i.post.Title }

func (i postItem) Description() string {
	parts := []string{i.post.Date.Format(blog.DateLayout)}
	if i.post.ReadTime != "" {
		parts = append(parts, i.post.ReadTime)
	}
	if len(i.post.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(i.post.Tags, " #"))
	}
	return strings.Join(parts, " · ")
}

func (i postItem) FilterValue() string { return i.post.Title }

// PostList is the blog index, newest first.
type PostList struct {
	list  list.Model
	posts []blog.Post
}

func NewPostList(width, height int) *PostList {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Blog"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return &PostList{list: l}
}

func (p *PostList) SetPosts(posts []blog.Post) {
	p.posts = posts
	items := make([]list.Item, len(posts))
	for i, post := range posts {
		items[i] = postItem{post: post}
	}
	p.list.SetItems(items)
}

func (p *PostList) Posts() []blog.Post { return p.posts }

// Selected returns the highlighted post.
func (p *PostList) Selected() (blog.Post, bool) {
	item, ok := p.list.SelectedItem().(postItem)
	if !ok {
		return blog.Post{}, false
	}
	return item.post, true
}

// Select highlights slug when it is listed.
func (p *PostList) Select(slug string) {
	for i, post := range p.posts {
		if post.Slug == slug {
			p.list.Select(i)
			return
		}
	}
}

func (p *PostList) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

// SetTheme recolours the list.
func (p *PostList) SetTheme(t theme.Theme) {
	pal := t.Palette
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(pal.Text)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(pal.Subtext)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(pal.Accent).BorderForeground(pal.Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(pal.Subtext).BorderForeground(pal.Accent)
	p.list.SetDelegate(d)
	p.list.Styles.Title = p.list.Styles.Title.Foreground(pal.Base).Background(pal.Accent)
}

func (p *PostList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

func (p *PostList) View() string {
	return p.list.View()
}

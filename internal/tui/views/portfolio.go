package views

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"folio/internal/blog"
	"folio/internal/config"
	"folio/internal/theme"
	"folio/internal/utm"
)

// latestPosts is how many posts the blog section lists.
const latestPosts = 3

type sectionRenderer func(cfg *config.Config, s theme.Styles, width int, posts []blog.Post) string

var sectionRenderers = map[string]sectionRenderer{
	"hero":       renderHero,
	"experience": renderExperience,
	"tech":       renderTech,
	"tools":      renderTools,
	"contact":    renderContact,
	"blog":       renderLatestPosts,
}

// RenderPortfolio renders cfg.Sections top to bottom and reports the line
// each section starts at.
func RenderPortfolio(cfg *config.Config, s theme.Styles, width int, posts []blog.Post) (string, map[string]int) {
	var sb strings.Builder
	offsets := make(map[string]int, len(cfg.Sections))

	for i, name := range cfg.Sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		offsets[name] = strings.Count(sb.String(), "\n")

		render, ok := sectionRenderers[name]
		if !ok {
			render = renderPlaceholder(name)
		}
		sb.WriteString(render(cfg, s, width, posts))
	}
	return sb.String(), offsets
}

func heading(s theme.Styles, title string) string {
	return s.Heading.Render(title) + "\n" + s.Subtle.Render(strings.Repeat("─", ansi.StringWidth(title))) + "\n"
}

func wrapped(s theme.Styles, text string, width int) string {
	if width > 0 {
		text = ansi.Wordwrap(text, width, "")
	}
	return s.Text.Render(text)
}

func renderHero(cfg *config.Config, s theme.Styles, width int, _ []blog.Post) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(cfg.Profile.Name))
	sb.WriteString("\n")
	sb.WriteString(s.Accent.Render(cfg.Profile.Title))
	sb.WriteString("\n\n")
	sb.WriteString(wrapped(s, cfg.Profile.Bio, width))
	sb.WriteString("\n\n")
	sb.WriteString(s.Subtle.Render("space: leader  ?: help  /: search  g: go to"))
	return sb.String()
}

func renderExperience(cfg *config.Config, s theme.Styles, width int, _ []blog.Post) string {
	var sb strings.Builder
	sb.WriteString(heading(s, "Experience"))
	sb.WriteString(s.Text.Render(fmt.Sprintf("%d+ years building software", cfg.Profile.Experience)))
	for _, job := range cfg.Jobs {
		sb.WriteString("\n\n")
		sb.WriteString(s.Accent.Render(job.Role + " · " + job.Company))
		if job.Period != "" {
			sb.WriteString("  " + s.Subtle.Render(job.Period))
		}
		if job.Summary != "" {
			sb.WriteString("\n" + wrapped(s, job.Summary, width))
		}
	}
	return sb.String()
}

func renderTech(cfg *config.Config, s theme.Styles, _ int, _ []blog.Post) string {
	var sb strings.Builder
	sb.WriteString(heading(s, "Tech Stack"))
	for i, name := range cfg.TechStack {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.TechBadge(name))
	}
	return sb.String()
}

func renderTools(cfg *config.Config, s theme.Styles, _ int, _ []blog.Post) string {
	var sb strings.Builder
	sb.WriteString(heading(s, "Tools"))
	for i, tool := range cfg.Tools {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Accent.Render(tool.Name))
		if tool.Description != "" {
			sb.WriteString(" " + s.Subtle.Render(tool.Description))
		}
		if tool.URL != "" {
			sb.WriteString(" " + s.Link.Render(tool.URL))
		}
	}
	return sb.String()
}

func renderContact(cfg *config.Config, s theme.Styles, _ int, _ []blog.Post) string {
	link := func(url string) string {
		return utm.AddUTM(url, cfg.Profile.Handle, utm.Params{Content: "contact"})
	}

	var lines []string
	if cfg.Contact.Email != "" {
		lines = append(lines, s.Accent.Render("Email    ")+s.Link.Render(cfg.Contact.Email))
	}
	if cfg.Contact.GitHub != "" {
		lines = append(lines, s.Accent.Render("GitHub   ")+s.Link.Render(link(cfg.Contact.GitHub)))
	}
	if cfg.Contact.LinkedIn != "" {
		lines = append(lines, s.Accent.Render("LinkedIn ")+s.Link.Render(link(cfg.Contact.LinkedIn)))
	}
	return heading(s, "Contact") + strings.Join(lines, "\n")
}

func renderLatestPosts(_ *config.Config, s theme.Styles, _ int, posts []blog.Post) string {
	var sb strings.Builder
	sb.WriteString(heading(s, "Latest posts"))
	if len(posts) == 0 {
		sb.WriteString(s.Subtle.Render("No posts yet"))
		return sb.String()
	}
	for i, p := range posts {
		if i == latestPosts {
			break
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Subtle.Render(p.Date.Format(blog.DateLayout)) + "  " + s.Text.Render(p.Title))
	}
	sb.WriteString("\n" + s.Help.Render("space b: open the blog"))
	return sb.String()
}

// capitalize upper-cases the first rune of name.
func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func renderPlaceholder(name string) sectionRenderer {
	return func(_ *config.Config, s theme.Styles, _ int, _ []blog.Post) string {
		return heading(s, capitalize(name))
	}
}

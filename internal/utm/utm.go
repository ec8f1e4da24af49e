// Package utm builds outbound links carrying utm_* campaign parameters.
package utm

import (
	"net/url"

	"folio/internal/log"
)

// Query parameter names.
const (
	ParamSource   = "utm_source"
	ParamMedium   = "utm_medium"
	ParamCampaign = "utm_campaign"
	ParamContent  = "utm_content"
	ParamTerm     = "utm_term"
)

// Portfolio defaults applied by NewPortfolioBuilder.
const (
	DefaultSource   = "hong4rc"
	DefaultMedium   = "portfolio"
	DefaultCampaign = "website"
)

// Params sets several parameters at once. Empty fields are skipped.
type Params struct {
	Source   string
	Medium   string
	Campaign string
	Content  string
	Term     string
}

// Builder accumulates utm parameters for one base URL.
type Builder struct {
	base   string
	params map[string]string
}

// NewBuilder starts a builder for base.
func NewBuilder(base string) *Builder {
	return &Builder{base: base, params: map[string]string{}}
}

// NewPortfolioBuilder presets source, medium and campaign. An empty handle
// falls back to DefaultSource.
func NewPortfolioBuilder(base, handle string) *Builder {
	if handle == "" {
		handle = DefaultSource
	}
	return NewBuilder(base).
		Source(handle).
		Medium(DefaultMedium).
		Campaign(DefaultCampaign)
}

func (b *Builder) Source(v string) *Builder   { return b.set(ParamSource, v) }
func (b *Builder) Medium(v string) *Builder   { return b.set(ParamMedium, v) }
func (b *Builder) Campaign(v string) *Builder { return b.set(ParamCampaign, v) }
func (b *Builder) Content(v string) *Builder  { return b.set(ParamContent, v) }
func (b *Builder) Term(v string) *Builder     { return b.set(ParamTerm, v) }

func (b *Builder) set(key, value string) *Builder {
	b.params[key] = value
	return b
}

// WithParams applies every non-empty field of p.
func (b *Builder) WithParams(p Params) *Builder {
	for key, value := range map[string]string{
		ParamSource:   p.Source,
		ParamMedium:   p.Medium,
		ParamCampaign: p.Campaign,
		ParamContent:  p.Content,
		ParamTerm:     p.Term,
	} {
		if value != "" {
			b.set(key, value)
		}
	}
	return b
}

// Build returns the base URL with the parameters merged into its query.
// Existing utm values are overwritten, other query values are kept. A base
// that is not an absolute URL is returned unchanged.
func (b *Builder) Build() string {
	u, err := url.Parse(b.base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		log.LogWithFields(log.F("url", b.base)).Warn("Invalid URL, skipping utm parameters")
		return b.base
	}
	if len(b.params) == 0 {
		return b.base
	}

	q := u.Query()
	for key, value := range b.params {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Reset removes every parameter.
func (b *Builder) Reset() *Builder {
	clear(b.params)
	return b
}

// Clone returns an independent copy.
func (b *Builder) Clone() *Builder {
	c := NewBuilder(b.base)
	for k, v := range b.params {
		c.params[k] = v
	}
	return c
}

// AddUTM tags url with the portfolio defaults plus p.
func AddUTM(url, handle string, p Params) string {
	return NewPortfolioBuilder(url, handle).WithParams(p).Build()
}

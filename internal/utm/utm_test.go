package utm

import (
	"net/url"
	"testing"

	"github.com/alecthomas/assert"
)

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	assert.NoError(t, err)
	return u.Query()
}

func TestBuilderBuild(t *testing.T) {
	got := NewBuilder("https://github.com/hong4rc").
		Source("portfolio").
		Medium("website").
		Campaign("social_links").
		Content("footer").
		Build()

	assert.Equal(t, "https://github.com/hong4rc?utm_campaign=social_links&utm_content=footer&utm_medium=website&utm_source=portfolio", got)
}

func TestBuilderKeepsExistingQuery(t *testing.T) {
	got := NewBuilder("https://example.com/a?ref=x&utm_source=old#top").Source("new").Build()
	q := query(t, got)

	assert.Equal(t, "x", q.Get("ref"))
	assert.Equal(t, "new", q.Get(ParamSource))
	assert.Contains(t, got, "#top")
}

func TestBuilderInvalidURL(t *testing.T) {
	for _, base := range []string{"not a url", "/relative/path", "://broken"} {
		assert.Equal(t, base, NewBuilder(base).Source("x").Build(), base)
	}
}

func TestBuilderNoParams(t *testing.T) {
	assert.Equal(t, "https://neovim.io", NewBuilder("https://neovim.io").Build())
}

func TestWithParamsSkipsEmpty(t *testing.T) {
	b := NewBuilder("https://example.com").Source("keep").WithParams(Params{Medium: "m", Term: "t"})
	q := query(t, b.Build())

	assert.Equal(t, "keep", q.Get(ParamSource))
	assert.Equal(t, "m", q.Get(ParamMedium))
	assert.Equal(t, "t", q.Get(ParamTerm))
	assert.False(t, q.Has(ParamCampaign))
}

func TestResetAndClone(t *testing.T) {
	b := NewBuilder("https://example.com").Source("a")
	c := b.Clone().Medium("b")

	assert.False(t, query(t, b.Build()).Has(ParamMedium))
	assert.Equal(t, "b", query(t, c.Build()).Get(ParamMedium))

	b.Reset()
	assert.Equal(t, "https://example.com", b.Build())
	assert.Equal(t, "a", query(t, c.Build()).Get(ParamSource))
}

func TestPortfolioDefaults(t *testing.T) {
	q := query(t, NewPortfolioBuilder("https://linkedin.com/in/hong4rc", "").Build())
	assert.Equal(t, DefaultSource, q.Get(ParamSource))
	assert.Equal(t, DefaultMedium, q.Get(ParamMedium))
	assert.Equal(t, DefaultCampaign, q.Get(ParamCampaign))

	q = query(t, AddUTM("https://github.com/hong4rc", "someone", Params{Content: "contact", Campaign: "blog"}))
	assert.Equal(t, "someone", q.Get(ParamSource))
	assert.Equal(t, "blog", q.Get(ParamCampaign))
	assert.Equal(t, "contact", q.Get(ParamContent))
}

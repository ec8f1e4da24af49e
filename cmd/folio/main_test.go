package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/kv"
	"folio/internal/theme"
	"folio/pkg/testutils"
)

// writeConfig points a config file at a temp posts directory and state file.
func writeConfig(t *testing.T) (cfgPath, stateFile string) {
	t.Helper()
	dir := t.TempDir()
	posts := testutils.PostsDir(t)
	stateFile = filepath.Join(dir, "state", "state.yaml")

	cfgPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`profile:
  name: Test Person
  handle: tester
seo:
  site_url: https://example.com/
features:
  show_blog: true
theme: latte
blog:
  dir: %s
  watch: false
state_file: %s
`, posts, stateFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath, stateFile
}

func runCli(t *testing.T, cfgPath string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return testutils.StripANSI(stdout.String()), testutils.StripANSI(stderr.String()), err
}

func TestCliHelpCommand(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	output, _, err := runCli(t, cfgPath, "--help")
	require.NoError(t, err)

	alsrt.Contains(t, output, "Available Commands:")
	for _, name := range []string{"tui", "serve", "build", "posts", "theme", "utm"} {
		alsrt.Contains(t, output, name)
	}
}

func TestCliPostsList(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	output, _, err := runCli(t, cfgPath, "posts", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3, "drafts are not listed")
	assert.Contains(t, lines[0], "terminal-uis")
	assert.Contains(t, lines[1], "go-concurrency")
	assert.Contains(t, lines[2], "2024-01-10  hello-world")
	assert.NotContains(t, output, "unfinished")

	output, _, err = runCli(t, cfgPath, "posts", "list", "--tag", "go")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(output), "\n"), 2)
	assert.NotContains(t, output, "hello-world")
}

func TestCliPostsTags(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	output, _, err := runCli(t, cfgPath, "posts", "tags")
	require.NoError(t, err)
	alsrt.Equal(t, "concurrency\ngo\nintro\nmeta\ntui\n", output)
}

func TestCliPostsSearch(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	output, _, err := runCli(t, cfgPath, "posts", "search", "BubbleTea")
	require.NoError(t, err)
	alsrt.Contains(t, output, "terminal-uis")
	assert.NotContains(t, output, "go-concurrency")

	output, _, err = runCli(t, cfgPath, "posts", "search", "kubernetes")
	require.NoError(t, err)
	alsrt.Contains(t, output, "No posts found")

	_, _, err = runCli(t, cfgPath, "posts", "search")
	assert.Error(t, err, "a query is required")
}

func TestCliPostsShow(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	output, _, err := runCli(t, cfgPath, "posts", "show", "go-concurrency")
	require.NoError(t, err)
	alsrt.Contains(t, output, "Go Concurrency Patterns")
	alsrt.Contains(t, output, "2024-03-02  go, concurrency")
	alsrt.Contains(t, output, "Channels all the way down.")
	alsrt.Contains(t, output, "prev: hello-world")
	alsrt.Contains(t, output, "next: terminal-uis")

	_, _, err = runCli(t, cfgPath, "posts", "show", "unfinished")
	assert.Error(t, err, "drafts cannot be shown")
}

func TestCliBuild(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	out := filepath.Join(t.TempDir(), "public")

	output, _, err := runCli(t, cfgPath, "build", "--out", out)
	require.NoError(t, err)
	alsrt.Contains(t, output, "(3 posts)")

	rss, err := os.ReadFile(filepath.Join(out, "rss.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(rss), "<title>Go Concurrency Patterns</title>")
	assert.Contains(t, string(rss), "https://example.com/blog/go-concurrency")

	sitemap, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "<loc>https://example.com/blog</loc>")
}

func TestCliTheme(t *testing.T) {
	cfgPath, stateFile := writeConfig(t)

	output, _, err := runCli(t, cfgPath, "theme", "list")
	require.NoError(t, err)
	alsrt.Contains(t, output, "* latte", "the configured theme is current until one is stored")
	alsrt.Contains(t, output, "  mocha")

	output, _, err = runCli(t, cfgPath, "theme", "set", "mocha")
	require.NoError(t, err)
	alsrt.Contains(t, output, "Theme set to Mocha")

	state, err := kv.Open(stateFile)
	require.NoError(t, err)
	stored, ok := state.Get(theme.StorageKey)
	require.True(t, ok)
	alsrt.Equal(t, theme.Mocha, stored)

	output, _, err = runCli(t, cfgPath, "theme", "list")
	require.NoError(t, err)
	alsrt.Contains(t, output, "* mocha")

	_, _, err = runCli(t, cfgPath, "theme", "set", "dracula")
	assert.Error(t, err)
}

func TestCliUTM(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	output, _, err := runCli(t, cfgPath, "utm", "https://example.com/x", "--content", "hero")
	require.NoError(t, err)
	alsrt.Equal(t, "https://example.com/x?utm_campaign=website&utm_content=hero&utm_medium=portfolio&utm_source=tester\n", output)

	output, _, err = runCli(t, cfgPath, "utm", "not a url")
	require.NoError(t, err)
	alsrt.Equal(t, "not a url\n", output)
}

func TestCliUTMTracksLink(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	raw, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	raw = []byte(strings.Replace(string(raw), "show_blog: true", "show_blog: true\n  enable_analytics: true", 1))
	require.NoError(t, os.WriteFile(cfgPath, raw, 0644))

	_, errOutput, err := runCli(t, cfgPath, "utm", "https://github.com/tester")
	require.NoError(t, err)
	alsrt.Contains(t, errOutput, "event=social_click")
	alsrt.Contains(t, errOutput, "platform=github")
	alsrt.Contains(t, errOutput, "source=utm")

	_, errOutput, err = runCli(t, cfgPath, "utm", "https://example.com/x", "--campaign", "launch")
	require.NoError(t, err)
	alsrt.Contains(t, errOutput, "event=external_click")
	alsrt.Contains(t, errOutput, "type=campaign")
	alsrt.Contains(t, errOutput, "name=launch")
}

func TestCliInvalidConfigFallsBack(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("profile: [unclosed"), 0644))

	output, errOutput, err := runCli(t, cfgPath, "utm", "https://example.com")
	require.NoError(t, err)
	alsrt.Contains(t, errOutput, "Using default settings.")
	alsrt.Contains(t, output, "utm_source=hong4rc")
}

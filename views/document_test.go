package views

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/layout"
	"github.com/eringen/garden/slug"
)

func testProps(t *testing.T, s slug.Full) components.Props {
	t.Helper()
	var pages []*content.Page
	for path, src := range map[string]string{
		"index.md":           "---\ntitle: Home\n---\nWelcome",
		"essays/on-notes.md": "---\ntitle: On Notes\nctaType: default\n---\nA note about [[index]].",
		"essays/index.md":    "---\ntitle: Essays\n---\n",
	} {
		p, err := content.Parse(path, []byte(src))
		require.NoError(t, err)
		pages = append(pages, p)
	}
	all := content.NewCollection(pages)
	cur, ok := all.Get(s)
	require.True(t, ok)
	return components.Props{
		Page: cur,
		All:  all,
		Cfg: &components.Config{
			PageTitle: "Garden",
			BaseURL:   "https://garden.example.com",
			Locale:    "en-US",
			Now:       func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) },
		},
	}
}

func renderDoc(t *testing.T, page layout.PageLayout, props components.Props) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Document(layout.Shared(), page, props).Render(context.Background(), &b))
	return b.String()
}

func TestDocumentContentPage(t *testing.T) {
	got := renderDoc(t, layout.ContentPage(), testProps(t, "essays/on-notes"))

	assert.True(t, strings.HasPrefix(got, `<!DOCTYPE html><html lang="en-US"><head>`))
	assert.Contains(t, got, `<body data-slug="essays/on-notes">`)
	assert.Contains(t, got, "<title>On Notes | Garden</title>")
	assert.Contains(t, got, `<h1 class="article-title">On Notes</h1>`)
	assert.Contains(t, got, "Start Linking Your Thinking!")
	assert.Contains(t, got, "About the author")
	assert.Contains(t, got, `href="../"`)
	assert.Contains(t, got, "Created with garden")
	assert.True(t, strings.HasSuffix(got, "</body></html>"))

	before := strings.Index(got, "breadcrumb-container")
	body := strings.Index(got, "A note about")
	after := strings.Index(got, `class="page-footer"`)
	require.True(t, before >= 0 && body >= 0 && after >= 0)
	assert.Less(t, before, body)
	assert.Less(t, body, after)
}

func TestDocumentListPage(t *testing.T) {
	got := renderDoc(t, layout.ListPage(), testProps(t, "essays/index"))

	assert.Contains(t, got, "1 item under this folder.")
	assert.Contains(t, got, `href="../essays/on-notes"`)
	assert.NotContains(t, got, "About the author")
}

func TestCollectCSSDeduplicates(t *testing.T) {
	comps := layout.Components(layout.Shared(), layout.ContentPage(), layout.ListPage())
	css := CollectCSS(comps...)

	assert.True(t, strings.HasPrefix(css, baseCSS))
	assert.Equal(t, 1, strings.Count(css, ".breadcrumb-container {"))
	assert.Equal(t, 1, strings.Count(css, ".recent-notes > h3 {"))
	assert.Contains(t, css, ".cta {")
}

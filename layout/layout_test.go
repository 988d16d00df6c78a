package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

func ids(comps []components.Component) []string {
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.ID()
	}
	return out
}

func TestContentPageRegions(t *testing.T) {
	l := ContentPage()

	assert.Equal(t, []string{components.IDBreadcrumbs, components.IDArticleTitle, components.IDContentMeta}, ids(l.BeforeBody))
	assert.Equal(t, []string{
		components.IDRelatedNotesContainer,
		components.IDCallToAction,
		components.IDAboutAuthor,
		components.IDRecentNotes,
		components.IDRelatedNotes,
		components.IDRelatedNotes,
		components.IDProperties,
		components.IDBacklinks,
	}, ids(l.AfterBody))
	assert.Equal(t, []string{components.IDSpacer, components.IDRecentNotes, components.IDSearch}, ids(l.Left))
	assert.Equal(t, []string{components.IDGraph, components.IDBacklinks}, ids(l.Right))
}

func TestListPageRegions(t *testing.T) {
	l := ListPage()
	assert.Equal(t, []string{components.IDBreadcrumbs, components.IDArticleTitle, components.IDContentMeta}, ids(l.BeforeBody))
	assert.Empty(t, l.AfterBody)
	assert.Empty(t, l.Right)
}

func TestNotFoundPageRegions(t *testing.T) {
	l := NotFoundPage()
	assert.Equal(t, []string{components.IDArticleTitle}, ids(l.BeforeBody))
	assert.Empty(t, l.Left)
}

func TestComponentsOrder(t *testing.T) {
	all := Components(Shared(), ContentPage())
	require.NotEmpty(t, all)
	assert.Equal(t, components.IDHead, all[0].ID())
	assert.Equal(t, components.IDNavbar, all[1].ID())
	assert.Equal(t, components.IDFooter, all[len(all)-1].ID())
}

func TestRecentEssaysOnlyOnRoot(t *testing.T) {
	var pages []*content.Page
	for path, src := range map[string]string{
		"index.md":    "",
		"essays/a.md": "---\ntitle: First Essay\n---\n",
		"essays/b.md": "---\ntitle: Hidden Essay\nnoindex: true\n---\n",
	} {
		p, err := content.Parse(path, []byte(src))
		require.NoError(t, err)
		pages = append(pages, p)
	}
	all := content.NewCollection(pages)
	recent := ContentPage().Left[1]

	render := func(s string) string {
		p, ok := all.Get(slug.Full(s))
		require.True(t, ok)
		var b strings.Builder
		require.NoError(t, recent.Render(components.Props{Page: p, All: all}).Render(context.Background(), &b))
		return b.String()
	}

	onRoot := render("index")
	assert.Contains(t, onRoot, "Recent Essays")
	assert.Contains(t, onRoot, "First Essay")
	assert.NotContains(t, onRoot, "Hidden Essay")
	assert.Contains(t, onRoot, "desktop-only")
	assert.Empty(t, render("essays/a"))
}

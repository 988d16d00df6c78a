package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/garden/slug"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte(`---
title: On Notes
author: Nick
state: evergreen
noindex: true
tags: [thinking, "#notes"]
up: "[[Alias|maps/thinking]]"
related:
  - "[[on-links]]"
  - plain entry
ctaType: default
created: 2024-01-15
---
Body with a [[target]] link.
`)
	p, err := Parse("essays/On Notes.md", input)
	require.NoError(t, err)

	assert.Equal(t, slug.Full("essays/On-Notes"), p.Slug)
	assert.Equal(t, "On Notes", p.Title())
	assert.Equal(t, "Nick", p.Frontmatter.Author)
	assert.Equal(t, "evergreen", p.Frontmatter.State)
	assert.True(t, p.Frontmatter.NoIndex)
	assert.Equal(t, []string{"thinking", "notes"}, p.Frontmatter.Tags)
	assert.Equal(t, "default", p.Frontmatter.CTA.Type)
	assert.Equal(t, "Body with a [[target]] link.\n", p.Text)
	assert.Equal(t, KindNote, p.Kind)

	up := p.Frontmatter.Link("up")
	assert.Equal(t, LinkSingle, up.Kind)
	assert.Equal(t, []string{"maps/thinking"}, up.Targets())

	related := p.Frontmatter.Link("related")
	assert.Equal(t, LinkMany, related.Kind)
	assert.Equal(t, []string{"[[on-links]]", "plain entry"}, related.Items)
	assert.Equal(t, []string{"on-links"}, related.Targets())

	d := frontmatterDates(p.Frontmatter)
	assert.Equal(t, 2024, d.Created.Year())
	assert.Equal(t, time.January, d.Created.Month())
}

func TestParse_NoFrontmatterUsesFileName(t *testing.T) {
	p, err := Parse("maps/index.md", []byte("# Maps\n"))
	require.NoError(t, err)
	assert.Equal(t, "index", p.Title())
	assert.Equal(t, KindFolder, p.Kind)
	assert.Empty(t, p.Frontmatter.LinkFields)
}

func TestParse_SingleStringWithoutWikiLinkIsNotALink(t *testing.T) {
	p, err := Parse("a.md", []byte("---\nup: just text\n---\n"))
	require.NoError(t, err)
	assert.True(t, p.Frontmatter.Link("up").IsZero())
}

func TestParse_UnquotedWikiLinks(t *testing.T) {
	p, err := Parse("a.md", []byte("---\nup: [[maps/target]]\nrelated:\n  - [[one]]\n  - \"[[two]]\"\nctaFormId: 42\n---\n"))
	require.NoError(t, err)

	up := p.Frontmatter.Link("up")
	assert.Equal(t, LinkSingle, up.Kind)
	assert.Equal(t, []string{"[[maps/target]]"}, up.Items)
	assert.Equal(t, []string{"maps/target"}, up.Targets())

	related := p.Frontmatter.Link("related")
	assert.Equal(t, LinkMany, related.Kind)
	assert.Equal(t, []string{"one", "two"}, related.Targets())
	assert.Equal(t, "42", p.Frontmatter.CTA.FormID)
}

func TestCleanLink(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[[Alias|target]]", "target"},
		{"[[target]]", "target"},
		{`"[[maps/thinking]]"`, "maps/thinking"},
		{"[['quoted']]", "quoted"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLink(tt.input), tt.input)
	}
}

func TestExtractLinks(t *testing.T) {
	text := "See [[on-links]], [[maps/thinking#Start Here|the map]] and ![[diagram.png]]. Again [[on-links]]. Not [[]]."
	assert.Equal(t, []string{"on-links", "maps/thinking", "diagram.png"}, ExtractLinks(text))
}

func TestDatesGetFallsBackToCreated(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &Dates{Created: created}
	assert.Equal(t, created, d.Get(Modified))
	assert.Equal(t, created, d.Get(Published))

	var none *Dates
	assert.True(t, none.Get(Created).IsZero())
}

func writeNote(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "index.md", "---\ntitle: Home\n---\nWelcome. [[on-notes]]\n")
	writeNote(t, root, "essays/index.md", "---\ntitle: Essays\n---\n")
	writeNote(t, root, "essays/on-notes.md", "---\ntitle: On Notes\ncreated: 2024-03-01\nmodified: 2024-03-05\ntags: [thinking]\n---\nLinks to [[on-links]].\n")
	writeNote(t, root, "essays/on-links.md", "---\ntitle: On Links\ndate: 2024-02-01\n---\nBack to [[on-notes|notes]].\n")
	writeNote(t, root, "maps/tools/hammer.md", "---\ntitle: Hammer\n---\n")
	writeNote(t, root, "drafts/secret.md", "---\ntitle: Secret\n---\n")
	writeNote(t, root, ".obsidian/workspace.md", "ignored")
	writeNote(t, root, "broken.md", "---\ntitle: [unclosed\n---\n")

	l := &Loader{Root: root, Ignore: []string{"drafts"}, DatePriority: []DateSource{FromFrontmatter, FromFilesystem}}
	c, err := l.Load(context.Background())
	require.NoError(t, err)

	for _, s := range []slug.Full{"index", "essays/index", "essays/on-notes", "essays/on-links", "maps/tools/hammer", "maps/index", "maps/tools/index", "tags/index", "tags/thinking"} {
		_, ok := c.Get(s)
		assert.True(t, ok, "expected page %s", s)
	}
	_, ok := c.Get("drafts/secret")
	assert.False(t, ok)
	_, ok = c.Get("broken")
	assert.False(t, ok)

	notes, _ := c.Get("essays/on-notes")
	require.NotNil(t, notes.Dates)
	assert.Equal(t, 5, notes.Dates.Modified.Day())
	assert.Equal(t, []slug.Full{"essays/on-links"}, notes.Links)

	links, _ := c.Get("essays/on-links")
	require.NotNil(t, links.Dates)
	assert.Equal(t, time.February, links.Dates.Created.Month())
	assert.Equal(t, time.February, links.Dates.Published.Month())
	assert.False(t, links.Dates.Modified.IsZero(), "filesystem fills modified")

	backlinks := c.Backlinks("essays/on-notes")
	var from []slug.Full
	for _, p := range backlinks {
		from = append(from, p.Slug)
	}
	assert.ElementsMatch(t, []slug.Full{"index", "essays/on-links"}, from)

	maps, _ := c.Get("maps/index")
	assert.True(t, maps.Virtual)
	assert.Equal(t, "maps", maps.Title())
	children := c.Children(maps)
	require.Len(t, children, 1)
	assert.Equal(t, slug.Full("maps/tools/index"), children[0].Slug)

	tag, _ := c.Get("tags/thinking")
	assert.Equal(t, KindTag, tag.Kind)
	tagged := c.Children(tag)
	require.Len(t, tagged, 1)
	assert.Equal(t, slug.Full("essays/on-notes"), tagged[0].Slug)
}

func TestLoader_MissingRoot(t *testing.T) {
	l := &Loader{Root: filepath.Join(t.TempDir(), "nope")}
	_, err := l.Load(context.Background())
	require.Error(t, err)
}

func TestLoader_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Loader{Root: root}).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

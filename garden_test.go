package garden

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/garden/slug"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	contentDir := filepath.Join(dir, "content")
	writeFile(t, contentDir, "index.md", []byte("---\ntitle: Home\n---\nWelcome to the [[on-notes|garden]]."))
	writeFile(t, contentDir, "essays/on-notes.md", []byte("---\ntitle: On Notes\ncreated: 2024-01-15\ntags: [thinking]\ndescription: Why notes matter.\n---\nNotes grow."))
	writeFile(t, contentDir, "essays/draft.md", []byte("---\ntitle: Quiet Draft\nnoindex: true\ncreated: 2024-02-01\n---\nNot yet."))
	writeFile(t, contentDir, "maps/thinking.md", []byte("---\ntitle: Thinking\n---\n"))

	a := New(SiteConfig{
		Name:         "Test Garden",
		URL:          "https://garden.example.com",
		ContentDir:   contentDir,
		OutputDir:    filepath.Join(dir, "public"),
		StaticDir:    filepath.Join(dir, "static"),
		DatabasePath: filepath.Join(dir, "data", "garden.db"),
		Workers:      2,
	},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }),
	)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	assert.Equal(t, "Garden", cfg.Name)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, 5*time.Minute, cfg.PageCacheTTL)
	assert.Positive(t, cfg.Workers)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garden.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: From File\nauthor: Sam\npageCacheTTL: 30s\nignore: [drafts]\n"), 0o644))
	t.Setenv("GARDEN_NAME", "From Env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Name)
	assert.Equal(t, "Sam", cfg.Author)
	assert.Equal(t, 30*time.Second, cfg.PageCacheTTL)
	assert.Equal(t, []string{"drafts"}, cfg.Ignore)

	missing, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "From Env", missing.Name)
}

func TestIngestStoresPages(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	n, err := a.Ingest(ctx)
	require.NoError(t, err)
	count, err := a.Store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)

	all, err := a.Cache.Collection(ctx)
	require.NoError(t, err)
	for _, s := range []slug.Full{"index", "essays/on-notes", "essays/index", "maps/index", "tags/thinking"} {
		_, ok := all.Get(s)
		assert.True(t, ok, "missing %s", s)
	}
	home, _ := all.Get("index")
	assert.Equal(t, []slug.Full{"essays/on-notes"}, home.Links)
}

func TestBuildWritesSite(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	img := image.NewRGBA(image.Rect(0, 0, 512, 256))
	for x := 0; x < 512; x++ {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	avatar, err := os.Create(filepath.Join(t.TempDir(), "me.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(avatar, img))
	require.NoError(t, avatar.Close())
	a.Config.Avatar = avatar.Name()
	writeFile(t, a.Config.StaticDir, "favicon.svg", []byte("<svg/>"))

	_, err = a.Ingest(ctx)
	require.NoError(t, err)
	res, err := a.Build(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Zero(t, res.Failed)

	out := a.Config.OutputDir
	read := func(rel string) string {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		return string(data)
	}

	note := read("essays/on-notes.html")
	assert.Contains(t, note, "<title>On Notes | Test Garden</title>")
	assert.Contains(t, note, `href="../index.css"`)
	assert.Contains(t, read("essays/index.html"), "items under this folder")
	assert.Contains(t, read("tags/thinking.html"), "On Notes")
	assert.Contains(t, read("index.css"), ".breadcrumb-container")

	feed := read("index.xml")
	assert.Contains(t, feed, "<title>On Notes</title>")
	assert.Contains(t, feed, "<description>Why notes matter.</description>")
	assert.NotContains(t, feed, "Quiet Draft")

	sitemap := read("sitemap.xml")
	assert.Contains(t, sitemap, "<loc>https://garden.example.com/essays/on-notes</loc>")
	assert.NotContains(t, sitemap, "essays/draft")

	assert.Contains(t, read("404.html"), "Either this page is private")
	assert.Contains(t, read("404.html"), `href="/index.css"`)
	assert.Equal(t, "<svg/>", read("static/favicon.svg"))

	f, err := os.Open(filepath.Join(out, "static", "avatar.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)

	last, err := a.Store.LastBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.ID, last.ID)
	assert.Equal(t, res.Pages, last.Pages)
}

func TestBuildWithoutIngestFails(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Build(context.Background())
	assert.ErrorIs(t, err, errNoPages)
}

func TestSlugForPath(t *testing.T) {
	tests := []struct {
		path string
		want slug.Full
	}{
		{"/", slug.Root},
		{"", slug.Root},
		{"/essays/", "essays/index"},
		{"/essays/on-notes", "essays/on-notes"},
		{"/essays/on-notes.html", "essays/on-notes"},
		{"/../etc/passwd", "etc/passwd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugForPath(tt.path), tt.path)
	}
}

func TestPreviewRoutes(t *testing.T) {
	a := newTestApp(t)
	_, err := a.Ingest(context.Background())
	require.NoError(t, err)
	a.setupMiddleware()
	a.setupRoutes()

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := get("/essays/on-notes")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<h1 class="article-title">On Notes</h1>`)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to the")

	rec = get("/essays")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/essays/", rec.Header().Get("Location"))

	rec = get("/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Either this page is private")

	rec = get("/a/b/c")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/index.css"`)
	assert.NotContains(t, rec.Body.String(), `href="./index.css"`)

	rec = get("/index.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")

	rec = get("/index.xml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<rss version=\"2.0\">")

	rec = get("/robots.txt")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://garden.example.com/sitemap.xml")

	rec = get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `garden_ingests_total{outcome="success"} 1`)
	assert.Regexp(t, `garden_http_requests_total\{code="200",[^}]*url="/\*"\} [1-9]`, rec.Body.String())
	assert.Regexp(t, `garden_http_requests_total\{code="404",[^}]*\} [1-9]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), `url="/metrics"`)
}

func TestPageCacheInvalidate(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	_, err := a.Ingest(ctx)
	require.NoError(t, err)

	first, err := a.Cache.Collection(ctx)
	require.NoError(t, err)
	again, err := a.Cache.Collection(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)

	a.Cache.Invalidate()
	fresh, err := a.Cache.Collection(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, first.Len(), fresh.Len())
}

func TestShouldIgnoreEvent(t *testing.T) {
	assert.True(t, shouldIgnoreEvent("/notes/.hidden.md"))
	assert.True(t, shouldIgnoreEvent("/notes/a.md~"))
	assert.True(t, shouldIgnoreEvent("/notes/a.md.swp"))
	assert.False(t, shouldIgnoreEvent("/notes/a.md"))
}

func TestDebounceCollapsesBursts(t *testing.T) {
	calls := make(chan struct{}, 10)
	trigger := debounce(20*time.Millisecond, func() { calls <- struct{}{} })
	for range 5 {
		trigger()
	}
	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("debounced func never ran")
	}
	select {
	case <-calls:
		t.Fatal("debounced func ran twice")
	case <-time.After(100 * time.Millisecond):
	}
}

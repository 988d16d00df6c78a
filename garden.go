// Package garden turns a folder of linked markdown notes into a static
// digital-garden site. It ingests notes into a SQLite page index, renders
// every page through the declared layouts, and serves a live preview built
// on Echo.
package garden

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/layout"
	"github.com/eringen/garden/logfields"
	"github.com/eringen/garden/views"
)

// App is the central garden application. It wires together the store,
// cache, layouts, build pass and preview server.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PageCache
	Logger  *slog.Logger
	Metrics *Metrics

	Shared      layout.SharedLayout
	ContentPage layout.PageLayout
	ListPage    layout.PageLayout

	customRoutes []func(*App)
	now          func() time.Time

	openOnce sync.Once
	openErr  error
	cssOnce  sync.Once
	css      string
}

// New creates a new garden App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:      cfg,
		Echo:        echo.New(),
		Logger:      slog.Default(),
		Shared:      layout.Shared(),
		ContentPage: layout.ContentPage(),
		ListPage:    layout.ListPage(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.Metrics == nil {
		a.Metrics = NewMetrics(nil)
	}
	return a
}

// open initializes the store and cache on first use.
func (a *App) open() error {
	a.openOnce.Do(func() {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			a.openErr = fmt.Errorf("garden: init store: %w", err)
			return
		}
		a.Store = store
		a.Cache = NewPageCache(store, a.Config.PageCacheTTL)
	})
	return a.openErr
}

// Ingest loads the content directory into the page index and returns the
// number of pages stored.
func (a *App) Ingest(ctx context.Context) (int, error) {
	if err := a.open(); err != nil {
		return 0, err
	}
	start := time.Now()
	n, err := a.ingest(ctx)
	a.Metrics.observeIngest(n, err)
	if err != nil {
		return 0, err
	}
	a.Logger.Info("content ingested", logfields.Stage("ingest"), logfields.Count(n), logfields.Since(start))
	return n, nil
}

func (a *App) ingest(ctx context.Context) (int, error) {
	loader := &content.Loader{
		Root:   a.Config.ContentDir,
		Ignore: a.Config.Ignore,
		Logger: a.Logger,
	}
	all, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("garden: load content: %w", err)
	}
	records := make([]content.Record, 0, all.Len())
	for _, p := range all.Pages {
		records = append(records, p.Record())
	}
	if err := a.Store.Replace(ctx, records); err != nil {
		return 0, fmt.Errorf("garden: store pages: %w", err)
	}
	a.Cache.Invalidate()
	return len(records), nil
}

// componentConfig is rebuilt per render so the clock option is honored.
func (a *App) componentConfig() *components.Config {
	return a.Config.componentConfig(a.now)
}

// layoutFor picks the list layout for folder and tag pages.
func (a *App) layoutFor(p *content.Page) (string, layout.PageLayout) {
	if p.IsListPage() {
		return "list", a.ListPage
	}
	return "content", a.ContentPage
}

// CSS returns the stylesheet bundle of every component the layouts use.
func (a *App) CSS() string {
	a.cssOnce.Do(func() {
		a.css = views.CollectCSS(layout.Components(a.Shared, a.ContentPage, a.ListPage)...)
	})
	return a.css
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("garden: required environment variable %s is not set", key)
	}
	return v
}

var errNoPages = errors.New("garden: page index is empty, run an ingest first")

// Start ingests the content if the index is empty, then serves the preview
// until the server is shut down. With Config.Watch the content directory is
// re-ingested on change.
func (a *App) Start() error {
	if err := a.open(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n, err := a.Store.Count(ctx)
	if err != nil {
		return fmt.Errorf("garden: count pages: %w", err)
	}
	if n == 0 {
		if _, err := a.Ingest(ctx); err != nil {
			return err
		}
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if a.Config.Watch {
		go func() {
			if err := a.Watch(ctx); err != nil {
				a.Logger.Error("watch stopped", logfields.Error(err))
			}
		}()
	}

	a.Logger.Info("preview server listening", logfields.Addr(a.Config.Addr))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo
	e.HideBanner = true
	e.HidePort = true

	e.Static("/static", a.Config.StaticDir)
	e.GET("/"+avatarFile, a.handleAvatar)
	e.GET("/index.css", a.handleCSS)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/index.xml", a.handleFeed)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/metrics", echo.WrapHandler(a.Metrics.Handler()))

	e.GET("/", a.handlePage)
	e.GET("/*", a.handlePage)
}

// Shutdown stops the preview server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

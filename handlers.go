package garden

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/i18n"
	"github.com/eringen/garden/layout"
	"github.com/eringen/garden/logfields"
	"github.com/eringen/garden/slug"
	"github.com/eringen/garden/views"
)

// slugForPath maps a request path to the slug of the page it names. Paths
// ending in a slash name the folder's index page.
func slugForPath(p string) slug.Full {
	folder := strings.HasSuffix(p, "/")
	p = strings.Trim(path.Clean("/"+p), "/")
	p = strings.TrimSuffix(p, ".html")
	switch {
	case p == "":
		return slug.Root
	case folder:
		return slug.Full(p + "/index")
	}
	return slug.Full(p)
}

func (a *App) handlePage(c echo.Context) error {
	ctx := c.Request().Context()
	reqPath := c.Request().URL.Path
	s := slugForPath(reqPath)
	p, all, err := a.Cache.GetPage(ctx, s)
	if errors.Is(err, ErrNotFound) && !slug.IsIndex(s) {
		if _, ok := all.Get(slug.Full(string(s) + "/index")); ok {
			return c.Redirect(http.StatusMovedPermanently, reqPath+"/")
		}
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, a.Page(p, all))
}

func (a *App) handleCSS(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/css; charset=utf-8")
	return c.String(http.StatusOK, a.CSS())
}

func (a *App) handleSitemap(c echo.Context) error {
	all, err := a.Cache.Collection(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, all)
}

func (a *App) handleFeed(c echo.Context) error {
	all, err := a.Cache.Collection(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, all)
}

func (a *App) handleAvatar(c echo.Context) error {
	data, err := a.avatar()
	if err != nil {
		return err
	}
	if data == nil {
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: "+components.BuildURL(a.Config.URL, "sitemap.xml")+"\n")
}

// notFoundPage is the page shown for unknown paths.
func (a *App) notFoundPage() (*content.Page, error) {
	loc := i18n.For(a.Config.Locale)
	src := "---\ntitle: \"404\"\nnoindex: true\n---\n" + loc.NotFound + "\n\n[" + loc.HomeLink + "](" + a.basePath() + ")\n"
	return content.Parse("404.md", []byte(src))
}

func (a *App) writeNotFound(ctx context.Context, w io.Writer, all *content.Collection) error {
	p, err := a.notFoundPage()
	if err != nil {
		return err
	}
	return views.Document(a.Shared, layout.NotFoundPage(), components.Props{
		Page:     p,
		All:      all,
		Cfg:      a.componentConfig(),
		LinkRoot: a.basePath(),
	}).Render(ctx, w)
}

// basePath is the absolute path the site is served under. The 404 page
// links from it since hosts serve that page at any depth.
func (a *App) basePath() string {
	u, err := url.Parse(a.Config.URL)
	if err != nil {
		return "/"
	}
	return "/" + strings.Trim(u.Path, "/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusNotFound)
		all, _ := a.Cache.Collection(c.Request().Context())
		if err := a.writeNotFound(c.Request().Context(), c.Response(), all); err != nil {
			a.Logger.Error("render not found page", logfields.Error(err))
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", logfields.URI(c.Request().RequestURI), logfields.Error(err))
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

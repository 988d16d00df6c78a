package garden

import (
	"encoding/xml"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) writeSitemap(w io.Writer, all *content.Collection) error {
	base := a.Config.URL
	urls := make([]sitemapURL, 0, all.Len())
	for _, p := range all.Pages {
		if p.Frontmatter.NoIndex {
			continue
		}
		u := sitemapURL{Loc: components.PageURL(base, p.Slug)}
		if d := p.Dates.Get(content.Modified); !d.IsZero() {
			u.LastMod = d.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}

func (a *App) renderSitemap(c echo.Context, all *content.Collection) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeSitemap(c.Response(), all)
}

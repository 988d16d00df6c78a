package garden

import (
	"encoding/xml"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/markdown"
	"github.com/eringen/garden/slug"
)

const (
	feedLimit       = 10
	feedSummaryRune = 240
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// feedPages returns the newest indexable pages of the writings section.
func (a *App) feedPages(all *content.Collection) []*content.Page {
	pages := all.Filter(func(p *content.Page) bool {
		return slug.InSectionNotIndex(p.Slug, slug.Writings) && !p.Frontmatter.NoIndex
	})
	slices.SortStableFunc(pages, components.ByDateAndAlphabetical(a.componentConfig()))
	if len(pages) > feedLimit {
		pages = pages[:feedLimit]
	}
	return pages
}

func (a *App) writeRSS(w io.Writer, all *content.Collection) error {
	base := a.Config.URL
	dt := a.Config.DefaultDateType
	pages := a.feedPages(all)
	items := make([]rssItem, 0, len(pages))
	for _, p := range pages {
		pubDate := ""
		if d := p.Dates.Get(dt); !d.IsZero() {
			pubDate = d.Format(time.RFC1123Z)
		}
		pageURL := components.PageURL(base, p.Slug)
		items = append(items, rssItem{
			Title:       p.Title(),
			Link:        pageURL,
			Description: summary(p),
			PubDate:     pubDate,
			GUID:        pageURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        components.BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}

// summary prefers the frontmatter description and falls back to the start
// of the body text.
func summary(p *content.Page) string {
	if d := strings.TrimSpace(p.Frontmatter.Description); d != "" {
		return d
	}
	text := []rune(strings.Join(strings.Fields(markdown.PlainText(p.Text)), " "))
	if len(text) <= feedSummaryRune {
		return string(text)
	}
	return strings.TrimSpace(string(text[:feedSummaryRune])) + "…"
}

func (a *App) renderRSS(c echo.Context, all *content.Collection) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return a.writeRSS(c.Response(), all)
}

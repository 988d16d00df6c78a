package components

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/garden/markdown"
	"github.com/eringen/garden/slug"
)

// href resolves a configured link: URLs pass through, anything else is a
// slug relative to the site root.
func href(p Props, link string) string {
	if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		return markdown.SafeURL(link)
	}
	return p.resolve(link)
}

// Head renders the document head: title, SEO metadata, stylesheet and
// JSON-LD.
func Head() Component {
	return Func(IDHead, "", func(p Props) templ.Component {
		if p.Page == nil || p.Cfg == nil {
			return Nothing
		}
		cfg := p.Cfg
		title := cfg.PageTitle
		if t := p.Page.Title(); t != "" && t != cfg.PageTitle && p.Page.Slug != slug.Root {
			title = t + " | " + cfg.PageTitle
		}
		desc := p.Page.Frontmatter.Description
		pageURL := PageURL(cfg.BaseURL, p.Page.Slug)
		ogType := "article"
		jsonLD := ArticleJsonLD(cfg, p.Page)
		if p.Page.Slug == slug.Root || p.Page.IsListPage() {
			ogType = "website"
			jsonLD = WebsiteJsonLD(cfg)
		}
		root := p.linkRoot()
		return markup(func(w *htmlWriter) {
			w.open("head")
			w.void("meta", "charset", "utf-8")
			w.element("title", title)
			w.void("meta", "name", "viewport", "content", "width=device-width, initial-scale=1.0")
			w.void("meta", "name", "description", "content", desc)
			w.void("meta", "property", "og:title", "content", title)
			w.void("meta", "property", "og:description", "content", desc)
			w.void("meta", "property", "og:type", "content", ogType)
			w.void("meta", "property", "og:url", "content", pageURL)
			w.void("link", "rel", "canonical", "href", pageURL)
			w.void("link", "rel", "stylesheet", "href", slug.JoinSegments(root, "index.css"))
			w.void("link", "rel", "alternate", "type", "application/rss+xml", "title", cfg.PageTitle, "href", slug.JoinSegments(root, "index.xml"))
			w.open("script", "type", "application/ld+json")
			w.raw(jsonLD)
			w.close("script")
			w.close("head")
		})
	})
}

// NavLink is one entry of the navbar.
type NavLink struct {
	Title string
	Link  string
}

// NavbarOptions configures Navbar.
type NavbarOptions struct {
	Links []NavLink
}

// Navbar renders the site title and top-level navigation.
func Navbar(opts NavbarOptions) Component {
	return Func(IDNavbar, navbarStyle, func(p Props) templ.Component {
		site := ""
		if p.Cfg != nil {
			site = p.Cfg.PageTitle
		}
		return markup(func(w *htmlWriter) {
			w.open("nav", "class", classNames(p.DisplayClass, "navbar"))
			w.element("a", site, "class", "navbar-home internal", "href", href(p, "/"))
			if len(opts.Links) > 0 {
				w.open("ul", "class", "navbar-links")
				for _, l := range opts.Links {
					w.open("li")
					w.element("a", l.Title, "href", href(p, l.Link))
					w.close("li")
				}
				w.close("ul")
			}
			w.close("nav")
		})
	})
}

// FooterLink is one link of a footer column.
type FooterLink struct {
	Title string
	Link  string
}

// FooterColumn groups footer links under a heading.
type FooterColumn struct {
	Title string
	Links []FooterLink
}

// FooterOptions configures Footer.
type FooterOptions struct {
	Columns []FooterColumn
}

// Footer renders the link columns and the credit line.
func Footer(opts FooterOptions) Component {
	return Func(IDFooter, footerStyle, func(p Props) templ.Component {
		loc := p.Cfg.locale()
		year := p.Cfg.now().Year()
		return markup(func(w *htmlWriter) {
			w.open("footer", "class", p.DisplayClass)
			w.open("div", "class", "footer-columns")
			for _, col := range opts.Columns {
				w.open("div", "class", "footer-column")
				w.element("h4", col.Title)
				w.open("ul")
				for _, l := range col.Links {
					w.open("li")
					w.element("a", l.Title, "href", href(p, l.Link))
					w.close("li")
				}
				w.close("ul")
				w.close("div")
			}
			w.close("div")
			w.element("p", fmt.Sprintf("%s garden © %d", loc.CreatedWith, year), "class", "footer-credit")
			w.close("footer")
		})
	})
}

// ArticleTitle renders the page title as the article heading.
func ArticleTitle() Component {
	return Func(IDArticleTitle, "", func(p Props) templ.Component {
		if p.Page == nil || p.Page.Title() == "" {
			return Nothing
		}
		return markup(func(w *htmlWriter) {
			w.element("h1", p.Page.Title(), "class", classNames(p.DisplayClass, "article-title"))
		})
	})
}

// Spacer renders an empty flexible block.
func Spacer() Component {
	return Func(IDSpacer, "", func(p Props) templ.Component {
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "spacer"))
			w.close("div")
		})
	})
}

type displayWrapper struct {
	inner Component
	class string
}

func (d *displayWrapper) ID() string  { return d.inner.ID() }
func (d *displayWrapper) CSS() string { return d.inner.CSS() }

func (d *displayWrapper) Render(p Props) templ.Component {
	p.DisplayClass = d.class
	return d.inner.Render(p)
}

// DesktopOnly renders c with the desktop-only display class.
func DesktopOnly(c Component) Component {
	return &displayWrapper{inner: c, class: "desktop-only"}
}

// MobileOnly renders c with the mobile-only display class.
func MobileOnly(c Component) Component {
	return &displayWrapper{inner: c, class: "mobile-only"}
}

// Backlinks lists the pages linking to the current page.
func Backlinks() Component {
	return Func(IDBacklinks, backlinksStyle, func(p Props) templ.Component {
		if p.Page == nil {
			return Nothing
		}
		loc := p.Cfg.locale()
		links := p.All.Backlinks(p.Page.Slug)
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "backlinks"))
			w.element("h3", loc.BacklinksTitle)
			w.open("ul", "class", "overflow")
			if len(links) == 0 {
				w.element("li", loc.NoBacklinks)
			}
			for _, b := range links {
				w.open("li")
				w.internalLink(p.resolve(string(b.Slug)), firstNonEmpty(b.Title(), loc.DefaultTitle))
				w.close("li")
			}
			w.close("ul")
			w.close("div")
		})
	})
}

// Search renders the search input shell. Indexing runs client side.
func Search() Component {
	return Func(IDSearch, searchStyle, func(p Props) templ.Component {
		loc := p.Cfg.locale()
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "search"))
			w.open("button", "class", "search-button", "id", "search-button", "type", "button")
			w.element("p", loc.SearchTitle)
			w.close("button")
			w.open("div", "id", "search-container")
			w.open("div", "id", "search-space")
			w.void("input", "autocomplete", "off", "id", "search-bar", "name", "search", "type", "text",
				"aria-label", loc.SearchPlaceholder, "placeholder", loc.SearchPlaceholder)
			w.open("div", "id", "search-layout", "data-preview", "true")
			w.close("div")
			w.close("div")
			w.close("div")
			w.close("div")
		})
	})
}

// GraphOptions is handed to the client-side graph as JSON.
type GraphOptions struct {
	Depth    int     `json:"depth"`
	Scale    float64 `json:"scale"`
	ShowTags bool    `json:"showTags"`
}

// Graph renders the container the client-side graph draws into.
func Graph(opts GraphOptions) Component {
	if opts.Depth == 0 {
		opts.Depth = 1
	}
	if opts.Scale == 0 {
		opts.Scale = 1.1
	}
	cfgJSON, err := json.Marshal(opts)
	if err != nil {
		cfgJSON = []byte("{}")
	}
	return Func(IDGraph, graphStyle, func(p Props) templ.Component {
		loc := p.Cfg.locale()
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "graph"))
			w.element("h3", loc.GraphTitle)
			w.open("div", "class", "graph-outer")
			w.open("div", "id", "graph-container", "data-cfg", string(cfgJSON))
			w.close("div")
			w.close("div")
			w.close("div")
		})
	})
}

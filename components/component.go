// Package components holds the presentational pieces of a garden page. Each
// component is a pure function of its Props: it reads the current page, the
// page collection and the site configuration and returns markup as a
// templ.Component. Nothing here mutates shared state; the only memo is the
// breadcrumb folder index.
package components

import (
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/i18n"
	"github.com/eringen/garden/slug"
)

// Component IDs, used for stylesheet bundling and in tests.
const (
	IDHead                  = "head"
	IDNavbar                = "navbar"
	IDFooter                = "footer"
	IDBreadcrumbs           = "breadcrumbs"
	IDArticleTitle          = "article-title"
	IDContentMeta           = "content-meta"
	IDRecentNotes           = "recent-notes"
	IDRelatedNotes          = "related-notes"
	IDRelatedNotesContainer = "related-notes-container"
	IDCallToAction          = "call-to-action"
	IDAboutAuthor           = "about-author"
	IDProperties            = "properties"
	IDBacklinks             = "backlinks"
	IDSearch                = "search"
	IDGraph                 = "graph"
	IDSpacer                = "spacer"
	IDContent               = "content"
	IDFolderContent         = "folder-content"
)

// Config is the read-only site configuration shared by every render.
type Config struct {
	PageTitle       string
	BaseURL         string
	Locale          string
	DefaultDateType content.DateType
	Author          string
	// AvatarURL is relative to the site root unless it is absolute.
	AvatarURL string
	// Now is the clock relative dates are measured against.
	Now func() time.Time
}

func (c *Config) locale() *i18n.Locale {
	if c == nil {
		return i18n.For("")
	}
	return i18n.For(c.Locale)
}

func (c *Config) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Config) dateType() content.DateType {
	if c == nil || c.DefaultDateType == "" {
		return content.Created
	}
	return c.DefaultDateType
}

// Props is everything a component may look at.
type Props struct {
	Page         *content.Page
	All          *content.Collection
	DisplayClass string
	Cfg          *Config
	// LinkRoot replaces the page-relative path to the site root when set.
	// Pages served at arbitrary paths, like the 404 page, use the site's
	// absolute base path here.
	LinkRoot string
}

func (p Props) slugs() []slug.Full {
	return p.All.Slugs()
}

func (p Props) linkRoot() string {
	if p.LinkRoot != "" {
		return p.LinkRoot
	}
	if p.Page == nil {
		return "."
	}
	return string(slug.PathToRoot(p.Page.Slug))
}

// resolve turns a slug or folder path into a link from the current page.
func (p Props) resolve(target string) string {
	return slug.JoinSegments(p.linkRoot(), string(slug.Simplify(slug.Full(target))))
}

// Component is the calling contract between a layout and its pieces.
type Component interface {
	ID() string
	CSS() string
	Render(Props) templ.Component
}

type funcComponent struct {
	id     string
	css    string
	render func(Props) templ.Component
}

func (f *funcComponent) ID() string                     { return f.id }
func (f *funcComponent) CSS() string                    { return f.css }
func (f *funcComponent) Render(p Props) templ.Component { return f.render(p) }

// Func builds a Component from a render function.
func Func(id, css string, render func(Props) templ.Component) Component {
	return &funcComponent{id: id, css: css, render: render}
}

// classNames joins non-empty class names.
func classNames(names ...string) string {
	var out []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Bool returns a pointer to b, for the optional flags of component options.
func Bool(b bool) *bool {
	return &b
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

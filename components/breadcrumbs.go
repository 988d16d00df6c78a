package components

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// BreadcrumbOptions configures Breadcrumbs.
type BreadcrumbOptions struct {
	// SpacerSymbol is shown after the last crumb. Default "•".
	SpacerSymbol string
	// ResolveFrontmatterTitle names folders by their index page title. Default true.
	ResolveFrontmatterTitle *bool
	// HideOnRoot renders nothing on the root page. Default true.
	HideOnRoot *bool
}

func (o BreadcrumbOptions) withDefaults() BreadcrumbOptions {
	if o.SpacerSymbol == "" {
		o.SpacerSymbol = "•"
	}
	if o.ResolveFrontmatterTitle == nil {
		o.ResolveFrontmatterTitle = Bool(true)
	}
	if o.HideOnRoot == nil {
		o.HideOnRoot = Bool(true)
	}
	return o
}

type crumb struct {
	name string
	href slug.Relative
}

type breadcrumbs struct {
	opts BreadcrumbOptions

	mu      sync.RWMutex
	indexOf *content.Collection
	folders map[string]*content.Page
}

// Breadcrumbs renders the folder trail of the current page.
func Breadcrumbs(opts BreadcrumbOptions) Component {
	return &breadcrumbs{opts: opts.withDefaults()}
}

func (b *breadcrumbs) ID() string  { return IDBreadcrumbs }
func (b *breadcrumbs) CSS() string { return breadcrumbsStyle }

// folderIndex maps a folder path ("guides/setup") to its index page. It is
// built once per collection.
func (b *breadcrumbs) folderIndex(all *content.Collection) map[string]*content.Page {
	b.mu.RLock()
	if b.folders != nil && b.indexOf == all {
		idx := b.folders
		b.mu.RUnlock()
		return idx
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.folders != nil && b.indexOf == all {
		return b.folders
	}
	idx := make(map[string]*content.Page)
	if all != nil {
		for _, p := range all.Pages {
			if slug.IsIndex(p.Slug) && p.Slug != slug.Root {
				idx[slug.Folder(p.Slug)] = p
			}
		}
	}
	b.folders, b.indexOf = idx, all
	return idx
}

func (b *breadcrumbs) trail(p Props) []crumb {
	cur := p.Page.Slug
	parts := strings.Split(string(cur), "/")
	isTag := strings.HasPrefix(string(cur), slug.Tags+"/")
	var idx map[string]*content.Page
	if *b.opts.ResolveFrontmatterTitle {
		idx = b.folderIndex(p.All)
	}

	tag := p.Cfg.locale().Tag
	crumbs := make([]crumb, 0, len(parts))
	current := ""
	for i := 0; i < len(parts)-1; i++ {
		seg := parts[i]
		if seg == "" {
			continue
		}
		current = slug.JoinSegments(current, seg)
		name := seg
		if folder, ok := idx[current]; ok {
			if t := folder.Title(); t != "" && t != "index" {
				name = t
			}
		}
		target := current
		if !isTag || i < 1 {
			target += "/"
		}
		crumbs = append(crumbs, crumb{
			name: capitalize(strings.ReplaceAll(name, "-", " "), tag),
			href: slug.Relative(p.resolve(target)),
		})
	}
	return crumbs
}

func capitalize(s string, tag language.Tag) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(tag).String(string(r)) + s[size:]
}

func (b *breadcrumbs) Render(p Props) templ.Component {
	if p.Page == nil {
		return Nothing
	}
	if *b.opts.HideOnRoot && (p.Page.Slug == slug.Root || p.Page.Slug == "/") {
		return Nothing
	}
	crumbs := b.trail(p)
	state := p.Page.Frontmatter.State
	return markup(func(w *htmlWriter) {
		w.open("nav", "class", classNames(p.DisplayClass, "breadcrumb-container"), "aria-label", "breadcrumbs")
		for _, c := range crumbs {
			w.open("div", "class", "breadcrumb-element")
			w.internalLink(string(c.href), c.name)
			w.close("div")
		}
		w.element("span", b.opts.SpacerSymbol, "class", "breadcrumb-spacer", "aria-hidden", "true")
		if state != "" {
			w.element("div", state, "class", "breadcrumb-element breadcrumb-state")
		}
		w.close("nav")
	})
}

package components

import (
	"slices"

	"github.com/a-h/templ"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// RelatedNotesOptions configures RelatedNotes and RelatedNotesContainer.
type RelatedNotesOptions struct {
	Title string
	// Section defaults to slug.Writings.
	Section      string
	ShowForIndex bool
	ShowForNotes bool
	// Limit defaults to 4.
	Limit int
	// Field is a frontmatter link field to list. Empty lists the section.
	Field      string
	LinkToMore slug.Simple
	// CTA is the text of the "see more" link.
	CTA string
}

func (o RelatedNotesOptions) withDefaults(cfg *Config) RelatedNotesOptions {
	if o.Section == "" {
		o.Section = slug.Writings
	}
	if o.Limit <= 0 {
		o.Limit = 4
	}
	if o.CTA == "" {
		o.CTA = cfg.locale().SeeMore
	}
	return o
}

// shownOn reports whether the list belongs on the page with slug cur.
func (o RelatedNotesOptions) shownOn(cur slug.Full) bool {
	if cur == slug.Full(o.Section+"/index") {
		return o.ShowForIndex
	}
	return o.ShowForNotes && slug.InSectionNotIndex(cur, o.Section)
}

// related returns the candidate pages and how many were cut by the limit.
func (o RelatedNotesOptions) related(p Props) ([]*content.Page, int) {
	var pages []*content.Page
	if o.Field != "" {
		seen := map[slug.Full]bool{p.Page.Slug: true}
		all := p.slugs()
		for _, target := range p.Page.Frontmatter.Link(o.Field).Targets() {
			s, ok := slug.Resolve(target, all)
			if !ok || seen[s] {
				continue
			}
			seen[s] = true
			if page, ok := p.All.Get(s); ok {
				pages = append(pages, page)
			}
		}
	} else {
		pages = p.All.Filter(func(c *content.Page) bool {
			return c.Slug != p.Page.Slug &&
				!c.Frontmatter.NoIndex &&
				slug.InSectionNotIndex(c.Slug, o.Section) &&
				!slug.IsIndex(c.Slug)
		})
		slices.SortStableFunc(pages, ByDateAndAlphabetical(p.Cfg))
	}
	remaining := len(pages) - o.Limit
	if remaining > 0 {
		pages = pages[:o.Limit]
	}
	return pages, remaining
}

// RelatedNotes renders a titled list of pages related to the current one.
func RelatedNotes(opts RelatedNotesOptions) Component {
	return Func(IDRelatedNotes, relatedNotesStyle, func(p Props) templ.Component {
		o := opts.withDefaults(p.Cfg)
		if p.Page == nil || !o.shownOn(p.Page.Slug) {
			return Nothing
		}
		pages, remaining := o.related(p)
		if len(pages) == 0 {
			return Nothing
		}
		loc := p.Cfg.locale()
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "related-notes"))
			if o.Title != "" {
				w.element("h3", o.Title, "class", "component-title")
			}
			w.open("ul", "class", "related-ul")
			for _, page := range pages {
				w.open("li", "class", "related-li")
				w.internalLink(p.resolve(string(page.Slug)), firstNonEmpty(page.Title(), loc.DefaultTitle))
				w.close("li")
			}
			w.close("ul")
			writeMore(w, p, o, remaining)
			w.close("div")
		})
	})
}

// RelatedNotesContainer renders the same selection as RelatedNotes as cards
// with descriptions.
func RelatedNotesContainer(opts RelatedNotesOptions) Component {
	return Func(IDRelatedNotesContainer, relatedNotesStyle, func(p Props) templ.Component {
		o := opts.withDefaults(p.Cfg)
		if p.Page == nil || !o.shownOn(p.Page.Slug) {
			return Nothing
		}
		pages, remaining := o.related(p)
		if len(pages) == 0 {
			return Nothing
		}
		loc := p.Cfg.locale()
		return markup(func(w *htmlWriter) {
			w.open("section", "class", classNames(p.DisplayClass, "related-notes-wrapper"))
			if o.Title != "" {
				w.element("h2", o.Title, "class", "component-title")
			}
			w.open("div", "class", "related-notes-container")
			for _, page := range pages {
				w.open("div", "class", "related-card")
				w.open("a", "href", p.resolve(string(page.Slug)), "class", "internal no-background")
				w.element("h4", firstNonEmpty(page.Title(), loc.DefaultTitle), "class", "related-card-title")
				if d := page.Frontmatter.Description; d != "" {
					w.element("p", d, "class", "related-card-desc")
				}
				w.close("a")
				w.close("div")
			}
			w.close("div")
			writeMore(w, p, o, remaining)
			w.close("section")
		})
	})
}

func writeMore(w *htmlWriter, p Props, o RelatedNotesOptions, remaining int) {
	if o.LinkToMore == "" || remaining <= 0 {
		return
	}
	w.open("p", "class", "related-more")
	w.internalLink(p.resolve(string(o.LinkToMore)), o.CTA)
	w.close("p")
}

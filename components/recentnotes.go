package components

import (
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

type scopeKind int

const (
	scopeAny scopeKind = iota
	scopeRoot
	scopeTopLevel
	scopeFolder
)

// Scope decides on which pages a list is shown.
type Scope struct {
	kind   scopeKind
	prefix string
}

var (
	// ScopeAny shows the list on every page.
	ScopeAny = Scope{kind: scopeAny}
	// ScopeRoot shows the list only on the site root.
	ScopeRoot = Scope{kind: scopeRoot}
	// ScopeTopLevel shows the list only on pages outside any folder.
	ScopeTopLevel = Scope{kind: scopeTopLevel}
)

// ScopeFolder shows the list only on pages whose slug starts with prefix.
func ScopeFolder(prefix string) Scope {
	return Scope{kind: scopeFolder, prefix: prefix}
}

// Allows reports whether the list is shown on the page with slug s.
func (s Scope) Allows(cur slug.Full) bool {
	switch s.kind {
	case scopeRoot:
		return cur == slug.Root || cur == "/"
	case scopeTopLevel:
		return !strings.Contains(string(cur), "/")
	case scopeFolder:
		return strings.HasPrefix(string(cur), s.prefix)
	}
	return true
}

// RecentNotesOptions configures RecentNotes.
type RecentNotesOptions struct {
	// Title defaults to the locale's "Recent Notes".
	Title string
	Path  Scope
	// Limit defaults to 3.
	Limit      int
	ShowDates  bool
	LinkToMore slug.Simple
	Filter     FilterFn
	// Sort builds the page order for the site configuration. Defaults to
	// ByDateAndAlphabetical.
	Sort func(*Config) SortFn
}

func (o RecentNotesOptions) withDefaults(cfg *Config) RecentNotesOptions {
	if o.Limit <= 0 {
		o.Limit = 3
	}
	if o.Filter == nil {
		o.Filter = func(*content.Page) bool { return true }
	}
	if o.Sort == nil {
		o.Sort = ByDateAndAlphabetical
	}
	if o.Title == "" {
		o.Title = cfg.locale().RecentNotesTitle
	}
	return o
}

// RecentNotes renders a short, sorted list of pages with an optional link to
// the full listing.
func RecentNotes(opts RecentNotesOptions) Component {
	return Func(IDRecentNotes, recentNotesStyle, func(p Props) templ.Component {
		if p.Page == nil || !opts.Path.Allows(p.Page.Slug) {
			return Nothing
		}
		o := opts.withDefaults(p.Cfg)
		pages := p.All.Filter(o.Filter)
		slices.SortStableFunc(pages, o.Sort(p.Cfg))
		remaining := len(pages) - o.Limit
		if remaining > 0 {
			pages = pages[:o.Limit]
		}
		return renderRecent(p, o, pages, remaining)
	})
}

func renderRecent(p Props, o RecentNotesOptions, pages []*content.Page, remaining int) templ.Component {
	loc := p.Cfg.locale()
	dt := p.Cfg.dateType()
	return markup(func(w *htmlWriter) {
		w.open("div", "class", classNames(p.DisplayClass, "recent-notes"))
		w.element("h3", o.Title, "class", "component-title")
		w.open("ul", "class", "recent-ul")
		for _, page := range pages {
			title := firstNonEmpty(page.Title(), loc.DefaultTitle)
			w.open("li", "class", "recent-li")
			w.open("div", "class", "section")
			w.open("div", "class", "desc")
			w.open("h3")
			w.internalLink(p.resolve(string(page.Slug)), title)
			w.close("h3")
			w.close("div")
			if o.ShowDates && page.Dates != nil {
				if d := page.Dates.Get(dt); !d.IsZero() {
					w.open("p", "class", "meta")
					w.element("time", loc.FormatDate(d), "datetime", d.Format("2006-01-02"))
					w.close("p")
				}
			}
			w.close("div")
			w.close("li")
		}
		w.close("ul")
		if o.LinkToMore != "" && remaining > 0 {
			w.open("p")
			w.internalLink(p.resolve(string(o.LinkToMore)), loc.SeeRemainingMore(remaining))
			w.close("p")
		}
		w.close("div")
	})
}

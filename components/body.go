package components

import (
	"slices"

	"github.com/a-h/templ"

	"github.com/eringen/garden/markdown"
)

func bodyOf(p Props) templ.Component {
	return markdown.Markdown(p.Page.Text, markdown.Options{Source: p.Page.Slug, AllSlugs: p.slugs()})
}

// Content renders the body of a note.
func Content() Component {
	return Func(IDContent, "", func(p Props) templ.Component {
		if p.Page == nil {
			return Nothing
		}
		return markup(func(w *htmlWriter) {
			w.open("article", "class", classNames(p.DisplayClass, "popover-hint"))
			w.component(bodyOf(p))
			w.close("article")
		})
	})
}

// FolderContent renders the body of a folder or tag page followed by the
// listing of its children.
func FolderContent() Component {
	return Func(IDFolderContent, listPageStyle, func(p Props) templ.Component {
		if p.Page == nil {
			return Nothing
		}
		loc := p.Cfg.locale()
		dt := p.Cfg.dateType()
		children := p.All.Children(p.Page)
		slices.SortStableFunc(children, ByDateAndAlphabetical(p.Cfg))
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "popover-hint"))
			if p.Page.Text != "" {
				w.open("article")
				w.component(bodyOf(p))
				w.close("article")
			}
			w.open("div", "class", "page-listing")
			w.element("p", loc.ItemsUnderFolder(len(children)))
			w.open("ul", "class", "section-ul")
			for _, c := range children {
				w.open("li", "class", "section-li")
				w.open("div", "class", "section")
				w.open("p", "class", "meta")
				if d := c.Dates.Get(dt); !d.IsZero() {
					w.element("time", loc.FormatDate(d), "datetime", d.Format("2006-01-02"))
				}
				w.close("p")
				w.open("div", "class", "desc")
				w.open("h3")
				w.internalLink(p.resolve(string(c.Slug)), firstNonEmpty(c.Title(), loc.DefaultTitle))
				w.close("h3")
				w.close("div")
				w.close("div")
				w.close("li")
			}
			w.close("ul")
			w.close("div")
			w.close("div")
		})
	})
}

package components

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// hiddenProperties are frontmatter keys other components already render or
// that only drive the build.
var hiddenProperties = []string{
	"title", "description", "tags", "author", "state", "up", "related",
	"noindex", "draft", "aliases", "permalink", "cssclasses",
	"created", "modified", "published", "date", "lastmod", "updated", "last-modified", "publishDate",
	"ctaType", "ctaTitle", "ctaSubtitle", "ctaButton", "ctaFormId",
}

// PropertiesOptions configures Properties.
type PropertiesOptions struct {
	// Hide lists extra frontmatter keys to leave out.
	Hide []string
}

// Properties renders the remaining frontmatter of a note as a definition
// list. Wiki-link values become links.
func Properties(opts PropertiesOptions) Component {
	hidden := make(map[string]bool)
	for _, k := range append(slices.Clone(hiddenProperties), opts.Hide...) {
		hidden[strings.ToLower(k)] = true
	}
	return Func(IDProperties, propertiesStyle, func(p Props) templ.Component {
		if p.Page == nil || p.Page.IsListPage() {
			return Nothing
		}
		fm := p.Page.Frontmatter
		var keys []string
		for k, v := range fm.Fields {
			if hidden[strings.ToLower(k)] || v == nil {
				continue
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			return Nothing
		}
		slices.Sort(keys)
		link := slug.TransformOptions{Strategy: slug.Shortest, AllSlugs: p.slugs()}
		return markup(func(w *htmlWriter) {
			w.open("dl", "class", classNames(p.DisplayClass, "properties"))
			for _, k := range keys {
				w.element("dt", k)
				w.open("dd")
				writeValues(w, p.Page.Slug, propertyValues(fm.Fields[k]), link)
				w.close("dd")
			}
			w.close("dl")
		})
	})
}

func propertyValues(raw any) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, propertyValues(e)...)
		}
		return out
	case time.Time:
		return []string{v.Format("2006-01-02")}
	case map[string]any:
		return nil
	}
	return []string{fmt.Sprint(raw)}
}

func writeValues(w *htmlWriter, cur slug.Full, vals []string, opts slug.TransformOptions) {
	for i, v := range vals {
		if i > 0 {
			w.text(", ")
		}
		if content.IsWikiLink(v) {
			target := content.CleanLink(v)
			w.internalLink(string(slug.TransformLink(cur, target, opts)), lastSegment(target))
			continue
		}
		w.text(v)
	}
}

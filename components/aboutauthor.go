package components

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/garden/markdown"
	"github.com/eringen/garden/slug"
)

// AboutAuthorOptions overrides the locale's strings for AboutAuthor.
type AboutAuthorOptions struct {
	Title       string
	Description string
}

// AboutAuthor renders a short author bio.
func AboutAuthor(opts AboutAuthorOptions) Component {
	return Func(IDAboutAuthor, aboutAuthorStyle, func(p Props) templ.Component {
		loc := p.Cfg.locale()
		title := firstNonEmpty(opts.Title, loc.AboutAuthorTitle)
		desc := firstNonEmpty(opts.Description, loc.AboutAuthorDescription)
		avatar := ""
		author := ""
		if p.Cfg != nil {
			avatar = assetURL(p, p.Cfg.AvatarURL)
			author = p.Cfg.Author
		}
		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "about-author"))
			if avatar != "" {
				w.void("img", "class", "about-author-avatar", "src", avatar, "alt", author,
					"width", "96", "height", "96", "loading", "lazy")
			}
			w.element("h3", title, "class", "component-title")
			w.element("p", desc, "class", "about-author-text")
			w.close("div")
		})
	})
}

// assetURL turns a site-root-relative asset path into an href from the
// current page. Absolute URLs pass through SafeURL.
func assetURL(p Props, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") {
		return markdown.SafeURL(ref)
	}
	return slug.JoinSegments(p.linkRoot(), ref)
}

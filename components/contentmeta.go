package components

import (
	"math"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/markdown"
	"github.com/eringen/garden/slug"
)

// WordsPerMinute is the reading speed behind reading-time estimates.
const WordsPerMinute = 200

// ReadingTime estimates how long text takes to read. minutes is rounded up to
// a whole minute whenever text has any words.
func ReadingTime(text string) (minutes, words int) {
	words = len(strings.Fields(text))
	minutes = int(math.Ceil(float64(words) / WordsPerMinute))
	return minutes, words
}

// ContentMetaOptions configures ContentMeta. Every flag defaults to true.
type ContentMetaOptions struct {
	ShowReadingTime *bool
	ShowAuthor      *bool
	ShowSeparator   *bool
}

// ContentMeta renders the author, reading time, up links and relative dates of
// a note.
func ContentMeta(opts ContentMetaOptions) Component {
	showReading := boolOr(opts.ShowReadingTime, true)
	showAuthor := boolOr(opts.ShowAuthor, true)
	showSeparator := boolOr(opts.ShowSeparator, true)

	return Func(IDContentMeta, contentMetaStyle, func(p Props) templ.Component {
		if p.Page == nil {
			return Nothing
		}
		page := p.Page
		loc := p.Cfg.locale()
		writing := slug.InSectionNotIndex(page.Slug, slug.Writings)

		author := ""
		if showAuthor {
			author = page.Frontmatter.Author
		}
		readingTime := ""
		if showReading && writing && strings.TrimSpace(page.Text) != "" {
			minutes, _ := ReadingTime(markdown.PlainText(page.Text))
			readingTime = loc.ReadingTime(minutes)
		}
		ups := upLinks(p)

		var emerged, evolved string
		if writing && page.Dates != nil {
			now := p.Cfg.now()
			if c := page.Dates.Get(p.Cfg.dateType()); !c.IsZero() {
				emerged = humanize.RelTime(c, now, "ago", "from now")
			}
			if m := page.Dates.Get(content.Modified); !m.IsZero() {
				if rel := humanize.RelTime(m, now, "ago", "from now"); rel != emerged {
					evolved = rel
				}
			}
		}

		return markup(func(w *htmlWriter) {
			w.open("div", "class", classNames(p.DisplayClass, "content-meta-container"))
			w.open("div", "class", "content-meta-row")
			w.open("div", "class", "content-meta-element vertical")
			if author != "" {
				w.element("span", loc.By+" "+author, "class", "content-meta-author")
			}
			if readingTime != "" {
				w.element("span", readingTime, "class", "content-meta-reading-time")
			}
			w.close("div")
			if len(ups) > 0 {
				w.open("div", "class", "content-meta-element up horizontal")
				w.element("span", "↑", "class", "content-meta-icon", "aria-hidden", "true")
				for _, u := range ups {
					if u.href == "" {
						w.element("span", u.text)
						continue
					}
					w.internalLink(u.href, u.text)
				}
				w.close("div")
			}
			w.close("div")
			if showSeparator && (emerged != "" || evolved != "") {
				w.void("hr", "class", "content-meta-divider")
			}
			if emerged != "" || evolved != "" {
				w.open("div", "class", "content-meta-element dates horizontal")
				if emerged != "" {
					w.element("span", loc.Emerged+" "+emerged, "class", "content-meta-date")
				}
				if evolved != "" {
					w.element("span", loc.Evolved+" "+evolved, "class", "content-meta-date")
				}
				w.close("div")
			}
			w.close("div")
		})
	})
}

type upLink struct {
	text string
	href string
}

// upLinks resolves the "up" field. A lone value counts only as a wiki link;
// list entries that are not wiki links are kept as plain text.
func upLinks(p Props) []upLink {
	up := p.Page.Frontmatter.Link("up")
	if up.IsZero() {
		return nil
	}
	opts := slug.TransformOptions{Strategy: slug.Shortest, AllSlugs: p.slugs()}
	var out []upLink
	for _, item := range up.Items {
		if !content.IsWikiLink(item) {
			if up.Kind == content.LinkMany && strings.TrimSpace(item) != "" {
				out = append(out, upLink{text: strings.TrimSpace(item)})
			}
			continue
		}
		target := content.CleanLink(item)
		if target == "" {
			continue
		}
		out = append(out, upLink{
			text: lastSegment(target),
			href: string(slug.TransformLink(p.Page.Slug, target, opts)),
		})
	}
	return out
}

func lastSegment(s string) string {
	s = strings.TrimSuffix(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

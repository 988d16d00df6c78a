// Package layout declares which components appear in which region of each
// page type. Layouts are built once at start-up and only read afterwards.
package layout

import (
	"strings"

	"github.com/eringen/garden/components"
	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// SharedLayout holds the components every page carries.
type SharedLayout struct {
	Head   components.Component
	Header []components.Component
	Footer components.Component
}

// PageLayout holds the components of one page type, by region.
type PageLayout struct {
	BeforeBody []components.Component
	AfterBody  []components.Component
	Left       []components.Component
	Right      []components.Component
}

// Shared returns the head, header and footer used on every page.
func Shared() SharedLayout {
	return SharedLayout{
		Head: components.Head(),
		Header: []components.Component{
			components.Navbar(components.NavbarOptions{}),
		},
		Footer: components.Footer(components.FooterOptions{
			Columns: []components.FooterColumn{
				{
					Title: "Resources",
					Links: []components.FooterLink{
						{Title: "Ideaverse", Link: "https://start.linkingyourthinking.com/ideaverse-for-obsidian"},
						{Title: "Obsidian Flight School", Link: "https://www.linkingyourthinking.com/obsidian-flight-school"},
						{Title: "How to Work a Book", Link: "https://www.linkingyourthinking.com/how-to-work-a-book"},
						{Title: "LYT Workshop", Link: "https://www.linkingyourthinking.com/workshop"},
						{Title: "Writing Original Works", Link: "https://www.linkingyourthinking.com/wow-workshop"},
					},
				},
				{
					Title: "Socials",
					Links: []components.FooterLink{
						{Title: "Youtube", Link: "https://linkingyourthinking.com/youtube"},
						{Title: "Podcast", Link: "https://podcast.linkingyourthinking.com/"},
						{Title: "Twitter", Link: "https://twitter.com/the_LYT_way"},
					},
				},
				{
					Title: "Company",
					Links: []components.FooterLink{
						{Title: "Contact Us", Link: "contact"},
						{Title: "About LYT", Link: "about"},
					},
				},
			},
		}),
	}
}

func isWriting(p *content.Page) bool {
	return slug.InSectionNotIndex(p.Slug, slug.Writings) && !p.Frontmatter.NoIndex
}

func isMap(p *content.Page) bool {
	return strings.HasPrefix(string(p.Slug), slug.Maps+"/") && p.Slug != slug.Maps+"/index"
}

// ContentPage is the layout of a single note.
func ContentPage() PageLayout {
	writings := slug.Simple(slug.Writings + "/")
	return PageLayout{
		BeforeBody: []components.Component{
			components.Breadcrumbs(components.BreadcrumbOptions{}),
			components.ArticleTitle(),
			components.ContentMeta(components.ContentMetaOptions{}),
		},
		AfterBody: []components.Component{
			components.RelatedNotesContainer(components.RelatedNotesOptions{
				Section:      slug.Writings,
				ShowForIndex: true,
				ShowForNotes: true,
				Limit:        5,
				LinkToMore:   writings,
				CTA:          "See all",
			}),
			components.CallToAction(components.CallToActionOptions{}),
			components.AboutAuthor(components.AboutAuthorOptions{}),
			components.DesktopOnly(components.RecentNotes(components.RecentNotesOptions{
				Title:  "All Maps",
				Path:   components.ScopeFolder(slug.Maps),
				Limit:  5,
				Filter: isMap,
				Sort:   components.ByAlphabetical,
			})),
			components.DesktopOnly(components.RelatedNotes(components.RelatedNotesOptions{
				Title:        "Related Maps",
				Section:      slug.Writings,
				ShowForNotes: true,
				Limit:        4,
				Field:        "up",
				LinkToMore:   slug.Simple(slug.Maps + "/"),
				CTA:          "See all →",
			})),
			components.DesktopOnly(components.RelatedNotes(components.RelatedNotesOptions{
				Title:        "Related Essays",
				Section:      slug.Writings,
				ShowForNotes: true,
				Limit:        4,
				Field:        "related",
				LinkToMore:   writings,
				CTA:          "See all →",
			})),
			components.Properties(components.PropertiesOptions{}),
			components.Backlinks(),
		},
		Left: []components.Component{
			components.MobileOnly(components.Spacer()),
			components.DesktopOnly(components.RecentNotes(components.RecentNotesOptions{
				Title:      "Recent Essays",
				Path:       components.ScopeRoot,
				ShowDates:  true,
				Limit:      4,
				Filter:     isWriting,
				LinkToMore: writings,
			})),
			components.DesktopOnly(components.Search()),
		},
		Right: []components.Component{
			components.Graph(components.GraphOptions{}),
			components.Backlinks(),
		},
	}
}

// ListPage is the layout of folder and tag pages.
func ListPage() PageLayout {
	return PageLayout{
		BeforeBody: []components.Component{
			components.Breadcrumbs(components.BreadcrumbOptions{}),
			components.ArticleTitle(),
			components.ContentMeta(components.ContentMetaOptions{}),
		},
		Left: []components.Component{
			components.MobileOnly(components.Spacer()),
		},
	}
}

// NotFoundPage is the layout of the 404 page.
func NotFoundPage() PageLayout {
	return PageLayout{
		BeforeBody: []components.Component{components.ArticleTitle()},
	}
}

// Components lists every component of the shared layout and the given page
// layouts, in declaration order.
func Components(shared SharedLayout, pages ...PageLayout) []components.Component {
	var out []components.Component
	if shared.Head != nil {
		out = append(out, shared.Head)
	}
	out = append(out, shared.Header...)
	for _, p := range pages {
		out = append(out, p.BeforeBody...)
		out = append(out, p.AfterBody...)
		out = append(out, p.Left...)
		out = append(out, p.Right...)
	}
	if shared.Footer != nil {
		out = append(out, shared.Footer)
	}
	return out
}

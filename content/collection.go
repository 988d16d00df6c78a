package content

import (
	"strings"

	"github.com/eringen/garden/slug"
)

// Collection is the read-only set of pages for one render pass.
type Collection struct {
	Pages  []*Page
	bySlug map[slug.Full]*Page
	slugs  []slug.Full
}

// NewCollection indexes pages. The slice is owned by the collection afterwards.
func NewCollection(pages []*Page) *Collection {
	c := &Collection{
		Pages:  pages,
		bySlug: make(map[slug.Full]*Page, len(pages)),
		slugs:  make([]slug.Full, 0, len(pages)),
	}
	for _, p := range pages {
		c.bySlug[p.Slug] = p
		c.slugs = append(c.slugs, p.Slug)
	}
	return c
}

// Len returns the number of pages.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Pages)
}

// Get looks a page up by slug.
func (c *Collection) Get(s slug.Full) (*Page, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.bySlug[s]
	return p, ok
}

// Slugs returns every slug in collection order. Callers must not modify it.
func (c *Collection) Slugs() []slug.Full {
	if c == nil {
		return nil
	}
	return c.slugs
}

// Filter returns the pages pred accepts, in collection order.
func (c *Collection) Filter(pred func(*Page) bool) []*Page {
	if c == nil {
		return nil
	}
	var out []*Page
	for _, p := range c.Pages {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Children returns the pages listed on a folder or tag page: notes directly in
// the folder plus the index pages of its sub-folders, or every page carrying
// the tag.
func (c *Collection) Children(list *Page) []*Page {
	switch list.Kind {
	case KindTag:
		tag := strings.TrimPrefix(string(list.Slug), slug.Tags+"/")
		if tag == "index" {
			return c.Filter(func(p *Page) bool {
				return p.Kind == KindTag && p.Slug != list.Slug
			})
		}
		return c.Filter(func(p *Page) bool {
			if p.Kind == KindTag {
				return false
			}
			for _, t := range p.Frontmatter.Tags {
				if TagSlug(t) == list.Slug {
					return true
				}
			}
			return false
		})
	case KindFolder:
		folder := list.Folder()
		return c.Filter(func(p *Page) bool {
			if p.Slug == list.Slug || p.Kind == KindTag {
				return false
			}
			if p.Kind == KindFolder {
				return slug.Folder(slug.Full(p.Folder())) == folder
			}
			return slug.Folder(p.Slug) == folder
		})
	}
	return nil
}

// Backlinks returns the pages that link to target.
func (c *Collection) Backlinks(target slug.Full) []*Page {
	return c.Filter(func(p *Page) bool {
		if p.Slug == target {
			return false
		}
		for _, l := range p.Links {
			if l == target {
				return true
			}
		}
		return false
	})
}

// TagSlug returns the slug of the list page for tag.
func TagSlug(tag string) slug.Full {
	return slug.Full(slug.JoinSegments(slug.Tags, string(slug.FromFilePath(normalizeTag(tag)))))
}

func normalizeTag(t string) string {
	return strings.TrimPrefix(strings.TrimSpace(t), "#")
}

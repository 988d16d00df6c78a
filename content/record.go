package content

import (
	"fmt"

	"github.com/eringen/garden/slug"
)

// Record is the storable form of a page. Notes keep their source bytes and
// are re-parsed on restore; list pages only need their title.
type Record struct {
	Slug     slug.Full
	FilePath string
	Title    string
	Source   []byte
	Kind     Kind
	Virtual  bool
	Dates    Dates
	Links    []slug.Full
}

// Record returns the storable form of p.
func (p *Page) Record() Record {
	r := Record{
		Slug:     p.Slug,
		FilePath: p.FilePath,
		Title:    p.Title(),
		Source:   p.source,
		Kind:     p.Kind,
		Virtual:  p.Virtual,
		Links:    p.Links,
	}
	if p.Dates != nil {
		r.Dates = *p.Dates
	}
	return r
}

// FromRecord rebuilds a page from its stored form.
func FromRecord(r Record) (*Page, error) {
	var p *Page
	if r.Virtual {
		p = virtualPage(r.Slug, r.Title, r.Kind)
	} else {
		var err error
		p, err = Parse(r.FilePath, r.Source)
		if err != nil {
			return nil, fmt.Errorf("restore %s: %w", r.Slug, err)
		}
		p.Slug = r.Slug
		p.Kind = r.Kind
	}
	if !r.Dates.empty() {
		d := r.Dates
		p.Dates = &d
	}
	p.Links = r.Links
	return p, nil
}

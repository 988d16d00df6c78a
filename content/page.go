// Package content holds the page records a render pass works on and the
// loader that produces them from a folder of markdown notes.
package content

import (
	"strings"
	"time"

	"github.com/eringen/garden/slug"
)

// DateType selects which of a page's dates is shown or sorted on.
type DateType string

const (
	Created   DateType = "created"
	Modified  DateType = "modified"
	Published DateType = "published"
)

// Dates are the resolved timestamps of a page.
type Dates struct {
	Created   time.Time
	Modified  time.Time
	Published time.Time
}

// Get returns the date of the given type, falling back to Created.
func (d *Dates) Get(t DateType) time.Time {
	if d == nil {
		return time.Time{}
	}
	switch t {
	case Modified:
		if !d.Modified.IsZero() {
			return d.Modified
		}
	case Published:
		if !d.Published.IsZero() {
			return d.Published
		}
	}
	return d.Created
}

func (d *Dates) empty() bool {
	return d.Created.IsZero() && d.Modified.IsZero() && d.Published.IsZero()
}

// fill copies every field of other that d has not set yet.
func (d *Dates) fill(other Dates) {
	if d.Created.IsZero() {
		d.Created = other.Created
	}
	if d.Modified.IsZero() {
		d.Modified = other.Modified
	}
	if d.Published.IsZero() {
		d.Published = other.Published
	}
}

// Kind distinguishes notes from generated or folder list pages.
type Kind int

const (
	KindNote Kind = iota
	KindFolder
	KindTag
)

// Page is one content file (or a generated list page). Pages are immutable
// once a Collection has been built from them.
type Page struct {
	Slug        slug.Full
	FilePath    string
	Frontmatter Frontmatter
	Text        string
	Dates       *Dates
	Links       []slug.Full
	Kind        Kind
	Virtual     bool

	source []byte
}

// Title returns the frontmatter title.
func (p *Page) Title() string {
	return p.Frontmatter.Title
}

// IsListPage reports whether p renders with the list layout.
func (p *Page) IsListPage() bool {
	return p.Kind != KindNote
}

// Folder returns the folder a list page describes ("" for notes).
func (p *Page) Folder() string {
	if p.Kind != KindFolder {
		return ""
	}
	return slug.Folder(p.Slug)
}

func kindOf(s slug.Full) Kind {
	switch {
	case strings.HasPrefix(string(s), slug.Tags+"/"):
		return KindTag
	case s != slug.Root && slug.IsIndex(s):
		return KindFolder
	default:
		return KindNote
	}
}

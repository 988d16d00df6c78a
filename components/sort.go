package components

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"

	"github.com/eringen/garden/content"
)

// SortFn orders two pages like strings.Compare.
type SortFn func(a, b *content.Page) int

// FilterFn selects pages for a list.
type FilterFn func(p *content.Page) bool

// titleOrder compares titles case-insensitively under the locale's collation.
// Collators are not safe for concurrent use, so each call borrows one.
func titleOrder(cfg *Config) func(a, b string) int {
	tag := cfg.locale().Tag
	pool := sync.Pool{New: func() any { return collate.New(tag, collate.IgnoreCase) }}
	return func(a, b string) int {
		c := pool.Get().(*collate.Collator)
		defer pool.Put(c)
		return c.CompareString(strings.ToLower(a), strings.ToLower(b))
	}
}

// ByAlphabetical orders pages by title.
func ByAlphabetical(cfg *Config) SortFn {
	cmp := titleOrder(cfg)
	return func(a, b *content.Page) int {
		return cmp(a.Title(), b.Title())
	}
}

// ByDateAndAlphabetical puts dated pages first, newest first, and falls back
// to title order for equal dates and for undated pages.
func ByDateAndAlphabetical(cfg *Config) SortFn {
	cmp := titleOrder(cfg)
	dt := cfg.dateType()
	return func(a, b *content.Page) int {
		switch {
		case a.Dates != nil && b.Dates != nil:
			da, db := a.Dates.Get(dt), b.Dates.Get(dt)
			if c := db.Compare(da); c != 0 {
				return c
			}
		case a.Dates != nil:
			return -1
		case b.Dates != nil:
			return 1
		}
		return cmp(a.Title(), b.Title())
	}
}

package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// LinkKind records how a link-valued frontmatter field was written.
type LinkKind int

const (
	LinkNone LinkKind = iota
	// LinkSingle is a plain string containing a wiki link.
	LinkSingle
	// LinkMany is a list of strings; entries may or may not be wiki links.
	LinkMany
)

// LinkList is a frontmatter field that may hold one wiki link or a list of
// entries. It is resolved once during ingestion.
type LinkList struct {
	Kind  LinkKind
	Items []string
}

// IsZero reports whether the field was absent or held nothing usable.
func (l LinkList) IsZero() bool {
	return l.Kind == LinkNone || len(l.Items) == 0
}

// Targets returns the cleaned targets of every wiki-link item, in order.
func (l LinkList) Targets() []string {
	var out []string
	for _, item := range l.Items {
		if IsWikiLink(item) {
			if t := CleanLink(item); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

var reLinkPunct = regexp.MustCompile(`['"\[\]]+`)

// IsWikiLink reports whether a frontmatter value is written as [[...]].
func IsWikiLink(v string) bool {
	return strings.Contains(v, "[[")
}

// CleanLink reduces a frontmatter link value to its target. For the aliased
// form "[[Alias|target]]" the part after the bar is kept.
func CleanLink(v string) string {
	if strings.Contains(v, "|") {
		v = strings.Split(v, "|")[1]
	}
	return strings.TrimSpace(reLinkPunct.ReplaceAllString(v, ""))
}

// CTA holds the call-to-action fields of a page.
type CTA struct {
	Type     string
	Title    string
	Subtitle string
	Button   string
	FormID   string
}

// Frontmatter is the typed view of a page's metadata block. Fields keeps the
// raw decoded values for properties the typed view does not cover.
type Frontmatter struct {
	Title       string
	Author      string
	State       string
	Description string
	NoIndex     bool
	Tags        []string
	Topic       []string
	CTA         CTA

	Fields     map[string]any
	LinkFields map[string]LinkList
}

// Link returns the link field called name.
func (f Frontmatter) Link(name string) LinkList {
	return f.LinkFields[name]
}

// String returns a raw string property, or "" when absent or not a string.
func (f Frontmatter) String(name string) string {
	s, _ := scalarString(f.Fields[name])
	return s
}

func newFrontmatter(fields map[string]any, fallbackTitle string) Frontmatter {
	if fields == nil {
		fields = map[string]any{}
	}
	fm := Frontmatter{
		Fields:     fields,
		LinkFields: make(map[string]LinkList),
	}
	fm.Title, _ = scalarString(fields["title"])
	if strings.TrimSpace(fm.Title) == "" {
		fm.Title = fallbackTitle
	}
	fm.Author, _ = scalarString(fields["author"])
	fm.State, _ = scalarString(fields["state"])
	fm.Description, _ = scalarString(fields["description"])
	fm.NoIndex = boolField(fields["noindex"])
	fm.Tags = stringList(fields["tags"])
	for i, t := range fm.Tags {
		fm.Tags[i] = normalizeTag(t)
	}
	fm.Topic = stringList(fields["topic"])
	fm.CTA = CTA{
		Type:     fm.String("ctaType"),
		Title:    fm.String("ctaTitle"),
		Subtitle: fm.String("ctaSubtitle"),
		Button:   fm.String("ctaButton"),
		FormID:   fm.String("ctaFormId"),
	}

	for key, raw := range fields {
		if l := linkList(raw); !l.IsZero() {
			fm.LinkFields[key] = l
		}
	}
	return fm
}

func linkList(raw any) LinkList {
	switch v := raw.(type) {
	case string:
		if IsWikiLink(v) {
			return LinkList{Kind: LinkSingle, Items: []string{v}}
		}
	case []any:
		if s, ok := bareWikiLink(v); ok {
			return LinkList{Kind: LinkSingle, Items: []string{s}}
		}
		items := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				if s, ok = bareWikiLink(e); !ok {
					return LinkList{}
				}
			}
			items = append(items, s)
		}
		if len(items) > 0 {
			return LinkList{Kind: LinkMany, Items: items}
		}
	case []string:
		if len(v) > 0 {
			return LinkList{Kind: LinkMany, Items: append([]string(nil), v...)}
		}
	}
	return LinkList{}
}

// bareWikiLink recovers an unquoted [[target]], which YAML decodes as a
// list holding a one-string list.
func bareWikiLink(raw any) (string, bool) {
	outer, ok := raw.([]any)
	if !ok || len(outer) != 1 {
		return "", false
	}
	inner, ok := outer[0].([]any)
	if !ok || len(inner) != 1 {
		return "", false
	}
	s, ok := inner[0].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return "[[" + s + "]]", true
}

func scalarString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case int, int64, float64, bool:
		return fmt.Sprint(v), true
	case time.Time:
		return v.Format("2006-01-02"), true
	}
	return "", false
}

func boolField(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}

// stringList accepts a list of scalars or a comma-separated string.
func stringList(raw any) []string {
	var out []string
	switch v := raw.(type) {
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, e := range v {
			if s, ok := scalarString(e); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dateField parses the first of keys that holds a usable date.
func dateField(fields map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		switch v := fields[k].(type) {
		case time.Time:
			return v
		case string:
			s := strings.TrimSpace(v)
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t
				}
			}
		}
	}
	return time.Time{}
}

package content

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/eringen/garden/slug"
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// [[target]], [[target#anchor]], [[target|alias]] and embeds (![[...]]).
var reWikiLink = regexp.MustCompile(`!?\[\[([^\[\]|#]*)(#[^\[\]|]*)?(\|[^\[\]]*)?\]\]`)

// Parse builds a page from a markdown file. relPath is relative to the content
// root and slash separated.
func Parse(relPath string, data []byte) (*Page, error) {
	fields := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &fields, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", relPath, err)
	}
	s := slug.FromFilePath(relPath)
	base := path.Base(relPath)
	title := strings.TrimSuffix(base, path.Ext(base))
	return &Page{
		Slug:        s,
		FilePath:    relPath,
		Frontmatter: newFrontmatter(fields, title),
		Text:        string(body),
		Kind:        kindOf(s),
		source:      data,
	}, nil
}

// ExtractLinks returns the distinct wiki-link targets in text, in order of
// first appearance.
func ExtractLinks(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range reWikiLink.FindAllStringSubmatch(text, -1) {
		target := strings.TrimSpace(m[1])
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// frontmatterDates reads created/modified/published from the raw fields.
func frontmatterDates(fm Frontmatter) Dates {
	return Dates{
		Created:   dateField(fm.Fields, "created", "date"),
		Modified:  dateField(fm.Fields, "modified", "lastmod", "updated", "last-modified"),
		Published: dateField(fm.Fields, "published", "publishDate", "date"),
	}
}

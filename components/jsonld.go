package components

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/slug"
)

// BuildURL joins path segments onto a base URL. Folder pages keep their
// trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	joined := path.Join(pathSegments...)
	u.Path = path.Join(u.Path, joined)
	if len(pathSegments) > 0 && strings.HasSuffix(pathSegments[len(pathSegments)-1], "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PageURL is the absolute URL of the page with slug s.
func PageURL(base string, s slug.Full) string {
	simple := string(slug.Simplify(s))
	if simple == "/" {
		return BuildURL(base)
	}
	return BuildURL(base, simple)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg *Config) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.PageTitle,
		"url":      BuildURL(cfg.BaseURL),
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD produces a Schema.org Article JSON-LD block for a note.
func ArticleJsonLD(cfg *Config, page *content.Page) string {
	pageURL := PageURL(cfg.BaseURL, page.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    page.Title(),
		"description": page.Frontmatter.Description,
		"url":         pageURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.PageTitle,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   pageURL,
		},
	}
	if page.Dates != nil {
		if d := page.Dates.Get(content.Published); !d.IsZero() {
			data["datePublished"] = d.Format("2006-01-02")
		}
		if d := page.Dates.Get(content.Modified); !d.IsZero() {
			data["dateModified"] = d.Format("2006-01-02")
		}
	}
	author := firstNonEmpty(page.Frontmatter.Author, cfg.Author)
	if author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	if len(page.Frontmatter.Tags) > 0 {
		data["keywords"] = strings.Join(page.Frontmatter.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

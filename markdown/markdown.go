// Package markdown renders note bodies to sanitized HTML as templ components.
// Wiki links are rewritten to relative hrefs before conversion.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/eringen/garden/slug"
)

// Options carries what link rewriting needs to know about the page.
type Options struct {
	Source   slug.Full
	AllSlugs []slug.Full
}

var (
	reWikiLink = regexp.MustCompile(`(!?)\[\[([^\[\]|]*?)(\|[^\[\]]*)?\]\]`)
	reFence    = regexp.MustCompile("^\\s*(```|~~~)")
)

var converter = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(util.Prioritized(linkClasser{}, 100)),
	),
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("a", "span", "pre", "code", "div")
	p.AllowAttrs("tabindex").OnElements("pre")
	return p
}

var strict = bluemonday.StrictPolicy()

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string, opts Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, md, opts); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the sanitized HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string, opts Options) error {
	var raw bytes.Buffer
	if err := converter.Convert([]byte(RewriteWikiLinks(md, opts)), &raw); err != nil {
		return err
	}
	buf.Write(policy.SanitizeBytes(raw.Bytes()))
	return nil
}

// PlainText returns the visible text of md with markup removed.
func PlainText(md string) string {
	var raw bytes.Buffer
	if err := converter.Convert([]byte(RewriteWikiLinks(md, Options{})), &raw); err != nil {
		return md
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(raw.String())))
}

// RewriteWikiLinks turns [[target|alias]] into a markdown link and
// ![[file]] into an image. Fenced code is left alone.
func RewriteWikiLinks(md string, opts Options) string {
	if !strings.Contains(md, "[[") {
		return md
	}
	transform := slug.TransformOptions{Strategy: slug.Shortest, AllSlugs: opts.AllSlugs}
	lines := strings.Split(md, "\n")
	inFence := false
	for i, line := range lines {
		if reFence.MatchString(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = reWikiLink.ReplaceAllStringFunc(line, func(m string) string {
			parts := reWikiLink.FindStringSubmatch(m)
			embed, target, alias := parts[1] == "!", strings.TrimSpace(parts[2]), strings.TrimPrefix(parts[3], "|")
			if target == "" {
				return m
			}
			href := string(slug.TransformLink(opts.Source, target, transform))
			label := alias
			if label == "" {
				label, _ = slug.SplitAnchor(target)
			}
			if embed {
				return "![" + escapeLabel(label) + "](<" + href + ">)"
			}
			return "[" + escapeLabel(label) + "](<" + href + ">)"
		})
	}
	return strings.Join(lines, "\n")
}

func escapeLabel(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

// linkClasser tags links as internal or external so the stylesheet can tell
// them apart.
type linkClasser struct{}

func (linkClasser) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if l, ok := n.(*ast.Link); ok {
			class := "external"
			if isInternal(string(l.Destination)) {
				class = "internal"
			}
			l.SetAttributeString("class", []byte(class))
		}
		return ast.WalkContinue, nil
	})
}

func isInternal(dest string) bool {
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") || strings.HasPrefix(val, ".") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}

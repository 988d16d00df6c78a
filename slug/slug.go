// Package slug turns content file paths into slugs and resolves links between
// pages. A full slug keeps its trailing "index" segment ("maps/index"); a
// simple slug drops it ("maps/"). Every function here is pure.
package slug

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Full is a page identifier without a leading slash, e.g. "essays/on-notes".
type Full string

// Simple is a Full slug with its trailing "index" segment removed.
type Simple string

// Relative is an href relative to the page it appears on.
type Relative string

// Well-known top-level sections of the garden.
const (
	Writings = "essays"
	Maps     = "maps"
	Tags     = "tags"
	Root     = Full("index")
)

// Strategy selects how wiki-link targets are turned into hrefs.
type Strategy string

const (
	// Shortest resolves a target by file name when that name is unique.
	Shortest Strategy = "shortest"
	// Absolute treats every target as a path from the site root.
	Absolute Strategy = "absolute"
	// RelativeStrategy keeps the target relative to the linking page.
	RelativeStrategy Strategy = "relative"
)

// TransformOptions configures TransformLink.
type TransformOptions struct {
	Strategy Strategy
	AllSlugs []Full
}

var reExt = regexp.MustCompile(`\.[A-Za-z0-9]+$`)

func stripSlashes(s string, onlyPrefix bool) string {
	s = strings.TrimPrefix(s, "/")
	if !onlyPrefix {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}

// endsWith reports whether the last path segment of s is suffix.
func endsWith(s, suffix string) bool {
	return s == suffix || strings.HasSuffix(s, "/"+suffix)
}

func trimSuffix(s, suffix string) string {
	if endsWith(s, suffix) {
		s = s[:len(s)-len(suffix)]
	}
	return s
}

// IsIndex reports whether s names a folder index page.
func IsIndex(s Full) bool {
	return endsWith(string(s), "index")
}

// FileName returns the last segment of s.
func FileName(s Full) string {
	str := string(s)
	if i := strings.LastIndex(str, "/"); i >= 0 {
		return str[i+1:]
	}
	return str
}

// Folder returns the folder part of s without a trailing slash ("" at the root).
func Folder(s Full) string {
	str := string(s)
	if i := strings.LastIndex(str, "/"); i >= 0 {
		return str[:i]
	}
	return ""
}

// Simplify drops a trailing "index" segment. The root simplifies to "/".
func Simplify(s Full) Simple {
	res := stripSlashes(trimSuffix(string(s), "index"), true)
	if res == "" {
		return "/"
	}
	return Simple(res)
}

// JoinSegments joins path segments with "/", ignoring empty and bare "/"
// segments. A leading slash on the first argument and a trailing slash on the
// last are preserved.
func JoinSegments(args ...string) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, seg := range args {
		if seg == "" || seg == "/" {
			continue
		}
		parts = append(parts, stripSlashes(seg, false))
	}
	joined := strings.Join(parts, "/")
	if strings.HasPrefix(args[0], "/") {
		joined = "/" + joined
	}
	if strings.HasSuffix(args[len(args)-1], "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}

// PathToRoot returns the relative path from the page at s back to the site root.
func PathToRoot(s Full) Relative {
	depth := 0
	for _, p := range strings.Split(string(s), "/") {
		if p != "" {
			depth++
		}
	}
	if depth <= 1 {
		return "."
	}
	ups := make([]string, depth-1)
	for i := range ups {
		ups[i] = ".."
	}
	return Relative(strings.Join(ups, "/"))
}

// ResolveRelative returns the href that leads from current to target. target
// may be a full or a simple slug.
func ResolveRelative(current Full, target string) Relative {
	return Relative(JoinSegments(string(PathToRoot(current)), string(Simplify(Full(target)))))
}

// InSectionNotIndex reports whether s lives inside section but is not the
// section's own index page.
func InSectionNotIndex(s Full, section string) bool {
	str := string(s)
	return strings.HasPrefix(str, section+"/") && str != section+"/index"
}

// IsFolderPath reports whether a path-like string points at a folder.
func IsFolderPath(s string) bool {
	return strings.HasSuffix(s, "/") ||
		endsWith(s, "index") ||
		strings.HasSuffix(s, "index.md") ||
		strings.HasSuffix(s, "index.html")
}

func sluggify(s string) string {
	segments := strings.Split(s, "/")
	for i, seg := range segments {
		seg = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return '-'
			}
			return r
		}, seg)
		seg = strings.ReplaceAll(seg, "&", "-and-")
		seg = strings.ReplaceAll(seg, "%", "-percent")
		seg = strings.ReplaceAll(seg, "?", "")
		seg = strings.ReplaceAll(seg, "#", "")
		segments[i] = seg
	}
	return strings.TrimSuffix(strings.Join(segments, "/"), "/")
}

// FromFilePath converts a content path relative to the content root into a
// full slug: "Essays/On Notes.md" becomes "Essays/On-Notes".
func FromFilePath(fp string) Full {
	fp = stripSlashes(strings.ReplaceAll(fp, "\\", "/"), false)
	ext := reExt.FindString(fp)
	without := strings.TrimSuffix(fp, ext)
	if ext == ".md" || ext == ".html" {
		ext = ""
	}
	s := sluggify(without)
	if endsWith(s, "_index") {
		s = strings.TrimSuffix(s, "_index") + "index"
	}
	return Full(s + ext)
}

// SplitAnchor separates "path#Some Heading" into "path" and "#some-heading".
func SplitAnchor(link string) (string, string) {
	fp, anchor, found := strings.Cut(link, "#")
	if !found {
		return fp, ""
	}
	if strings.HasSuffix(fp, ".pdf") {
		return fp, "#" + anchor
	}
	return fp, "#" + anchorSlug(anchor)
}

func anchorSlug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}

func addRelativeToStart(s string) string {
	if s == "" {
		return "."
	}
	if !strings.HasPrefix(s, ".") {
		return "./" + s
	}
	return s
}

func transformInternalLink(link string) string {
	decoded, err := url.PathUnescape(link)
	if err != nil {
		decoded = link
	}
	fplike, anchor := SplitAnchor(decoded)
	folder := IsFolderPath(fplike)

	var prefix, rest []string
	for _, seg := range strings.Split(fplike, "/") {
		switch seg {
		case "":
		case ".", "..":
			prefix = append(prefix, seg)
		default:
			rest = append(rest, seg)
		}
	}
	simple := Simplify(FromFilePath(strings.Join(rest, "/")))
	joined := JoinSegments(strings.Join(prefix, "/"), stripSlashes(string(simple), false))
	trail := ""
	if folder {
		trail = "/"
	}
	return addRelativeToStart(joined) + trail + anchor
}

// TransformLink resolves a wiki-link target found on the page src into an href.
func TransformLink(src Full, target string, opts TransformOptions) Relative {
	targetSlug := transformInternalLink(target)
	if opts.Strategy == RelativeStrategy {
		return Relative(targetSlug)
	}

	folderTail := ""
	if IsFolderPath(targetSlug) {
		folderTail = "/"
	}
	canonical := stripSlashes(strings.TrimPrefix(targetSlug, "."), false)
	canonicalPath, anchor := SplitAnchor(canonical)

	if opts.Strategy == Shortest {
		if match, ok := uniqueByName(opts.AllSlugs, canonicalPath); ok {
			return ResolveRelative(src, string(match)) + Relative(anchor)
		}
	}
	return Relative(JoinSegments(string(PathToRoot(src)), canonical) + folderTail)
}

// Resolve returns the slug a wiki-link target points at, if it names a known
// page either by unique file name or by full path.
func Resolve(target string, all []Full) (Full, bool) {
	fp, _ := SplitAnchor(strings.TrimSpace(target))
	if fp == "" {
		return "", false
	}
	candidate := FromFilePath(fp)
	if match, ok := uniqueByName(all, string(candidate)); ok {
		return match, true
	}
	for _, s := range all {
		if s == candidate || s == Full(JoinSegments(string(candidate), "index")) {
			return s, true
		}
	}
	return "", false
}

func uniqueByName(all []Full, name string) (Full, bool) {
	var found Full
	n := 0
	for _, s := range all {
		if FileName(s) == name {
			found = s
			n++
		}
	}
	return found, n == 1
}

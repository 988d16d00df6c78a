package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/eringen/garden/logfields"
	"github.com/eringen/garden/slug"
)

// DateSource names a place page dates are read from.
type DateSource string

const (
	FromFrontmatter DateSource = "frontmatter"
	FromGit         DateSource = "git"
	FromFilesystem  DateSource = "filesystem"
)

// DefaultDatePriority is the order date sources are consulted in. The first
// source that yields a value wins for each field.
var DefaultDatePriority = []DateSource{FromFrontmatter, FromGit, FromFilesystem}

// Loader reads a folder of markdown notes into a Collection.
type Loader struct {
	Root         string
	Ignore       []string // path.Match patterns against the relative path or base name
	DatePriority []DateSource
	Logger       *slog.Logger
}

// Load walks Root and returns every note plus the generated folder and tag
// list pages. Files that fail to parse are skipped with a warning.
func (l *Loader) Load(ctx context.Context) (*Collection, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	priority := l.DatePriority
	if len(priority) == 0 {
		priority = DefaultDatePriority
	}

	root, err := filepath.Abs(l.Root)
	if err != nil {
		return nil, fmt.Errorf("content root %s: %w", l.Root, err)
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("content root %s: %w", l.Root, err)
	}

	var repo *gitDates
	if slices.Contains(priority, FromGit) {
		repo = openGitDates(root, logger)
	}

	var pages []*Page
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || l.ignored(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".md") || l.ignored(rel) {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		page, err := Parse(rel, data)
		if err != nil {
			logger.Warn("skipping unparsable note", logfields.Path(rel), logfields.Error(err))
			return nil
		}
		info, err := d.Info()
		if err != nil {
			info = nil
		}
		page.Dates = resolveDates(priority, page, info, repo, p)
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.Root, err)
	}

	pages = withListPages(pages)
	slices.SortFunc(pages, func(a, b *Page) int {
		return strings.Compare(string(a.Slug), string(b.Slug))
	})
	c := NewCollection(pages)
	resolveLinks(c)

	logger.Debug("content loaded", logfields.Path(root), logfields.Count(len(pages)))
	return c, nil
}

func (l *Loader) ignored(rel string) bool {
	for _, pattern := range l.Ignore {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

func resolveDates(priority []DateSource, p *Page, info fs.FileInfo, repo *gitDates, abs string) *Dates {
	var d Dates
	for _, src := range priority {
		switch src {
		case FromFrontmatter:
			d.fill(frontmatterDates(p.Frontmatter))
		case FromGit:
			d.fill(Dates{Modified: repo.modified(abs)})
		case FromFilesystem:
			if info != nil {
				d.fill(Dates{Created: info.ModTime(), Modified: info.ModTime()})
			}
		}
	}
	if d.Published.IsZero() {
		d.Published = d.Created
	}
	if d.empty() {
		return nil
	}
	return &d
}

// withListPages adds a folder page for every folder lacking an index note and
// a tag page for every tag in use.
func withListPages(pages []*Page) []*Page {
	have := make(map[slug.Full]bool, len(pages))
	for _, p := range pages {
		have[p.Slug] = true
	}
	folders := make(map[string]bool)
	tags := make(map[slug.Full]string)
	for _, p := range pages {
		for f := slug.Folder(p.Slug); f != ""; f = slug.Folder(slug.Full(f)) {
			folders[f] = true
		}
		for _, t := range p.Frontmatter.Tags {
			tags[TagSlug(t)] = t
		}
	}

	for f := range folders {
		s := slug.Full(f + "/index")
		if !have[s] {
			pages = append(pages, virtualPage(s, path.Base(f), KindFolder))
		}
	}
	if len(tags) > 0 {
		if s := slug.Full(slug.Tags + "/index"); !have[s] {
			pages = append(pages, virtualPage(s, "Tags", KindTag))
		}
	}
	for s, t := range tags {
		if !have[s] {
			pages = append(pages, virtualPage(s, t, KindTag))
		}
	}
	return pages
}

func virtualPage(s slug.Full, title string, kind Kind) *Page {
	return &Page{
		Slug:        s,
		Frontmatter: newFrontmatter(nil, title),
		Kind:        kind,
		Virtual:     true,
	}
}

func resolveLinks(c *Collection) {
	all := c.Slugs()
	for _, p := range c.Pages {
		var links []slug.Full
		for _, target := range ExtractLinks(p.Text) {
			if s, ok := slug.Resolve(target, all); ok && !slices.Contains(links, s) {
				links = append(links, s)
			}
		}
		p.Links = links
	}
}

type gitDates struct {
	repo *git.Repository
	root string
}

func openGitDates(dir string, logger *slog.Logger) *gitDates {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debug("no git history for dates", logfields.Path(dir), logfields.Error(err))
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil
	}
	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return &gitDates{repo: repo, root: root}
}

// modified returns the committer time of the last commit touching abs.
func (g *gitDates) modified(abs string) time.Time {
	if g == nil {
		return time.Time{}
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil {
		return time.Time{}
	}
	rel = filepath.ToSlash(rel)
	iter, err := g.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return time.Time{}
	}
	defer iter.Close()
	commit, err := iter.Next()
	if err != nil {
		return time.Time{}
	}
	return commit.Committer.When
}

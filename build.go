package garden

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/garden/content"
	"github.com/eringen/garden/logfields"
)

// BuildResult summarizes one build pass.
type BuildResult struct {
	ID       string
	Pages    int
	Failed   int
	Duration time.Duration
}

// Build renders every page in the index into OutputDir, followed by the
// stylesheet bundle, sitemap, feed, 404 page, avatar and static files.
// Pages render concurrently on Config.Workers goroutines; a page that fails
// is logged and counted and the build carries on.
func (a *App) Build(ctx context.Context) (BuildResult, error) {
	if err := a.open(); err != nil {
		return BuildResult{}, err
	}
	start := time.Now()
	res := BuildResult{ID: uuid.NewString()}
	logger := a.Logger.With(logfields.BuildID(res.ID))

	all, err := a.Cache.Collection(ctx)
	if err != nil {
		return res, fmt.Errorf("garden: %w", err)
	}
	if all.Len() == 0 {
		return res, errNoPages
	}
	if err := os.MkdirAll(a.Config.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("garden: create output dir: %w", err)
	}

	pageErr := a.renderPages(ctx, logger, all, &res)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	assets := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"index.css", func(w io.Writer) error {
			_, err := io.WriteString(w, a.CSS())
			return err
		}},
		{"sitemap.xml", func(w io.Writer) error { return a.writeSitemap(w, all) }},
		{"index.xml", func(w io.Writer) error { return a.writeRSS(w, all) }},
		{"404.html", func(w io.Writer) error { return a.writeNotFound(ctx, w, all) }},
	}
	var errs []error
	for _, asset := range assets {
		if err := a.writeOutput(asset.name, asset.write); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", asset.name, err))
		}
	}
	if err := a.copyStatic(); err != nil {
		errs = append(errs, fmt.Errorf("copy static: %w", err))
	}
	if data, err := a.avatar(); err != nil {
		errs = append(errs, err)
	} else if data != nil {
		if err := a.writeOutput(avatarFile, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}); err != nil {
			errs = append(errs, fmt.Errorf("write avatar: %w", err))
		}
	}

	res.Duration = time.Since(start)
	a.Metrics.observeBuild(res.Duration)
	buildErr := errors.Join(append([]error{pageErr}, errs...)...)

	rec := BuildRecord{ID: res.ID, StartedAt: start, FinishedAt: time.Now(), Pages: res.Pages, Failed: res.Failed}
	if buildErr != nil {
		rec.Error = buildErr.Error()
	}
	if err := a.Store.RecordBuild(ctx, rec); err != nil {
		logger.Warn("failed to record build", logfields.Error(err))
	}

	if buildErr != nil {
		logger.Error("build finished with errors", logfields.Count(res.Failed), logfields.Error(buildErr))
		return res, fmt.Errorf("garden: build: %w", buildErr)
	}
	logger.Info("build finished", logfields.Count(res.Pages), logfields.Path(a.Config.OutputDir), logfields.Since(start))
	return res, nil
}

func (a *App) renderPages(ctx context.Context, logger *slog.Logger, all *content.Collection, res *BuildResult) error {
	jobs := make(chan *content.Page)
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	for range a.Config.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				name, _ := a.layoutFor(p)
				t0 := time.Now()
				err := a.writePage(ctx, p, all)
				a.Metrics.observeRender(name, time.Since(t0), err)

				mu.Lock()
				if err != nil {
					res.Failed++
					errs = append(errs, err)
				} else {
					res.Pages++
				}
				mu.Unlock()
				if err != nil {
					logger.Warn("page failed", logfields.Slug(string(p.Slug)), logfields.Error(err))
				} else {
					logger.Debug("page rendered", logfields.Slug(string(p.Slug)), logfields.Layout(name))
				}
			}
		}()
	}

feed:
	for _, p := range all.Pages {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()
	return errors.Join(errs...)
}

func (a *App) writePage(ctx context.Context, p *content.Page, all *content.Collection) error {
	var buf bytes.Buffer
	if err := a.Page(p, all).Render(ctx, &buf); err != nil {
		return fmt.Errorf("render %s: %w", p.Slug, err)
	}
	name := filepath.FromSlash(string(p.Slug)) + ".html"
	if err := a.writeOutput(name, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	}); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// writeOutput creates name under OutputDir, making parent directories.
func (a *App) writeOutput(name string, write func(io.Writer) error) error {
	path := filepath.Join(a.Config.OutputDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// copyStatic mirrors StaticDir into OutputDir/static. A missing StaticDir is
// not an error.
func (a *App) copyStatic() error {
	src := a.Config.StaticDir
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	dst := filepath.Join(a.Config.OutputDir, "static")
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := os.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

// Package export renders the site to plain files that any static host can
// serve, and publishes them to object storage.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/devfolio/devfolio/assets"
	"github.com/devfolio/devfolio/internal/app"
	"github.com/devfolio/devfolio/internal/ctxkeys"
	"github.com/devfolio/devfolio/internal/handler"
	"github.com/devfolio/devfolio/internal/page"
	"github.com/devfolio/devfolio/internal/service"
	"github.com/devfolio/devfolio/internal/storage"
	"github.com/devfolio/devfolio/internal/subscribe"
	"github.com/devfolio/devfolio/internal/ui/pages"
)

// Site writes every page, feed and asset under outDir and returns the
// written paths relative to it, slash separated.
func Site(ctx context.Context, a *app.App, outDir string) ([]string, error) {
	posts, err := a.BlogService.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	w := &writer{dir: outDir}
	ctx = ctxkeys.WithConfig(ctx, a.Cfg.Sanitized())

	latest, err := a.BlogService.Latest(page.LatestPostsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest posts: %w", err)
	}
	w.page(ctx, "/", "", pages.Home(a.Site, page.Compose(a.Site, latest), subscribe.State{}))
	w.page(ctx, page.BlogPath, "blog", pages.BlogList(a.Site, posts))
	for _, p := range posts.Internal() {
		// Files live at the raw slug; Href is URL-escaped.
		w.page(ctx, p.Href(), path.Join("blog", p.Slug), pages.BlogPost(a.Site, p))
	}
	w.component(ctx, "/404.html", "404.html", pages.NotFound(a.Site))

	postAssets, err := a.BlogService.Assets()
	if err != nil {
		return nil, fmt.Errorf("failed to list post assets: %w", err)
	}
	for _, as := range postAssets {
		w.copy(path.Join("blog", as.Name), as.File)
	}

	sitemap, err := service.NewSitemapService(a.BlogService, a.Site.SiteURL).GenerateSitemap()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sitemap: %w", err)
	}
	w.file("sitemap.xml", sitemap)

	rss, err := service.NewFeedService(a.BlogService, a.Site).GenerateRSS()
	if err != nil {
		return nil, fmt.Errorf("failed to generate rss: %w", err)
	}
	w.file("rss.xml", rss)
	w.file("robots.txt", handler.RobotsTxt(a.Site.SiteURL))

	manifest, err := service.GenerateManifest(a.Site)
	if err != nil {
		return nil, fmt.Errorf("failed to generate manifest: %w", err)
	}
	w.file("site.webmanifest", manifest)

	w.assets()

	if w.err != nil {
		return nil, w.err
	}
	slog.Info("site exported", "dir", outDir, "files", len(w.written), "posts", len(posts))
	return w.written, nil
}

// writer keeps the first error and skips work after it.
type writer struct {
	dir     string
	written []string
	err     error
}

// page renders urlPath into <dir>/index.html.
func (w *writer) page(ctx context.Context, urlPath, dir string, c templ.Component) {
	w.component(ctx, urlPath, path.Join(dir, "index.html"), c)
}

func (w *writer) component(ctx context.Context, urlPath, name string, c templ.Component) {
	if w.err != nil {
		return
	}
	var buf bytes.Buffer
	err := c.Render(ctxkeys.WithURLPath(ctx, urlPath), &buf)
	if err != nil {
		w.err = fmt.Errorf("failed to render %s: %w", urlPath, err)
		return
	}
	w.file(name, buf.Bytes())
}

func (w *writer) file(name string, data []byte) {
	if w.err != nil {
		return
	}
	dst := filepath.Join(w.dir, filepath.FromSlash(name))
	err := os.MkdirAll(filepath.Dir(dst), 0o755)
	if err == nil {
		err = os.WriteFile(dst, data, 0o644)
	}
	if err != nil {
		w.err = fmt.Errorf("failed to write %s: %w", name, err)
		return
	}
	w.written = append(w.written, name)
}

func (w *writer) copy(name, src string) {
	if w.err != nil {
		return
	}
	data, err := os.ReadFile(src)
	if err != nil {
		w.err = fmt.Errorf("failed to read %s: %w", src, err)
		return
	}
	w.file(name, data)
}

func (w *writer) assets() {
	if w.err != nil {
		return
	}
	err := fs.WalkDir(assets.AssetsFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets.AssetsFS, p)
		if err != nil {
			return err
		}
		w.file(path.Join("assets", p), data)
		return w.err
	})
	if err != nil && w.err == nil {
		w.err = fmt.Errorf("failed to copy assets: %w", err)
	}
}

type PublishStats struct {
	Uploaded int
	Deleted  int
}

// Publish uploads every file under dir to store, keyed by its slash
// separated path relative to dir, then deletes stored keys the export no
// longer contains.
func Publish(ctx context.Context, store storage.Storage, dir string) (PublishStats, error) {
	var stats PublishStats
	root := os.DirFS(dir)
	uploaded := make(map[string]bool)

	err := fs.WalkDir(root, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		f, err := root.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		err = store.Save(ctx, p, f, ContentType(p))
		if err != nil {
			return err
		}
		slog.Debug("published", "key", p, "url", store.URL(p))
		uploaded[p] = true
		stats.Uploaded++
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("publish failed after %d files: %w", stats.Uploaded, err)
	}

	keys, err := store.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list published files: %w", err)
	}
	for _, key := range keys {
		if uploaded[key] {
			continue
		}
		err = store.Delete(ctx, key)
		if err != nil {
			return stats, fmt.Errorf("failed to prune %s: %w", key, err)
		}
		slog.Debug("pruned", "key", key)
		stats.Deleted++
	}

	return stats, nil
}

// ContentType guesses from the extension; unknown types are left to the
// store's default.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".xml":
		return "application/xml; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".webmanifest":
		return "application/manifest+json"
	}
	return mime.TypeByExtension(path.Ext(name))
}

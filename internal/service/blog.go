package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/devfolio/devfolio/internal/markdown"
	"github.com/devfolio/devfolio/internal/model"
)

var (
	ErrPostNotFound    = errors.New("blog post not found")
	ErrAssetNotFound   = errors.New("blog asset not found")
	ErrMissingStcURL   = errors.New("isStcArticle is set but stcUrl is empty")
	errPostIsDraft     = errors.New("draft")
	dateLayouts        = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}
	reloadDebounce     = 200 * time.Millisecond
	wordsPerMinute     = 200
	blogContentDirName = "blog"
)

type postFrontmatter struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Date         string `yaml:"date"`
	IsStcArticle bool   `yaml:"isStcArticle"`
	StcURL       string `yaml:"stcUrl"`
	Draft        bool   `yaml:"draft"`
}

// BlogService discovers markdown posts anywhere under <contentPath>/blog. A
// post is either <slug>.md or <slug>/index.md, and the slug is its path
// relative to the blog directory, so blog/2023/go-tips.md is "2023/go-tips".
// The parsed set is cached until Reload is called.
type BlogService struct {
	parser      *markdown.Parser
	contentPath string

	mu     sync.RWMutex
	loaded bool
	posts  model.PostCollection
	bySlug map[string]*model.BlogPost
	// bundles holds the slugs of internal posts written as <slug>/index.md.
	// Other files in those directories are served next to the post.
	bundles map[string]bool
}

// postFile is a discovered markdown source.
type postFile struct {
	path   string
	bundle bool
}

// PostAsset is a file served from a post bundle. Name is relative to the
// blog directory and slash separated.
type PostAsset struct {
	Name string
	File string
}

func NewBlogService(contentPath string) *BlogService {
	return &BlogService{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
	}
}

func (s *BlogService) dir() string {
	return filepath.Join(s.contentPath, blogContentDirName)
}

// Posts returns every post, newest first.
func (s *BlogService) Posts() (model.PostCollection, error) {
	err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts), nil
}

// Latest returns at most n posts, newest first.
func (s *BlogService) Latest(n int) (model.PostCollection, error) {
	posts, err := s.Posts()
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(posts) > n {
		posts = posts[:n]
	}
	return posts, nil
}

// Post returns an internal post by slug. External articles have no page of
// their own and are reported as not found.
func (s *BlogService) Post(slug string) (*model.BlogPost, error) {
	err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	post, ok := s.bySlug[slug]
	s.mu.RUnlock()
	if !ok || !post.Internal() {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
	}
	return post, nil
}

func (s *BlogService) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload()
}

// Reload rescans the content directory and swaps in the new post set.
// Files that fail to parse are logged and skipped.
func (s *BlogService) Reload() error {
	files, err := s.discover()
	if err != nil {
		return err
	}

	posts := make(model.PostCollection, 0, len(files))
	bySlug := make(map[string]*model.BlogPost, len(files))
	bundles := make(map[string]bool)
	for slug, f := range files {
		post, err := s.loadPost(slug, f.path)
		if errors.Is(err, errPostIsDraft) {
			continue
		}
		if err != nil {
			slog.Warn("skipping blog post", "slug", slug, "path", f.path, "error", err)
			continue
		}
		posts = append(posts, post)
		bySlug[slug] = post
		if f.bundle && post.Internal() {
			bundles[slug] = true
		}
	}

	sortPosts(posts)

	s.mu.Lock()
	s.posts = posts
	s.bySlug = bySlug
	s.bundles = bundles
	s.loaded = true
	s.mu.Unlock()

	slog.Debug("blog posts loaded", "count", len(posts), "dir", s.dir())
	return nil
}

// discover walks the blog directory and maps slugs to markdown files. Names
// starting with "." or "_" are skipped. When two files claim the same slug
// the first in walk order wins. A missing blog directory means no posts.
func (s *BlogService) discover() (map[string]postFile, error) {
	files := make(map[string]postFile)
	root := s.dir()

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if hiddenName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f := postFile{path: p}
		slug := strings.TrimSuffix(rel, ".md")
		if d.Name() == "index.md" {
			slug = path.Dir(rel)
			if slug == "." {
				return nil
			}
			f.bundle = true
		}

		if prev, ok := files[slug]; ok {
			slog.Warn("duplicate blog slug", "slug", slug, "kept", prev.path, "ignored", p)
			return nil
		}
		files[slug] = f
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return files, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blog directory: %w", err)
	}

	return files, nil
}

func hiddenName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// inBundle reports whether name, relative to the blog directory, lies inside
// the directory of a bundled internal post.
func (s *BlogService) inBundle(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for dir := path.Dir(name); dir != "."; dir = path.Dir(dir) {
		if s.bundles[dir] {
			return true
		}
	}
	return false
}

// Asset resolves a file stored next to a bundled post, such as an image in
// blog/<slug>/, and returns its path on disk. name is the URL path below
// /blog/. Markdown sources and hidden files are never served.
func (s *BlogService) Asset(name string) (string, error) {
	if !fs.ValidPath(name) || name == "." || strings.HasSuffix(name, ".md") {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if hiddenName(seg) {
			return "", fmt.Errorf("%w: %s", ErrAssetNotFound, name)
		}
	}

	err := s.ensureLoaded()
	if err != nil {
		return "", err
	}
	if !s.inBundle(name) {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}

	file := filepath.Join(s.dir(), filepath.FromSlash(name))
	info, err := os.Lstat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return file, nil
}

// Assets lists every file Asset would serve, for the static export.
func (s *BlogService) Assets() ([]PostAsset, error) {
	err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}

	var out []PostAsset
	root := s.dir()
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && hiddenName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasSuffix(p, ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if s.inBundle(name) {
			out = append(out, PostAsset{Name: name, File: p})
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list blog assets: %w", err)
	}
	return out, nil
}

func (s *BlogService) loadPost(slug, file string) (*model.BlogPost, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read post: %w", err)
	}

	var meta postFrontmatter
	htmlContent, err := s.parser.ParseWithFrontmatter(content, &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse post: %w", err)
	}
	if meta.Draft {
		return nil, errPostIsDraft
	}

	post := &model.BlogPost{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Content:     string(content),
		HTMLContent: string(htmlContent),
		ReadTime:    readTime(string(content)),
	}

	if post.Title == "" {
		post.Title = titleFromSlug(slug)
	}

	if meta.Date != "" {
		date, ok := parseDate(meta.Date)
		if !ok {
			slog.Warn("unparseable post date", "slug", slug, "date", meta.Date)
		}
		post.Date = date
	}

	if meta.IsStcArticle {
		if strings.TrimSpace(meta.StcURL) == "" {
			return nil, ErrMissingStcURL
		}
		post.Target = model.ExternalLink{URL: strings.TrimSpace(meta.StcURL)}
	} else {
		post.Target = model.InternalLink{Slug: slug}
	}

	return post, nil
}

// Watch reloads posts whenever the blog directory changes, until ctx is done.
func (s *BlogService) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	err = os.MkdirAll(s.dir(), 0755)
	if err != nil {
		return fmt.Errorf("failed to create blog directory: %w", err)
	}

	err = addDirs(w, s.dir())
	if err != nil {
		return fmt.Errorf("failed to watch blog directory: %w", err)
	}
	slog.Info("watching blog content", "dir", s.dir())

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			fire = nil
			err := s.Reload()
			if err != nil {
				slog.Error("blog reload failed", "error", err)
			} else {
				slog.Info("blog content reloaded")
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				info, err := os.Stat(ev.Name)
				if err == nil && info.IsDir() {
					err = addDirs(w, ev.Name)
					if err != nil {
						slog.Warn("failed to watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("blog watcher error", "error", err)
		}
	}
}

func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// sortPosts orders newest first; undated posts go last, ties by slug.
func sortPosts(posts model.PostCollection) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case a.Date.IsZero() != b.Date.IsZero():
			return b.Date.IsZero()
		case !a.Date.Equal(b.Date):
			return a.Date.After(b.Date)
		default:
			return a.Slug < b.Slug
		}
	})
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func titleFromSlug(slug string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(path.Base(slug))
	return cases.Title(language.English).String(words)
}

func readTime(content string) int {
	minutes := len(strings.Fields(content)) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

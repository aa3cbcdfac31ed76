package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/devfolio/devfolio/internal/app"
	"github.com/devfolio/devfolio/internal/config"
	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/service"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newApp(t *testing.T) *app.App {
	t.Helper()
	content := t.TempDir()
	writeFile(t, filepath.Join(content, "blog", "first.md"), "---\ntitle: First\ndate: 2024-05-01\n---\nHello there.\n")
	writeFile(t, filepath.Join(content, "blog", "elsewhere.md"), "---\ntitle: Elsewhere\ndate: 2024-04-01\nisStcArticle: true\nstcUrl: https://example.org/elsewhere\n---\n")
	writeFile(t, filepath.Join(content, "blog", "notes", "c# tips.md"), "---\ntitle: C# tips\ndate: 2024-03-01\n---\nTips.\n")
	writeFile(t, filepath.Join(content, "blog", "trip", "index.md"), "---\ntitle: Trip\ndate: 2024-02-01\n---\n![photo](photo.jpg)\n")
	writeFile(t, filepath.Join(content, "blog", "trip", "photo.jpg"), "jpeg")

	blog := service.NewBlogService(content)
	if err := blog.Reload(); err != nil {
		t.Fatal(err)
	}
	return &app.App{
		Cfg:         &config.Config{AppEnv: "production", GTMID: "GTM-TEST"},
		Site:        model.SiteConfig{SiteURL: "https://ana.dev", Name: "Ana", Title: "Ana"}.WithDefaults(),
		BlogService: blog,
	}
}

func TestSite_WritesPagesFeedsAndAssets(t *testing.T) {
	out := t.TempDir()
	written, err := Site(context.Background(), newApp(t), out)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"index.html",
		"blog/index.html",
		"blog/first/index.html",
		"404.html",
		"sitemap.xml",
		"rss.xml",
		"robots.txt",
		"site.webmanifest",
		"assets/css/output.css",
		"blog/notes/c# tips/index.html",
		"blog/trip/index.html",
		"blog/trip/photo.jpg",
	} {
		if !slices.Contains(written, want) {
			t.Errorf("missing %s in %v", want, written)
		}
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(want))); err != nil {
			t.Errorf("%s not on disk: %v", want, err)
		}
	}

	if slices.Contains(written, "blog/elsewhere/index.html") {
		t.Error("external post should not get a page")
	}
	if slices.Contains(written, "blog/trip/index.md") {
		t.Error("markdown source copied into the export")
	}
	for _, name := range written {
		if strings.Contains(name, "%") {
			t.Errorf("escaped file name %q", name)
		}
	}
}

func TestSite_HomeHasFormPlaceholder(t *testing.T) {
	out := t.TempDir()
	if _, err := Site(context.Background(), newApp(t), out); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	home := string(data)

	if !strings.Contains(home, `hx-get="/newsletter/form"`) {
		t.Error("static home should load the subscribe form on demand")
	}
	if strings.Contains(home, `name="csrf_token"`) {
		t.Error("static home must not embed a csrf token")
	}
	if !strings.Contains(home, `<link rel="canonical" href="https://ana.dev/">`) {
		t.Error("canonical url missing")
	}
	if !strings.Contains(home, "GTM-TEST") {
		t.Error("tag manager id missing")
	}
}

type memStore struct {
	objects map[string]string
	types   map[string]string
	failOn  string
}

func (m *memStore) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	if key == m.failOn {
		return errors.New("denied")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = string(b)
	m.types[key] = contentType
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *memStore) URL(key string) string { return "mem://" + key }

func TestPublish(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "blog", "a", "index.html"), "<p>a</p>")
	writeFile(t, filepath.Join(dir, "rss.xml"), "<rss/>")

	store := &memStore{
		objects: map[string]string{"blog/old/index.html": "<p>old</p>", "index.html": "stale"},
		types:   map[string]string{},
	}
	stats, err := Publish(context.Background(), store, dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Uploaded != 3 || stats.Deleted != 1 {
		t.Errorf("stats = %+v, want 3 uploaded and 1 deleted", stats)
	}
	if _, ok := store.objects["blog/old/index.html"]; ok {
		t.Error("stale key was not pruned")
	}
	if store.objects["index.html"] != "<html></html>" {
		t.Errorf("index.html = %q", store.objects["index.html"])
	}
	if store.objects["blog/a/index.html"] != "<p>a</p>" {
		t.Errorf("objects = %v", store.objects)
	}
	if store.types["index.html"] != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", store.types["index.html"])
	}
	if store.types["rss.xml"] != "application/xml; charset=utf-8" {
		t.Errorf("content type = %q", store.types["rss.xml"])
	}
}

func TestPublish_StopsOnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")

	store := &memStore{objects: map[string]string{}, types: map[string]string{}, failOn: "a.txt"}
	_, err := Publish(context.Background(), store, dir)
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Errorf("err = %v", err)
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/service"
	"github.com/devfolio/devfolio/internal/subscribe"
)

type fakePosts struct {
	posts  model.PostCollection
	assets map[string]string
	err    error
}

func (f *fakePosts) Asset(name string) (string, error) {
	if file, ok := f.assets[name]; ok {
		return file, nil
	}
	return "", service.ErrAssetNotFound
}

func (f *fakePosts) Posts() (model.PostCollection, error) { return f.posts, f.err }

func (f *fakePosts) Latest(n int) (model.PostCollection, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.posts) > n {
		return f.posts[:n], nil
	}
	return f.posts, nil
}

func (f *fakePosts) Post(slug string) (*model.BlogPost, error) {
	for _, p := range f.posts {
		if p.Slug == slug && p.Internal() {
			return p, nil
		}
	}
	return nil, service.ErrPostNotFound
}

func testSite() model.SiteConfig {
	return model.SiteConfig{SiteURL: "https://ana.dev", Name: "Ana", Title: "Ana"}.WithDefaults()
}

func manyPosts(n int) model.PostCollection {
	var out model.PostCollection
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range n {
		slug := "post-" + string(rune('a'+i))
		out = append(out, &model.BlogPost{
			Title:  "Post " + slug,
			Slug:   slug,
			Date:   base.AddDate(0, 0, -i),
			Target: model.InternalLink{Slug: slug},
		})
	}
	return out
}

func TestHomePage_ViewAllWithFivePosts(t *testing.T) {
	h := NewHomeHandler(testSite(), &fakePosts{posts: manyPosts(7)})

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `href="/blog/">View all posts`) {
		t.Error("view all link missing")
	}
	if strings.Contains(body, "post-f") {
		t.Error("latest posts should stop at five")
	}
	if !strings.Contains(body, `href="/blog/"`) {
		t.Error("blog link missing")
	}
}

func TestHomePage_PostErrorStillRenders(t *testing.T) {
	h := NewHomeHandler(testSite(), &fakePosts{err: errors.New("disk gone")})

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `id="latest-posts"`) {
		t.Error("latest posts should be omitted")
	}
}

func TestListPosts_Error(t *testing.T) {
	h := NewBlogHandler(testSite(), &fakePosts{err: errors.New("disk gone")})

	rec := httptest.NewRecorder()
	h.ListPosts(rec, httptest.NewRequest(http.MethodGet, "/blog/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestResolve(t *testing.T) {
	img := filepath.Join(t.TempDir(), "map.png")
	if err := os.WriteFile(img, []byte("png bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	posts := manyPosts(1)
	posts = append(posts,
		&model.BlogPost{Title: "Away", Slug: "away", Target: model.ExternalLink{URL: "https://example.org"}},
		&model.BlogPost{Title: "Nested", Slug: "2023/nested", Target: model.InternalLink{Slug: "2023/nested"}},
	)
	h := NewBlogHandler(testSite(), &fakePosts{posts: posts, assets: map[string]string{"2023/nested/map.png": img}})

	tests := []struct {
		path     string
		status   int
		location string
		body     string
	}{
		{"post-a/", http.StatusOK, "", "Post post-a"},
		{"2023/nested/", http.StatusOK, "", "Nested"},
		{"away/", http.StatusNotFound, "", "Page not found"},
		{"nope/", http.StatusNotFound, "", "Page not found"},
		{"2023/nested/map.png", http.StatusOK, "", "png bytes"},
		{"post-a", http.StatusMovedPermanently, "/blog/post-a/", ""},
		{"2023/nested", http.StatusMovedPermanently, "/blog/2023/nested/", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/blog/"+tt.path, nil)
		req.SetPathValue("path", tt.path)
		rec := httptest.NewRecorder()
		h.Resolve(rec, req)
		if rec.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.status)
		}
		if loc := rec.Header().Get("Location"); loc != tt.location {
			t.Errorf("%s: location = %q, want %q", tt.path, loc, tt.location)
		}
		if !strings.Contains(rec.Body.String(), tt.body) {
			t.Errorf("%s: body missing %q", tt.path, tt.body)
		}
	}
}

func TestCanonicalRedirect_KeepsQuery(t *testing.T) {
	h := NewBlogHandler(testSite(), &fakePosts{})

	rec := httptest.NewRecorder()
	h.CanonicalRedirect(rec, httptest.NewRequest(http.MethodGet, "/blog?ref=x", nil))
	if loc := rec.Header().Get("Location"); loc != "/blog/?ref=x" {
		t.Errorf("location = %q", loc)
	}
}

func TestNewsletter_Disabled(t *testing.T) {
	site := testSite()
	off := false
	site.Subscribe.Enabled = &off
	home := NewHomeHandler(site, &fakePosts{})
	calls := 0
	form := subscribe.NewForm(subscribe.ProviderFunc(func(ctx context.Context, email string) (subscribe.Result, error) {
		calls++
		return subscribe.Result{Status: subscribe.StatusSuccess}, nil
	}))
	h := NewNewsletterHandler(site, form, home)

	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", strings.NewReader("email=a%40b.co"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Subscribe(rec, req)

	if rec.Code != http.StatusNotFound || calls != 0 {
		t.Errorf("status = %d, calls = %d", rec.Code, calls)
	}
}

func TestSEO(t *testing.T) {
	h := NewSEOHandler(testSite(), &fakePosts{posts: manyPosts(2)})

	rec := httptest.NewRecorder()
	h.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if !strings.Contains(rec.Body.String(), "https://ana.dev/blog/post-b/") {
		t.Errorf("sitemap = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	if !strings.Contains(rec.Body.String(), "Sitemap: https://ana.dev/sitemap.xml") {
		t.Errorf("robots = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Manifest(rec, httptest.NewRequest(http.MethodGet, "/site.webmanifest", nil))
	if ct := rec.Header().Get("Content-Type"); ct != "application/manifest+json" {
		t.Errorf("manifest content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"theme_color": "#663399"`) {
		t.Errorf("manifest = %s", rec.Body.String())
	}
}

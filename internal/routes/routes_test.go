package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devfolio/devfolio/internal/app"
	"github.com/devfolio/devfolio/internal/config"
	"github.com/devfolio/devfolio/internal/middleware"
	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/service"
	"github.com/devfolio/devfolio/internal/subscribe"
)

type stubProvider struct {
	calls  int
	result subscribe.Result
	err    error
}

func (s *stubProvider) Subscribe(ctx context.Context, email string) (subscribe.Result, error) {
	s.calls++
	return s.result, s.err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T, provider subscribe.Provider) http.Handler {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "blog", "hello.md"), "---\ntitle: Hello\ndate: 2023-01-02\n---\n# Hi\n")
	writeFile(t, filepath.Join(root, "blog", "away.md"), "---\ntitle: Away\ndate: 2022-01-02\nisStcArticle: true\nstcUrl: https://split-techcity.com/away\n---\n")
	writeFile(t, filepath.Join(root, "blog", "2021", "trip", "index.md"), "---\ntitle: Trip\ndate: 2021-05-01\n---\n# Trip\n\n![map](map.txt)\n")
	writeFile(t, filepath.Join(root, "blog", "2021", "trip", "map.txt"), "route data")

	blog := service.NewBlogService(root)
	a := &app.App{
		Cfg: &config.Config{AppEnv: "development", AppURL: "https://ana.dev"},
		Site: model.SiteConfig{
			SiteURL:    "https://ana.dev",
			Name:       "Ana",
			Title:      "Ana",
			Experience: []model.NamedItem{{Name: "Acme", Description: "2019"}},
		}.WithDefaults(),
		BlogService:      blog,
		SubscribeForm:    subscribe.NewForm(provider),
		SubscribeLimiter: middleware.NewSubscribeLimiter(nil),
	}
	return SetupRoutes(a)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// subscribe fetches the home page for a CSRF cookie, then posts the form.
func postSubscribe(t *testing.T, h http.Handler, email string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	home := get(t, h, "/")
	cookies := home.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no csrf cookie")
	}

	form := url.Values{"email": {email}, middleware.CSRFFormField: {cookies[0].Value}}
	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	req.AddCookie(cookies[0])

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Pages(t *testing.T) {
	h := newTestServer(t, &stubProvider{})

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, `id="experience"`},
		{"/blog/", http.StatusOK, "All Blog Posts"},
		{"/blog/hello/", http.StatusOK, `<h1 id="hi">Hi</h1>`},
		{"/blog/away/", http.StatusNotFound, "Page not found"},
		{"/blog/missing/", http.StatusNotFound, "Page not found"},
		{"/blog/2021/trip/", http.StatusOK, `<img src="map.txt" alt="map"`},
		{"/blog/2021/trip/map.txt", http.StatusOK, "route data"},
		{"/site.webmanifest", http.StatusOK, `"start_url": "/"`},
		{"/nope", http.StatusNotFound, "Page not found"},
		{"/robots.txt", http.StatusOK, "Sitemap: https://ana.dev/sitemap.xml"},
		{"/sitemap.xml", http.StatusOK, "<loc>https://ana.dev/blog/hello/</loc>"},
		{"/rss.xml", http.StatusOK, "<link>https://split-techcity.com/away</link>"},
		{"/health/live", http.StatusOK, "ok"},
		{"/assets/css/output.css", http.StatusOK, ".blog-content"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}
}

func TestRoutes_CanonicalRedirects(t *testing.T) {
	h := newTestServer(t, &stubProvider{})

	for path, want := range map[string]string{
		"/blog":                    "/blog/",
		"/blog/hello":              "/blog/hello/",
		"/blog/2021/trip":          "/blog/2021/trip/",
		"/blog/2021/trip/index.md": "/blog/2021/trip/index.md/",
	} {
		rec := get(t, h, path)
		if rec.Code != http.StatusMovedPermanently || rec.Header().Get("Location") != want {
			t.Errorf("%s: %d -> %q", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestRoutes_HomeShowsBlogLinkAndLatestPosts(t *testing.T) {
	body := get(t, newTestServer(t, &stubProvider{}), "/").Body.String()

	if !strings.Contains(body, `id="latest-posts"`) {
		t.Error("latest posts missing")
	}
	if strings.Contains(body, "View all posts") {
		t.Error("view all shown with fewer than 5 posts")
	}
	if !strings.Contains(body, `target="_blank" rel="noopener noreferrer">Away</a>`) {
		t.Error("external post should open in a new tab")
	}
}

func TestSubscribe_HTMXFragment(t *testing.T) {
	p := &stubProvider{result: subscribe.Result{Status: subscribe.StatusSuccess, Msg: "Thanks!"}}
	h := newTestServer(t, p)

	rec := postSubscribe(t, h, "test@example.com", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("htmx request got a full page")
	}
	if !strings.Contains(body, "Thanks!") {
		t.Errorf("success message missing: %s", body)
	}
	if p.calls != 1 {
		t.Errorf("provider calls = %d, want 1", p.calls)
	}
}

func TestSubscribe_InvalidEmailFullPage(t *testing.T) {
	p := &stubProvider{}
	h := newTestServer(t, p)

	rec := postSubscribe(t, h, "plainstring", false)
	body := rec.Body.String()
	if !strings.Contains(body, "<html") {
		t.Error("plain post should get the full page")
	}
	if !strings.Contains(body, subscribe.MsgInvalidEmail) {
		t.Error("validation message missing")
	}
	if p.calls != 0 {
		t.Errorf("provider called %d times", p.calls)
	}
}

func TestSubscribe_ProviderError(t *testing.T) {
	h := newTestServer(t, &stubProvider{err: errors.New("boom")})

	body := postSubscribe(t, h, "test@example.com", true).Body.String()
	if !strings.Contains(body, subscribe.MsgFailed) {
		t.Errorf("generic failure message missing: %s", body)
	}
}

func TestSubscribe_RequiresCSRF(t *testing.T) {
	h := newTestServer(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/newsletter/subscribe", strings.NewReader("email=a%40b.c"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestSubscribe_FormFragment(t *testing.T) {
	rec := get(t, newTestServer(t, &stubProvider{}), "/newsletter/form")
	body := rec.Body.String()
	if !strings.Contains(body, `name="csrf_token"`) || strings.Contains(body, "<html") {
		t.Errorf("form fragment = %s", body)
	}
}

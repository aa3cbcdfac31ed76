package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePost(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, "blog", rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func post(title, date string, extra ...string) string {
	s := "---\ntitle: " + title + "\ndate: " + date + "\ndescription: about " + title + "\n"
	for _, e := range extra {
		s += e + "\n"
	}
	return s + "---\nBody of " + title + ".\n"
}

func TestBlogService_PostsSortedNewestFirst(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "older.md", post("Older", "2021-01-10"))
	writePost(t, root, "newest/index.md", post("Newest", "2023-06-01"))
	writePost(t, root, "middle.md", post("Middle", "2022-02-02"))
	writePost(t, root, "undated.md", "---\ntitle: Undated\n---\ntext")

	posts, err := NewBlogService(root).Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}

	want := []string{"newest", "middle", "older", "undated"}
	if len(posts) != len(want) {
		t.Fatalf("len = %d, want %d", len(posts), len(want))
	}
	for i, slug := range want {
		if posts[i].Slug != slug {
			t.Errorf("posts[%d] = %q, want %q", i, posts[i].Slug, slug)
		}
	}
	if posts[0].DisplayDate() != "June 01, 2023" {
		t.Errorf("display date = %q", posts[0].DisplayDate())
	}
}

func TestBlogService_LatestLimitsAtQuery(t *testing.T) {
	root := t.TempDir()
	for i, d := range []string{"2020-01-01", "2020-02-01", "2020-03-01", "2020-04-01", "2020-05-01", "2020-06-01", "2020-07-01"} {
		writePost(t, root, "p"+string(rune('a'+i))+".md", post("P", d))
	}
	svc := NewBlogService(root)

	latest, err := svc.Latest(5)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 5 {
		t.Fatalf("len = %d, want 5", len(latest))
	}
	if latest[0].Slug != "pg" || latest[4].Slug != "pc" {
		t.Errorf("latest = %s..%s", latest[0].Slug, latest[4].Slug)
	}

	all, _ := svc.Posts()
	if len(all) != 7 {
		t.Errorf("Latest must not truncate the cache, got %d posts", len(all))
	}
}

func TestBlogService_ExternalArticles(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "outside.md", post("Outside", "2022-01-01", "isStcArticle: true", "stcUrl: https://split-techcity.com/post"))
	writePost(t, root, "broken.md", post("Broken", "2022-01-02", "isStcArticle: true"))
	writePost(t, root, "inside.md", post("Inside", "2022-01-03"))

	svc := NewBlogService(root)
	posts, err := svc.Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len = %d, want 2 (broken external skipped)", len(posts))
	}

	if posts[1].Href() != "https://split-techcity.com/post" || posts[1].Internal() {
		t.Errorf("external post href = %q internal = %v", posts[1].Href(), posts[1].Internal())
	}
	if posts[0].Href() != "/blog/inside/" || !posts[0].Internal() {
		t.Errorf("internal post href = %q internal = %v", posts[0].Href(), posts[0].Internal())
	}

	if _, err := svc.Post("outside"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("external Post err = %v, want ErrPostNotFound", err)
	}
	if _, err := svc.Post("inside"); err != nil {
		t.Errorf("internal Post err = %v", err)
	}
}

func TestBlogService_MissingDirectoryIsEmpty(t *testing.T) {
	posts, err := NewBlogService(t.TempDir()).Posts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("len = %d, want 0", len(posts))
	}
}

func TestBlogService_DraftsAndTitleFallback(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "hidden.md", post("Hidden", "2022-01-01", "draft: true"))
	writePost(t, root, "my-first_post.md", "---\ndate: 2022-01-01\n---\nHello")

	posts, err := NewBlogService(root).Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1", len(posts))
	}
	if posts[0].Title != "My First Post" {
		t.Errorf("title = %q", posts[0].Title)
	}
}

func TestBlogService_ReloadPicksUpChanges(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "one.md", post("One", "2022-01-01"))
	svc := NewBlogService(root)

	posts, _ := svc.Posts()
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1", len(posts))
	}

	writePost(t, root, "two.md", post("Two", "2022-01-02"))
	posts, _ = svc.Posts()
	if len(posts) != 1 {
		t.Fatalf("cache should hold until reload, got %d", len(posts))
	}

	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	posts, _ = svc.Posts()
	if len(posts) != 2 || posts[0].Slug != "two" {
		t.Errorf("after reload = %d posts", len(posts))
	}
}

func TestBlogService_WatchReloads(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "one.md", post("One", "2022-01-01"))
	svc := NewBlogService(root)
	if _, err := svc.Posts(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	writePost(t, root, "two.md", post("Two", "2022-01-02"))

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		posts, _ := svc.Posts()
		if len(posts) == 2 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("watcher did not reload new post")
}

func TestBlogService_NestedPosts(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "2023/go-tips.md", post("Go tips", "2023-01-01"))
	writePost(t, root, "2024/deep/bundle/index.md", post("Bundle", "2024-01-01"))
	writePost(t, root, "_drafts/wip.md", post("WIP", "2024-02-01"))
	writePost(t, root, "index.md", post("Root index", "2024-03-01"))

	svc := NewBlogService(root)
	posts, err := svc.Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len = %d, want 2", len(posts))
	}
	if posts[0].Slug != "2024/deep/bundle" || posts[0].Href() != "/blog/2024/deep/bundle/" {
		t.Errorf("bundle = %q %q", posts[0].Slug, posts[0].Href())
	}
	if posts[1].Slug != "2023/go-tips" {
		t.Errorf("nested = %q", posts[1].Slug)
	}
	if _, err := svc.Post("2023/go-tips"); err != nil {
		t.Errorf("Post nested: %v", err)
	}
}

func TestBlogService_DuplicateSlugKeepsFirst(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "dup/index.md", post("Bundle", "2023-01-01"))
	writePost(t, root, "dup.md", post("Flat", "2023-01-02"))

	posts, err := NewBlogService(root).Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Bundle" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestBlogService_Assets(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "trip/index.md", post("Trip", "2023-01-01"))
	writePost(t, root, "trip/img/map.png", "png")
	writePost(t, root, "trip/.secret", "x")
	writePost(t, root, "flat.md", post("Flat", "2023-01-02"))
	writePost(t, root, "loose.png", "png")
	writePost(t, root, "away/index.md", post("Away", "2023-01-03", "isStcArticle: true", "stcUrl: https://example.com/away"))
	writePost(t, root, "away/cover.png", "png")

	svc := NewBlogService(root)

	file, err := svc.Asset("trip/img/map.png")
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	if data, _ := os.ReadFile(file); string(data) != "png" {
		t.Errorf("asset content = %q", data)
	}

	for _, name := range []string{"trip/index.md", "trip/.secret", "loose.png", "away/cover.png", "trip/../loose.png", "trip/missing.png", "trip/img"} {
		if _, err := svc.Asset(name); !errors.Is(err, ErrAssetNotFound) {
			t.Errorf("Asset(%q) err = %v, want ErrAssetNotFound", name, err)
		}
	}

	assets, err := svc.Assets()
	if err != nil {
		t.Fatalf("Assets: %v", err)
	}
	if len(assets) != 1 || assets[0].Name != "trip/img/map.png" {
		t.Errorf("assets = %+v", assets)
	}
}

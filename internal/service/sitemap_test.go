package service

import (
	"strings"
	"testing"
	"time"

	"github.com/devfolio/devfolio/internal/model"
)

type staticPosts model.PostCollection

func (p staticPosts) Posts() (model.PostCollection, error) {
	return model.PostCollection(p), nil
}

func samplePosts() staticPosts {
	return staticPosts{
		{Title: "Go & you", Slug: "go", Description: "why", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), Target: model.InternalLink{Slug: "go"}},
		{Title: "Elsewhere", Slug: "elsewhere", Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), Target: model.ExternalLink{URL: "https://split-techcity.com/elsewhere"}},
	}
}

func TestSitemap(t *testing.T) {
	out, err := NewSitemapService(samplePosts(), "https://ana.dev/").GenerateSitemap()
	if err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<loc>https://ana.dev/</loc>",
		"<loc>https://ana.dev/blog/</loc>",
		"<loc>https://ana.dev/blog/go/</loc>",
		"<lastmod>2023-05-01</lastmod>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("sitemap missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "split-techcity") {
		t.Errorf("external article in sitemap:\n%s", s)
	}
}

func TestRSS(t *testing.T) {
	site := model.SiteConfig{Title: "Ana's blog", Description: "notes", SiteURL: "https://ana.dev"}
	out, err := NewFeedService(samplePosts(), site).GenerateRSS()
	if err != nil {
		t.Fatalf("GenerateRSS: %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`<rss version="2.0">`,
		"<title>Ana&#39;s blog</title>",
		"<title>Go &amp; you</title>",
		"<link>https://ana.dev/blog/go/</link>",
		"<link>https://split-techcity.com/elsewhere</link>",
		"<pubDate>Mon, 01 May 2023 00:00:00 +0000</pubDate>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("feed missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "blog/go/") > strings.Index(s, "split-techcity") {
		t.Error("items not newest first")
	}
}

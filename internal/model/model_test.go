package model

import (
	"strings"
	"testing"
	"time"
)

func TestLinkHref(t *testing.T) {
	tests := []struct {
		name     string
		link     Link
		href     string
		internal bool
	}{
		{"internal", InternalLink{Slug: "hello-world"}, "/blog/hello-world/", true},
		{"internal trims slashes", InternalLink{Slug: "/nested/"}, "/blog/nested/", true},
		{"internal nested", InternalLink{Slug: "2023/go-tips"}, "/blog/2023/go-tips/", true},
		{"internal escapes segments", InternalLink{Slug: "notes/c# tips"}, "/blog/notes/c%23%20tips/", true},
		{"external", ExternalLink{URL: "https://split-techcity.com/a"}, "https://split-techcity.com/a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.Href(); got != tt.href {
				t.Errorf("Href() = %q, want %q", got, tt.href)
			}
			if got := tt.link.Internal(); got != tt.internal {
				t.Errorf("Internal() = %v, want %v", got, tt.internal)
			}
		})
	}
}

func TestBlogPost_NilTargetIsInternal(t *testing.T) {
	p := &BlogPost{Slug: "x"}
	if !p.Internal() || p.Href() != "/blog/x/" {
		t.Errorf("href = %q internal = %v", p.Href(), p.Internal())
	}
	if p.DisplayDate() != "" {
		t.Errorf("undated display = %q", p.DisplayDate())
	}
	p.Date = time.Date(2021, 11, 5, 0, 0, 0, 0, time.UTC)
	if p.DisplayDate() != "November 05, 2021" {
		t.Errorf("display = %q", p.DisplayDate())
	}
}

func TestPostCollection_Internal(t *testing.T) {
	c := PostCollection{
		{Slug: "a", Target: InternalLink{Slug: "a"}},
		{Slug: "b", Target: ExternalLink{URL: "https://example.com/b"}},
		{Slug: "c"},
	}
	got := c.Internal()
	if len(got) != 2 || got[0].Slug != "a" || got[1].Slug != "c" {
		t.Errorf("internal = %v", got)
	}
}

func TestSiteConfig_Validate(t *testing.T) {
	valid := SiteConfig{
		Name:     "Ana",
		Title:    "Ana's site",
		Projects: []NamedItem{{Name: "p", Description: "d"}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	missingDesc := valid
	missingDesc.Skills = []NamedItem{{Name: "Go"}}
	err := missingDesc.Validate()
	if err == nil || !strings.Contains(err.Error(), "cannot be blank") {
		t.Errorf("err = %v, want blank description error", err)
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestSiteConfig_Defaults(t *testing.T) {
	c := SiteConfig{SiteURL: "https://example.com/"}.WithDefaults()
	if c.SiteURL != "https://example.com" {
		t.Errorf("site url = %q", c.SiteURL)
	}
	if c.Subscribe.Button != "Subscribe" {
		t.Errorf("button = %q", c.Subscribe.Button)
	}
	if !c.SubscribeEnabled() {
		t.Error("subscribe should default to enabled")
	}

	off := false
	c.Subscribe.Enabled = &off
	if c.SubscribeEnabled() {
		t.Error("subscribe should be disabled")
	}
}

func TestResolveTheme(t *testing.T) {
	th := ResolveTheme(Theme{Button: Style{"bg-red-600"}})

	btn := th.Button.String()
	if !strings.Contains(btn, "bg-red-600") {
		t.Errorf("override missing: %s", btn)
	}
	if strings.Contains(btn, "bg-blue-600") {
		t.Errorf("conflicting default kept: %s", btn)
	}
	if !strings.Contains(btn, "uppercase") {
		t.Errorf("unrelated default dropped: %s", btn)
	}
	if th.Card.String() != DefaultTheme().Card.String() {
		t.Errorf("card changed without override: %s", th.Card)
	}
}

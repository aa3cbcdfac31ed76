package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/service"
)

type SEOHandler struct {
	site    model.SiteConfig
	sitemap *service.SitemapService
	feed    *service.FeedService
}

func NewSEOHandler(site model.SiteConfig, posts service.PostLister) *SEOHandler {
	return &SEOHandler{
		site:    site,
		sitemap: service.NewSitemapService(posts, site.SiteURL),
		feed:    service.NewFeedService(posts, site),
	}
}

// RobotsTxt allows everything and points at the sitemap.
func RobotsTxt(siteURL string) []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimSuffix(siteURL, "/") + "/sitemap.xml\n")
}

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(RobotsTxt(h.site.SiteURL))
}

func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.sitemap.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}

func (h *SEOHandler) RSS(w http.ResponseWriter, r *http.Request) {
	body, err := h.feed.GenerateRSS()
	if err != nil {
		slog.Error("failed to generate rss feed", "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write(body)
}

func (h *SEOHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	body, err := service.GenerateManifest(h.site)
	if err != nil {
		slog.Error("failed to generate manifest", "error", err)
		http.Error(w, "Failed to generate manifest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/manifest+json")
	w.Write(body)
}

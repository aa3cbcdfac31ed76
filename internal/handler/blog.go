package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/service"
	"github.com/devfolio/devfolio/internal/ui"
	"github.com/devfolio/devfolio/internal/ui/pages"
)

type BlogHandler struct {
	site  model.SiteConfig
	posts Posts
}

func NewBlogHandler(site model.SiteConfig, posts Posts) *BlogHandler {
	return &BlogHandler{site: site, posts: posts}
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Posts()
	if err != nil {
		slog.Error("failed to load blog posts", "error", err)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ServerError(h.site))
		return
	}

	ui.Render(w, r, pages.BlogList(h.site, posts))
}

// Resolve handles everything below /blog/. A trailing slash names a post;
// anything else is a file from a post bundle, or a post URL missing its
// slash.
func (h *BlogHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	p := r.PathValue("path")
	if slug, ok := strings.CutSuffix(p, "/"); ok {
		h.showPost(w, r, slug)
		return
	}

	file, err := h.posts.Asset(p)
	if err == nil {
		http.ServeFile(w, r, file)
		return
	}
	if !errors.Is(err, service.ErrAssetNotFound) {
		slog.Error("failed to resolve blog asset", "path", p, "error", err)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ServerError(h.site))
		return
	}

	h.CanonicalRedirect(w, r)
}

// showPost renders an internal post. External articles and unknown slugs
// are 404s.
func (h *BlogHandler) showPost(w http.ResponseWriter, r *http.Request, slug string) {
	post, err := h.posts.Post(slug)
	if errors.Is(err, service.ErrPostNotFound) {
		ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(h.site))
		return
	}
	if err != nil {
		slog.Error("failed to load blog post", "slug", slug, "error", err)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ServerError(h.site))
		return
	}

	ui.Render(w, r, pages.BlogPost(h.site, post))
}

// CanonicalRedirect sends /blog and /blog/<slug> to their trailing-slash
// form, which is what links and the static export use.
func (h *BlogHandler) CanonicalRedirect(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

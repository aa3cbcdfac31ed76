package handler

import (
	"log/slog"
	"net/http"

	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/page"
	"github.com/devfolio/devfolio/internal/subscribe"
	"github.com/devfolio/devfolio/internal/ui"
	"github.com/devfolio/devfolio/internal/ui/pages"
)

// Posts is the read side of the blog the handlers depend on.
type Posts interface {
	Posts() (model.PostCollection, error)
	Latest(n int) (model.PostCollection, error)
	Post(slug string) (*model.BlogPost, error)
	Asset(name string) (string, error)
}

type HomeHandler struct {
	site  model.SiteConfig
	posts Posts
}

func NewHomeHandler(site model.SiteConfig, posts Posts) *HomeHandler {
	return &HomeHandler{site: site, posts: posts}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, subscribe.State{})
}

// render shows the home page with the subscription form in the given state.
func (h *HomeHandler) render(w http.ResponseWriter, r *http.Request, status int, state subscribe.State) {
	latest, err := h.posts.Latest(page.LatestPostsLimit)
	if err != nil {
		slog.Error("failed to load latest posts", "error", err)
		latest = nil
	}

	ui.RenderStatus(w, r, status, pages.Home(h.site, page.Compose(h.site, latest), state))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(h.site))
}

func (h *HomeHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

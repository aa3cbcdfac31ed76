package handler

import (
	"net/http"

	"github.com/devfolio/devfolio/internal/ctxkeys"
	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/subscribe"
	"github.com/devfolio/devfolio/internal/ui"
	"github.com/devfolio/devfolio/internal/ui/blocks"
)

type NewsletterHandler struct {
	site model.SiteConfig
	form *subscribe.Form
	home *HomeHandler
}

func NewNewsletterHandler(site model.SiteConfig, form *subscribe.Form, home *HomeHandler) *NewsletterHandler {
	return &NewsletterHandler{site: site, form: form, home: home}
}

// Subscribe handles the form post. htmx gets the form fragment back to swap
// in place; a plain browser post gets the whole home page with the form in
// its new state.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if !h.site.SubscribeEnabled() {
		http.NotFound(w, r)
		return
	}

	state := h.form.Submit(r.Context(), r.PostFormValue("email"))

	if ctxkeys.HTMX(r.Context()) {
		ui.Render(w, r, blocks.SubscribeForm(h.site, state))
		return
	}
	h.home.render(w, r, http.StatusOK, state)
}

// Form serves an empty form with a fresh CSRF token. Statically exported
// pages load it on demand.
func (h *NewsletterHandler) Form(w http.ResponseWriter, r *http.Request) {
	if !h.site.SubscribeEnabled() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	ui.Render(w, r, blocks.SubscribeForm(h.site, subscribe.State{}))
}

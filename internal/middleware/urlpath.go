package middleware

import (
	"net/http"

	"github.com/devfolio/devfolio/internal/ctxkeys"
)

// WithURLPath adds the current URL's path to the context
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxWithPath := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctxWithPath))
	})
}

// HTMX flags requests sent by htmx so handlers can answer with a fragment
// instead of a full page.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		isHTMX := r.Header.Get("HX-Request") == "true"
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithHTMX(r.Context(), isHTMX)))
	})
}

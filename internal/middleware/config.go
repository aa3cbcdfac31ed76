package middleware

import (
	"net/http"

	"github.com/devfolio/devfolio/internal/config"
	"github.com/devfolio/devfolio/internal/ctxkeys"
)

// Config puts the sanitized server configuration (environment, public URL,
// tag manager id) into the request context for layouts to read.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

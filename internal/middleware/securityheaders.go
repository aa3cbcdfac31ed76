package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/devfolio/devfolio/internal/ctxkeys"
)

const (
	htmxOrigin = "https://unpkg.com"
	gtmOrigin  = "https://www.googletagmanager.com"
)

// SecurityHeaders sets CSP and the usual hardening headers. It must run after
// Nonce and Config.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		h.Set("Content-Security-Policy", contentSecurityPolicy(GetNonce(r.Context()), cfg != nil && cfg.GTMID != ""))
		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(nonce string, gtm bool) string {
	scripts := []string{"'self'", htmxOrigin}
	if nonce != "" {
		scripts = append(scripts, fmt.Sprintf("'nonce-%s'", nonce))
	}
	frames := "'none'"
	if gtm {
		scripts = append(scripts, gtmOrigin)
		frames = gtmOrigin
	}

	return strings.Join([]string{
		"default-src 'self'",
		"script-src " + strings.Join(scripts, " "),
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self' https://*.google-analytics.com https://*.googletagmanager.com",
		"frame-src " + frames,
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")
}

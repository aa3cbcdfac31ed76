package routes

import (
	"net/http"

	"github.com/devfolio/devfolio/assets"
	"github.com/devfolio/devfolio/internal/app"
	"github.com/devfolio/devfolio/internal/handler"
	"github.com/devfolio/devfolio/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	home := handler.NewHomeHandler(app.Site, app.BlogService)
	blog := handler.NewBlogHandler(app.Site, app.BlogService)
	seo := handler.NewSEOHandler(app.Site, app.BlogService)
	newsletter := handler.NewNewsletterHandler(app.Site, app.SubscribeForm, home)

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.AssetsFS))))

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)
	mux.HandleFunc("GET /rss.xml", seo.RSS)
	mux.HandleFunc("GET /site.webmanifest", seo.Manifest)

	// Health
	mux.HandleFunc("GET /health/live", home.Live)

	// Home
	mux.HandleFunc("GET /{$}", home.HomePage)

	// Blog
	mux.HandleFunc("GET /blog", blog.CanonicalRedirect)
	mux.HandleFunc("GET /blog/{$}", blog.ListPosts)
	mux.HandleFunc("GET /blog/{path...}", blog.Resolve)

	// Newsletter
	limit := middleware.Limit(app.SubscribeLimiter)
	mux.Handle("POST /newsletter/subscribe", limit(http.HandlerFunc(newsletter.Subscribe)))
	mux.HandleFunc("GET /newsletter/form", newsletter.Form)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // before SecurityHeaders and CSRF, which read it
		middleware.Nonce,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.HTMX,
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)
}

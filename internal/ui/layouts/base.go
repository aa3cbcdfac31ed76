package layouts

import (
	"context"
	"encoding/json"
	"html"
	"strings"

	"github.com/devfolio/devfolio/internal/ctxkeys"
	"github.com/devfolio/devfolio/internal/model"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

type Meta struct {
	Title       string
	Description string
}

func pageTitle(site model.SiteConfig, meta Meta) string {
	if meta.Title == "" {
		return site.Title
	}
	return meta.Title + " | " + site.Title
}

func description(site model.SiteConfig, meta Meta) string {
	if meta.Description == "" {
		return site.Description
	}
	return meta.Description
}

func canonical(ctx context.Context, site model.SiteConfig) string {
	return strings.TrimSuffix(site.SiteURL, "/") + ctxkeys.URLPath(ctx)
}

func gtmID(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.GTMID
	}
	return ""
}

// gtmScript is Google's loader with the container id JSON-quoted.
func gtmScript(nonce, id string) string {
	quoted, _ := json.Marshal(id)
	return `<script nonce="` + html.EscapeString(nonce) + `">` +
		"(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime(),event:'gtm.js'});" +
		"var f=d.getElementsByTagName(s)[0],j=d.createElement(s),dl=l!='dataLayer'?'&l='+l:'';j.async=true;" +
		"j.src='https://www.googletagmanager.com/gtm.js?id='+i+dl;f.parentNode.insertBefore(j,f);" +
		"})(window,document,'script','dataLayer'," + string(quoted) + ");</script>"
}

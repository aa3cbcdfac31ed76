package service

import (
	"encoding/json"

	"github.com/devfolio/devfolio/internal/model"
)

// WebManifest is the subset of the web app manifest the site publishes.
type WebManifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	Description     string `json:"description,omitempty"`
	StartURL        string `json:"start_url"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
}

func NewWebManifest(site model.SiteConfig) WebManifest {
	return WebManifest{
		Name:            site.Title,
		ShortName:       site.Name,
		Description:     site.Description,
		StartURL:        "/",
		Display:         "minimal-ui",
		BackgroundColor: site.ThemeColor,
		ThemeColor:      site.ThemeColor,
	}
}

// GenerateManifest renders /site.webmanifest.
func GenerateManifest(site model.SiteConfig) ([]byte, error) {
	return json.MarshalIndent(NewWebManifest(site), "", "  ")
}

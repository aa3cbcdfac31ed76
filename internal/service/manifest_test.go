package service

import (
	"encoding/json"
	"testing"

	"github.com/devfolio/devfolio/internal/model"
)

func TestGenerateManifest(t *testing.T) {
	site := model.SiteConfig{Name: "Ana", Title: "Ana's site", Description: "Engineer"}.WithDefaults()

	body, err := GenerateManifest(site)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, body)
	}
	if got["name"] != "Ana's site" || got["short_name"] != "Ana" || got["start_url"] != "/" {
		t.Errorf("manifest = %v", got)
	}
	if got["theme_color"] != model.DefaultThemeColor || got["background_color"] != model.DefaultThemeColor {
		t.Errorf("colors = %q %q", got["theme_color"], got["background_color"])
	}
	if got["display"] != "minimal-ui" {
		t.Errorf("display = %q", got["display"])
	}
}

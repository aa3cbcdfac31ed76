package pages

import (
	"strconv"

	"github.com/devfolio/devfolio/internal/model"
	"github.com/devfolio/devfolio/internal/page"
)

// formSlot is the index the subscription card is placed before: right after
// the about section, or at the top when there is none.
func formSlot(p page.Page) int {
	for i, s := range p.Sections {
		if s.Kind != page.KindAbout {
			return i
		}
	}
	return len(p.Sections)
}

func siteHeader(site model.SiteConfig) page.Header {
	return page.Header{
		Name:        site.Name,
		Description: site.Description,
		GitHub:      site.GitHub,
		LinkedIn:    site.LinkedIn,
		ShowBlog:    true,
	}
}

func readTimeLabel(minutes int) string {
	if minutes <= 1 {
		return "1 min read"
	}
	return strconv.Itoa(minutes) + " min read"
}

package page

import (
	"github.com/devfolio/devfolio/internal/model"
)

type Header struct {
	Name        string
	Description string
	GitHub      string
	LinkedIn    string
	// ShowBlog is false when there are no posts, hiding the blog link.
	ShowBlog bool
}

type Page struct {
	Header   Header
	Sections []*Section
}

// Compose lays out the home page. Sections come in a fixed order and each one
// is included only when its own data is present.
func Compose(site model.SiteConfig, latest model.PostCollection) Page {
	p := Page{
		Header: Header{
			Name:        site.Name,
			Description: site.Description,
			GitHub:      site.GitHub,
			LinkedIn:    site.LinkedIn,
			ShowBlog:    len(latest) > 0,
		},
	}

	candidates := []*Section{
		About(site.About),
		NamedSection(KindProjects, site.Projects),
		LatestPosts(latest),
		NamedSection(KindExperience, site.Experience),
		NamedSection(KindSkills, site.Skills),
		NamedSection(KindVolunteering, site.Volunteering),
		NamedSection(KindLanguages, site.Languages),
	}
	for _, s := range candidates {
		if s != nil {
			p.Sections = append(p.Sections, s)
		}
	}

	return p
}

// Kinds lists the section kinds in render order.
func (p Page) Kinds() []Kind {
	kinds := make([]Kind, 0, len(p.Sections))
	for _, s := range p.Sections {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

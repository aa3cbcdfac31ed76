package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/devfolio/devfolio/internal/model"
)

// PostLister is the part of BlogService the sitemap and feed need.
type PostLister interface {
	Posts() (model.PostCollection, error)
}

var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "weekly"},
	{"/blog/", "0.8", "weekly"},
}

type SitemapService struct {
	posts   PostLister
	baseURL string
}

func NewSitemapService(posts PostLister, baseURL string) *SitemapService {
	return &SitemapService{
		posts:   posts,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateSitemap lists the home page, the blog index and every post rendered
// by this site. External articles belong to someone else's sitemap.
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	posts, err := s.posts.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	lastMod := ""
	if len(posts) > 0 && !posts[0].Date.IsZero() {
		lastMod = posts[0].Date.Format(time.DateOnly)
	}
	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    lastMod,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	for _, post := range posts.Internal() {
		u := model.SitemapURL{
			Loc:        s.baseURL + post.Href(),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		}
		if !post.Date.IsZero() {
			u.LastMod = post.Date.Format(time.DateOnly)
		}
		sitemap.URLs = append(sitemap.URLs, u)
	}

	return marshalXML(sitemap)
}

func marshalXML(v any) ([]byte, error) {
	output, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []byte(xml.Header + string(output)), nil
}

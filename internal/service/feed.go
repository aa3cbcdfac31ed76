package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/devfolio/devfolio/internal/model"
)

type FeedService struct {
	posts PostLister
	site  model.SiteConfig
}

func NewFeedService(posts PostLister, site model.SiteConfig) *FeedService {
	return &FeedService{posts: posts, site: site}
}

// GenerateRSS builds an RSS 2.0 feed of every post, newest first. Internal
// links are made absolute against the site URL; external articles keep
// their own URL.
func (s *FeedService) GenerateRSS() ([]byte, error) {
	posts, err := s.posts.Posts()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	base := strings.TrimSuffix(s.site.SiteURL, "/")
	channel := model.RSSChannel{
		Title:       s.site.Title,
		Link:        base + "/",
		Description: s.site.Description,
	}
	if len(posts) > 0 && !posts[0].Date.IsZero() {
		channel.LastBuildDate = posts[0].Date.Format(time.RFC1123Z)
	}

	for _, post := range posts {
		link := post.Href()
		if post.Internal() {
			link = base + link
		}
		item := model.RSSItem{
			Title:       post.Title,
			Link:        link,
			GUID:        link,
			Description: post.Description,
		}
		if !post.Date.IsZero() {
			item.PubDate = post.Date.Format(time.RFC1123Z)
		}
		channel.Items = append(channel.Items, item)
	}

	return marshalXML(model.RSS{Version: "2.0", Channel: channel})
}

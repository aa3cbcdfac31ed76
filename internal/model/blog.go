package model

import (
	"net/url"
	"strings"
	"time"
)

// Link is where a post points. It is either an InternalLink rendered by this
// site or an ExternalLink to an article hosted elsewhere.
type Link interface {
	Href() string
	Internal() bool
	isLink()
}

type InternalLink struct {
	Slug string
}

// Href escapes each slug segment, so nested slugs keep their slashes.
func (l InternalLink) Href() string {
	segments := strings.Split(strings.Trim(l.Slug, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "/blog/" + strings.Join(segments, "/") + "/"
}

func (l InternalLink) Internal() bool { return true }

func (InternalLink) isLink() {}

type ExternalLink struct {
	URL string
}

func (l ExternalLink) Href() string { return l.URL }

func (l ExternalLink) Internal() bool { return false }

func (ExternalLink) isLink() {}

type BlogPost struct {
	Title       string
	Slug        string
	Date        time.Time
	Description string
	Target      Link
	Content     string
	HTMLContent string
	ReadTime    int
}

// PostCollection is ordered newest first.
type PostCollection []*BlogPost

// DisplayDate formats the date the way list rows show it, e.g. "March 04, 2022".
func (p *BlogPost) DisplayDate() string {
	if p.Date.IsZero() {
		return ""
	}
	return p.Date.Format("January 02, 2006")
}

func (p *BlogPost) IsExternal() bool {
	_, ok := p.Target.(ExternalLink)
	return ok
}

// Href returns the link target. Posts without a target are treated as internal.
func (p *BlogPost) Href() string {
	if p.Target == nil {
		return InternalLink{Slug: p.Slug}.Href()
	}
	return p.Target.Href()
}

// Internal mirrors Href: a missing target counts as internal.
func (p *BlogPost) Internal() bool {
	if p.Target == nil {
		return true
	}
	return p.Target.Internal()
}

// Internal returns the posts this site renders itself, in order.
func (c PostCollection) Internal() PostCollection {
	var out PostCollection
	for _, p := range c {
		if p.Internal() {
			out = append(out, p)
		}
	}
	return out
}

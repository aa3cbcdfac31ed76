// Package page assembles the home page from site configuration and posts.
// Everything here is pure: the same inputs always give the same sections.
package page

import (
	"strings"

	"github.com/devfolio/devfolio/internal/model"
)

type Kind string

const (
	KindAbout        Kind = "about"
	KindProjects     Kind = "projects"
	KindLatestPosts  Kind = "latest-posts"
	KindAllPosts     Kind = "all-posts"
	KindExperience   Kind = "experience"
	KindSkills       Kind = "skills"
	KindVolunteering Kind = "volunteering"
	KindLanguages    Kind = "languages"
)

// LatestPostsLimit is how many posts the home page asks the repository for.
// The "view all" link shows once that many are supplied.
const LatestPostsLimit = 5

const BlogPath = "/blog/"

var sectionTitles = map[Kind]string{
	KindAbout:        "About Me",
	KindProjects:     "Projects",
	KindLatestPosts:  "Latest Posts",
	KindAllPosts:     "All Blog Posts",
	KindExperience:   "Experience",
	KindSkills:       "Skills",
	KindVolunteering: "Volunteering",
	KindLanguages:    "Languages",
}

func Title(kind Kind) string {
	return sectionTitles[kind]
}

// Row is one summary line inside a section.
type Row struct {
	Name        string
	Description string
	Link        string
	Internal    bool
	Date        string
}

type Section struct {
	Kind  Kind
	Title string
	// Paragraphs is only set for the about section; each paragraph is a list
	// of lines rendered with line breaks between them.
	Paragraphs [][]string
	Rows       []Row
	ViewAll    string
}

// About splits text into paragraphs on blank lines. Blank text gives nil.
func About(text string) *Section {
	var paragraphs [][]string
	var current []string

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}

	if len(paragraphs) == 0 {
		return nil
	}
	return &Section{Kind: KindAbout, Title: Title(KindAbout), Paragraphs: paragraphs}
}

// NamedSection builds a list section from configuration items, keeping their order.
// An empty list gives nil so nothing is rendered.
func NamedSection(kind Kind, items []model.NamedItem) *Section {
	if len(items) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			Name:        item.Name,
			Description: item.Description,
			Link:        item.Link,
		})
	}
	return &Section{Kind: kind, Title: Title(kind), Rows: rows}
}

// PostRows maps posts to rows. External articles link out; everything else
// links to its page on this site.
func PostRows(posts model.PostCollection) []Row {
	rows := make([]Row, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, Row{
			Name:        p.Title,
			Description: p.Description,
			Link:        p.Href(),
			Internal:    p.Internal(),
			Date:        p.DisplayDate(),
		})
	}
	return rows
}

// LatestPosts renders the posts it is given; bounding them is the caller's
// job. The "view all" link appears once LatestPostsLimit posts are supplied.
func LatestPosts(posts model.PostCollection) *Section {
	if len(posts) == 0 {
		return nil
	}

	s := &Section{Kind: KindLatestPosts, Title: Title(KindLatestPosts), Rows: PostRows(posts)}
	if len(posts) >= LatestPostsLimit {
		s.ViewAll = BlogPath
	}
	return s
}

// AllPosts is the unbounded blog index.
func AllPosts(posts model.PostCollection) *Section {
	if len(posts) == 0 {
		return nil
	}
	return &Section{Kind: KindAllPosts, Title: Title(KindAllPosts), Rows: PostRows(posts)}
}

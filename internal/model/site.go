package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const DefaultThemeColor = "#663399"

// SiteConfig is the static description of the site. It is loaded once at
// startup and passed by value to everything that renders it.
type SiteConfig struct {
	SiteURL     string `yaml:"siteUrl"`
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	About       string `yaml:"about"`
	Author      string `yaml:"author"`
	GitHub      string `yaml:"github"`
	LinkedIn    string `yaml:"linkedin"`
	// ThemeColor is used by the web app manifest.
	ThemeColor string `yaml:"themeColor"`

	Projects     []NamedItem `yaml:"projects"`
	Experience   []NamedItem `yaml:"experience"`
	Skills       []NamedItem `yaml:"skills"`
	Volunteering []NamedItem `yaml:"volunteering"`
	Languages    []NamedItem `yaml:"languages"`

	Subscribe SubscribeCopy `yaml:"subscribe"`
	Theme     Theme         `yaml:"theme"`
}

// NamedItem is one row of a list section.
type NamedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// SubscribeCopy holds the text shown around the subscription form.
type SubscribeCopy struct {
	Enabled *bool  `yaml:"enabled"`
	Intro   string `yaml:"intro"`
	CallOut string `yaml:"callOut"`
	Button  string `yaml:"button"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Projects),
		validation.Field(&c.Experience),
		validation.Field(&c.Skills),
		validation.Field(&c.Volunteering),
		validation.Field(&c.Languages),
	)
}

// Validate requires name and description; link stays optional.
func (i NamedItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required),
		validation.Field(&i.Description, validation.Required),
	)
}

// HasAbout reports whether the about text contains anything but whitespace.
func (c SiteConfig) HasAbout() bool {
	return strings.TrimSpace(c.About) != ""
}

// SubscribeEnabled defaults to true when the flag is omitted.
func (c SiteConfig) SubscribeEnabled() bool {
	return c.Subscribe.Enabled == nil || *c.Subscribe.Enabled
}

// WithDefaults fills copy and theme values the YAML file left out.
func (c SiteConfig) WithDefaults() SiteConfig {
	if c.Subscribe.Intro == "" {
		c.Subscribe.Intro = "Want to stay up to date on the latest programming trends and techniques?"
	}
	if c.Subscribe.CallOut == "" {
		c.Subscribe.CallOut = "Subscribe to the email list and never miss a post!"
	}
	if c.Subscribe.Button == "" {
		c.Subscribe.Button = "Subscribe"
	}
	if c.ThemeColor == "" {
		c.ThemeColor = DefaultThemeColor
	}
	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")
	c.Theme = ResolveTheme(c.Theme)
	return c
}

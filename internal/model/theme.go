package model

import (
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Style is a list of utility classes.
type Style []string

func (s Style) String() string {
	return strings.Join(s, " ")
}

// Theme carries the classes for the subscription form elements. Values from
// site.yaml are merged over the defaults, so a configured "bg-red-600" replaces
// the default background instead of competing with it.
type Theme struct {
	Card    Style `yaml:"card"`
	Input   Style `yaml:"input"`
	Button  Style `yaml:"button"`
	Error   Style `yaml:"error"`
	Success Style `yaml:"success"`
}

func DefaultTheme() Theme {
	return Theme{
		Card: Style{"block", "p-6", "rounded-lg", "shadow-lg", "bg-white", "blog-content"},
		Input: Style{
			"form-control", "block", "w-full", "px-3", "py-1.5", "text-base", "font-normal",
			"text-gray-700", "bg-white", "bg-clip-padding", "border", "border-solid", "border-gray-300",
			"rounded", "transition", "ease-in-out", "m-0",
			"focus:text-gray-700", "focus:bg-white", "focus:border-blue-600", "focus:outline-none",
		},
		Button: Style{
			"w-full", "px-6", "py-3", "bg-blue-600", "text-white", "font-medium", "text-xs",
			"leading-tight", "uppercase", "rounded", "shadow-md",
			"hover:bg-blue-700", "hover:shadow-lg",
			"focus:bg-blue-700", "focus:shadow-lg", "focus:outline-none", "focus:ring-0",
			"active:bg-blue-800", "active:shadow-lg",
			"transition", "duration-150", "ease-in-out",
		},
		Error:   Style{"text-red-600", "pt-6"},
		Success: Style{"pt-6"},
	}
}

// ResolveTheme merges override on top of DefaultTheme.
func ResolveTheme(override Theme) Theme {
	def := DefaultTheme()
	return Theme{
		Card:    mergeStyle(def.Card, override.Card),
		Input:   mergeStyle(def.Input, override.Input),
		Button:  mergeStyle(def.Button, override.Button),
		Error:   mergeStyle(def.Error, override.Error),
		Success: mergeStyle(def.Success, override.Success),
	}
}

func mergeStyle(base, override Style) Style {
	if len(override) == 0 {
		return base
	}
	return strings.Fields(twmerge.Merge(base.String(), override.String()))
}

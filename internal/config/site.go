package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/devfolio/devfolio/internal/model"
)

// Validator is implemented by configuration types that can check themselves.
type Validator interface {
	Validate() error
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} with the variable's value when NAME is set. Bare
// $ signs and references to unset variables are kept as written.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		if v, ok := os.LookupEnv(ref[2 : len(ref)-1]); ok {
			return v
		}
		return ref
	})
}

// Load reads a YAML file into target, expanding ${VAR} references from the
// environment, and runs target's Validate method when it has one.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := expandEnv(string(data))

	err = yaml.Unmarshal([]byte(expanded), target)
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		err = v.Validate()
		if err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// LoadSite loads and validates the site description. siteURL is used when the
// file has no siteUrl of its own.
func LoadSite(filename, siteURL string) (model.SiteConfig, error) {
	var site model.SiteConfig
	err := Load(filename, &site)
	if err != nil {
		return model.SiteConfig{}, err
	}
	if site.SiteURL == "" {
		site.SiteURL = siteURL
	}
	return site.WithDefaults(), nil
}

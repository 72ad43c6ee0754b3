package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Slugs that collide with platform routes or look official.
var reservedSlugs = map[string]bool{
	"admin": true, "api": true, "app": true, "studio": true, "www": true,
	"slyde": true, "slydes": true, "about": true, "pricing": true,
	"login": true, "signup": true, "logout": true, "dashboard": true,
	"settings": true, "support": true, "help": true, "blog": true,
	"terms": true, "privacy": true, "waitlist": true, "demo": true,
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// NormalizeSlug lowercases and trims before validation.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateSlug reports whether a normalized slug is usable as an
// organization or Slyde identifier.
func ValidateSlug(s string) error {
	s = NormalizeSlug(s)
	if len(s) < 3 {
		return errors.New("slug must be at least 3 characters")
	}
	if len(s) > 30 {
		return errors.New("slug must be at most 30 characters")
	}
	if !slugPattern.MatchString(s) {
		return errors.New("slug may only contain lowercase letters, numbers, hyphens and underscores")
	}
	if reservedSlugs[s] {
		return errors.New("slug is reserved")
	}
	return nil
}

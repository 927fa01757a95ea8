package utils

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile("[^a-z0-9 ]+")

// GenerateSlug creates a URL-friendly slug from a string
func GenerateSlug(input string) string {
	slug := strings.ToLower(input)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

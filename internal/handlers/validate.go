package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxEmailLen = 320
	maxTitleLen = 300
	maxSlugLen  = 200
	maxURLLen   = 2000
	maxDescLen  = 2000
)

// emailPattern is a pragmatic shape check, not an RFC 5322 validator. The
// round trip to the inbox is the real proof of deliverability.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// slugPattern restricts slugs to lowercase letters, digits and hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validEmail reports whether the input looks like an email address.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && len(email) <= maxEmailLen && emailPattern.MatchString(email)
}

// validSlug reports whether the input is a usable URL slug.
func validSlug(slug string) bool {
	return slug != "" && len(slug) <= maxSlugLen && slugPattern.MatchString(slug)
}

// validateTitle checks a required title field and returns the first error found.
func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateURL checks an optional URL-ish field for length only.
func validateURL(url string) string {
	if utf8.RuneCountInString(url) > maxURLLen {
		return "URL is too long (max 2,000 characters)."
	}
	return ""
}

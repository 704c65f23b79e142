// Package slug maps course titles to URL-safe identifiers.
//
// Encoding is one-directional: a slug is resolved back to a course by lookup,
// never by decoding.
package slug

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Encode lowercases title, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims leading and trailing hyphens.
func Encode(title string) string {
	s := strings.ToLower(title)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in encoded form.
func Valid(s string) bool {
	return s != "" && Encode(s) == s
}

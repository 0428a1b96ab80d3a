package utils

import (
	"regexp"
	"strings"
)

var (
	// \s is ASCII only in RE2; \p{Z} and \v cover NBSP and the Unicode spaces
	slugInvalidChars = regexp.MustCompile(`[^A-Za-z0-9\s\p{Z}\v-]`)
	slugWhitespace   = regexp.MustCompile(`[\s\p{Z}\v]+`)
	slugHyphens      = regexp.MustCompile(`-+`)
)

// Slugify turns a human title into a URL-safe link.
// It does not check uniqueness, the links table does.
func Slugify(title string) string {
	s := slugInvalidChars.ReplaceAllString(title, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(strings.ToLower(s), "-")
}

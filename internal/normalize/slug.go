package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a URL-safe identifier from title: diacritics are stripped,
// letters lowercased, and every run of other characters collapses to one "-".
func Slug(title string) string {
	// transform chains carry state and must not be shared between goroutines.
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(stripMarks, title)
	if err != nil {
		s = title
	}
	s = strings.TrimSpace(strings.ToLower(s))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

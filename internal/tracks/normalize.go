package tracks

import (
	"regexp"
	"strings"
)

var (
	withParenRegex  = regexp.MustCompile(`\s*\(with [^)]+\)`)
	parenRegex      = regexp.MustCompile(`\s*\([^)]+\)`)
	punctRegex      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize maps a track title to its canonical comparison form. The result
// is used only for matching, never for display.
//
// A leading article is moved to the end ("The Wind" -> "wind, the" before
// punctuation stripping) following library filing convention, so articles
// don't dominate prefix comparisons.
func Normalize(title string) string {
	norm := strings.ToLower(title)

	if strings.HasPrefix(norm, "the ") {
		norm = norm[4:] + ", the"
	}

	norm = strings.ReplaceAll(norm, " is a ", " is ")
	norm = strings.ReplaceAll(norm, " is the ", " is ")

	norm = strings.ReplaceAll(norm, "(stripped)", "")
	norm = strings.ReplaceAll(norm, "(edit)", "")
	norm = strings.ReplaceAll(norm, "stripped", "")
	norm = strings.ReplaceAll(norm, "edit", "")

	norm = withParenRegex.ReplaceAllString(norm, "")
	norm = parenRegex.ReplaceAllString(norm, "")
	norm = punctRegex.ReplaceAllString(norm, "")
	norm = whitespaceRegex.ReplaceAllString(norm, " ")

	return strings.TrimSpace(norm)
}

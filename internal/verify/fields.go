package verify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FieldMatch represents the comparison result for a single release-level
// field (title, artist, publisher).
type FieldMatch struct {
	Expected string  `json:"expected" yaml:"expected"`
	Actual   string  `json:"actual" yaml:"actual"`
	Score    float64 `json:"score" yaml:"score"`
	Method   string  `json:"method" yaml:"method"`
	Notes    string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

var (
	titleLineRegex     = regexp.MustCompile(`(?im)^\s*Title:\s*(.+)$`)
	artistLineRegex    = regexp.MustCompile(`(?im)^\s*(?:Artist|Author|Performer)s?:\s*(.+)$`)
	publisherLineRegex = regexp.MustCompile(`(?im)^\s*(?:Publisher|Label):\s*(.+)$`)

	fieldPunctRegex = regexp.MustCompile(`[^\w\s]`)
)

// CompareReleaseFields compares the release-level fields both blobs carry
// as labeled lines. Fields absent from either side are skipped rather
// than penalized; the track listing is the real signal and these field
// scores only annotate the report.
func CompareReleaseFields(metadataText, catalogText string) map[string]FieldMatch {
	fields := map[string]*regexp.Regexp{
		"title":     titleLineRegex,
		"artist":    artistLineRegex,
		"publisher": publisherLineRegex,
	}

	result := make(map[string]FieldMatch)
	for name, re := range fields {
		expected := firstLineValue(re, metadataText)
		actual := firstLineValue(re, catalogText)
		if expected == "" && actual == "" {
			continue
		}
		result[name] = compareField(expected, actual)
	}
	return result
}

// compareField scores a pair of field values: exact after normalization,
// then substring containment, then Levenshtein-based similarity.
func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{Expected: expected, Actual: actual}

	if expected == "" || actual == "" {
		match.Score = 0.0
		match.Method = "missing"
		match.Notes = "field present on only one side"
		return match
	}

	expNorm := normalizeField(expected)
	actNorm := normalizeField(actual)

	if expNorm == actNorm {
		match.Score = 1.0
		match.Method = "exact"
		return match
	}

	if strings.Contains(expNorm, actNorm) || strings.Contains(actNorm, expNorm) {
		match.Score = 0.8
		match.Method = "substring"
		return match
	}

	similarity := levenshteinSimilarity(expNorm, actNorm)
	match.Score = similarity
	switch {
	case similarity > 0.7:
		match.Method = "fuzzy_high"
	case similarity > 0.4:
		match.Method = "fuzzy_medium"
	default:
		match.Method = "no_match"
	}
	match.Notes = fmt.Sprintf("similarity %.2f", similarity)
	return match
}

func firstLineValue(re *regexp.Regexp, text string) string {
	if match := re.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

func normalizeField(text string) string {
	text = strings.ToLower(text)
	text = fieldPunctRegex.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

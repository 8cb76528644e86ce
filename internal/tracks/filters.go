package tracks

import "strings"

// sentinelValues are placeholder strings that show up where real track
// titles are missing from the source text.
var sentinelValues = map[string]bool{
	"not visible": true,
	"n/a":         true,
	"unavailable": true,
	"none":        true,
}

// fieldNameEchoes are metadata field labels that the looser extraction
// patterns sometimes capture in place of an actual title.
var fieldNameEchoes = map[string]bool{
	"number":               true,
	"title":                true,
	"titletransliteration": true,
	"composer":             true,
	"lyricist":             true,
	"duration":             true,
	"isrc":                 true,
	"not applicable":       true,
	"not visible":          true,
}

// isSentinel reports whether a candidate is a "no data" placeholder or
// empty after trimming.
func isSentinel(candidate string) bool {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return true
	}
	return sentinelValues[strings.ToLower(trimmed)]
}

// isFieldEcho reports whether a candidate is a field-name label rather
// than a title.
func isFieldEcho(candidate string) bool {
	return fieldNameEchoes[strings.ToLower(candidate)]
}

// isAnnotation reports whether a candidate looks like a descriptive note
// instead of a track title: it mentions "note", reads like a contents
// summary, or runs longer than any plausible title.
func isAnnotation(candidate string) bool {
	lower := strings.ToLower(candidate)
	if strings.Contains(lower, "note") {
		return true
	}
	if strings.HasPrefix(lower, "contains") {
		return true
	}
	return len(strings.Fields(candidate)) > 8
}

// appendTrack adds a cleaned candidate to the list unless it is a
// sentinel or already present.
func appendTrack(list []string, candidate string) []string {
	cleaned := strings.TrimSpace(candidate)
	if isSentinel(cleaned) {
		return list
	}
	for _, existing := range list {
		if existing == cleaned {
			return list
		}
	}
	return append(list, cleaned)
}

package tracks

import (
	"regexp"
	"strings"
)

// Catalog record dumps hold one or more records separated by "Record N:"
// headers or dashed separator lines. Each record carries an identifier line
// and, ideally, a content field listing the tracks in the " -- " delimited
// cataloging convention.

var (
	contentFieldRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?s)Content:\s*(.*?)(?:\n\s*[A-Z][a-z]+:|$)`),
		regexp.MustCompile(`(?s)Description:.*?Content:\s*(.*?)(?:\n\s*[A-Z][a-z]+:|$)`),
	}

	performerCreditRegex = regexp.MustCompile(`\s*/\s*[^(]+`)
	segmentDurationRegex = regexp.MustCompile(`\s*\(\d+[:.]\d+\)\.?$`)
	trailingParenRegex   = regexp.MustCompile(`\s*\([^)]*\)$`)
	durationRunRegex     = regexp.MustCompile(`([^-()]+?)\s*\(\d+[:.]\d+\)`)
)

// FromCatalogRecord returns the track list belonging to the record in text
// whose identifier line matches catalogID. An unknown identifier or a
// record with no content section yields an empty list, never an error.
func FromCatalogRecord(text, catalogID string) []string {
	section := recordSection(text, catalogID)
	if section == "" {
		return nil
	}

	var found []string
	if content := contentField(section); content != "" {
		if strings.Contains(content, " -- ") {
			for _, segment := range strings.Split(content, " -- ") {
				found = appendTrack(found, cleanSegment(segment))
			}
		} else {
			// First delimiter present in the content wins.
			for _, delimiter := range []string{"\n", ";", ","} {
				if !strings.Contains(content, delimiter) || len(found) > 0 {
					continue
				}
				for _, segment := range strings.Split(content, delimiter) {
					found = appendTrack(found, cleanSegment(segment))
				}
			}
		}
	}

	if len(found) == 0 {
		// No recognizable content field: scan the whole record section
		// for "<title> (mm:ss)" shaped runs.
		for _, match := range durationRunRegex.FindAllStringSubmatch(section, -1) {
			found = appendTrack(found, match[1])
		}
	}

	return found
}

// recordSection isolates the sub-text of the record matching catalogID,
// bounded by the next record header, separator line, or end of text.
func recordSection(text, catalogID string) string {
	if strings.TrimSpace(catalogID) == "" {
		return ""
	}
	sectionRegex := regexp.MustCompile(
		`(?s)(OCLC Number:\s*` + regexp.QuoteMeta(catalogID) + `\b.*?)(?:Record \d+:|-{40}|$)`)
	match := sectionRegex.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// contentField locates the content/description field inside a record
// section, supporting a Content label nested after a Description label.
func contentField(section string) string {
	for _, re := range contentFieldRegexes {
		if match := re.FindStringSubmatch(section); match != nil {
			return strings.TrimSpace(match[1])
		}
	}
	return ""
}

// cleanSegment strips the trailing annotations catalogers append to each
// content segment: a closing period, a "/ performer credit" suffix, a
// parenthesized duration, and any other trailing parenthetical. Sentinel
// segments are rejected before stripping, since the credit strip would
// otherwise rewrite "N/A" into a plausible-looking title.
func cleanSegment(segment string) string {
	cleaned := strings.TrimSpace(segment)
	cleaned = strings.TrimSuffix(cleaned, ".")
	if isSentinel(cleaned) {
		return ""
	}
	cleaned = performerCreditRegex.ReplaceAllString(cleaned, "")
	cleaned = segmentDurationRegex.ReplaceAllString(cleaned, "")
	cleaned = trailingParenRegex.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

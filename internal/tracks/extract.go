package tracks

import (
	"regexp"
	"strings"
)

// Track extraction from free-text metadata is necessarily heuristic: the
// descriptions deviate from any fixed schema, so extraction runs an ordered
// list of strategies, from the most structured convention to the loosest,
// until enough titles have been recovered.

// sufficientTracks is the point at which the strategy cascade stops: fewer
// results than this and the next, looser strategy gets a chance to add more.
const sufficientTracks = 3

var (
	contentsSectionRegex = regexp.MustCompile(`(?s)Contents:\s*-\s*tracks:\s*\[(.*?)\]`)
	trackObjectRegex     = regexp.MustCompile(`\{\s*"number":\s*\d+,\s*"title":\s*"([^"]+)"`)
	looseTitleRegex      = regexp.MustCompile(`"title":\s*([^,\n}]+)`)

	// Progressively looser title-field patterns, tried in order.
	flexibleTitleRegexes = []*regexp.Regexp{
		regexp.MustCompile(`"number":\s*\d+,\s*"title":\s*"([^"]+)"`),
		regexp.MustCompile(`"number":\s*\d+,\s*"title":\s*([^,\n]+),`),
		regexp.MustCompile(`(?s)"title":\s*"([^"]+)"[^}]*?"duration":\s*\d+:\d+`),
		regexp.MustCompile(`"title":\s*"([^"]+)"`),
	}

	trackSectionRegex   = regexp.MustCompile(`(?si)(?:Track\s+list(?:ing)?|Contents|Tracks):\s*(.*?)(?:\n\s*\w+:|$)`)
	ordinalOrQuoteRegex = regexp.MustCompile(`(?:\d+[.)]\s*|"\s*)([^"\n(]+)(?:"|\n|\(|$)`)
	titleDurationRegex  = regexp.MustCompile(`([^,;]+)\s*\(\d+:\d+\)`)
)

// metadataStrategy is one step in the extraction cascade. Each strategy
// merges any titles it finds into the list built so far.
type metadataStrategy struct {
	name    string
	extract func(text string, found []string) []string
}

var metadataStrategies = []metadataStrategy{
	{name: "structured-contents", extract: extractStructuredContents},
	{name: "flexible-title-fields", extract: extractFlexibleTitleFields},
	{name: "labeled-track-section", extract: extractLabeledSections},
}

// FromMetadata returns a best-effort ordered track list pulled out of a
// free-text metadata description. Strategies run in order until at least
// sufficientTracks titles are found; the worst case is an empty list,
// never an error.
func FromMetadata(text string) []string {
	var found []string
	for _, strategy := range metadataStrategies {
		if len(found) >= sufficientTracks {
			break
		}
		found = strategy.extract(text, found)
	}

	filtered := make([]string, 0, len(found))
	for _, track := range found {
		if isFieldEcho(track) || isAnnotation(track) {
			continue
		}
		filtered = append(filtered, track)
	}
	return filtered
}

// extractStructuredContents handles the embedded "Contents: - tracks: [...]"
// convention, pulling {"number": N, "title": "..."} entries out of the
// bracketed section and falling back to a looser "title": value pattern
// when no entry-shaped objects match.
func extractStructuredContents(text string, found []string) []string {
	section := contentsSectionRegex.FindStringSubmatch(text)
	if section == nil {
		return found
	}
	tracksContent := section[1]

	before := len(found)
	for _, match := range trackObjectRegex.FindAllStringSubmatch(tracksContent, -1) {
		found = appendTrack(found, match[1])
	}
	if len(found) > before {
		return found
	}

	for _, match := range looseTitleRegex.FindAllStringSubmatch(tracksContent, -1) {
		title := strings.TrimSpace(match[1])
		title = strings.TrimSuffix(title, ",")
		if strings.HasPrefix(title, `"`) && strings.HasSuffix(title, `"`) && len(title) >= 2 {
			title = title[1 : len(title)-1]
		}
		found = appendTrack(found, title)
	}
	return found
}

// extractFlexibleTitleFields retries the whole text with a cascade of
// progressively looser title-field patterns, merging titles not already
// present.
func extractFlexibleTitleFields(text string, found []string) []string {
	for _, re := range flexibleTitleRegexes {
		if len(found) >= sufficientTracks {
			break
		}
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			title := strings.TrimSuffix(strings.TrimSpace(match[1]), ",")
			found = appendTrack(found, title)
		}
	}
	return found
}

// extractLabeledSections is the last resort: find a "Track listing" /
// "Contents" / "Tracks:" labeled free-text section and split it on ordinal
// markers, quotation marks, or a (mm:ss) duration suffix.
func extractLabeledSections(text string, found []string) []string {
	for _, section := range trackSectionRegex.FindAllStringSubmatch(text, -1) {
		var candidates []string
		for _, match := range ordinalOrQuoteRegex.FindAllStringSubmatch(section[1], -1) {
			candidates = append(candidates, match[1])
		}
		for _, match := range titleDurationRegex.FindAllStringSubmatch(section[1], -1) {
			candidates = append(candidates, match[1])
		}
		for _, candidate := range candidates {
			found = appendTrack(found, candidate)
		}
	}
	return found
}

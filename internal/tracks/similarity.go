package tracks

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// MatchThreshold is the best-match score at or above which a track counts
// as matched.
const MatchThreshold = 0.8

// Classification tags recorded in the match trace.
const (
	TagExact       = "exact"
	TagSubstring   = "substring"
	TagWordOverlap = "word-overlap"
	TagMultiPart   = "multi-part"
	TagNone        = "none"
)

// TrackMatch is the per-track record of a scoring pass: the source title,
// the best catalog counterpart found for it, the similarity of that pair,
// and how the pair was classified. Counterpart is empty when no candidate
// scored above zero.
type TrackMatch struct {
	Source      string  `json:"source" yaml:"source"`
	Counterpart string  `json:"counterpart,omitempty" yaml:"counterpart,omitempty"`
	Score       float64 `json:"score" yaml:"score"`
	Tag         string  `json:"tag" yaml:"tag"`
	Matched     bool    `json:"matched" yaml:"matched"`
}

// Symbol returns the check/cross marker used in human-readable notes.
func (m TrackMatch) Symbol() string {
	if m.Matched {
		return "✓"
	}
	return "✗"
}

var partEntryRegex = regexp.MustCompile(`(?i)^(?:Part|Movement)\s*(\d+|[IVX]+)$`)

// consolidatedEntry is one comparison unit of the metadata list: either a
// plain track title, or a synthetic entry standing in for a main title plus
// its enumerated parts.
type consolidatedEntry struct {
	display string
	main    string // bare main title when parts > 0
	parts   int
}

// Score compares a metadata-derived track list against a catalog-derived
// one and returns a similarity percentage in [0, 100] plus a per-track
// trace. Order of either list is irrelevant to the score. Returns 0 with
// an empty trace when either list is empty.
//
// Entries matching "Part N" / "Movement N" that immediately follow a
// non-part metadata entry are grouped with that entry and compared as one
// unit; multi-movement works align poorly token-for-token, so a grouped
// list scoring under 80 gets a bonus of up to 10 points, capped at 80.
func Score(metaTracks, catalogTracks []string) (float64, []TrackMatch) {
	if len(metaTracks) == 0 || len(catalogTracks) == 0 {
		return 0.0, nil
	}

	entries, grouped := consolidateParts(metaTracks)
	if len(entries) == 0 {
		return 0.0, nil
	}

	normCandidates := make([]string, len(catalogTracks))
	for i, track := range catalogTracks {
		normCandidates[i] = Normalize(track)
	}

	sum := 0.0
	trace := make([]TrackMatch, 0, len(entries))
	for _, entry := range entries {
		match := bestMatch(entry, catalogTracks, normCandidates)
		if match.Matched {
			sum += match.Score
		}
		trace = append(trace, match)
	}

	percent := sum / float64(len(entries)) * 100
	if grouped && percent < 80 {
		percent = math.Min(80.0, percent+10.0)
	}
	return percent, trace
}

// BestMatch finds the best-scoring catalog counterpart for a single track
// title. This is the same decision Score makes per track, exposed for
// callers that build per-track comparison notes.
func BestMatch(title string, candidates []string) TrackMatch {
	normCandidates := make([]string, len(candidates))
	for i, candidate := range candidates {
		normCandidates[i] = Normalize(candidate)
	}
	return bestMatch(consolidatedEntry{display: title}, candidates, normCandidates)
}

// consolidateParts groups runs of "Part N" / "Movement N" entries under
// their immediately preceding non-part entry, replacing main and parts
// with one synthetic entry. A part with no preceding main title stays
// standalone; the limitation that interleaved non-part entries break a
// group is intentional.
func consolidateParts(metaTracks []string) ([]consolidatedEntry, bool) {
	var entries []consolidatedEntry
	grouped := false

	i := 0
	for i < len(metaTracks) {
		title := metaTracks[i]
		if partEntryRegex.MatchString(title) {
			entries = append(entries, consolidatedEntry{display: title})
			i++
			continue
		}

		parts := 0
		for i+1+parts < len(metaTracks) && partEntryRegex.MatchString(metaTracks[i+1+parts]) {
			parts++
		}
		if parts > 0 {
			entries = append(entries, consolidatedEntry{
				display: fmt.Sprintf("%s (with %d parts)", title, parts),
				main:    title,
				parts:   parts,
			})
			grouped = true
			i += 1 + parts
		} else {
			entries = append(entries, consolidatedEntry{display: title})
			i++
		}
	}

	return entries, grouped
}

func bestMatch(entry consolidatedEntry, candidates, normCandidates []string) TrackMatch {
	best := TrackMatch{Source: entry.display, Tag: TagNone}

	for i, candidate := range normCandidates {
		var score float64
		var tag string
		if entry.parts > 0 {
			score, tag = multiPartScore(Normalize(entry.main), candidate)
		} else {
			score, tag = pairScore(Normalize(entry.display), candidate)
		}
		if score > best.Score {
			best.Score = score
			best.Counterpart = candidates[i]
			best.Tag = tag
		}
	}

	best.Matched = best.Score >= MatchThreshold
	if best.Counterpart == "" {
		best.Tag = TagNone
	}
	return best
}

// multiPartScore treats containment of the bare main title in a candidate
// (or vice versa) as a strong match; otherwise it falls back to the
// general similarity ratio.
func multiPartScore(normMain, normCandidate string) (float64, string) {
	if strings.Contains(normCandidate, normMain) || strings.Contains(normMain, normCandidate) {
		return 0.95, TagMultiPart
	}
	return Ratio(normMain, normCandidate), TagNone
}

// matchStrategy is one named rule for scoring a normalized title pair.
// apply reports whether the rule is applicable and, if so, its score.
type matchStrategy struct {
	tag   string
	apply func(a, b string) (float64, bool)
}

// The substring and word-overlap rules overlap in applicability; they are
// kept as explicitly ordered strategies with the maximum score across all
// applicable strategies retained, so the precedence stays auditable.
var matchStrategies = []matchStrategy{
	{tag: TagExact, apply: exactScore},
	{tag: TagWordOverlap, apply: wordOverlapScore},
	{tag: TagSubstring, apply: substringScore},
	{tag: TagNone, apply: ratioScore},
}

func pairScore(a, b string) (float64, string) {
	bestScore, bestTag := -1.0, TagNone
	for _, strategy := range matchStrategies {
		score, ok := strategy.apply(a, b)
		if !ok {
			continue
		}
		if score > bestScore {
			bestScore = score
			bestTag = strategy.tag
		}
	}
	return bestScore, bestTag
}

func exactScore(a, b string) (float64, bool) {
	if a != b {
		return 0, false
	}
	return 1.0, true
}

// wordOverlapScore applies when at least 60% of the smaller word set also
// appears in the other set.
func wordOverlapScore(a, b string) (float64, bool) {
	aWords := wordSet(a)
	bWords := wordSet(b)

	shorter := len(aWords)
	if len(bWords) < shorter {
		shorter = len(bWords)
	}
	if shorter == 0 {
		return 0, false
	}

	common := 0
	for word := range aWords {
		if bWords[word] {
			common++
		}
	}

	required := int(float64(shorter) * 0.6)
	if required < 1 {
		required = 1
	}
	if common < required {
		return 0, false
	}
	return math.Max(0.8, float64(common)/float64(shorter)), true
}

func substringScore(a, b string) (float64, bool) {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0, false
	}
	return math.Max(0.85, Ratio(a, b)), true
}

func ratioScore(a, b string) (float64, bool) {
	return Ratio(a, b), true
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(s) {
		set[word] = true
	}
	return set
}

package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Confidence represents the confidence level of a title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// RankedCandidate is one catalog record scored by title similarity to the
// release metadata.
type RankedCandidate struct {
	OCLCNumber string
	Title      string
	Score      float64
	Confidence Confidence
}

var (
	candidateOCLCRegex  = regexp.MustCompile(`OCLC Number:\s*(\d+)`)
	candidateTitleRegex = regexp.MustCompile(`(?m)^\s*Title:\s*(.+)$`)
	rankSeparatorRegex  = regexp.MustCompile(`Record \d+:|-{40}`)

	rankPunctRegex = regexp.MustCompile(`[^\w\s]`)
)

// RankCandidates scores every record in a candidate dump by Jaro-Winkler
// similarity between its title and the release title, best first. The
// ranking pre-sorts candidates before LLM analysis so the likeliest
// records appear early in the prompt; it decides nothing on its own.
func RankCandidates(releaseTitle, dump string) []RankedCandidate {
	var ranked []RankedCandidate
	target := cleanTitle(releaseTitle)

	for _, section := range rankSeparatorRegex.Split(dump, -1) {
		oclc := candidateOCLCRegex.FindStringSubmatch(section)
		title := candidateTitleRegex.FindStringSubmatch(section)
		if oclc == nil || title == nil {
			continue
		}

		candidateTitle := strings.TrimSpace(title[1])
		score := 0.0
		if target != "" {
			// Jaro-Winkler favors shared prefixes, a good fit for
			// release titles that differ in subtitles or editions.
			score = float64(edlib.JaroWinklerSimilarity(target, cleanTitle(candidateTitle)))
		}
		ranked = append(ranked, RankedCandidate{
			OCLCNumber: oclc[1],
			Title:      candidateTitle,
			Score:      score,
			Confidence: confidenceFor(score),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func cleanTitle(title string) string {
	title = strings.ToLower(title)
	title = rankPunctRegex.ReplaceAllString(title, "")
	return strings.Join(strings.Fields(title), " ")
}

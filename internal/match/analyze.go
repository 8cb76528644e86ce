package match

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/hannahmoutran/ai-music-metadata/internal/providers"
)

const systemPrompt = "Read through the metadata and OCLC results, and determine if one of the OCLC records is a good match."

const promptTemplate = `Analyze the following OCLC results based on the given metadata and determine which result is most likely correct. At times, there will be more than one record that seems to fit the criteria. This is because there are many duplicate records in OCLC. In that case, choose the best match, but if all things are more or less equal, prioritize records that have more holdings. If there is no likely match, write "No matching records found".

**Important Instructions**:
1. Confidence Score: 0%% indicates no confidence, and 100%% indicates high confidence that we have found the correct OCLC number.
2. ***Key Fields***:
   - Title, artist/performer, and publisher are very important factors.
   - Format: it is essential that this match. The result must match the physical object described in the metadata.
   - Track Listings if available: these should be mostly identical, but minor differences are acceptable, such as punctuation or capitalization. If the track listings are significantly different, this is likely not the correct record.
   - UPC: if available, this should be compared to the OCLC record. If the UPC is different, this is likely not the correct record.
3. Holdings: If there are multiple records that match the metadata, prioritize records with more holdings.
4. Avoid Cognitive Bias:
   - Explicitly compare all records and do not default to the first-listed record without a thorough evaluation of all options.
5. If there is no likely match, write "No matching records found".

Format for Response:
- Your response must follow this format exactly:
  1. OCLC number: [number or 'No matching records found']
  2. Confidence score: [%%]
  3. Explanation: [List of things that match as key value pairs. If there are multiple records that could be a match, explain why you chose the one you did. If there are no matches, explain why.]
  4. Other potential good matches: [List of other OCLC numbers that could be good matches, if applicable. No explanation, just numbers separated by commas.]

Metadata: %s

OCLC Results: %s
`

// Analysis is the parsed outcome of a record-match request.
type Analysis struct {
	OCLCNumber   string
	Confidence   float64
	Explanation  string
	OtherMatches []string
}

// Analyzer asks an LLM provider which candidate catalog record matches a
// release's metadata.
type Analyzer struct {
	provider    providers.Provider
	model       string
	temperature float64
	log         *slog.Logger
}

// NewAnalyzer creates an Analyzer backed by the given provider and model.
func NewAnalyzer(provider providers.Provider, model string, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{
		provider:    provider,
		model:       model,
		temperature: 0.5,
		log:         log,
	}
}

// Analyze submits the metadata and candidate records dump and parses the
// structured response.
func (a *Analyzer) Analyze(ctx context.Context, metadata, catalogResults string) (*Analysis, error) {
	if strings.TrimSpace(metadata) == "" || strings.TrimSpace(catalogResults) == "" {
		return nil, fmt.Errorf("metadata and catalog results are required")
	}
	if catalogResults == "No matching records found" {
		return &Analysis{OCLCNumber: "Not found", Explanation: "No matching records found"}, nil
	}

	response, err := a.provider.Complete(ctx, providers.Config{
		Model:       a.model,
		Temperature: a.temperature,
		System:      systemPrompt,
		Prompt:      BuildPrompt(metadata, catalogResults),
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("match analysis request failed: %w", err)
	}

	analysis := ParseAnalysis(response)
	a.log.Debug("Match analysis complete",
		"oclc", analysis.OCLCNumber, "confidence", analysis.Confidence)
	return &analysis, nil
}

// BuildPrompt renders the match-analysis prompt for one release.
func BuildPrompt(metadata, catalogResults string) string {
	return fmt.Sprintf(promptTemplate, metadata, catalogResults)
}

var trailingOrdinalRegex = regexp.MustCompile(`\s+\d+\.\s*$`)

// ParseAnalysis extracts the labeled fields out of a match-analysis
// response. Responses that stray from the requested format degrade to
// defaults rather than failing: an unparseable response scores zero.
func ParseAnalysis(response string) Analysis {
	analysis := Analysis{
		OCLCNumber:  "Not found",
		Explanation: "Could not parse response",
	}

	if _, rest, ok := strings.Cut(response, "OCLC number:"); ok {
		line, _, _ := strings.Cut(rest, "\n")
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, line)
		if digits != "" {
			analysis.OCLCNumber = digits
		}
	}

	if _, rest, ok := strings.Cut(response, "Confidence score:"); ok {
		raw, _, _ := strings.Cut(rest, "%")
		if value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			analysis.Confidence = min(100, max(0, value))
		}
	}

	if _, rest, ok := strings.Cut(response, "Explanation:"); ok {
		explanation, _, _ := strings.Cut(rest, "Other potential good matches:")
		explanation = strings.TrimSpace(explanation)
		// The response template numbers its sections; drop a dangling
		// "4." left over from the next section's marker.
		explanation = strings.TrimSpace(strings.TrimSuffix(explanation, "4."))
		explanation = trailingOrdinalRegex.ReplaceAllString(explanation, "")
		if explanation != "" {
			analysis.Explanation = explanation
		}
	}

	if _, rest, ok := strings.Cut(response, "Other potential good matches:"); ok {
		for _, candidate := range strings.Split(rest, ",") {
			candidate = strings.TrimSpace(candidate)
			candidate = strings.Trim(candidate, ".")
			if candidate == "" || strings.EqualFold(candidate, "none") || strings.EqualFold(candidate, "n/a") {
				continue
			}
			if _, err := strconv.Atoi(candidate); err == nil {
				analysis.OtherMatches = append(analysis.OtherMatches, candidate)
			}
		}
	}

	return analysis
}

package match

import (
	"context"
	"strings"
	"testing"

	"github.com/hannahmoutran/ai-music-metadata/internal/providers"
)

type fakeProvider struct {
	response string
	prompt   string
}

func (f *fakeProvider) Complete(_ context.Context, config providers.Config) (string, error) {
	f.prompt = config.Prompt
	return f.response, nil
}

const wellFormedResponse = `1. OCLC number: 123456789
2. Confidence score: 92%
3. Explanation: Title: match, Artist: match, Track listing: identical. Chose this record over 987654 because it has more holdings. 4.
4. Other potential good matches: 987654, 555555`

func TestParseAnalysis(t *testing.T) {
	analysis := ParseAnalysis(wellFormedResponse)

	if analysis.OCLCNumber != "123456789" {
		t.Errorf("OCLC number = %q, want 123456789", analysis.OCLCNumber)
	}
	if analysis.Confidence != 92 {
		t.Errorf("confidence = %.0f, want 92", analysis.Confidence)
	}
	if strings.HasSuffix(analysis.Explanation, "4.") {
		t.Errorf("explanation kept the dangling section marker: %q", analysis.Explanation)
	}
	if !strings.Contains(analysis.Explanation, "Track listing: identical") {
		t.Errorf("explanation = %q", analysis.Explanation)
	}
	if len(analysis.OtherMatches) != 2 || analysis.OtherMatches[0] != "987654" {
		t.Errorf("other matches = %v, want [987654 555555]", analysis.OtherMatches)
	}
}

func TestParseAnalysisClampsConfidence(t *testing.T) {
	analysis := ParseAnalysis("OCLC number: 42\nConfidence score: 150%")
	if analysis.Confidence != 100 {
		t.Errorf("confidence = %.0f, want clamped to 100", analysis.Confidence)
	}

	analysis = ParseAnalysis("OCLC number: 42\nConfidence score: -5%")
	if analysis.Confidence != 0 {
		t.Errorf("confidence = %.0f, want clamped to 0", analysis.Confidence)
	}
}

func TestParseAnalysisMalformedResponse(t *testing.T) {
	analysis := ParseAnalysis("I could not decide.")

	if analysis.OCLCNumber != "Not found" {
		t.Errorf("OCLC number = %q, want Not found", analysis.OCLCNumber)
	}
	if analysis.Confidence != 0 {
		t.Errorf("confidence = %.0f, want 0", analysis.Confidence)
	}
	if analysis.Explanation != "Could not parse response" {
		t.Errorf("explanation = %q", analysis.Explanation)
	}
}

func TestParseAnalysisNoMatch(t *testing.T) {
	analysis := ParseAnalysis(`1. OCLC number: No matching records found
2. Confidence score: 0%
3. Explanation: The formats differ.
4. Other potential good matches: None`)

	if analysis.OCLCNumber != "Not found" {
		t.Errorf("OCLC number = %q, want Not found", analysis.OCLCNumber)
	}
	if len(analysis.OtherMatches) != 0 {
		t.Errorf("other matches = %v, want none", analysis.OtherMatches)
	}
}

func TestAnalyzeSendsMetadataAndResults(t *testing.T) {
	provider := &fakeProvider{response: wellFormedResponse}
	analyzer := NewAnalyzer(provider, "gpt-4o-mini", nil)

	analysis, err := analyzer.Analyze(context.Background(), "Title: Blue Horizons", "OCLC Number: 123456789\nTitle: Blue Horizons")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.OCLCNumber != "123456789" {
		t.Errorf("OCLC number = %q", analysis.OCLCNumber)
	}
	if !strings.Contains(provider.prompt, "Metadata: Title: Blue Horizons") {
		t.Errorf("prompt missing metadata section:\n%s", provider.prompt)
	}
	if !strings.Contains(provider.prompt, "OCLC Results: OCLC Number: 123456789") {
		t.Errorf("prompt missing results section:\n%s", provider.prompt)
	}
}

func TestAnalyzeRequiresInput(t *testing.T) {
	analyzer := NewAnalyzer(&fakeProvider{}, "gpt-4o-mini", nil)
	if _, err := analyzer.Analyze(context.Background(), "", "results"); err == nil {
		t.Error("empty metadata should be rejected")
	}
	if _, err := analyzer.Analyze(context.Background(), "metadata", ""); err == nil {
		t.Error("empty results should be rejected")
	}
}

func TestAnalyzeNoCandidates(t *testing.T) {
	analyzer := NewAnalyzer(&fakeProvider{}, "gpt-4o-mini", nil)
	analysis, err := analyzer.Analyze(context.Background(), "metadata", "No matching records found")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.OCLCNumber != "Not found" {
		t.Errorf("OCLC number = %q, want Not found without a provider call", analysis.OCLCNumber)
	}
}

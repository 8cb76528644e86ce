package verify

import (
	"strings"
	"testing"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
)

const catalogSeparator = "----------------------------------------"

func sampleMetadata() string {
	return `Title: Blue Horizons
Artist: Test Quartet
publicationDate: 1995
Contents:
- tracks: [{"number": 1, "title": "Morning Song"} {"number": 2, "title": "Evening Song"} {"number": 3, "title": "Night Song"}]`
}

func sampleCatalog(year, content string) string {
	return strings.Join([]string{
		"Record 1:",
		"OCLC Number: 123456",
		"Title: Blue Horizons",
		"Author: Test Quartet",
		"publicationDate: ©" + year,
		"Content: " + content,
		catalogSeparator,
	}, "\n")
}

func sampleRecord() dataset.ReleaseRecord {
	return dataset.ReleaseRecord{
		Barcode:        "39151000123456",
		Metadata:       sampleMetadata(),
		CatalogResults: sampleCatalog("1995", "Morning Song -- Evening Song -- Night Song."),
		OCLCNumber:     "123456",
		Confidence:     92,
		Explanation:    "The track listing and publication year match the catalog record.",
	}
}

func TestVerifyRecordCleanMatch(t *testing.T) {
	result := NewVerifier(nil).VerifyRecord(sampleRecord())

	if result.Skipped {
		t.Fatalf("record skipped: %s", result.SkipReason)
	}
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if len(result.MetadataTracks) != 3 {
		t.Fatalf("metadata tracks = %v, want 3 titles", result.MetadataTracks)
	}
	if len(result.CatalogTracks) != 3 {
		t.Fatalf("catalog tracks = %v, want 3 titles", result.CatalogTracks)
	}
	if result.Similarity != 100 {
		t.Errorf("similarity = %.2f, want 100", result.Similarity)
	}
	if result.Adjusted {
		t.Error("matching record should not be adjusted")
	}
	if result.NewConfidence != 92 {
		t.Errorf("new confidence = %.0f, want 92 (unchanged)", result.NewConfidence)
	}
	if !result.YearMatch {
		t.Error("years 1995/1995 should match")
	}
	if !strings.Contains(result.TrackNote, "Matching tracks: 3/3") {
		t.Errorf("track note missing match count: %q", result.TrackNote)
	}
	if !strings.Contains(result.TrackNote, "Action: None") {
		t.Errorf("track note missing no-op action: %q", result.TrackNote)
	}
	if title, ok := result.Fields["title"]; !ok || title.Method != "exact" {
		t.Errorf("title field = %+v, want exact match", result.Fields["title"])
	}
}

func TestVerifyRecordSkipsLowConfidence(t *testing.T) {
	rec := sampleRecord()
	rec.Confidence = 70

	result := NewVerifier(nil).VerifyRecord(rec)
	if !result.Skipped {
		t.Fatal("low-confidence record should be skipped")
	}
	if !strings.Contains(result.SkipReason, "70") {
		t.Errorf("skip reason = %q, want it to name the confidence", result.SkipReason)
	}
}

func TestVerifyRecordSkipsWithoutTrackTerms(t *testing.T) {
	rec := sampleRecord()
	rec.Explanation = "Publisher and catalog number agree with the metadata."

	result := NewVerifier(nil).VerifyRecord(rec)
	if !result.Skipped {
		t.Fatal("record without track-related explanation should be skipped")
	}
	if result.SkipReason != "no track-related terms in explanation" {
		t.Errorf("skip reason = %q", result.SkipReason)
	}
}

func TestVerifyRecordSkipsMissingFields(t *testing.T) {
	rec := sampleRecord()
	rec.OCLCNumber = ""

	result := NewVerifier(nil).VerifyRecord(rec)
	if !result.Skipped || result.SkipReason != "missing required fields" {
		t.Errorf("skipped=%v reason=%q, want missing-fields skip", result.Skipped, result.SkipReason)
	}
}

func TestVerifyRecordReducesConfidenceOnTrackMismatch(t *testing.T) {
	rec := sampleRecord()
	rec.CatalogResults = sampleCatalog("1995", "Alpha -- Beta -- Gamma.")

	result := NewVerifier(nil).VerifyRecord(rec)
	if result.Skipped {
		t.Fatalf("record skipped: %s", result.SkipReason)
	}
	if result.Similarity >= similarityThreshold {
		t.Fatalf("similarity = %.2f, want below %.0f", result.Similarity, similarityThreshold)
	}
	if !result.Adjusted {
		t.Fatal("mismatched track listing should reduce confidence")
	}
	if result.NewConfidence != reducedConfidence {
		t.Errorf("new confidence = %.0f, want %.0f", result.NewConfidence, reducedConfidence)
	}
	if !strings.Contains(result.AdjustedExplanation, "[AUTOMATIC REVIEW") {
		t.Errorf("adjusted explanation missing review note: %q", result.AdjustedExplanation)
	}
	if !strings.Contains(result.AdjustedExplanation, "track listing mismatch") {
		t.Errorf("adjusted explanation missing reason: %q", result.AdjustedExplanation)
	}
	if !strings.Contains(result.AdjustedExplanation, "✗") {
		t.Errorf("adjusted explanation missing per-track comparison: %q", result.AdjustedExplanation)
	}
	if !strings.Contains(result.TrackNote, "Reduced confidence from 92% to 80%") {
		t.Errorf("track note missing action: %q", result.TrackNote)
	}
}

func TestVerifyRecordReducesConfidenceOnYearMismatch(t *testing.T) {
	rec := sampleRecord()
	rec.CatalogResults = sampleCatalog("1998", "Morning Song -- Evening Song -- Night Song.")

	result := NewVerifier(nil).VerifyRecord(rec)
	if result.Skipped {
		t.Fatalf("record skipped: %s", result.SkipReason)
	}
	if result.Similarity != 100 {
		t.Fatalf("similarity = %.2f, want 100 (tracks identical)", result.Similarity)
	}
	if result.YearMatch {
		t.Fatal("years 1995/1998 should not match")
	}
	if !result.Adjusted || result.NewConfidence != reducedConfidence {
		t.Errorf("adjusted=%v confidence=%.0f, want reduction to %.0f",
			result.Adjusted, result.NewConfidence, reducedConfidence)
	}
	if !strings.Contains(result.AdjustedExplanation, "publication year mismatch") {
		t.Errorf("adjusted explanation missing year reason: %q", result.AdjustedExplanation)
	}
	if strings.Contains(result.AdjustedExplanation, "track listing mismatch") {
		t.Errorf("track reason should be absent when only the year differs: %q", result.AdjustedExplanation)
	}
}

func TestVerifyRecordInsufficientTrackData(t *testing.T) {
	rec := sampleRecord()
	rec.Metadata = "Title: Blue Horizons\npublicationDate: 1995\nNotes: sleeve art only, no listing visible"

	result := NewVerifier(nil).VerifyRecord(rec)
	if result.Skipped {
		t.Fatalf("record skipped: %s", result.SkipReason)
	}
	if len(result.MetadataTracks) != 0 {
		t.Fatalf("metadata tracks = %v, want none", result.MetadataTracks)
	}
	if !strings.Contains(result.TrackNote, "insufficient track data") {
		t.Errorf("track note = %q, want insufficient-data marker", result.TrackNote)
	}
	if result.Adjusted {
		t.Error("missing track data should not reduce confidence")
	}
	if result.MetadataYear != "1995" || result.CatalogYear != "1995" {
		t.Errorf("years = %q/%q, want 1995/1995 (year check still runs)",
			result.MetadataYear, result.CatalogYear)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Similarity: 100},
		{Skipped: true, SkipReason: "low confidence"},
		{Error: "record processing failed: boom"},
		{
			Adjusted:       true,
			Similarity:     45,
			MetadataTracks: []string{"a"},
			CatalogTracks:  []string{"b"},
			MetadataYear:   "1990",
			CatalogYear:    "1990",
			YearMatch:      true,
		},
		{
			Adjusted:     true,
			Similarity:   100,
			MetadataYear: "1990",
			CatalogYear:  "1993",
		},
	}

	summary := Summarize(results)
	if summary.TotalRecords != 5 {
		t.Errorf("total = %d, want 5", summary.TotalRecords)
	}
	if summary.Processed != 3 {
		t.Errorf("processed = %d, want 3", summary.Processed)
	}
	if summary.Skipped != 1 || summary.Errors != 1 {
		t.Errorf("skipped=%d errors=%d, want 1/1", summary.Skipped, summary.Errors)
	}
	if summary.Adjusted != 2 {
		t.Errorf("adjusted = %d, want 2", summary.Adjusted)
	}
	if summary.AdjustedTracks != 1 || summary.AdjustedYears != 1 {
		t.Errorf("adjusted tracks=%d years=%d, want 1/1", summary.AdjustedTracks, summary.AdjustedYears)
	}
}

func TestMentionsTracks(t *testing.T) {
	cases := []struct {
		explanation string
		want        bool
	}{
		{"The track listing matches.", true},
		{"Contents agree with the record.", true},
		{"All songs present on both sides.", true},
		{"Publisher and date agree.", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := mentionsTracks(tc.explanation); got != tc.want {
			t.Errorf("mentionsTracks(%q) = %v, want %v", tc.explanation, got, tc.want)
		}
	}
}

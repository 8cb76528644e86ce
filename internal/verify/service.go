package verify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
	"github.com/hannahmoutran/ai-music-metadata/internal/tracks"
)

const (
	// minConfidence gates verification: records the match analysis was
	// unsure about already get manual review, so only confident matches
	// are cross-checked here.
	minConfidence = 85.0

	// similarityThreshold is the track-listing similarity below which a
	// record's confidence gets reduced.
	similarityThreshold = 80.0

	// reducedConfidence is the value a failed record is knocked down to,
	// flagging it for manual review downstream.
	reducedConfidence = 80.0
)

// trackTerms are the explanation keywords indicating the match analysis
// relied on a track listing, which is what this pass double-checks.
var trackTerms = []string{"track", "content", "song", "listing"}

// Result is the outcome of verifying a single release record. Records are
// independent: nothing in one Result affects the scoring of another.
type Result struct {
	Barcode    string `json:"barcode" yaml:"barcode"`
	OCLCNumber string `json:"oclc_number" yaml:"oclcnumber"`

	Skipped    bool   `json:"skipped" yaml:"skipped"`
	SkipReason string `json:"skip_reason,omitempty" yaml:"skipreason,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`

	MetadataTracks []string            `json:"metadata_tracks,omitempty" yaml:"metadatatracks,omitempty"`
	CatalogTracks  []string            `json:"catalog_tracks,omitempty" yaml:"catalogtracks,omitempty"`
	Similarity     float64             `json:"similarity" yaml:"similarity"`
	Trace          []tracks.TrackMatch `json:"trace,omitempty" yaml:"trace,omitempty"`

	MetadataYear string `json:"metadata_year,omitempty" yaml:"metadatayear,omitempty"`
	CatalogYear  string `json:"catalog_year,omitempty" yaml:"catalogyear,omitempty"`
	YearMatch    bool   `json:"year_match" yaml:"yearmatch"`

	Fields map[string]FieldMatch `json:"fields,omitempty" yaml:"fields,omitempty"`

	TrackNote string `json:"track_note,omitempty" yaml:"tracknote,omitempty"`
	YearNote  string `json:"year_note,omitempty" yaml:"yearnote,omitempty"`

	Adjusted            bool    `json:"adjusted" yaml:"adjusted"`
	OldConfidence       float64 `json:"old_confidence" yaml:"oldconfidence"`
	NewConfidence       float64 `json:"new_confidence" yaml:"newconfidence"`
	AdjustedExplanation string  `json:"adjusted_explanation,omitempty" yaml:"adjustedexplanation,omitempty"`
}

// Verifier cross-checks release records' track listings and publication
// years against their chosen catalog records.
type Verifier struct {
	log *slog.Logger
}

// NewVerifier creates a Verifier. A nil logger disables diagnostics.
func NewVerifier(log *slog.Logger) *Verifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Verifier{log: log}
}

// VerifyRecord runs the full verification pipeline on one record. It
// never returns an error: any panic from pathological input is recovered
// and recorded on the result so the remaining records keep processing.
func (v *Verifier) VerifyRecord(rec dataset.ReleaseRecord) (result Result) {
	result = Result{
		Barcode:       rec.Barcode,
		OCLCNumber:    rec.OCLCNumber,
		OldConfidence: rec.Confidence,
		NewConfidence: rec.Confidence,
		YearMatch:     true,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("record processing failed: %v", r)
			v.log.Error("Recovered from record failure", "barcode", rec.Barcode, "panic", r)
		}
	}()

	if !rec.HasRequiredFields() {
		result.Skipped = true
		result.SkipReason = "missing required fields"
		return result
	}
	if rec.Confidence < minConfidence {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("confidence %.0f%% below %.0f%% threshold", rec.Confidence, minConfidence)
		return result
	}
	if !mentionsTracks(rec.Explanation) {
		result.Skipped = true
		result.SkipReason = "no track-related terms in explanation"
		return result
	}

	v.log.Info("Verifying record", "barcode", rec.Barcode, "oclc", rec.OCLCNumber, "confidence", rec.Confidence)

	result.MetadataTracks = tracks.FromMetadata(rec.Metadata)
	result.CatalogTracks = tracks.FromCatalogRecord(rec.CatalogResults, rec.OCLCNumber)

	result.MetadataYear = ExtractYear(rec.Metadata, false)
	result.CatalogYear = ExtractYear(rec.CatalogResults, true)
	yearMatch, yearDetails := CompareYears(result.MetadataYear, result.CatalogYear)
	result.YearMatch = yearMatch
	result.YearNote = yearNote(result.MetadataYear, result.CatalogYear, yearMatch)
	v.log.Debug("Year comparison", "barcode", rec.Barcode, "details", yearDetails)

	result.Fields = CompareReleaseFields(rec.Metadata, rec.CatalogResults)

	if len(result.MetadataTracks) == 0 || len(result.CatalogTracks) == 0 {
		result.TrackNote = fmt.Sprintf("Metadata tracks: %d\nOCLC tracks: %d\nSkipped: insufficient track data",
			len(result.MetadataTracks), len(result.CatalogTracks))
		v.log.Info("Insufficient track data", "barcode", rec.Barcode,
			"metadata_tracks", len(result.MetadataTracks), "catalog_tracks", len(result.CatalogTracks))
	} else {
		result.Similarity, result.Trace = tracks.Score(result.MetadataTracks, result.CatalogTracks)
		matching := 0
		for _, title := range result.MetadataTracks {
			if tracks.BestMatch(title, result.CatalogTracks).Matched {
				matching++
			}
		}
		result.TrackNote = fmt.Sprintf("Metadata tracks: %d\nOCLC tracks: %d\nMatching tracks: %d/%d\nSimilarity: %.2f%%",
			len(result.MetadataTracks), len(result.CatalogTracks), matching, len(result.MetadataTracks), result.Similarity)
		v.log.Info("Track similarity", "barcode", rec.Barcode, "similarity", result.Similarity, "matching", matching)
	}

	v.applyAdjustments(rec, &result)
	return result
}

// applyAdjustments reduces the record's confidence when the track listing
// or publication year contradicts the chosen catalog record, appending a
// review note to the explanation so downstream processing sees why.
func (v *Verifier) applyAdjustments(rec dataset.ReleaseRecord, result *Result) {
	haveTracks := len(result.MetadataTracks) > 0 && len(result.CatalogTracks) > 0
	trackMismatch := haveTracks && result.Similarity < similarityThreshold
	yearMismatch := result.MetadataYear != "" && result.CatalogYear != "" && !result.YearMatch

	if !trackMismatch && !yearMismatch {
		if result.TrackNote != "" && haveTracks {
			result.TrackNote += "\nAction: None (similarity is acceptable)"
		}
		result.YearNote += "\nAction: " + yearAction(result.MetadataYear, result.CatalogYear)
		return
	}

	var reasons []string
	if trackMismatch {
		reasons = append(reasons, fmt.Sprintf("track listing mismatch (similarity %.2f%%, below %.0f%% threshold)",
			result.Similarity, similarityThreshold))
	}
	if yearMismatch {
		reasons = append(reasons, fmt.Sprintf("publication year mismatch (metadata: %s, OCLC: %s)",
			result.MetadataYear, result.CatalogYear))
	}

	result.Adjusted = true
	result.NewConfidence = reducedConfidence

	note := fmt.Sprintf("\n\n[AUTOMATIC REVIEW: Confidence reduced due to: %s. Please verify manually.]",
		strings.Join(reasons, "; "))
	if trackMismatch {
		note += "\n\nTrack comparison:"
		for i, title := range result.MetadataTracks {
			match := tracks.BestMatch(title, result.CatalogTracks)
			counterpart := match.Counterpart
			if counterpart == "" {
				counterpart = "No match"
			}
			note += fmt.Sprintf("\n%d. %s %s %s (%.2f)", i+1, title, match.Symbol(), counterpart, match.Score)
		}
	}
	if yearMismatch {
		note += fmt.Sprintf("\n\nYear comparison: Metadata year %s ≠ OCLC year %s",
			result.MetadataYear, result.CatalogYear)
	}
	result.AdjustedExplanation = rec.Explanation + note

	var actions []string
	if trackMismatch {
		actions = append(actions, "track mismatch")
	}
	if yearMismatch {
		actions = append(actions, "year mismatch")
	}
	actionText := fmt.Sprintf("\nAction: Reduced confidence from %.0f%% to %.0f%% due to %s",
		result.OldConfidence, result.NewConfidence, strings.Join(actions, " and "))
	result.TrackNote += actionText
	result.YearNote += actionText

	v.log.Info("Confidence reduced", "barcode", rec.Barcode,
		"old", result.OldConfidence, "new", result.NewConfidence, "reasons", strings.Join(reasons, "; "))
}

func mentionsTracks(explanation string) bool {
	lower := strings.ToLower(explanation)
	for _, term := range trackTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func yearNote(metadataYear, catalogYear string, match bool) string {
	status := "Yes"
	switch {
	case metadataYear == "" && catalogYear == "":
		status = "N/A - No years to compare"
	case metadataYear == "" || catalogYear == "":
		status = "Considered match - Incomplete data"
	case !match:
		status = "No"
	}
	return fmt.Sprintf("Metadata year: %s\nOCLC year: %s\nMatch: %s",
		orNotFound(metadataYear), orNotFound(catalogYear), status)
}

func yearAction(metadataYear, catalogYear string) string {
	switch {
	case metadataYear == "" && catalogYear == "":
		return "None (no year data to compare)"
	case metadataYear == "" || catalogYear == "":
		return "None (incomplete year data, not penalized)"
	default:
		return "None (years match)"
	}
}

// Summary aggregates a verification run.
type Summary struct {
	TotalRecords   int `json:"total_records" yaml:"totalrecords"`
	Processed      int `json:"processed" yaml:"processed"`
	Skipped        int `json:"skipped" yaml:"skipped"`
	Errors         int `json:"errors" yaml:"errors"`
	Adjusted       int `json:"adjusted" yaml:"adjusted"`
	AdjustedTracks int `json:"adjusted_tracks" yaml:"adjustedtracks"`
	AdjustedYears  int `json:"adjusted_years" yaml:"adjustedyears"`
}

// Summarize tallies a slice of per-record results.
func Summarize(results []Result) Summary {
	summary := Summary{TotalRecords: len(results)}
	for _, result := range results {
		switch {
		case result.Error != "":
			summary.Errors++
		case result.Skipped:
			summary.Skipped++
		default:
			summary.Processed++
		}
		if result.Adjusted {
			summary.Adjusted++
			if len(result.MetadataTracks) > 0 && len(result.CatalogTracks) > 0 && result.Similarity < similarityThreshold {
				summary.AdjustedTracks++
			}
			if result.MetadataYear != "" && result.CatalogYear != "" && !result.YearMatch {
				summary.AdjustedYears++
			}
		}
	}
	return summary
}

package tracks

import (
	"reflect"
	"testing"
)

func TestFromMetadata_StructuredContents(t *testing.T) {
	metadata := `Title: Blue Horizons
Artist: The Wanderers
Contents: - tracks: [
  { "number": 1, "title": "Open Road", "duration": "3:42" },
  { "number": 2, "title": "Night Drive", "duration": "4:10" },
  { "number": 3, "title": "Coast to Coast", "duration": "5:01" }
]
Label: Sundial Records`

	got := FromMetadata(metadata)
	want := []string{"Open Road", "Night Drive", "Coast to Coast"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_LooseTitleFallback(t *testing.T) {
	// No entry-shaped objects inside the brackets, only bare title fields.
	metadata := `Contents: - tracks: [
  "title": "First Light",
  "title": "Undertow",
  "title": "Second Sleep",
]`

	got := FromMetadata(metadata)
	want := []string{"First Light", "Undertow", "Second Sleep"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_FlexiblePatternsMerge(t *testing.T) {
	// Structured section only yields two titles; the flexible cascade
	// should pick up the remaining quoted title from the loose text.
	metadata := `Contents: - tracks: [
  { "number": 1, "title": "Alpha" }
  { "number": 2, "title": "Beta" }
]
Additional tracks: "title": "Gamma"`

	got := FromMetadata(metadata)
	want := []string{"Alpha", "Beta", "Gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_LabeledSection(t *testing.T) {
	metadata := `Some release description with no structured contents.
Track listing:
1. Morning Bell
2. Paper Tiger
3. Last Exit
`

	got := FromMetadata(metadata)
	want := []string{"Morning Bell", "Paper Tiger", "Last Exit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_SentinelValuesFiltered(t *testing.T) {
	metadata := `Contents: - tracks: [
  { "number": 1, "title": "N/A" }
  { "number": 2, "title": "Not visible" }
]`

	got := FromMetadata(metadata)
	if len(got) != 0 {
		t.Errorf("expected empty list for sentinel-only metadata, got %v", got)
	}
}

func TestFromMetadata_LooseFallbackStripsObjectBraces(t *testing.T) {
	// Entries without "number" fields force the loose fallback; the closing
	// braces must not ride along into the captured titles.
	metadata := `Contents: - tracks: [
  { "title": "N/A" }
  { "title": "Harbor Lights" }
]`

	got := FromMetadata(metadata)
	want := []string{"Harbor Lights"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_FieldEchoesAndNotesFiltered(t *testing.T) {
	metadata := `Contents: - tracks: [
  { "number": 1, "title": "Real Song" },
  { "number": 2, "title": "duration" },
  { "number": 3, "title": "Note: sleeve has water damage" },
  { "number": 4, "title": "Contains previously unreleased material from the 1978 sessions" }
]`

	got := FromMetadata(metadata)
	want := []string{"Real Song"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_DeduplicatesWithinPass(t *testing.T) {
	metadata := `Contents: - tracks: [
  { "number": 1, "title": "Echo" }
  { "number": 2, "title": "Echo" }
  { "number": 3, "title": "Reprise" }
]
"title": "Echo"`

	got := FromMetadata(metadata)
	want := []string{"Echo", "Reprise"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMetadata = %v, want %v", got, want)
	}
}

func TestFromMetadata_EmptyInput(t *testing.T) {
	if got := FromMetadata(""); len(got) != 0 {
		t.Errorf("expected empty list for empty input, got %v", got)
	}
}

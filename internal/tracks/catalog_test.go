package tracks

import (
	"reflect"
	"testing"
)

const separator = "----------------------------------------"

func TestFromCatalogRecord_DashDelimited(t *testing.T) {
	text := `Record 1:
Title: Blue Horizons
OCLC Number: 12345
Content: Song A -- Song B (3:45).
` + separator

	got := FromCatalogRecord(text, "12345")
	want := []string{"Song A", "Song B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_StripsPerformerCreditAndParenthetical(t *testing.T) {
	text := `OCLC Number: 555
Content: Opening Theme / performed by The Wanderers -- Closing Theme (live) -- Finale (4:12).
`

	got := FromCatalogRecord(text, "555")
	want := []string{"Opening Theme", "Closing Theme", "Finale"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_PicksCorrectRecord(t *testing.T) {
	text := `Record 1:
OCLC Number: 111
Content: Wrong One -- Wrong Two.
` + separator + `
Record 2:
OCLC Number: 222
Content: Right One -- Right Two.
` + separator

	got := FromCatalogRecord(text, "222")
	want := []string{"Right One", "Right Two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_NewlineDelimited(t *testing.T) {
	text := `OCLC Number: 777
Description: 1 audio disc
Content: First Song
Second Song
Third Song
Notes: gatefold sleeve`

	got := FromCatalogRecord(text, "777")
	want := []string{"First Song", "Second Song", "Third Song"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_SemicolonDelimited(t *testing.T) {
	text := `OCLC Number: 888
Content: One for the Road; Two of a Kind; Third Wheel.`

	got := FromCatalogRecord(text, "888")
	want := []string{"One for the Road", "Two of a Kind", "Third Wheel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_DurationRunFallback(t *testing.T) {
	text := `OCLC Number: 999
Physical description: 1 sound disc
(program notes)
Alpha (3:12)
Beta (4:05)`

	got := FromCatalogRecord(text, "999")
	want := []string{"Alpha", "Beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_UnknownIdentifier(t *testing.T) {
	text := `OCLC Number: 12345
Content: Song A -- Song B.`

	if got := FromCatalogRecord(text, "99999"); len(got) != 0 {
		t.Errorf("expected empty list for unknown identifier, got %v", got)
	}
}

func TestFromCatalogRecord_SentinelsFiltered(t *testing.T) {
	text := `OCLC Number: 321
Content: Not visible -- Real Track -- N/A.`

	got := FromCatalogRecord(text, "321")
	want := []string{"Real Track"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_SentinelWithCreditFiltered(t *testing.T) {
	// A sentinel hiding behind a performer credit is caught after cleaning;
	// a bare sentinel is caught before the credit strip can mangle it.
	text := `OCLC Number: 88
Content: None / Unknown performer -- Closing Theme.`

	got := FromCatalogRecord(text, "88")
	want := []string{"Closing Theme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromCatalogRecord = %v, want %v", got, want)
	}
}

func TestFromCatalogRecord_EmptyInputs(t *testing.T) {
	if got := FromCatalogRecord("", "123"); len(got) != 0 {
		t.Errorf("expected empty list for empty text, got %v", got)
	}
	if got := FromCatalogRecord("OCLC Number: 123\nContent: A -- B.", ""); len(got) != 0 {
		t.Errorf("expected empty list for empty identifier, got %v", got)
	}
}

package match

import "testing"

const rankDump = `Record 1:
OCLC Number: 111
Title: Completely Different Album
----------------------------------------
Record 2:
OCLC Number: 222
Title: Blue Horizons
----------------------------------------
Record 3:
OCLC Number: 333
Title: Blue Horizons (Deluxe Edition)
----------------------------------------`

func TestRankCandidatesOrdersByTitleSimilarity(t *testing.T) {
	ranked := RankCandidates("Blue Horizons", rankDump)

	if len(ranked) != 3 {
		t.Fatalf("ranked %d candidates, want 3", len(ranked))
	}
	if ranked[0].OCLCNumber != "222" {
		t.Errorf("best candidate = %s (%q), want 222", ranked[0].OCLCNumber, ranked[0].Title)
	}
	if ranked[0].Score != 1.0 || ranked[0].Confidence != ConfidenceHigh {
		t.Errorf("exact title scored %.2f/%s, want 1.00/high", ranked[0].Score, ranked[0].Confidence)
	}
	if ranked[1].OCLCNumber != "333" {
		t.Errorf("second candidate = %s, want the deluxe edition", ranked[1].OCLCNumber)
	}
	if ranked[2].OCLCNumber != "111" {
		t.Errorf("worst candidate = %s, want 111", ranked[2].OCLCNumber)
	}
	if ranked[2].Score >= ranked[1].Score {
		t.Errorf("scores not descending: %.2f then %.2f", ranked[1].Score, ranked[2].Score)
	}
}

func TestRankCandidatesSkipsIncompleteSections(t *testing.T) {
	dump := `Record 1:
OCLC Number: 111
----------------------------------------
Record 2:
Title: No Number Here
----------------------------------------`

	if ranked := RankCandidates("Anything", dump); len(ranked) != 0 {
		t.Errorf("ranked %v, want no candidates from incomplete sections", ranked)
	}
}

func TestConfidenceString(t *testing.T) {
	cases := []struct {
		confidence Confidence
		want       string
	}{
		{ConfidenceHigh, "high"},
		{ConfidenceMedium, "medium"},
		{ConfidenceLow, "low"},
		{ConfidenceNone, "none"},
	}
	for _, tc := range cases {
		if got := tc.confidence.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.confidence, got, tc.want)
		}
	}
}

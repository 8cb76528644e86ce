package dataset

// ReleaseRecord represents one music release moving through the workflow:
// the self-reported metadata description produced upstream, the catalog
// search results dump, and the match decision fields from the record-match
// analysis step.
type ReleaseRecord struct {
	// Barcode is the item barcode photographed at intake; primary key.
	Barcode string `json:"barcode" parquet:"barcode"`

	// Metadata is the free-text release description (title, artist,
	// contents, dates). No structural guarantees.
	Metadata string `json:"metadata" parquet:"metadata"`

	// UPC extracted from the metadata, when legible.
	UPC string `json:"upc,omitempty" parquet:"upc"`

	// CatalogResults is the formatted dump of one or more candidate
	// catalog records, separated by record separator lines.
	CatalogResults string `json:"catalog_results" parquet:"catalog_results"`

	// OCLCNumber identifies the catalog record chosen by the match
	// analysis step.
	OCLCNumber string `json:"oclc_number" parquet:"oclc_number"`

	// Confidence is the match analysis confidence in [0, 100].
	Confidence float64 `json:"confidence" parquet:"confidence"`

	// Explanation is the match analysis reasoning; verification only
	// runs when it mentions track listings.
	Explanation string `json:"explanation" parquet:"explanation"`

	// OtherMatches lists alternate OCLC numbers flagged by the analysis.
	OtherMatches string `json:"other_matches,omitempty" parquet:"other_matches"`
}

// HasRequiredFields reports whether the record carries everything track
// verification needs.
func (r ReleaseRecord) HasRequiredFields() bool {
	return r.Metadata != "" &&
		r.CatalogResults != "" &&
		r.OCLCNumber != "" &&
		r.Explanation != ""
}

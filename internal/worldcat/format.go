package worldcat

import (
	"fmt"
	"strings"
)

// recordSeparator divides formatted records in a multi-record dump. The
// verification pipeline relies on it to isolate one record's section.
const recordSeparator = "----------------------------------------"

// Format renders a bib record as the flat labeled-line text the rest of
// the workflow stores and parses. The OCLC number leads so the record can
// be located inside a multi-record dump, and the contents listing uses
// the " -- " cataloging delimiter.
func Format(record *BibRecord) string {
	if record == nil || record.Identifier.OCLCNumber == "" {
		return "No bibliographic information available."
	}

	var out []string
	out = append(out, "OCLC Number: "+record.Identifier.OCLCNumber)
	out = append(out, "Title: "+orNA(mainTitle(record)))

	if len(record.Series) > 0 && record.Series[0].Title != "" {
		out = append(out, "Series Title: "+record.Series[0].Title)
	}

	var contributors []string
	for _, creator := range record.Contributor.Creators {
		if name := creator.Name(); name != "" {
			contributors = append(contributors, name)
		}
	}
	author := "N/A"
	if len(contributors) > 0 {
		author = contributors[0]
	}
	out = append(out, "Author: "+author)
	if len(contributors) > 1 {
		out = append(out, "Contributors: "+strings.Join(contributors, ", "))
	}

	publisher, place := "N/A", "N/A"
	if len(record.Publishers) > 0 {
		if text := record.Publishers[0].PublisherName.Text; text != "" {
			publisher = text
		}
		if record.Publishers[0].PublicationPlace != "" {
			place = record.Publishers[0].PublicationPlace
		}
	}
	out = append(out, "Publisher: "+publisher)
	out = append(out, "Place of Publication: "+place)

	// The phonogram mark trips up date parsing downstream; the catalog
	// convention spells it as a "c" prefix.
	date := strings.ReplaceAll(record.Date.PublicationDate, "\u2117", "c")
	out = append(out, "publicationDate: "+orNA(date))

	format := record.Format.GeneralFormat
	if record.Format.SpecificFormat != "" {
		format += " - " + record.Format.SpecificFormat
	}
	out = append(out, "Content Type: "+orNA(format))

	upc := "N/A"
	for _, identifier := range record.Identifier.OtherStandardIdentifiers {
		if identifier.Type == "Universal Product Code (UPC)" {
			upc = identifier.ID
			break
		}
	}
	out = append(out, "UPC: "+upc)

	if titles := contentsTitles(record); len(titles) > 0 {
		out = append(out, "Content: "+strings.Join(titles, " -- ")+".")
	}

	return strings.Join(out, "\n")
}

// FormatRecords renders several bib records as one dump with numbered
// headers and separator lines, the layout catalog search results are
// stored in.
func FormatRecords(records []*BibRecord) string {
	var sections []string
	for i, record := range records {
		sections = append(sections,
			fmt.Sprintf("Record %d:\n%s\n%s", i+1, Format(record), recordSeparator))
	}
	return strings.Join(sections, "\n")
}

func mainTitle(record *BibRecord) string {
	if len(record.Title.MainTitles) > 0 {
		return record.Title.MainTitles[0].Text
	}
	return ""
}

func contentsTitles(record *BibRecord) []string {
	for _, content := range record.Description.Contents {
		if len(content.Titles) > 0 {
			return content.Titles
		}
	}
	return nil
}

func orNA(text string) string {
	if strings.TrimSpace(text) == "" {
		return "N/A"
	}
	return text
}

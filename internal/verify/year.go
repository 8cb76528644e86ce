package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Publication-year extraction mirrors the track extraction philosophy:
// structured date fields first, then copyright/phonogram marks, then a
// most-frequent standalone year as the loosest fallback.

var (
	metadataDateRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)publicationDate:\s*(\d{4})`),
		regexp.MustCompile(`(?i)Dates:[^p]*publicationDate:\s*(\d{4})`),
		regexp.MustCompile(`(?i)Date:[^p]*publicationDate:\s*(\d{4})`),
		regexp.MustCompile(`(?i)publication(?:Date)?:\s*(\d{4})`),
	}

	catalogDateRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)publicationDate:\s*[©℗]?(\d{4})`),
		regexp.MustCompile(`(?i)machineReadableDate:\s*(\d{4})`),
		regexp.MustCompile(`(?i)Dates:[^p]*publicationDate:\s*[©℗]?(\d{4})`),
		regexp.MustCompile(`(?i)Date:[^p]*publicationDate:\s*[©℗]?(\d{4})`),
		regexp.MustCompile(`(?i)publicationDate:\s*[©℗]?c?(\d{4})`),
		regexp.MustCompile(`(?i)publication(?:Date)?:\s*[©℗]?c?(\d{4})`),
	}

	yearMarkerRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[©℗]\s*(\d{4})`),
		regexp.MustCompile(`(?i)copyright\s+(\d{4})`),
		regexp.MustCompile(`(?i)phonogram\s+(\d{4})`),
	}

	digitRunRegex = regexp.MustCompile(`\d+`)
)

// ExtractYear pulls a normalized YYYY publication year out of a free-text
// blob, or "" when no plausible year is present. Catalog-record dumps use
// slightly different date conventions (©/℗ prefixes, machine-readable
// dates), so the caller says which side the text came from.
func ExtractYear(text string, catalogSide bool) string {
	if text == "" {
		return ""
	}

	dateRegexes := metadataDateRegexes
	if catalogSide {
		dateRegexes = catalogDateRegexes
	}
	for _, re := range dateRegexes {
		if match := re.FindStringSubmatch(text); match != nil {
			if year, ok := validYear(match[1]); ok {
				return year
			}
		}
	}

	for _, re := range yearMarkerRegexes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if year, ok := validYear(match[1]); ok {
				return year
			}
		}
	}

	// Standalone 4-digit runs: the most frequently occurring valid year
	// wins, first occurrence breaking ties.
	counts := make(map[string]int)
	var order []string
	for _, run := range digitRunRegex.FindAllString(text, -1) {
		if len(run) != 4 {
			continue
		}
		if year, ok := validYear(run); ok {
			if counts[year] == 0 {
				order = append(order, year)
			}
			counts[year]++
		}
	}
	best := ""
	bestCount := 0
	for _, year := range order {
		if counts[year] > bestCount {
			best = year
			bestCount = counts[year]
		}
	}
	return best
}

func validYear(candidate string) (string, bool) {
	year, err := strconv.Atoi(candidate)
	if err != nil {
		return "", false
	}
	if year < 1900 || year > time.Now().Year() {
		return "", false
	}
	return candidate, true
}

// CompareYears reports whether two extracted years agree. A missing year
// on either side is not counted against the record; only two present,
// differing years are a mismatch.
func CompareYears(metadataYear, catalogYear string) (bool, string) {
	if metadataYear == "" || catalogYear == "" {
		return true, fmt.Sprintf("Incomplete year data: metadata=%s catalog=%s",
			orNotFound(metadataYear), orNotFound(catalogYear))
	}
	if metadataYear == catalogYear {
		return true, fmt.Sprintf("Years match: %s == %s", metadataYear, catalogYear)
	}
	return false, fmt.Sprintf("Years do not match: %s != %s", metadataYear, catalogYear)
}

func orNotFound(year string) string {
	if year == "" {
		return "Not found"
	}
	return year
}

package verifycmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hannahmoutran/ai-music-metadata/internal/results"
)

func executeReport(resultsPath, format string) error {
	report, err := results.LoadFromYAML(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(report)
	case "json":
		return printJSONReport(report)
	case "csv":
		return printCSVReport(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(report *results.RunReport) error {
	fmt.Println("========================================")
	fmt.Println("Track Verification Report")
	fmt.Println("========================================")
	fmt.Printf("Dataset:   %s\n", report.Config.DatasetPath)
	fmt.Printf("Timestamp: %s\n", report.Config.Timestamp)

	printSummary(report.Summary)

	fmt.Println("\nDetailed Results:")
	fmt.Println("========================================")

	for i, result := range report.Results {
		fmt.Printf("\n[%d] Barcode: %s (OCLC %s)\n", i+1, result.Barcode, result.OCLCNumber)

		if result.Error != "" {
			fmt.Printf("  ❌ Error: %s\n", result.Error)
			continue
		}
		if result.Skipped {
			fmt.Printf("  Skipped: %s\n", result.SkipReason)
			continue
		}

		fmt.Printf("  Similarity: %.2f%%\n", result.Similarity)
		fmt.Printf("  Year Match: %v (%s / %s)\n", result.YearMatch,
			orDash(result.MetadataYear), orDash(result.CatalogYear))
		if result.Adjusted {
			fmt.Printf("  ⚠ Confidence reduced: %.0f%% -> %.0f%%\n",
				result.OldConfidence, result.NewConfidence)
		}

		for _, match := range result.Trace {
			fmt.Printf("    %s %s -> %s (%.2f, %s)\n",
				match.Symbol(), match.Source, orDash(match.Counterpart), match.Score, match.Tag)
		}
	}

	return nil
}

func printJSONReport(report *results.RunReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printCSVReport(report *results.RunReport) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	header := []string{
		"barcode", "oclc_number", "skipped", "skip_reason", "error",
		"similarity", "metadata_year", "catalog_year", "year_match",
		"adjusted", "old_confidence", "new_confidence",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range report.Results {
		row := []string{
			result.Barcode,
			result.OCLCNumber,
			strconv.FormatBool(result.Skipped),
			result.SkipReason,
			result.Error,
			fmt.Sprintf("%.2f", result.Similarity),
			result.MetadataYear,
			result.CatalogYear,
			strconv.FormatBool(result.YearMatch),
			strconv.FormatBool(result.Adjusted),
			fmt.Sprintf("%.0f", result.OldConfidence),
			fmt.Sprintf("%.0f", result.NewConfidence),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

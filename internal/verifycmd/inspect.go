package verifycmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
	"github.com/hannahmoutran/ai-music-metadata/internal/tracks"
	"github.com/hannahmoutran/ai-music-metadata/internal/verify"
)

func executeInspect(ctx context.Context, datasetPath string, limit int, interactive, showExtraction bool) error {
	loader := dataset.NewLoader(datasetPath)

	var records []dataset.ReleaseRecord
	var err error
	if limit > 0 {
		records, err = loader.LoadSample(limit)
	} else {
		records, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	fmt.Printf("Loaded %d records from %s\n", len(records), datasetPath)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for i, record := range records {
		select {
		case <-ctx.Done():
			fmt.Println("\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Printf("RECORD %d/%d\n", i+1, len(records))
		fmt.Println(strings.Repeat("-", 80))

		fmt.Printf("Barcode:     %s\n", record.Barcode)
		fmt.Printf("UPC:         %s\n", orDash(record.UPC))
		fmt.Printf("OCLC Number: %s\n", orDash(record.OCLCNumber))
		fmt.Printf("Confidence:  %.0f%%\n", record.Confidence)
		fmt.Printf("Metadata:    %d chars\n", len(record.Metadata))
		fmt.Printf("Catalog:     %d chars\n", len(record.CatalogResults))

		if showExtraction {
			metaTracks := tracks.FromMetadata(record.Metadata)
			catalogTracks := tracks.FromCatalogRecord(record.CatalogResults, record.OCLCNumber)
			fmt.Printf("\nExtracted metadata tracks (%d):\n", len(metaTracks))
			for _, title := range metaTracks {
				fmt.Printf("  - %s\n", title)
			}
			fmt.Printf("Extracted catalog tracks (%d):\n", len(catalogTracks))
			for _, title := range catalogTracks {
				fmt.Printf("  - %s\n", title)
			}
			fmt.Printf("Metadata year: %s\n", orDash(verify.ExtractYear(record.Metadata, false)))
			fmt.Printf("Catalog year:  %s\n", orDash(verify.ExtractYear(record.CatalogResults, true)))
		}
		fmt.Println()

		if interactive && i < len(records)-1 {
			fmt.Print("Press Enter for next record (Ctrl+C to stop)...")
			if _, err := reader.ReadString('\n'); err != nil {
				return nil
			}
			fmt.Println()
		}
	}

	return nil
}

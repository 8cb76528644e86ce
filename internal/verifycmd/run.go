package verifycmd

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
	"github.com/hannahmoutran/ai-music-metadata/internal/results"
	"github.com/hannahmoutran/ai-music-metadata/internal/verify"
)

func executeRun(datasetPath string, sampleSize, concurrency int) error {
	slog.Info("Starting verification run", "dataset", datasetPath, "sample", sampleSize)

	loader := dataset.NewLoader(datasetPath)
	var records []dataset.ReleaseRecord
	var err error
	if sampleSize > 0 {
		records, err = loader.LoadSample(sampleSize)
	} else {
		records, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "records", len(records))

	if concurrency < 1 {
		concurrency = 1
	}
	verifier := verify.NewVerifier(slog.Default())

	// Records are independent, so they can be verified in parallel; each
	// goroutine writes only its own slot, keeping dataset order.
	slog.Info("Verifying records", "concurrency", concurrency)
	runResults := make([]verify.Result, len(records))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	for i, record := range records {
		wg.Add(1)
		go func(idx int, rec dataset.ReleaseRecord) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			slog.Debug("Processing record", "barcode", rec.Barcode,
				"progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			runResults[idx] = verifier.VerifyRecord(rec)
		}(i, record)
	}
	wg.Wait()

	savedPath, err := results.SaveToYAML(datasetPath, sampleSize, runResults)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	printSummary(verify.Summarize(runResults))

	fmt.Printf("\nResults saved to: %s\n", savedPath)
	fmt.Printf("\nGenerate detailed report with:\n")
	fmt.Printf("  verify report --results %s\n", savedPath)

	return nil
}

func printSummary(summary verify.Summary) {
	fmt.Println("\n========================================")
	fmt.Println("Verification Summary")
	fmt.Println("========================================")
	fmt.Printf("Total Records:        %d\n", summary.TotalRecords)
	fmt.Printf("Verified:             %d\n", summary.Processed)
	fmt.Printf("Skipped:              %d\n", summary.Skipped)
	fmt.Printf("Errors:               %d\n", summary.Errors)
	fmt.Println()
	fmt.Printf("Confidence Reduced:   %d\n", summary.Adjusted)
	fmt.Printf("  Track Mismatches:   %d\n", summary.AdjustedTracks)
	fmt.Printf("  Year Mismatches:    %d\n", summary.AdjustedYears)
}

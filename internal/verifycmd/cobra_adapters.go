package verifycmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var datasetPath string
	var sampleSize int
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Verify track listings and years for matched records",
		Long: `Run track-listing verification over a dataset of matched records.

Each record's metadata track listing is compared to the track listing in its
chosen OCLC record, along with the publication years. Records whose track
similarity falls below the acceptance threshold, or whose years disagree, get
their match confidence reduced and flagged for manual review.`,
		Example: `  # Verify every record in a dataset
  musicmeta verify run --dataset ./matched.jsonl

  # Verify a small sample first
  musicmeta verify run --dataset ./matched.parquet --sample 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", datasetPath)
			}
			return executeRun(datasetPath, sampleSize, concurrency)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Number of records to verify (0 for all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of records verified in parallel")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report from saved verification results",
		Example: `  # Human-readable report
  musicmeta verify report --results verifications/run-2026-08-31_12-00-00.yaml

  # Machine-readable formats
  musicmeta verify report --results verifications/run-2026-08-31_12-00-00.yaml --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to a saved verification YAML file (required)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, or csv")

	_ = cmd.MarkFlagRequired("results")

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var datasetPath string
	var limit int
	var interactive bool
	var showExtraction bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect dataset records and their extracted track listings",
		Long: `Inspect records from a parquet or jsonl dataset file.

Shows what the track and year extractors pull out of each record's free-text
blobs, which is useful for diagnosing unexpected similarity scores.`,
		Example: `  # Inspect the first 5 records interactively
  musicmeta verify inspect --dataset ./matched.jsonl --limit 5 --interactive

  # Show record fields without running extraction
  musicmeta verify inspect --dataset ./matched.jsonl --extraction=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, datasetPath, limit, interactive, showExtraction)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each record (press Enter to continue)")
	cmd.Flags().BoolVar(&showExtraction, "extraction", true, "Show extracted tracks and years")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

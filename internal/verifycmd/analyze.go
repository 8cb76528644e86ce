package verifycmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
	"github.com/hannahmoutran/ai-music-metadata/internal/gemini"
	"github.com/hannahmoutran/ai-music-metadata/internal/match"
	"github.com/hannahmoutran/ai-music-metadata/internal/ollama"
	"github.com/hannahmoutran/ai-music-metadata/internal/openai"
	"github.com/hannahmoutran/ai-music-metadata/internal/providers"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var datasetPath string
	var provider string
	var model string
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Choose the best OCLC record for each release with an LLM",
		Long: `Ask an LLM which of a release's candidate OCLC records matches its metadata.

For each record the candidates are first ranked by title similarity, then the
metadata and candidate dump are sent to the provider; the structured response
(chosen OCLC number, confidence, explanation, other potential matches) is
printed for each release.`,
		Example: `  # Analyze with the default provider
  musicmeta analyze --dataset ./searched.jsonl

  # Analyze a sample with Gemini
  musicmeta analyze --dataset ./searched.jsonl --provider gemini --model gemini-1.5-flash --sample 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s", datasetPath)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeAnalyze(ctx, datasetPath, provider, model, sampleSize)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().StringVar(&provider, "provider", "openai", "LLM provider (openai, gemini, or ollama)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (defaults to provider's default)")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Number of records to analyze (0 for all)")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeAnalyze(ctx context.Context, datasetPath, providerName, model string, sampleSize int) error {
	llm, err := providerFor(providerName)
	if err != nil {
		return err
	}
	if model == "" {
		model = defaultModel(providerName)
	}

	loader := dataset.NewLoader(datasetPath)
	var records []dataset.ReleaseRecord
	if sampleSize > 0 {
		records, err = loader.LoadSample(sampleSize)
	} else {
		records, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Info("Starting match analysis", "records", len(records), "provider", providerName, "model", model)
	analyzer := match.NewAnalyzer(llm, model, slog.Default())

	for i, record := range records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("\n[%d/%d] Barcode: %s\n", i+1, len(records), record.Barcode)

		if strings.TrimSpace(record.CatalogResults) == "" {
			fmt.Println("  No catalog results to analyze.")
			continue
		}

		releaseTitle := firstMetadataTitle(record.Metadata)
		for _, candidate := range match.RankCandidates(releaseTitle, record.CatalogResults) {
			fmt.Printf("  Candidate %s: %q (title similarity %.2f, %s)\n",
				candidate.OCLCNumber, candidate.Title, candidate.Score, candidate.Confidence)
		}

		analysis, err := analyzer.Analyze(ctx, record.Metadata, record.CatalogResults)
		if err != nil {
			slog.Error("Match analysis failed", "barcode", record.Barcode, "error", err)
			continue
		}

		fmt.Printf("  OCLC Number: %s\n", analysis.OCLCNumber)
		fmt.Printf("  Confidence:  %.0f%%\n", analysis.Confidence)
		fmt.Printf("  Explanation: %s\n", analysis.Explanation)
		if len(analysis.OtherMatches) > 0 {
			fmt.Printf("  Other Potential Matches: %s\n", strings.Join(analysis.OtherMatches, ", "))
		}
	}

	return nil
}

func providerFor(name string) (providers.Provider, error) {
	switch name {
	case "openai":
		return openai.New(), nil
	case "gemini":
		return gemini.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

func defaultModel(providerName string) string {
	switch providerName {
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o-mini"
	}
}

func firstMetadataTitle(metadata string) string {
	for line := range strings.Lines(metadata) {
		if value, ok := strings.CutPrefix(strings.TrimSpace(line), "Title:"); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hannahmoutran/ai-music-metadata/internal/verifycmd"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "musicmeta",
		Short: "Music release metadata matching and verification tool",
		Long: `Musicmeta cross-checks music release metadata against OCLC catalog records.

It supports LLM-assisted selection of the best matching catalog record and
automated verification of track listings and publication years, reducing the
match confidence of records that disagree with their metadata.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(verifycmd.NewAnalyzeCmd())
	cmd.AddCommand(verifycmd.NewFetchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

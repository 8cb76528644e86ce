package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hannahmoutran/ai-music-metadata/internal/verifycmd"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Track listing and publication year verification tools",
		Long: `Verification tools for double-checking matched OCLC records.

Supports running track-listing and year verification over a matched dataset,
generating reports from saved runs, and inspecting what the extractors pull
out of individual records.`,
	}

	// Add verify subcommands
	cmd.AddCommand(verifycmd.NewRunCmd())
	cmd.AddCommand(verifycmd.NewReportCmd())
	cmd.AddCommand(verifycmd.NewInspectCmd())

	return cmd
}

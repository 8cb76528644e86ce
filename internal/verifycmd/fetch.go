package verifycmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hannahmoutran/ai-music-metadata/internal/worldcat"
)

// NewFetchCmd creates the fetch command
func NewFetchCmd() *cobra.Command {
	var registryID string
	var holdings bool

	cmd := &cobra.Command{
		Use:   "fetch [oclc-number...]",
		Short: "Fetch and format OCLC records from the WorldCat Search API",
		Long: `Fetch bibliographic records by OCLC number and print them in the flat
labeled-line format the verification pipeline parses.

Requires OCLC_CLIENT_ID and OCLC_SECRET in the environment.`,
		Example: `  # Fetch one record
  musicmeta fetch 123456789

  # Fetch several records with holdings counts
  musicmeta fetch 123456789 987654321 --holdings`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID := os.Getenv("OCLC_CLIENT_ID")
			clientSecret := os.Getenv("OCLC_SECRET")
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("OCLC_CLIENT_ID and OCLC_SECRET environment variables must be set")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeFetch(ctx, worldcat.NewClient(clientID, clientSecret), args, registryID, holdings)
		},
	}

	cmd.Flags().StringVar(&registryID, "registry-id", "", "Institution registry ID to check holdings against")
	cmd.Flags().BoolVar(&holdings, "holdings", false, "Also fetch holdings counts")

	return cmd
}

func executeFetch(ctx context.Context, client *worldcat.Client, oclcNumbers []string, registryID string, holdings bool) error {
	records := make([]*worldcat.BibRecord, 0, len(oclcNumbers))
	for _, oclcNumber := range oclcNumbers {
		record, err := client.GetBib(ctx, oclcNumber)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	fmt.Println(worldcat.FormatRecords(records))

	if holdings {
		for _, oclcNumber := range oclcNumbers {
			info, err := client.GetHoldings(ctx, oclcNumber, registryID)
			if err != nil {
				return err
			}
			fmt.Printf("OCLC %s: Total Institutions Holding: %d", oclcNumber, info.TotalHoldingCount)
			if registryID != "" {
				held := "No"
				if info.HeldByInstitution {
					held = "Yes"
				}
				fmt.Printf(", Held by institution: %s", held)
			}
			fmt.Println()
		}
	}

	return nil
}

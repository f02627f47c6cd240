package cli

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/edgar"
	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/logger"
)

var (
	fetchSince   string
	fetchForms   []string
	fetchWorkers int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [company]",
	Short: "Fetch and index an entity's filings from the archive",
	Long: `Resolves a company reference, lists its filings in the regulatory
archive, downloads the primary documents, and indexes them.

Downloads respect the archive's fair access policy; large backfills
take time.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSince, "since", "", "only fetch filings on or after this date (YYYY-MM-DD)")
	fetchCmd.Flags().StringSliceVar(&fetchForms, "forms", []string{"10-K", "10-Q", "8-K"}, "form types to fetch")
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 0, "concurrent indexing workers (0 = default)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	resolver, err := ensureResolver()
	if err != nil {
		return err
	}
	indexer, err := ensureIndexer()
	if err != nil {
		return err
	}
	source := ensureFilingSource()
	ctx := context.Background()

	res, err := resolver.Resolve(ctx, args[0], nil)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}
	cmd.Printf("Resolved %q to entity %s (%s match)\n", args[0], res.EntityID, res.Kind)
	if res.Note != "" {
		cmd.Printf("Note: %s\n", res.Note)
	}

	var since time.Time
	if fetchSince != "" {
		since, err = edgar.ParseFilingDate(fetchSince)
		if err != nil {
			return fmt.Errorf("invalid --since date: %w", err)
		}
	}

	listed, err := source.ListFilings(ctx, res.EntityID, since)
	if err != nil {
		return fmt.Errorf("listing filings: %w", err)
	}

	var wanted []domain.FilingInfo
	for _, f := range listed {
		if len(fetchForms) > 0 && !slices.Contains(fetchForms, f.FormType) {
			continue
		}
		wanted = append(wanted, f)
	}
	cmd.Printf("Fetching %d filing(s)\n", len(wanted))

	// Downloads run sequentially: the archive's rate limit dominates, so
	// parallelism buys nothing upstream. Indexing parallelizes below.
	var filings []domain.RawFiling
	for _, info := range wanted {
		content, err := source.Download(ctx, info)
		if err != nil {
			logger.Warn("Skipping %s: %v", info.AccessionNumber, err)
			continue
		}
		filings = append(filings, domain.RawFiling{
			DocumentName: info.PrimaryDocument,
			Content:      content,
			Metadata: domain.FilingMetadata{
				EntityID:        info.EntityID,
				FormType:        info.FormType,
				FilingDate:      info.FilingDate,
				FilingReference: info.AccessionNumber,
			},
		})
	}

	summary := indexer.IndexAll(ctx, filings, fetchWorkers)

	cmd.Printf("Indexed %d filing(s), %d chunk(s)\n", summary.FilingsProcessed, summary.ChunksIndexed)
	for _, err := range summary.Errors {
		cmd.Printf("Error: %v\n", err)
	}
	if len(summary.Errors) > 0 {
		return fmt.Errorf("%d filing(s) failed", len(summary.Errors))
	}
	return nil
}

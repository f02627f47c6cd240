package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/edgar"
	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

var (
	indexCIK     string
	indexForm    string
	indexDate    string
	indexRef     string
	indexCompany string
	indexWorkers int
)

var indexCmd = &cobra.Command{
	Use:   "index [files...]",
	Short: "Index filing documents from local files",
	Long: `Parses filing documents, splits them into overlapping passages, and
ingests them into the search index. Re-indexing the same filing
overwrites its existing records.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexCIK, "cik", "", "entity id the filings belong to (required)")
	indexCmd.Flags().StringVar(&indexForm, "form", "", "form type, e.g. 10-K")
	indexCmd.Flags().StringVar(&indexDate, "date", "", "filing date (YYYY-MM-DD)")
	indexCmd.Flags().StringVar(&indexRef, "ref", "", "filing reference (accession number)")
	indexCmd.Flags().StringVar(&indexCompany, "company", "", "company name for display")
	indexCmd.Flags().IntVar(&indexWorkers, "workers", 0, "concurrent filings (0 = default)")
	indexCmd.MarkFlagRequired("cik")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	indexer, err := ensureIndexer()
	if err != nil {
		return err
	}

	meta := domain.FilingMetadata{
		EntityID:        domain.NormalizeEntityID(indexCIK),
		FormType:        indexForm,
		FilingReference: indexRef,
		CompanyName:     indexCompany,
	}
	if indexDate != "" {
		t, err := edgar.ParseFilingDate(indexDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		meta.FilingDate = &t
	}

	filings := make([]domain.RawFiling, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		filings = append(filings, domain.RawFiling{
			DocumentName: filepath.Base(path),
			Content:      content,
			Metadata:     meta,
		})
	}

	summary := indexer.IndexAll(context.Background(), filings, indexWorkers)

	cmd.Printf("Indexed %d filing(s), %d chunk(s)\n", summary.FilingsProcessed, summary.ChunksIndexed)
	for _, err := range summary.Errors {
		cmd.Printf("Error: %v\n", err)
	}
	if len(summary.Errors) > 0 {
		return fmt.Errorf("%d filing(s) failed", len(summary.Errors))
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/edgar"
	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

var (
	searchCIK   string
	searchFrom  string
	searchTo    string
	searchForms []string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search indexed filings for cybersecurity disclosures",
	Long: `Searches the index for cybersecurity disclosure passages: breach
notifications, risk factor discussions, and incident reports.

Results are scoped to one entity (--cik) and can be narrowed by filing
date range and form type. Without keywords, returns the entity's
disclosure passages newest first.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCIK, "cik", "", "entity id to search within (required)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest filing date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest filing date (YYYY-MM-DD)")
	searchCmd.Flags().StringSliceVar(&searchForms, "forms", nil, "form types, e.g. 10-K,8-K")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.MarkFlagRequired("cik")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	search, err := ensureSearch()
	if err != nil {
		return err
	}

	query := domain.SearchQuery{
		EntityID:  searchCIK,
		Keywords:  strings.Join(args, " "),
		FormTypes: searchForms,
		Limit:     searchLimit,
	}
	if searchFrom != "" {
		t, err := edgar.ParseFilingDate(searchFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		query.Dates.Start = t
	}
	if searchTo != "" {
		t, err := edgar.ParseFilingDate(searchTo)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		query.Dates.End = t
	}

	results, err := search.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ScoredChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredChunk) error {
	if len(results) == 0 {
		cmd.Println("No disclosures found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, res := range results {
		meta := res.Chunk.Metadata
		date := "undated"
		if meta.FilingDate != nil {
			date = meta.FilingDate.Format("2006-01-02")
		}

		cmd.Printf("  [%d] %s %s (%s) (%.2f)\n", i+1, meta.FormType, date, res.Chunk.SectionTitle, res.Score)
		if meta.CompanyName != "" {
			cmd.Printf("      Company: %s\n", meta.CompanyName)
		}
		cmd.Printf("      %s\n", snippet(res.Chunk.Content, 160))
		cmd.Println()
	}
	return nil
}

func snippet(content string, max int) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/edgar"
)

var (
	resolveAsOf string
	resolveJSON bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [company]",
	Short: "Resolve a company reference to its canonical entity id",
	Long: `Resolves a free-form company reference (name, ticker, subsidiary, or
historical name) to its canonical filing entity id.

Pass --as-of with an incident date to check subsidiary relationships
against their acquisition dates.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveAsOf, "as-of", "", "incident date for temporal checks (YYYY-MM-DD)")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	resolver, err := ensureResolver()
	if err != nil {
		return err
	}

	var asOf *time.Time
	if resolveAsOf != "" {
		t, err := edgar.ParseFilingDate(resolveAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date: %w", err)
		}
		asOf = &t
	}

	res, err := resolver.Resolve(context.Background(), args[0], asOf)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	if resolveJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal resolution: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Entity:  %s\n", res.EntityID)
	cmd.Printf("Matched: %s\n", res.Kind)
	if res.Note != "" {
		cmd.Printf("Note:    %s\n", res.Note)
	}
	return nil
}

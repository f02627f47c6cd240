// Package cli wires the cobra command tree to the core services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/edgar"
	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/refdata"
	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/disclose-cli/internal/chunker"
	"github.com/meridian-labs/disclose-cli/internal/config"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driving"
	"github.com/meridian-labs/disclose-cli/internal/core/services"
	"github.com/meridian-labs/disclose-cli/internal/logger"
	"github.com/meridian-labs/disclose-cli/internal/parser"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Services are wired lazily on first use so commands that don't touch
// the index (version, resolve) don't open a database.
var (
	cfg             config.Config
	store           driven.IndexStore
	filingSource    driven.FilingSource
	resolverService driving.Resolver
	indexerService  driving.Indexer
	searchService   driving.DisclosureSearch
)

var rootCmd = &cobra.Command{
	Use:   "disclose",
	Short: "Index and search cybersecurity disclosures in regulatory filings",
	Long: `disclose ingests regulatory filings, splits them into searchable
passages, and retrieves cybersecurity disclosure content: breach
notifications, risk factor discussions, and incident reports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// ensureResolver wires the entity resolver.
func ensureResolver() (driving.Resolver, error) {
	if resolverService != nil {
		return resolverService, nil
	}
	ref, err := referenceData()
	if err != nil {
		return nil, err
	}
	resolverService = services.NewResolverService(ref)
	return resolverService, nil
}

// ensureStore opens the index database.
func ensureStore() (driven.IndexStore, error) {
	if store != nil {
		return store, nil
	}
	s, err := sqlite.NewStore(cfg.DataDir, cfg.IndexName)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	store = s
	return store, nil
}

// ensureIndexer wires the parse/chunk/ingest pipeline.
func ensureIndexer() (driving.Indexer, error) {
	if indexerService != nil {
		return indexerService, nil
	}
	s, err := ensureStore()
	if err != nil {
		return nil, err
	}
	ch, err := chunker.New(cfg.ChunkSize, cfg.ChunkStep)
	if err != nil {
		return nil, fmt.Errorf("chunker config: %w", err)
	}
	indexerService = services.NewIndexerService(parser.New(), ch, s)
	return indexerService, nil
}

// ensureSearch wires the disclosure search service.
func ensureSearch() (driving.DisclosureSearch, error) {
	if searchService != nil {
		return searchService, nil
	}
	s, err := ensureStore()
	if err != nil {
		return nil, err
	}
	searchService = services.NewSearchService(s)
	return searchService, nil
}

// ensureFilingSource wires the archive client.
func ensureFilingSource() driven.FilingSource {
	if filingSource == nil {
		filingSource = edgar.NewClient(
			edgar.WithUserAgent(cfg.UserAgent),
			edgar.WithRate(cfg.FetchRatePerSec),
		)
	}
	return filingSource
}

func referenceData() (driven.ReferenceData, error) {
	if cfg.ReferenceData == "" {
		return refdata.Builtin(), nil
	}
	set, err := refdata.Load(cfg.ReferenceData)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	return set, nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if store != nil {
			store.Close()
		}
	}()
	return rootCmd.Execute()
}

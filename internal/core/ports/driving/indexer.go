package driving

import (
	"context"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// IngestSummary aggregates the outcome of a batch ingestion.
type IngestSummary struct {
	// FilingsProcessed is the number of filings fully pipelined.
	FilingsProcessed int

	// ChunksIndexed is the total number of records upserted.
	ChunksIndexed int

	// Errors holds one entry per filing that failed.
	Errors []error
}

// Indexer runs the parse -> chunk -> ingest pipeline.
type Indexer interface {
	// IndexFiling ingests one raw filing and returns the number of
	// chunks indexed. The filing's EntityID is mandatory.
	IndexFiling(ctx context.Context, filing domain.RawFiling) (int, error)

	// IndexAll ingests independent filings concurrently with a bounded
	// worker pool. Per-filing failures are collected in the summary;
	// they do not stop the batch.
	IndexAll(ctx context.Context, filings []domain.RawFiling, workers int) IngestSummary
}

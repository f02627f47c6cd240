package driven

import (
	"context"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// IndexStore persists chunks and serves filtered lexical queries.
// Backed by SQLite FTS5.
type IndexStore interface {
	// EnsureSchema idempotently provisions the index schema: content is
	// full-text searchable, entity id and form type are exact-match
	// filterable, filing date is range-filterable.
	EnsureSchema(ctx context.Context) error

	// Ingest upserts records by id and returns the count that
	// succeeded. A record that fails does not abort the rest of the
	// batch; per-record failures are reported via a
	// *domain.PartialIngestError.
	Ingest(ctx context.Context, records []domain.IndexRecord) (int, error)

	// Search returns up to q.Limit chunks matching the query's
	// conjunctive filters, ranked by relevance then filing date
	// descending. Store failures surface as domain.ErrStoreUnavailable
	// or domain.ErrIndexNotFound, never as silently empty results.
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.ScoredChunk, error)

	// Count returns the number of persisted records.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

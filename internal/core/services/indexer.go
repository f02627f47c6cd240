package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driving"
	"github.com/meridian-labs/disclose-cli/internal/logger"
)

// DefaultIngestWorkers bounds the ingestion pool when the caller does
// not.
const DefaultIngestWorkers = 4

// recordNamespace seeds deterministic record ids. Re-ingesting the same
// document yields the same ids, so re-indexing overwrites instead of
// duplicating.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("disclose/filing-chunk"))

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexerService runs the parse -> chunk -> ingest pipeline. Each
// filing is processed linearly; there is no shared mutable state across
// filings, so batches parallelize without coordination.
type IndexerService struct {
	parser  driven.DocumentParser
	chunker driven.SectionChunker
	store   driven.IndexStore
}

// NewIndexerService creates an indexer over the given pipeline stages.
func NewIndexerService(parser driven.DocumentParser, chunker driven.SectionChunker, store driven.IndexStore) *IndexerService {
	return &IndexerService{parser: parser, chunker: chunker, store: store}
}

// IndexFiling implements driving.Indexer.
func (s *IndexerService) IndexFiling(ctx context.Context, filing domain.RawFiling) (int, error) {
	meta := filing.Metadata
	if strings.TrimSpace(meta.EntityID) == "" {
		return 0, fmt.Errorf("%w: filing %q has no entity id", domain.ErrInvalidInput, filing.DocumentName)
	}
	meta.EntityID = domain.NormalizeEntityID(meta.EntityID)

	doc := s.parser.Parse(filing.Content, filing.DocumentName)
	if doc.Mode != domain.ParseModeStructured {
		logger.Debug("Parse degraded for %q: %s", filing.DocumentName, doc.Mode)
	}

	chunks := s.chunker.Split(doc.Sections)
	if len(chunks) == 0 {
		logger.Warn("Filing %q produced no chunks", filing.DocumentName)
		return 0, nil
	}

	records := make([]domain.IndexRecord, len(chunks))
	for i, c := range chunks {
		c.Metadata = meta
		records[i] = domain.IndexRecord{ID: recordID(filing, c), Chunk: c}
	}

	count, err := s.store.Ingest(ctx, records)
	if err != nil {
		return count, fmt.Errorf("ingest %q: %w", filing.DocumentName, err)
	}
	logger.Info("Indexed %q: %d sections, %d chunks", filing.DocumentName, len(doc.Sections), count)
	return count, nil
}

// IndexAll implements driving.Indexer. Filings are independent, so a
// bounded pool of workers each runs its own pipeline; the only
// synchronization is the summary and waiting for the pool to drain.
func (s *IndexerService) IndexAll(ctx context.Context, filings []domain.RawFiling, workers int) driving.IngestSummary {
	if workers <= 0 {
		workers = DefaultIngestWorkers
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		summary driving.IngestSummary
		sem     = make(chan struct{}, workers)
	)

	for _, filing := range filings {
		if ctx.Err() != nil {
			mu.Lock()
			summary.Errors = append(summary.Errors, fmt.Errorf("batch aborted: %w", ctx.Err()))
			mu.Unlock()
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(f domain.RawFiling) {
			defer wg.Done()
			defer func() { <-sem }()

			count, err := s.IndexFiling(ctx, f)
			mu.Lock()
			defer mu.Unlock()
			summary.ChunksIndexed += count
			if err != nil {
				summary.Errors = append(summary.Errors, err)
				return
			}
			summary.FilingsProcessed++
		}(filing)
	}

	wg.Wait()
	return summary
}

// recordID derives a stable id from the filing reference and the
// chunk's position within the document.
func recordID(filing domain.RawFiling, c domain.Chunk) string {
	ref := filing.Metadata.FilingReference
	if ref == "" {
		ref = filing.DocumentName
	}
	key := fmt.Sprintf("%s|%d|%d", ref, c.Position, c.StartOffset)
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

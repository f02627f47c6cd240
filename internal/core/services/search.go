package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driving"
	"github.com/meridian-labs/disclose-cli/internal/logger"
)

// DefaultSearchLimit is used when the query does not set one.
const DefaultSearchLimit = 20

// previewLen bounds the content prefix checked for disclosure keywords.
const previewLen = 500

// Sections of annual/quarterly/current reports where cybersecurity
// disclosures appear: risk factors (Item 1A), the dedicated
// cybersecurity item (1B/1C), and management's discussion (Item 7).
var disclosureSections = []string{
	"item 1a",
	"item 1b",
	"item 1c",
	"item 7",
	"risk factors",
	"cybersecurity",
	"management's discussion",
}

// Keywords whose presence near the top of a passage marks it as a
// likely disclosure rather than boilerplate.
var disclosureKeywords = []string{
	"cyber",
	"security",
	"breach",
	"data breach",
	"ransomware",
	"hack",
	"incident",
	"vulnerability",
	"unauthorized access",
}

// Ensure SearchService implements the interface.
var _ driving.DisclosureSearch = (*SearchService)(nil)

// SearchService retrieves disclosure passages in two stages: a filtered
// lexical query against the index, then a domain-relevance filter over
// the candidates. Lexical relevance alone over-retrieves boilerplate;
// the section/keyword heuristic approximates "is this actually a
// disclosure passage".
type SearchService struct {
	store driven.IndexStore
}

// NewSearchService creates a search service over the given store.
func NewSearchService(store driven.IndexStore) *SearchService {
	return &SearchService{store: store}
}

// Search implements driving.DisclosureSearch.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.ScoredChunk, error) {
	if strings.TrimSpace(q.EntityID) == "" {
		return nil, fmt.Errorf("%w: entity id is required", domain.ErrInvalidInput)
	}
	q.EntityID = domain.NormalizeEntityID(q.EntityID)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	logger.Section("Disclosure Search")
	logger.Debug("Entity: %s, keywords: %q, limit: %d", q.EntityID, q.Keywords, limit)

	// Fetch twice the requested size so the relevance filter has
	// candidates to discard.
	fetch := q
	fetch.Limit = limit * 2
	candidates, err := s.store.Search(ctx, fetch)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}
	logger.Debug("Candidates: %d", len(candidates))

	results := make([]domain.ScoredChunk, 0, limit)
	for _, c := range candidates {
		if !disclosureRelevant(c.Chunk) {
			logger.Debug("Filtered out %q (section %q)", c.ID, c.Chunk.SectionTitle)
			continue
		}
		results = append(results, c)
		if len(results) == limit {
			break
		}
	}

	logger.Info("Results: %d of %d candidates", len(results), len(candidates))
	return results, nil
}

// disclosureRelevant keeps a chunk when its section title is on the
// disclosure allow-list, or the first previewLen characters of its
// content mention a cybersecurity keyword.
func disclosureRelevant(c domain.Chunk) bool {
	title := strings.ToLower(c.SectionTitle)
	for _, s := range disclosureSections {
		if strings.Contains(title, s) {
			return true
		}
	}

	preview := strings.ToLower(c.Content)
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}
	for _, kw := range disclosureKeywords {
		if strings.Contains(preview, kw) {
			return true
		}
	}
	return false
}

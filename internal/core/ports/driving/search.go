package driving

import (
	"context"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// DisclosureSearch provides domain-filtered retrieval to external
// actors.
type DisclosureSearch interface {
	// Search runs the filtered lexical query and applies the
	// cybersecurity-disclosure relevance filter to the candidates.
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.ScoredChunk, error)
}

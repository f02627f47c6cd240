package driven

import (
	"context"
	"time"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// FilingSource fetches filings from the upstream regulatory archive.
// Implementations own the archive's rate-limit policy; the core never
// throttles.
type FilingSource interface {
	// ListFilings returns the filings submitted by an entity on or
	// after since. A zero since returns everything the archive lists.
	ListFilings(ctx context.Context, entityID string, since time.Time) ([]domain.FilingInfo, error)

	// Download fetches the raw bytes of a filing's primary document.
	Download(ctx context.Context, filing domain.FilingInfo) ([]byte, error)
}

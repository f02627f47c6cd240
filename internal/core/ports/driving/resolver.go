package driving

import (
	"context"
	"time"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// Resolver maps a free-form company reference to a canonical entity id.
type Resolver interface {
	// Resolve applies the precedence chain subsidiary -> ticker ->
	// exact/historical name -> fuzzy containment. asOf gates subsidiary
	// matches: a nil asOf means "currently valid". Returns
	// domain.ErrNotFound when nothing matched, or
	// domain.ErrSubsidiaryInactive when the only match was a subsidiary
	// not yet acquired at asOf.
	Resolve(ctx context.Context, reference string, asOf *time.Time) (*domain.Resolution, error)
}

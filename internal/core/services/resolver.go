package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driving"
	"github.com/meridian-labs/disclose-cli/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.Resolver = (*ResolverService)(nil)

// ResolverService maps free-form company references to canonical entity
// ids using injected reference data. Stages run in strict precedence
// order; the first match wins.
type ResolverService struct {
	ref driven.ReferenceData
}

// NewResolverService creates a resolver over the given reference data.
func NewResolverService(ref driven.ReferenceData) *ResolverService {
	return &ResolverService{ref: ref}
}

// Resolve implements driving.Resolver.
func (s *ResolverService) Resolve(_ context.Context, reference string, asOf *time.Time) (*domain.Resolution, error) {
	norm := domain.NormalizeReference(reference)
	if norm == "" {
		return nil, domain.ErrNotFound
	}
	clean := domain.StripNamePunctuation(norm)

	logger.Section("Entity Resolution")
	logger.Debug("Reference: %q (normalized %q)", reference, clean)

	// 1. Subsidiary/division lookup. A matched-but-inactive subsidiary
	// fails for that record only; the search continues.
	sawInactive := false
	for _, sub := range s.ref.Subsidiaries() {
		if !subsidiaryMatches(sub, norm) {
			continue
		}
		if !subsidiaryActive(sub, asOf) {
			logger.Debug("Subsidiary %q matched but inactive at %s", sub.LegalName, asOf.Format("2006-01-02"))
			sawInactive = true
			continue
		}
		return &domain.Resolution{
			EntityID: sub.ParentEntityID,
			Kind:     domain.MatchSubsidiary,
			Note:     fmt.Sprintf("%s of entity %s since %s", sub.Relationship, sub.ParentEntityID, sub.EffectiveFrom.Format("2006-01-02")),
		}, nil
	}

	// 2. Ticker lookup for short references.
	if domain.TickerCandidate(norm) {
		if id, ok := s.ref.TickerEntity(strings.ToUpper(norm)); ok {
			logger.Debug("Ticker match: %s -> %s", strings.ToUpper(norm), id)
			return &domain.Resolution{EntityID: id, Kind: domain.MatchTicker}, nil
		}
	}

	// 3. Direct or historical name lookup.
	if rec, ok := s.ref.Alias(clean); ok {
		res := &domain.Resolution{EntityID: rec.EntityID, Kind: domain.MatchName}
		if rec.Historical() {
			res.Note = historicalNote(rec)
		}
		return res, nil
	}

	// 4. Fuzzy containment fallback over sorted alias keys. The first
	// hit wins, but multi-entity ambiguity is flagged in the note
	// rather than silently discarded.
	if res := s.fuzzyLookup(clean); res != nil {
		return res, nil
	}

	if sawInactive {
		return nil, domain.ErrSubsidiaryInactive
	}
	return nil, domain.ErrNotFound
}

// fuzzyLookup scans the alias table for containment in either
// direction.
func (s *ResolverService) fuzzyLookup(clean string) *domain.Resolution {
	var (
		first      *domain.AliasRecord
		firstKey   string
		candidates = map[string]struct{}{}
	)
	for _, key := range s.ref.AliasKeys() {
		if !strings.Contains(clean, key) && !strings.Contains(key, clean) {
			continue
		}
		rec, ok := s.ref.Alias(key)
		if !ok {
			continue
		}
		if first == nil {
			r := rec
			first = &r
			firstKey = key
		}
		candidates[rec.EntityID] = struct{}{}
	}
	if first == nil {
		return nil
	}

	note := fmt.Sprintf("fuzzy match on %q", firstKey)
	if len(candidates) > 1 {
		note += fmt.Sprintf("; ambiguous across %d entities", len(candidates))
		logger.Warn("Fuzzy resolution of %q is ambiguous (%d candidate entities)", clean, len(candidates))
	}
	res := &domain.Resolution{EntityID: first.EntityID, Kind: domain.MatchFuzzy, Note: note}
	if first.Historical() {
		res.Note += "; " + historicalNote(*first)
	}
	return res
}

// subsidiaryMatches checks the legal name and aliases with exact match
// first, then substring containment in either direction.
func subsidiaryMatches(sub domain.SubsidiaryRecord, norm string) bool {
	legal := domain.NormalizeReference(sub.LegalName)
	if norm == legal {
		return true
	}
	for _, alias := range sub.Aliases {
		if norm == domain.NormalizeReference(alias) {
			return true
		}
	}
	return strings.Contains(norm, legal) || strings.Contains(legal, norm)
}

// subsidiaryActive checks temporal validity. No date means "currently
// valid"; divisions are never gated by an acquisition date.
func subsidiaryActive(sub domain.SubsidiaryRecord, asOf *time.Time) bool {
	if asOf == nil {
		return true
	}
	if sub.Relationship == domain.RelationshipDivision {
		return true
	}
	return !asOf.Before(sub.EffectiveFrom)
}

func historicalNote(rec domain.AliasRecord) string {
	note := fmt.Sprintf("historical name; now %s", rec.SupersededBy)
	if rec.RenameDate != nil {
		note += fmt.Sprintf(" (renamed %s)", rec.RenameDate.Format("2006-01-02"))
	}
	return note
}

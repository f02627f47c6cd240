package driven

import "github.com/meridian-labs/disclose-cli/internal/core/domain"

// ReferenceData supplies the entity-resolution lookup tables. Loaded at
// process start and immutable for the run; mutation is an out-of-scope
// administrative operation.
type ReferenceData interface {
	// Subsidiaries returns every subsidiary/division record.
	Subsidiaries() []domain.SubsidiaryRecord

	// Alias looks up a normalized name (lowercased, punctuation
	// stripped) in the alias table, historical names included.
	Alias(name string) (domain.AliasRecord, bool)

	// AliasKeys returns the normalized alias keys in sorted order, so
	// containment scans are deterministic.
	AliasKeys() []string

	// TickerEntity maps an upper-cased ticker symbol to a canonical
	// entity id.
	TickerEntity(symbol string) (string, bool)
}

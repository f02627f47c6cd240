package domain

import (
	"strings"
	"time"
	"unicode"
)

// entityIDLength is the canonical identifier width (zero-padded).
const entityIDLength = 10

// MatchKind identifies which resolver stage produced a resolution.
type MatchKind string

const (
	// MatchSubsidiary means the reference named a subsidiary or division
	// and resolved to its parent.
	MatchSubsidiary MatchKind = "subsidiary"

	// MatchTicker means the reference was a ticker symbol.
	MatchTicker MatchKind = "ticker"

	// MatchName means the reference exactly matched a current or
	// historical company name.
	MatchName MatchKind = "name"

	// MatchFuzzy means the reference matched an alias by substring
	// containment only.
	MatchFuzzy MatchKind = "fuzzy"
)

// Relationship distinguishes acquired subsidiaries from long-standing
// operating divisions. Divisions are not gated by an acquisition date.
type Relationship string

const (
	RelationshipSubsidiary Relationship = "subsidiary"
	RelationshipDivision   Relationship = "division"
)

// SubsidiaryRecord maps a subsidiary or division to its parent's
// canonical identifier. A subsidiary reference is only valid for
// incidents occurring on or after EffectiveFrom.
type SubsidiaryRecord struct {
	// LegalName is the subsidiary's legal name.
	LegalName string

	// Aliases are common name variations.
	Aliases []string

	// ParentEntityID is the parent's canonical identifier.
	ParentEntityID string

	// EffectiveFrom is the acquisition completion date.
	EffectiveFrom time.Time

	// Relationship is subsidiary (date-gated) or division (not gated).
	Relationship Relationship

	// Notes is free-form context about the relationship.
	Notes string
}

// AliasRecord maps a company name to a canonical identifier. Retired
// legal names carry the successor name and rename date; the canonical
// id is unchanged by renames.
type AliasRecord struct {
	// Name is the alias as supplied in the reference data.
	Name string

	// EntityID is the canonical identifier the alias resolves to.
	EntityID string

	// SupersededBy is the current legal name when this alias is a
	// retired historical name, empty otherwise.
	SupersededBy string

	// RenameDate is when the historical name was retired.
	RenameDate *time.Time
}

// Historical reports whether the alias is a retired legal name.
func (a AliasRecord) Historical() bool {
	return a.SupersededBy != ""
}

// Resolution is the outcome of resolving a company reference.
type Resolution struct {
	// EntityID is the canonical identifier the reference resolved to.
	EntityID string

	// Kind identifies the resolver stage that matched.
	Kind MatchKind

	// Note carries match context: historical renames, subsidiary
	// relationships, fuzzy-match ambiguity.
	Note string
}

// NormalizeEntityID zero-pads an identifier to the canonical 10-digit
// form. Surrounding whitespace is discarded.
func NormalizeEntityID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) >= entityIDLength {
		return id
	}
	return strings.Repeat("0", entityIDLength-len(id)) + id
}

// NormalizeReference lowercases and trims a company reference.
func NormalizeReference(reference string) string {
	return strings.ToLower(strings.TrimSpace(reference))
}

// StripNamePunctuation removes the punctuation that varies between
// renditions of the same legal name (periods, commas, exclamation marks).
func StripNamePunctuation(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!':
			return -1
		}
		return r
	}, name)
}

// TickerCandidate reports whether a normalized reference is short
// enough to plausibly be a ticker symbol: at most five alphanumeric
// characters.
func TickerCandidate(reference string) bool {
	if reference == "" || len(reference) > 5 {
		return false
	}
	for _, r := range reference {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package refdata supplies the entity-resolution lookup tables: alias
// and ticker maps plus subsidiary relationships. A builtin data set
// covers well-known filers; a TOML file can replace it.
package refdata

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
)

// Ensure Set implements the port.
var _ driven.ReferenceData = (*Set)(nil)

// Set is an immutable, pre-normalized reference data set.
type Set struct {
	subsidiaries []domain.SubsidiaryRecord
	aliases      map[string]domain.AliasRecord
	aliasKeys    []string
	tickers      map[string]string
}

// New builds a Set from raw records. Alias keys are normalized
// (lowercased, punctuation stripped) and sorted; tickers are
// upper-cased; entity ids are zero-padded.
func New(aliases []domain.AliasRecord, tickers map[string]string, subsidiaries []domain.SubsidiaryRecord) *Set {
	s := &Set{
		aliases: make(map[string]domain.AliasRecord, len(aliases)),
		tickers: make(map[string]string, len(tickers)),
	}

	for _, rec := range aliases {
		rec.EntityID = domain.NormalizeEntityID(rec.EntityID)
		key := normalizeName(rec.Name)
		if key == "" {
			continue
		}
		s.aliases[key] = rec
	}
	s.aliasKeys = make([]string, 0, len(s.aliases))
	for key := range s.aliases {
		s.aliasKeys = append(s.aliasKeys, key)
	}
	sort.Strings(s.aliasKeys)

	for symbol, id := range tickers {
		s.tickers[normalizeTicker(symbol)] = domain.NormalizeEntityID(id)
	}

	s.subsidiaries = make([]domain.SubsidiaryRecord, len(subsidiaries))
	copy(s.subsidiaries, subsidiaries)
	for i := range s.subsidiaries {
		s.subsidiaries[i].ParentEntityID = domain.NormalizeEntityID(s.subsidiaries[i].ParentEntityID)
		if s.subsidiaries[i].Relationship == "" {
			s.subsidiaries[i].Relationship = domain.RelationshipSubsidiary
		}
	}

	return s
}

// Subsidiaries implements driven.ReferenceData.
func (s *Set) Subsidiaries() []domain.SubsidiaryRecord {
	return s.subsidiaries
}

// Alias implements driven.ReferenceData.
func (s *Set) Alias(name string) (domain.AliasRecord, bool) {
	rec, ok := s.aliases[normalizeName(name)]
	return rec, ok
}

// AliasKeys implements driven.ReferenceData.
func (s *Set) AliasKeys() []string {
	return s.aliasKeys
}

// TickerEntity implements driven.ReferenceData.
func (s *Set) TickerEntity(symbol string) (string, bool) {
	id, ok := s.tickers[normalizeTicker(symbol)]
	return id, ok
}

func normalizeName(name string) string {
	return domain.StripNamePunctuation(domain.NormalizeReference(name))
}

func normalizeTicker(symbol string) string {
	return domain.NormalizeReference(symbol)
}

// file is the on-disk TOML layout.
type file struct {
	Aliases      []fileAlias      `toml:"alias"`
	Tickers      map[string]string `toml:"ticker"`
	Subsidiaries []fileSubsidiary `toml:"subsidiary"`
}

type fileAlias struct {
	Name         string `toml:"name"`
	EntityID     string `toml:"entity_id"`
	SupersededBy string `toml:"superseded_by"`
	RenameDate   string `toml:"rename_date"`
}

type fileSubsidiary struct {
	LegalName      string   `toml:"legal_name"`
	Aliases        []string `toml:"aliases"`
	ParentEntityID string   `toml:"parent_entity_id"`
	EffectiveFrom  string   `toml:"effective_from"`
	Relationship   string   `toml:"relationship"`
	Notes          string   `toml:"notes"`
}

// Load reads a reference data set from a TOML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference data: %w", err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing reference data: %w", err)
	}

	aliases := make([]domain.AliasRecord, 0, len(f.Aliases))
	for _, a := range f.Aliases {
		rec := domain.AliasRecord{Name: a.Name, EntityID: a.EntityID, SupersededBy: a.SupersededBy}
		if a.RenameDate != "" {
			t, err := time.Parse("2006-01-02", a.RenameDate)
			if err != nil {
				return nil, fmt.Errorf("alias %q: invalid rename_date %q: %w", a.Name, a.RenameDate, err)
			}
			rec.RenameDate = &t
		}
		aliases = append(aliases, rec)
	}

	subsidiaries := make([]domain.SubsidiaryRecord, 0, len(f.Subsidiaries))
	for _, sub := range f.Subsidiaries {
		rec := domain.SubsidiaryRecord{
			LegalName:      sub.LegalName,
			Aliases:        sub.Aliases,
			ParentEntityID: sub.ParentEntityID,
			Relationship:   domain.Relationship(sub.Relationship),
			Notes:          sub.Notes,
		}
		if sub.EffectiveFrom != "" {
			t, err := time.Parse("2006-01-02", sub.EffectiveFrom)
			if err != nil {
				return nil, fmt.Errorf("subsidiary %q: invalid effective_from %q: %w", sub.LegalName, sub.EffectiveFrom, err)
			}
			rec.EffectiveFrom = t
		}
		subsidiaries = append(subsidiaries, rec)
	}

	return New(aliases, f.Tickers, subsidiaries), nil
}

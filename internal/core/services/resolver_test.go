package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/disclose-cli/internal/core/domain"
)

// fakeRefData is an in-memory ReferenceData fixture.
type fakeRefData struct {
	subsidiaries []domain.SubsidiaryRecord
	aliases      map[string]domain.AliasRecord
	tickers      map[string]string
}

func (f *fakeRefData) Subsidiaries() []domain.SubsidiaryRecord { return f.subsidiaries }

func (f *fakeRefData) Alias(name string) (domain.AliasRecord, bool) {
	rec, ok := f.aliases[name]
	return rec, ok
}

func (f *fakeRefData) AliasKeys() []string {
	keys := make([]string, 0, len(f.aliases))
	for k := range f.aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeRefData) TickerEntity(symbol string) (string, bool) {
	id, ok := f.tickers[symbol]
	return id, ok
}

func parseDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func testRefData(t *testing.T) *fakeRefData {
	t.Helper()
	rename := parseDate(t, "2017-06-16")
	return &fakeRefData{
		subsidiaries: []domain.SubsidiaryRecord{
			{
				LegalName:      "Change Healthcare",
				Aliases:        []string{"Change Healthcare Inc."},
				ParentEntityID: "0000731766",
				EffectiveFrom:  *parseDate(t, "2022-10-03"),
				Relationship:   domain.RelationshipSubsidiary,
			},
			{
				LegalName:      "Sony Pictures",
				Aliases:        []string{"Sony Pictures Entertainment"},
				ParentEntityID: "0000313838",
				EffectiveFrom:  *parseDate(t, "1989-01-01"),
				Relationship:   domain.RelationshipDivision,
			},
		},
		aliases: map[string]domain.AliasRecord{
			"equifax":     {Name: "Equifax", EntityID: "0000033185"},
			"equifax inc": {Name: "Equifax Inc", EntityID: "0000033185"},
			"target":      {Name: "Target", EntityID: "0000027419"},
			"yahoo":       {Name: "Yahoo", EntityID: "0001011006", SupersededBy: "Altaba Inc.", RenameDate: rename},
			"altaba":      {Name: "Altaba", EntityID: "0001011006"},
		},
		tickers: map[string]string{
			"EFX":  "0000033185",
			"UBER": "0001543151",
		},
	}
}

func TestResolve_ExactName(t *testing.T) {
	r := NewResolverService(testRefData(t))

	res, err := r.Resolve(context.Background(), "Equifax Inc.", nil)
	require.NoError(t, err)

	assert.Equal(t, "0000033185", res.EntityID)
	assert.Equal(t, domain.MatchName, res.Kind)
	assert.Empty(t, res.Note)
}

func TestResolve_Ticker(t *testing.T) {
	r := NewResolverService(testRefData(t))

	res, err := r.Resolve(context.Background(), "uber", nil)
	require.NoError(t, err)

	assert.Equal(t, "0001543151", res.EntityID)
	assert.Equal(t, domain.MatchTicker, res.Kind)
}

func TestResolve_HistoricalName(t *testing.T) {
	r := NewResolverService(testRefData(t))

	res, err := r.Resolve(context.Background(), "Yahoo", nil)
	require.NoError(t, err)

	assert.Equal(t, "0001011006", res.EntityID)
	assert.Equal(t, domain.MatchName, res.Kind)
	assert.Contains(t, res.Note, "Altaba Inc.")
	assert.Contains(t, res.Note, "2017-06-16")
}

func TestResolve_SubsidiaryPrecedesName(t *testing.T) {
	ref := testRefData(t)
	// Give the subsidiary a conflicting alias entry to prove precedence.
	ref.aliases["change healthcare"] = domain.AliasRecord{Name: "Change Healthcare", EntityID: "9999999999"}
	r := NewResolverService(ref)

	res, err := r.Resolve(context.Background(), "Change Healthcare", nil)
	require.NoError(t, err)

	assert.Equal(t, "0000731766", res.EntityID, "subsidiary stage wins over the alias table")
	assert.Equal(t, domain.MatchSubsidiary, res.Kind)
	assert.Contains(t, res.Note, "subsidiary")
}

func TestResolve_SubsidiaryTemporalGating(t *testing.T) {
	r := NewResolverService(testRefData(t))
	ctx := context.Background()

	t.Run("after acquisition", func(t *testing.T) {
		res, err := r.Resolve(ctx, "Change Healthcare", parseDate(t, "2024-02-21"))
		require.NoError(t, err)
		assert.Equal(t, "0000731766", res.EntityID)
	})

	t.Run("before acquisition", func(t *testing.T) {
		_, err := r.Resolve(ctx, "Change Healthcare", parseDate(t, "2021-06-01"))
		assert.ErrorIs(t, err, domain.ErrSubsidiaryInactive)
	})

	t.Run("on acquisition date", func(t *testing.T) {
		res, err := r.Resolve(ctx, "Change Healthcare", parseDate(t, "2022-10-03"))
		require.NoError(t, err)
		assert.Equal(t, "0000731766", res.EntityID)
	})

	t.Run("no date means currently valid", func(t *testing.T) {
		res, err := r.Resolve(ctx, "Change Healthcare", nil)
		require.NoError(t, err)
		assert.Equal(t, "0000731766", res.EntityID)
	})
}

func TestResolve_DivisionNeverGated(t *testing.T) {
	r := NewResolverService(testRefData(t))

	// 2014: the Sony Pictures breach predates nothing, the division has
	// existed under the parent throughout.
	res, err := r.Resolve(context.Background(), "Sony Pictures", parseDate(t, "2014-11-24"))
	require.NoError(t, err)

	assert.Equal(t, "0000313838", res.EntityID)
	assert.Equal(t, domain.MatchSubsidiary, res.Kind)
	assert.Contains(t, res.Note, "division")
}

func TestResolve_FuzzyContainment(t *testing.T) {
	r := NewResolverService(testRefData(t))

	res, err := r.Resolve(context.Background(), "Target Corporation of Minneapolis", nil)
	require.NoError(t, err)

	assert.Equal(t, "0000027419", res.EntityID)
	assert.Equal(t, domain.MatchFuzzy, res.Kind)
	assert.Contains(t, res.Note, "fuzzy match")
}

func TestResolve_FuzzyAmbiguityFlagged(t *testing.T) {
	ref := testRefData(t)
	ref.aliases["acme east"] = domain.AliasRecord{Name: "Acme East", EntityID: "0000000001"}
	ref.aliases["acme west"] = domain.AliasRecord{Name: "Acme West", EntityID: "0000000002"}
	r := NewResolverService(ref)

	res, err := r.Resolve(context.Background(), "acme east and acme west holdings", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.MatchFuzzy, res.Kind)
	assert.Contains(t, res.Note, "ambiguous")
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolverService(testRefData(t))

	_, err := r.Resolve(context.Background(), "Nonexistent Widgets LLC", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_EmptyReference(t *testing.T) {
	r := NewResolverService(testRefData(t))

	_, err := r.Resolve(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_CaseAndPunctuationInsensitive(t *testing.T) {
	r := NewResolverService(testRefData(t))

	res, err := r.Resolve(context.Background(), "  EQUIFAX, INC. ", nil)
	require.NoError(t, err)
	assert.Equal(t, "0000033185", res.EntityID)
}

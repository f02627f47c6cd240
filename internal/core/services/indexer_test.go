package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/disclose-cli/internal/chunker"
	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/parser"
)

func newTestIndexer(t *testing.T, store *fakeStore) *IndexerService {
	t.Helper()
	ch, err := chunker.New(200, 100)
	require.NoError(t, err)
	return NewIndexerService(parser.New(), ch, store)
}

func testFiling(name, accession string) domain.RawFiling {
	content := `<document>
		<heading>Item 1A. Risk Factors</heading>
		<para>` + strings.Repeat("Cyberattacks could disrupt operations. ", 12) + `</para>
	</document>`
	return domain.RawFiling{
		DocumentName: name,
		Content:      []byte(content),
		Metadata: domain.FilingMetadata{
			EntityID:        "731766",
			FormType:        "10-K",
			FilingReference: accession,
			CompanyName:     "UnitedHealth Group",
		},
	}
}

func TestIndexFiling(t *testing.T) {
	store := newFakeStore()
	svc := newTestIndexer(t, store)

	count, err := svc.IndexFiling(context.Background(), testFiling("unh-10k.htm", "0000731766-24-000050"))
	require.NoError(t, err)

	assert.Greater(t, count, 1, "long section splits into multiple chunks")
	assert.Len(t, store.records, count)

	for _, rec := range store.records {
		assert.Equal(t, "0000731766", rec.Chunk.Metadata.EntityID, "entity id is normalized and stamped")
		assert.Equal(t, "10-K", rec.Chunk.Metadata.FormType)
		assert.Equal(t, "Item 1A. Risk Factors", rec.Chunk.SectionTitle)
		assert.NotEmpty(t, rec.ID)
	}
}

func TestIndexFiling_RequiresEntityID(t *testing.T) {
	svc := newTestIndexer(t, newFakeStore())

	filing := testFiling("doc.htm", "ref-1")
	filing.Metadata.EntityID = "  "

	_, err := svc.IndexFiling(context.Background(), filing)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexFiling_DeterministicIDs(t *testing.T) {
	first := newFakeStore()
	second := newFakeStore()

	_, err := newTestIndexer(t, first).IndexFiling(context.Background(), testFiling("doc.htm", "acc-1"))
	require.NoError(t, err)
	_, err = newTestIndexer(t, second).IndexFiling(context.Background(), testFiling("doc.htm", "acc-1"))
	require.NoError(t, err)

	require.Equal(t, len(first.records), len(second.records))
	for id := range first.records {
		_, ok := second.records[id]
		assert.True(t, ok, "re-ingestion produces identical record ids")
	}
}

func TestIndexFiling_DifferentFilingsGetDifferentIDs(t *testing.T) {
	store := newFakeStore()
	svc := newTestIndexer(t, store)
	ctx := context.Background()

	n1, err := svc.IndexFiling(ctx, testFiling("doc.htm", "acc-1"))
	require.NoError(t, err)
	n2, err := svc.IndexFiling(ctx, testFiling("doc.htm", "acc-2"))
	require.NoError(t, err)

	assert.Len(t, store.records, n1+n2, "distinct filing references never collide")
}

func TestIndexFiling_EmptyDocument(t *testing.T) {
	store := newFakeStore()
	svc := newTestIndexer(t, store)

	filing := testFiling("empty.htm", "acc-1")
	filing.Content = []byte("   ")

	count, err := svc.IndexFiling(context.Background(), filing)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, store.records)
}

func TestIndexAll(t *testing.T) {
	store := newFakeStore()
	svc := newTestIndexer(t, store)

	filings := []domain.RawFiling{
		testFiling("a.htm", "acc-1"),
		testFiling("b.htm", "acc-2"),
		testFiling("c.htm", "acc-3"),
	}

	summary := svc.IndexAll(context.Background(), filings, 2)

	assert.Equal(t, 3, summary.FilingsProcessed)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, len(store.records), summary.ChunksIndexed)
}

func TestIndexAll_CollectsPerFilingErrors(t *testing.T) {
	store := newFakeStore()
	svc := newTestIndexer(t, store)

	bad := testFiling("bad.htm", "acc-2")
	bad.Metadata.EntityID = ""

	summary := svc.IndexAll(context.Background(), []domain.RawFiling{
		testFiling("good.htm", "acc-1"),
		bad,
	}, 0)

	assert.Equal(t, 1, summary.FilingsProcessed)
	require.Len(t, summary.Errors, 1)
	assert.ErrorIs(t, summary.Errors[0], domain.ErrInvalidInput)
}

func TestIndexAll_CancelledContext(t *testing.T) {
	store := newFakeStore()
	svc := newTestIndexer(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := svc.IndexAll(ctx, []domain.RawFiling{testFiling("a.htm", "acc-1")}, 1)

	assert.Zero(t, summary.FilingsProcessed)
	assert.NotEmpty(t, summary.Errors)
}

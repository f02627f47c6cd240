package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/meridian-labs/disclose-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/meridian-labs/disclose-cli/internal/core/domain"
	"github.com/meridian-labs/disclose-cli/internal/core/ports/driven"
	"github.com/meridian-labs/disclose-cli/internal/logger"
)

// isoDate is the filing_date storage layout. ISO-8601 strings compare
// lexically, so range filters work on TEXT.
const isoDate = "2006-01-02"

// Ensure Store implements the port.
var _ driven.IndexStore = (*Store)(nil)

// Store is the SQLite FTS5 implementation of the index store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the index database inside
// dataDir and provisions the schema. If dataDir is empty, defaults to
// ~/.disclose/data. The index file is <indexName>.db.
func NewStore(dataDir, indexName string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".disclose", "data")
	}
	if indexName == "" {
		indexName = "filings"
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStoreUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, indexName+".db")

	// WAL mode for concurrent readers during ingestion.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStoreUnavailable, err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema runs all pending migrations. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.migrate(ctx, migrations.FS); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// migrate applies every .up.sql file newer than the recorded version.
func (s *Store) migrate(ctx context.Context, fsys embed.FS) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// Ingest upserts records by id. Individual record failures are
// collected and reported; they do not abort the batch. A cancelled
// context aborts cleanly: already-upserted records stay, and the
// operation can be retried because ids are stable.
func (s *Store) Ingest(ctx context.Context, records []domain.IndexRecord) (int, error) {
	indexed := 0
	var failures []domain.IngestFailure

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return indexed, fmt.Errorf("ingest aborted: %w", err)
		}
		if err := s.upsert(ctx, rec); err != nil {
			logger.Error("Failed to ingest record %s: %v", rec.ID, err)
			failures = append(failures, domain.IngestFailure{RecordID: rec.ID, Err: err})
			continue
		}
		indexed++
	}

	if len(failures) > 0 {
		return indexed, &domain.PartialIngestError{Indexed: indexed, Failures: failures}
	}
	return indexed, nil
}

func (s *Store) upsert(ctx context.Context, rec domain.IndexRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: record has no id", domain.ErrInvalidInput)
	}
	c := rec.Chunk
	if strings.TrimSpace(c.Metadata.EntityID) == "" {
		return fmt.Errorf("%w: record %s has no entity id", domain.ErrInvalidInput, rec.ID)
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, entity_id, form_type, filing_date, filing_reference,
			company_name, section_title, start_offset, position, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entity_id = excluded.entity_id,
			form_type = excluded.form_type,
			filing_date = excluded.filing_date,
			filing_reference = excluded.filing_reference,
			company_name = excluded.company_name,
			section_title = excluded.section_title,
			start_offset = excluded.start_offset,
			position = excluded.position,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, rec.ID, c.Metadata.EntityID, c.Metadata.FormType, nullDate(c.Metadata.FilingDate),
		c.Metadata.FilingReference, c.Metadata.CompanyName, c.SectionTitle,
		c.StartOffset, c.Position, c.Content, now, now)

	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// Search runs the conjunctive filter plus, when keywords are given, a
// bm25-ranked full-text match boosted above the filters: results order
// by relevance first, filing date second. Without keywords the results
// order by filing date alone.
func (s *Store) Search(ctx context.Context, q domain.SearchQuery) ([]domain.ScoredChunk, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	where := []string{"c.entity_id = ?"}
	args := []any{domain.NormalizeEntityID(q.EntityID)}

	if !q.Dates.Start.IsZero() {
		where = append(where, "c.filing_date >= ?")
		args = append(args, q.Dates.Start.Format(isoDate))
	}
	if !q.Dates.End.IsZero() {
		where = append(where, "c.filing_date <= ?")
		args = append(args, q.Dates.End.Format(isoDate))
	}
	if len(q.FormTypes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(q.FormTypes)), ",")
		where = append(where, "c.form_type IN ("+placeholders+")")
		for _, ft := range q.FormTypes {
			args = append(args, ft)
		}
	}

	const columns = `c.id, c.entity_id, c.form_type, c.filing_date, c.filing_reference,
		c.company_name, c.section_title, c.start_offset, c.position, c.content`

	var query string
	match := matchExpression(q.Keywords)
	if match != "" {
		query = `
			SELECT ` + columns + `, -bm25(chunks_fts) AS score
			FROM chunks_fts
			JOIN chunks c ON c.rowid = chunks_fts.rowid
			WHERE chunks_fts MATCH ? AND ` + strings.Join(where, " AND ") + `
			ORDER BY score DESC, c.filing_date DESC
			LIMIT ?`
		args = append([]any{match}, args...)
	} else {
		query = `
			SELECT ` + columns + `, 0 AS score
			FROM chunks c
			WHERE ` + strings.Join(where, " AND ") + `
			ORDER BY c.filing_date DESC
			LIMIT ?`
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var results []domain.ScoredChunk
	for rows.Next() {
		var (
			hit        domain.ScoredChunk
			filingDate sql.NullString
		)
		if err := rows.Scan(&hit.ID, &hit.Chunk.Metadata.EntityID, &hit.Chunk.Metadata.FormType,
			&filingDate, &hit.Chunk.Metadata.FilingReference, &hit.Chunk.Metadata.CompanyName,
			&hit.Chunk.SectionTitle, &hit.Chunk.StartOffset, &hit.Chunk.Position,
			&hit.Chunk.Content, &hit.Score); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if filingDate.Valid {
			if t, err := time.Parse(isoDate, filingDate.String); err == nil {
				hit.Chunk.Metadata.FilingDate = &t
			}
		}
		results = append(results, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, s.mapError(err)
	}
	return results, nil
}

// Count returns the number of persisted records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, s.mapError(err)
	}
	return n, nil
}

// nullDate converts an optional filing date to its TEXT column value.
func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(isoDate), Valid: true}
}

// matchExpression builds an FTS5 MATCH expression from free-text
// keywords. Terms are quoted so user input cannot inject FTS syntax,
// and joined with OR so any term contributes to the bm25 score.
func matchExpression(keywords string) string {
	fields := strings.Fields(keywords)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		terms = append(terms, `"`+f+`"`)
	}
	return strings.Join(terms, " OR ")
}

// mapError translates driver errors into the domain taxonomy so
// callers can distinguish "no disclosures exist" from "the store could
// not be queried".
func (s *Store) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %w", domain.ErrIndexNotFound, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

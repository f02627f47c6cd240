package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Callers branch on them:
// "not found" and "system failure" are materially different outcomes in
// this domain, because an empty result set is a citable answer.
var (
	// ErrNotFound indicates no resolver stage matched a reference, or a
	// requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunkParams indicates a non-positive chunk size or step.
	ErrInvalidChunkParams = errors.New("chunk size and step must be positive")

	// ErrSubsidiaryInactive indicates a subsidiary name matched but the
	// supplied date precedes the acquisition. Callers may retry without
	// a date constraint.
	ErrSubsidiaryInactive = errors.New("subsidiary not yet acquired at reference date")

	// ErrStoreUnavailable indicates the index store could not be
	// reached or provisioned. Never silently reported as empty results.
	ErrStoreUnavailable = errors.New("index store unavailable")

	// ErrIndexNotFound indicates the target index does not exist.
	ErrIndexNotFound = errors.New("index not found")

	// ErrRateLimited indicates the upstream archive rejected a request
	// for exceeding its rate policy.
	ErrRateLimited = errors.New("rate limited")
)

// IngestFailure records one record that failed to index.
type IngestFailure struct {
	RecordID string
	Err      error
}

// PartialIngestError reports a batch where some records failed to index
// while the rest succeeded. Ingestion continues past individual
// failures; the details are returned, never swallowed.
type PartialIngestError struct {
	// Indexed is the count of records that succeeded.
	Indexed int

	// Failures holds the records that did not.
	Failures []IngestFailure
}

// Error implements the error interface.
func (e *PartialIngestError) Error() string {
	return fmt.Sprintf("indexed %d records, %d failed", e.Indexed, len(e.Failures))
}

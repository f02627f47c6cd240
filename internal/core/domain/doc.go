// Package domain defines the core business entities for Disclose.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A titled span of a parsed filing
//   - Chunk: A bounded, possibly overlapping slice of a section
//   - FilingMetadata: Typed filing identity attached to every chunk
//   - IndexRecord: The persisted unit (chunk plus stable id)
//   - SubsidiaryRecord / AliasRecord: Entity-resolution reference data
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to
// infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentParser: Converts raw filing bytes into ordered sections
//   - SectionChunker: Splits sections into overlapping passages
//   - IndexStore: Chunk persistence and lexical search
//   - ReferenceData: Entity-resolution lookup tables
//
// # Optional Interfaces
//
//   - FilingSource: Fetches filings from the upstream archive. Only the
//     fetch command needs it; ingestion of local files works without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

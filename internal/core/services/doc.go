// Package services implements the driving ports: entity resolution,
// the ingestion pipeline, and disclosure retrieval. Services depend on
// driven ports only, never on concrete adapters.
package services

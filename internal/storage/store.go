// Package storage persists markings and interval tags between
// sessions.
//
// The primary backend is SQLite with WAL mode; MemoryStore offers the
// same interface without a file, for tests and for running the
// inspector without persistence. Rows are keyed by the canonical
// metadata fingerprint of the item they belong to, so markings
// reattach to the right series regardless of load order or naming.
package storage

import "github.com/serieslab/inspector/internal/session"

// Store defines the interface for marking persistence. The markingsio
// plugin is the only writer; the export command also reads.
type Store interface {
	// UpsertMarkings persists marking records for one metadata set,
	// updating the note on conflict.
	UpsertMarkings(metadata map[string]string, records []session.MarkingRecord) error
	// DeleteMarkings removes the given marking records. Interval-tag
	// rows are never touched by this path.
	DeleteMarkings(metadata map[string]string, records []session.MarkingRecord) error
	// QueryMarkings returns the stored markings for a metadata set
	// that lie inside [start, end], both bounds inclusive. Markings
	// only partially overlapping the range and interval-tag rows are
	// excluded.
	QueryMarkings(metadata map[string]string, start, end float64) ([]session.MarkingRecord, error)

	// SaveIntervalTag records a tagged interval export for a metadata
	// set, e.g. a cleaned region.
	SaveIntervalTag(metadata map[string]string, start, end float64, tag string) error
	// QueryIntervalTags returns all tagged intervals for a metadata
	// set, ordered by start.
	QueryIntervalTags(metadata map[string]string) ([]TagRecord, error)

	// ListMetadata returns every distinct metadata set with stored
	// rows, ordered by fingerprint. Lets CLI users discover what the
	// database holds before querying.
	ListMetadata() ([]map[string]string, error)

	// Close gracefully shuts down the backend.
	Close() error
}

// TagRecord is one tagged-interval row.
type TagRecord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Tag   string  `json:"tag"`
}

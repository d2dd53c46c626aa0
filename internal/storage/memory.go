package storage

import (
	"sort"
	"sync"

	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/pkg/jsonutil"
)

// MemoryStore implements Store in process memory. It backs the
// inspector when no database path is configured and doubles as the
// test fake.
type MemoryStore struct {
	mu       sync.RWMutex
	markings map[string][]session.MarkingRecord
	tags     map[string][]TagRecord

	// meta keeps the serialized metadata per fingerprint, mirroring
	// the metadata column of the SQLite backend.
	meta map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		markings: make(map[string][]session.MarkingRecord),
		tags:     make(map[string][]TagRecord),
		meta:     make(map[string]string),
	}
}

// UpsertMarkings stores records, replacing rows with the same
// position and label.
func (s *MemoryStore) UpsertMarkings(metadata map[string]string, records []session.MarkingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jsonutil.Fingerprint(metadata)
	s.meta[key] = jsonutil.MarshalMetadata(metadata)
	for _, r := range records {
		replaced := false
		for i, cur := range s.markings[key] {
			if cur.Start == r.Start && cur.End == r.End && cur.Label == r.Label {
				s.markings[key][i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			s.markings[key] = append(s.markings[key], r)
		}
	}
	return nil
}

// DeleteMarkings removes matching rows.
func (s *MemoryStore) DeleteMarkings(metadata map[string]string, records []session.MarkingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jsonutil.Fingerprint(metadata)
	for _, r := range records {
		rows := s.markings[key]
		for i, cur := range rows {
			if cur.Start == r.Start && cur.End == r.End && cur.Label == r.Label {
				s.markings[key] = append(rows[:i], rows[i+1:]...)
				break
			}
		}
	}
	return nil
}

// QueryMarkings returns stored markings lying inside [start, end],
// both bounds inclusive, ordered by start position.
func (s *MemoryStore) QueryMarkings(metadata map[string]string, start, end float64) ([]session.MarkingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []session.MarkingRecord
	for _, r := range s.markings[jsonutil.Fingerprint(metadata)] {
		if r.Start >= start && r.End <= end {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// SaveIntervalTag records a tagged interval export.
func (s *MemoryStore) SaveIntervalTag(metadata map[string]string, start, end float64, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jsonutil.Fingerprint(metadata)
	s.meta[key] = jsonutil.MarshalMetadata(metadata)
	for i, cur := range s.tags[key] {
		if cur.Start == start && cur.End == end && cur.Tag == tag {
			s.tags[key][i] = TagRecord{Start: start, End: end, Tag: tag}
			return nil
		}
	}
	s.tags[key] = append(s.tags[key], TagRecord{Start: start, End: end, Tag: tag})
	return nil
}

// QueryIntervalTags returns the tagged intervals for a metadata set.
func (s *MemoryStore) QueryIntervalTags(metadata map[string]string) ([]TagRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]TagRecord(nil), s.tags[jsonutil.Fingerprint(metadata)]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// ListMetadata returns the distinct metadata sets with stored rows.
func (s *MemoryStore) ListMetadata() ([]map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.meta))
	for key := range s.meta {
		if len(s.markings[key]) == 0 && len(s.tags[key]) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, jsonutil.UnmarshalMetadata(s.meta[key]))
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/pkg/jsonutil"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore implements Store on a single SQLite file. It manages
// the connection, prepared statements for the hot paths, and
// serializes access through a read-write mutex.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtUpsert *sql.Stmt
	stmtDelete *sql.Stmt
	stmtTag    *sql.Stmt
}

// NewSQLiteStore opens (or creates) the database at path, initializes
// the schema, and prepares the hot-path statements. Use ":memory:"
// for an in-memory database in tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_cache_size=-64000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	st := &SQLiteStore{db: db, path: path}

	if err := st.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if err := st.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}
	return st, nil
}

func (s *SQLiteStore) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.stmtUpsert, err = s.db.Prepare(`
		INSERT INTO markings (metadata_key, metadata, start_pos, end_pos, label, note, is_total, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(metadata_key, start_pos, end_pos, label, is_total) DO UPDATE SET
			note = excluded.note,
			saved_at = excluded.saved_at
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}

	s.stmtDelete, err = s.db.Prepare(`
		DELETE FROM markings
		WHERE metadata_key = ? AND start_pos = ? AND end_pos = ? AND label = ? AND is_total = 0
	`)
	if err != nil {
		return fmt.Errorf("preparing delete: %w", err)
	}

	s.stmtTag, err = s.db.Prepare(`
		INSERT INTO markings (metadata_key, metadata, start_pos, end_pos, label, note, is_total, saved_at)
		VALUES (?, ?, ?, ?, ?, '', 1, ?)
		ON CONFLICT(metadata_key, start_pos, end_pos, label, is_total) DO UPDATE SET
			saved_at = excluded.saved_at
	`)
	if err != nil {
		return fmt.Errorf("preparing tag insert: %w", err)
	}

	return nil
}

// UpsertMarkings persists marking records in a single transaction.
func (s *SQLiteStore) UpsertMarkings(metadata map[string]string, records []session.MarkingRecord) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jsonutil.Fingerprint(metadata)
	meta := jsonutil.MarshalMetadata(metadata)
	now := time.Now().UnixNano()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning upsert transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt := tx.Stmt(s.stmtUpsert)
	for _, r := range records {
		if _, err := stmt.Exec(key, meta, r.Start, r.End, r.Label, r.Note, 0, now); err != nil {
			return fmt.Errorf("upserting marking [%v,%v] %s: %w", r.Start, r.End, r.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert transaction: %w", err)
	}
	return nil
}

// DeleteMarkings removes the given marking rows. Tag rows (is_total=1)
// are never deleted by this path.
func (s *SQLiteStore) DeleteMarkings(metadata map[string]string, records []session.MarkingRecord) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jsonutil.Fingerprint(metadata)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	stmt := tx.Stmt(s.stmtDelete)
	for _, r := range records {
		if _, err := stmt.Exec(key, r.Start, r.End, r.Label); err != nil {
			return fmt.Errorf("deleting marking [%v,%v] %s: %w", r.Start, r.End, r.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete transaction: %w", err)
	}
	return nil
}

// QueryMarkings returns the stored markings lying inside [start, end],
// both bounds inclusive, ordered by start position. Markings that only
// partially overlap the range are excluded.
func (s *SQLiteStore) QueryMarkings(metadata map[string]string, start, end float64) ([]session.MarkingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT start_pos, end_pos, label, note
		FROM markings
		WHERE metadata_key = ? AND is_total = 0 AND start_pos >= ? AND end_pos <= ?
		ORDER BY start_pos ASC
	`, jsonutil.Fingerprint(metadata), start, end)
	if err != nil {
		return nil, fmt.Errorf("querying markings: %w", err)
	}
	defer rows.Close()

	var records []session.MarkingRecord
	for rows.Next() {
		var r session.MarkingRecord
		if err := rows.Scan(&r.Start, &r.End, &r.Label, &r.Note); err != nil {
			return nil, fmt.Errorf("scanning marking row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveIntervalTag records a tagged interval export.
func (s *SQLiteStore) SaveIntervalTag(metadata map[string]string, start, end float64, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := jsonutil.Fingerprint(metadata)
	meta := jsonutil.MarshalMetadata(metadata)
	if _, err := s.stmtTag.Exec(key, meta, start, end, tag, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("saving interval tag %s [%v,%v]: %w", tag, start, end, err)
	}
	return nil
}

// QueryIntervalTags returns the tagged intervals for a metadata set.
func (s *SQLiteStore) QueryIntervalTags(metadata map[string]string) ([]TagRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT start_pos, end_pos, label
		FROM markings
		WHERE metadata_key = ? AND is_total = 1
		ORDER BY start_pos ASC
	`, jsonutil.Fingerprint(metadata))
	if err != nil {
		return nil, fmt.Errorf("querying interval tags: %w", err)
	}
	defer rows.Close()

	var tags []TagRecord
	for rows.Next() {
		var t TagRecord
		if err := rows.Scan(&t.Start, &t.End, &t.Tag); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListMetadata returns the distinct metadata sets with stored rows.
func (s *SQLiteStore) ListMetadata() ([]map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT metadata
		FROM markings
		GROUP BY metadata_key
		ORDER BY metadata_key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing metadata: %w", err)
	}
	defer rows.Close()

	var out []map[string]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning metadata row: %w", err)
		}
		out = append(out, jsonutil.UnmarshalMetadata(raw))
	}
	return out, rows.Err()
}

// Close closes the prepared statements and the connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtUpsert, s.stmtDelete, s.stmtTag} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

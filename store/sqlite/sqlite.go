/*
Package sqlite persists ingested punches and classified day results.

PURPOSE:
  Keeps processed months queryable after the fact: the merged punch lists
  that went in and the per-day records plus anomalies that came out. The
  classifier itself never touches the database; callers persist finalized
  results only, which keeps reprocessing idempotent.

KEY TABLES:
  punches:     merged punch timestamps, keyed by date
  day_results: one row per classified date (kind, payload JSON, overtime)

SERIALIZATION:
  DayRecord is a closed sum type, so each row stores a kind discriminator
  next to the JSON payload and decoding switches on it. Anomalies ride in a
  separate JSON column on the same row.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - attendance: the record types stored here
  - api: the HTTP surface reading and writing through this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

// Store persists punches and classified day results.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Merged punches, one row per badge event
	CREATE TABLE IF NOT EXISTS punches (
		date TEXT NOT NULL,
		punched_at TEXT NOT NULL,
		PRIMARY KEY (date, punched_at)
	);

	CREATE INDEX IF NOT EXISTS idx_punches_date ON punches(date);

	-- Classified day results, one row per date
	CREATE TABLE IF NOT EXISTS day_results (
		date TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		record_json TEXT NOT NULL,
		anomalies_json TEXT,
		overtime_hours TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_day_results_kind ON day_results(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PUNCHES
// =============================================================================

// SavePunches replaces the stored punch list for a date.
func (s *Store) SavePunches(ctx context.Context, date attendance.Date, punches []time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM punches WHERE date = ?`, date.String()); err != nil {
		return fmt.Errorf("clear punches for %s: %w", date, err)
	}
	for _, p := range punches {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO punches (date, punched_at) VALUES (?, ?)`,
			date.String(), p.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert punch %s: %w", p, err)
		}
	}
	return tx.Commit()
}

// LoadPunches returns the stored punch lists for dates in [from, to],
// sorted within each date.
func (s *Store) LoadPunches(ctx context.Context, from, to attendance.Date) (map[attendance.Date][]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, punched_at FROM punches
		 WHERE date >= ? AND date <= ?
		 ORDER BY date, punched_at`,
		from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query punches: %w", err)
	}
	defer rows.Close()

	punches := make(map[attendance.Date][]time.Time)
	for rows.Next() {
		var dateStr, atStr string
		if err := rows.Scan(&dateStr, &atStr); err != nil {
			return nil, fmt.Errorf("scan punch: %w", err)
		}
		d, err := attendance.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			return nil, fmt.Errorf("parse punch time %q: %w", atStr, err)
		}
		punches[d] = append(punches[d], at)
	}
	return punches, rows.Err()
}

// =============================================================================
// DAY RESULTS
// =============================================================================

const (
	kindWorkday    = "workday"
	kindNonWorkday = "nonworkday"
	kindAbsent     = "absent"
)

// SaveDayResult upserts the classified result for its date.
func (s *Store) SaveDayResult(ctx context.Context, result attendance.DayResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, err := recordKind(result.Record)
	if err != nil {
		return err
	}

	recordJSON, err := json.Marshal(result.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	var anomaliesJSON []byte
	if len(result.Anomalies) > 0 {
		anomaliesJSON, err = json.Marshal(result.Anomalies)
		if err != nil {
			return fmt.Errorf("marshal anomalies: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO day_results (date, kind, record_json, anomalies_json, overtime_hours, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			kind = excluded.kind,
			record_json = excluded.record_json,
			anomalies_json = excluded.anomalies_json,
			overtime_hours = excluded.overtime_hours,
			updated_at = excluded.updated_at`,
		result.Record.RecordDate().String(), kind, string(recordJSON),
		nullableString(anomaliesJSON), result.Record.Overtime().String(),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert day result %s: %w", result.Record.RecordDate(), err)
	}
	return nil
}

// SaveResults persists a whole result set, e.g. one processed month.
func (s *Store) SaveResults(ctx context.Context, results map[attendance.Date]attendance.DayResult) error {
	for _, result := range results {
		if err := s.SaveDayResult(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

// LoadDayResults returns stored results for dates in [from, to].
func (s *Store) LoadDayResults(ctx context.Context, from, to attendance.Date) (map[attendance.Date]attendance.DayResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, kind, record_json, anomalies_json FROM day_results
		 WHERE date >= ? AND date <= ?
		 ORDER BY date`,
		from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query day results: %w", err)
	}
	defer rows.Close()

	results := make(map[attendance.Date]attendance.DayResult)
	for rows.Next() {
		var dateStr, kind, recordJSON string
		var anomaliesJSON sql.NullString
		if err := rows.Scan(&dateStr, &kind, &recordJSON, &anomaliesJSON); err != nil {
			return nil, fmt.Errorf("scan day result: %w", err)
		}

		d, err := attendance.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}

		record, err := decodeRecord(kind, recordJSON)
		if err != nil {
			return nil, fmt.Errorf("decode record for %s: %w", d, err)
		}

		result := attendance.DayResult{Record: record}
		if anomaliesJSON.Valid {
			if err := json.Unmarshal([]byte(anomaliesJSON.String), &result.Anomalies); err != nil {
				return nil, fmt.Errorf("decode anomalies for %s: %w", d, err)
			}
		}
		results[d] = result
	}
	return results, rows.Err()
}

func recordKind(rec attendance.DayRecord) (string, error) {
	switch rec.(type) {
	case *attendance.WorkdayRecord:
		return kindWorkday, nil
	case *attendance.NonWorkdayRecord:
		return kindNonWorkday, nil
	case attendance.AbsentDay:
		return kindAbsent, nil
	default:
		return "", fmt.Errorf("unknown record type %T", rec)
	}
}

func decodeRecord(kind, payload string) (attendance.DayRecord, error) {
	switch kind {
	case kindWorkday:
		var rec attendance.WorkdayRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, err
		}
		return &rec, nil
	case kindNonWorkday:
		var rec attendance.NonWorkdayRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, err
		}
		return &rec, nil
	case kindAbsent:
		var rec attendance.AbsentDay
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, err
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
